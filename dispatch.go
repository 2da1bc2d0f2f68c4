package libinput

import "time"

// DeviceTags records the capability-derived facts that pick a dispatch and
// that a dispatch may consult afterward (clickpad button-area layout, for
// instance, only applies to a touchpad tagged DeviceTagTouchpad).
type DeviceTags int

const (
	DeviceTagNone DeviceTags = 1 << iota
	DeviceTagTouchpad
	DeviceTagPointingStick
	DeviceTagExternalMouse
	DeviceTagTrackpoint
)

// Dispatch is the polymorphic per-device event handler. Rather than a
// C-style vtable of function pointers selected at device-add time, it is a
// closed Go interface with exactly two production implementations:
// FallbackDispatch for plain pointer/keyboard devices and TouchpadDispatch
// for devices that run the tap-to-click state machine.
type Dispatch interface {
	// Process handles one decoded raw event for dev.
	Process(dev *Device, ev RawEvent, now time.Duration)

	// Remove runs once, when the device node disappears.
	Remove(dev *Device)

	// Destroy releases any dispatch-owned resources (armed timers,
	// allocated seat slots) after Remove. Distinct from Remove because a
	// removed device may still be referenced by in-flight callbacks.
	Destroy(dev *Device)

	// DeviceAdded/DeviceRemoved are called by the Seat on the dispatch of
	// the device being added or removed, with that device itself; the
	// dispatches of other devices on the seat are not notified. Both
	// shipped dispatches leave these hooks empty.
	DeviceAdded(dev *Device)
	DeviceRemoved(dev *Device)

	// Suspend/Resume mirror Device.Suspend/Resume so a dispatch can drop
	// its own synthetic state (e.g. the tap FSM forcing DEAD) in step
	// with the hardware-level key/button releases.
	Suspend(dev *Device, now time.Duration)
	Resume(dev *Device, now time.Duration)

	// TagDevice records the capability-derived tags computed for dev,
	// called once right after SelectDispatch assigns the dispatch.
	TagDevice(dev *Device, tags DeviceTags)
}

// SelectDispatch implements the touchpad-vs-fallback decision: a device is
// a touchpad dispatch candidate iff it is a direct-input-incapable pointer
// with BTN_TOOL_FINGER and multitouch position axes but no BTN_TOOL_PEN (a
// graphics tablet reports the same finger/position axes but is not a
// touchpad). Everything else gets the fallback dispatch.
func SelectDispatch(caps Capability, directInput bool) (Dispatch, DeviceTags) {
	isTouchpad := !directInput &&
		caps.Has(CapToolFinger) &&
		!caps.Has(CapToolPen) &&
		caps.Has(CapPointer) &&
		caps.Has(CapTouch)

	if isTouchpad {
		return NewTouchpadDispatch(), DeviceTagTouchpad
	}
	return NewFallbackDispatch(), DeviceTagNone
}
