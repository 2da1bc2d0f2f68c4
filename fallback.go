package libinput

import "time"

// FallbackDispatch is the plain dispatch for devices that don't qualify as
// a touchpad: mice, trackpoints, keyboards, and graphics tablets. It has no
// state of its own — every hook either delegates straight to the shared
// pipeline or is a no-op.
type FallbackDispatch struct{}

// NewFallbackDispatch returns the stateless fallback dispatch.
func NewFallbackDispatch() *FallbackDispatch {
	return &FallbackDispatch{}
}

func (f *FallbackDispatch) Process(dev *Device, ev RawEvent, now time.Duration) {
	dev.ingestEvent(ev)
}

func (f *FallbackDispatch) Remove(dev *Device)  {}
func (f *FallbackDispatch) Destroy(dev *Device) {}

func (f *FallbackDispatch) DeviceAdded(dev *Device)   {}
func (f *FallbackDispatch) DeviceRemoved(dev *Device) {}

func (f *FallbackDispatch) Suspend(dev *Device, now time.Duration) {}
func (f *FallbackDispatch) Resume(dev *Device, now time.Duration)  {}

func (f *FallbackDispatch) TagDevice(dev *Device, tags DeviceTags) {}
