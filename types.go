package libinput

import "time"

// Event type and code constants mirror the Linux kernel's evdev
// conventions (see Documentation/input/event-codes.txt) — the same
// constant block style the reference driver this engine is derived from
// hardcodes rather than importing a kernel-header binding for.
const (
	EvSyn uint16 = 0x00
	EvKey uint16 = 0x01
	EvRel uint16 = 0x02
	EvAbs uint16 = 0x03
	EvMsc uint16 = 0x04
)

const (
	SynReport  uint16 = 0x00
	SynDropped uint16 = 0x03
)

const (
	RelX      uint16 = 0x00
	RelY      uint16 = 0x01
	RelHWheel uint16 = 0x06
	RelWheel  uint16 = 0x08
)

const (
	AbsX           uint16 = 0x00
	AbsY           uint16 = 0x01
	AbsMTSlot      uint16 = 0x2f
	AbsMTPositionX uint16 = 0x35
	AbsMTPositionY uint16 = 0x36
	AbsMTTrackingID uint16 = 0x39
)

const (
	BtnLeft        uint16 = 0x110
	BtnRight       uint16 = 0x111
	BtnMiddle      uint16 = 0x112
	BtnTouch       uint16 = 0x14a
	BtnToolFinger  uint16 = 0x145
	BtnToolDoubleTap uint16 = 0x14d
	BtnToolTripleTap uint16 = 0x14e
	BtnToolPen     uint16 = 0x140
)

const (
	keyESC           uint16 = 1
	keyMicMute       uint16 = 248
	btnMisc          uint16 = 0x100
	btnGearUp        uint16 = 0x151
	keyOk            uint16 = 0x160
	keyLightsToggle  uint16 = 0x21e
	btnDPadUp        uint16 = 0x220
	btnTriggerHappy40 uint16 = 0x2e7
	keyCnt           = 768
)

// RawEvent is one decoded kernel input_event record, as handed to the
// engine by an external event source.
type RawEvent struct {
	Type      uint16
	Code      uint16
	Value     int32
	Timestamp time.Duration // monotonic, since an arbitrary epoch
}

// Capability is a bitmask describing what a Device can do.
type Capability uint8

const (
	CapPointer Capability = 1 << iota
	CapKeyboard
	CapTouch
	CapToolFinger
	CapToolPen
)

func (c Capability) Has(f Capability) bool { return c&f != 0 }

// ButtonState mirrors libinput's pressed/released enums; it is used for
// both pointer buttons and keyboard keys.
type ButtonState int

const (
	StateReleased ButtonState = iota
	StatePressed
)

// Axis identifies a scroll axis.
type Axis int

const (
	AxisVertical Axis = iota
	AxisHorizontal
)

// Point is an integer device-coordinate pair.
type Point struct {
	X, Y int32
}

// Sub returns p - o.
func (p Point) Sub(o Point) Point {
	return Point{X: p.X - o.X, Y: p.Y - o.Y}
}
