package libinput

import (
	"time"

	"github.com/kwm81/libinput/internal/accel"
	"github.com/kwm81/libinput/internal/matrix"
	"github.com/kwm81/libinput/internal/ratelimit"
	"github.com/kwm81/libinput/internal/timer"
)

// DeviceID is a seat-scoped handle. Devices are stored in the seat's
// device map keyed by DeviceID (an arena-and-index, per Design Note 9)
// rather than by pointer cycles back to the seat.
type DeviceID int

// Identity mirrors the evdev input_id plus device name.
type Identity struct {
	Name string
	Vendor uint16
	Product uint16
	Bustype uint16
}

// AxisInfo describes one absolute axis's calibration-relevant bounds.
type AxisInfo struct {
	Min, Max int32
	Resolution int32 // units per mm; 0 if unknown
	Fake bool // true if Resolution was synthesized, not reported
}

func (a AxisInfo) width() float64 {
	w := float64(a.Max - a.Min + 1)
	if w <= 0 {
		return 1
	}
	return w
}

// pendingKind discriminates the single in-flight pending accumulator a
// device holds between SYN_REPORT boundaries.
type pendingKind int

const (
	pendingNone pendingKind = iota
	pendingRelativeMotion
	pendingAbsoluteMotion
	pendingAbsoluteTouchDown
	pendingAbsoluteTouchUp
	pendingAbsoluteMTDown
	pendingAbsoluteMTMotion
	pendingAbsoluteMTUp
)

// mtSlot is one multitouch slot's accumulated state.
type mtSlot struct {
	X, Y int32
	SeatSlot int // -1 when inactive
}

const maxMTSlots = 16

// scrollState is the device-local half of the scroll coordinator; the
// cross-cutting logic lives in scroll.go.
type scrollState struct {
	buttonDown bool
	active bool
	buildupH float64
	buildupV float64
	directionH bool
	directionV bool
	timerHandle timer.Handle
	naturalScroll bool
}

// Device is one opened input node.
type Device struct {
	ID DeviceID
	Seat *Seat
	Ident Identity
	Caps Capability

	// MTCapable reports whether ABS events route through the protocol-B
	// multitouch slot pipeline rather than the single-touch ABS_X/ABS_Y
	// path. Protocol-A devices are adapted to protocol B
	// by an external collaborator before reaching the engine.
	MTCapable bool

	// hasBtnLeft records whether the device advertises BTN_LEFT at all,
	// used only to pick the tap-enabled default.
	hasBtnLeft bool

	AbsX, AbsY AxisInfo

	mt struct {
		slots [maxMTSlots]mtSlot
		slot int // currently selected slot
	}
	absSeatSlot int // for single-touch ABS devices

	keys keyState

	pending pendingKind
	rel struct{ dx, dy int32 }

	userMatrix matrix.Matrix
	effectiveMatrix matrix.Matrix
	defaultMatrix matrix.Matrix
	DPI int

	scroll scrollState
	cfg configState

	Filter accel.Filter

	Dispatch Dispatch

	suspended bool
	removed bool

	synDropLimit *ratelimit.Limiter

	Sink Sink
	LEDs LEDSink
	log Logger

	timers *timer.Wheel

	// userConfig is the caller-supplied knob set; cfg derives its
	// "wanted" fields from it at every Configure call.
	userConfig DeviceConfig
	configured bool // Configure has run at least once
}

const defaultMouseDPI = 1000

// NewDevice constructs a Device with the given identity/capabilities. It
// does not open anything — device enumeration and fd ownership are an
// external collaborator's job; the embedder hands the engine an
// already-opened device description.
func NewDevice(ident Identity, caps Capability, wheel *timer.Wheel, log Logger) *Device {
	if log == nil {
		log = nopLogger{}
	}
	d := &Device{
		Ident:        ident,
		Caps:         caps,
		DPI:          defaultMouseDPI,
		absSeatSlot:  -1,
		Filter:       accel.NewLinear(),
		synDropLimit: ratelimit.New(30*time.Second, 5),
		log:          log,
		timers:       wheel,
		userConfig:   DefaultDeviceConfig(),
	}
	for i := range d.mt.slots {
		d.mt.slots[i].SeatSlot = -1
	}
	d.userMatrix = matrix.Identity()
	d.defaultMatrix = matrix.Identity()
	d.effectiveMatrix = matrix.Identity()
	return d
}

// Configure applies cfg. It does not read cfg.TapEnabled: tap-to-click is
// not switched on or off by configuration, a TouchpadDispatch runs its tap
// FSM whatever the value, and TapDefault's rule is not applied here either.
// The very first call bootstraps the left-handed/scroll-method
// state directly rather than going through the gated want/current dance —
// evdev_init_button_scroll seeds the device's initial button-scroll state
// the same way, since there is no held button yet to gate against and no
// stale current value a first press could observe.
func (d *Device) Configure(cfg DeviceConfig) {
	d.userConfig = cfg
	d.cfg.wantLeftHanded(cfg.LeftHandedEnabled)
	d.cfg.wantScrollMethod(cfg.ScrollMethodWanted, cfg.ScrollButton)
	if !d.configured {
		d.cfg.leftHandedCurrent = cfg.LeftHandedEnabled
		d.cfg.scrollMethodCurrent = cfg.ScrollMethodWanted
		d.cfg.scrollButtonCurrent = cfg.ScrollButton
		d.configured = true
	}
	d.scroll.naturalScroll = cfg.NaturalScrollEnabled
	d.Filter.SetSpeed(cfg.AccelSpeed)
	d.SetCalibration(cfg.Calibration)
	if cfg.SendEventsMode == SendEventsDisabled {
		d.Suspend(0)
	}
}

// TapDefault reports the tap-enabled default for this device: true iff it
// never advertises BTN_LEFT, the signal that it has no physical click.
func (d *Device) TapDefault() bool {
	return !d.hasBtnLeft
}

// DeclareHasButton records that the device advertises BTN_LEFT in its
// capability descriptor. Call it before Configure so TapDefault reflects
// the hardware rather than the engine's runtime press state.
func (d *Device) DeclareHasButton() {
	d.hasBtnLeft = true
}
