package libinput

import "github.com/kwm81/libinput/internal/matrix"

// ScrollMethod selects the scroll scheme active on a device.
type ScrollMethod int

const (
	ScrollNone ScrollMethod = iota
	ScrollTwoFinger
	ScrollEdge
	ScrollOnButton
)

// SendEventsMode toggles whether a device is suspended for event
// generation purposes.
type SendEventsMode int

const (
	SendEventsEnabled SendEventsMode = iota
	SendEventsDisabled
)

// DeviceConfig is the typed configuration surface the engine receives
// per-device. In its zero value every toggle is off and every number is
// neutral, but Calibration is the all-zero matrix, which maps every
// coordinate to (0, 0); DefaultDeviceConfig is the usable default.
// TapEnabled is carried here but Device.Configure does not apply it.
type DeviceConfig struct {
	TapEnabled           bool
	NaturalScrollEnabled bool
	LeftHandedEnabled    bool
	ScrollMethodWanted   ScrollMethod
	ScrollButton         uint16
	SendEventsMode       SendEventsMode
	AccelSpeed           float64 // [-1, 1]
	Calibration          matrix.Matrix
}

// DefaultDeviceConfig returns the zero-value settings described above,
// with an identity calibration matrix.
func DefaultDeviceConfig() DeviceConfig {
	return DeviceConfig{Calibration: matrix.Identity()}
}

// configState is the device's live configuration-mutation gating state:
// wanted values are requested asynchronously and applied only when no
// hardware button is currently down, checked on every button release.
type configState struct {
	leftHandedCurrent bool
	leftHandedWanted  bool

	scrollMethodCurrent ScrollMethod
	scrollMethodWanted  ScrollMethod
	scrollButtonCurrent uint16
	scrollButtonWanted  uint16
}

// wantLeftHanded requests a left-handed change; it is applied the next
// time maybeApplyGatedConfig runs with no button down.
func (c *configState) wantLeftHanded(v bool) {
	c.leftHandedWanted = v
}

// wantScrollMethod requests a scroll-method/button change.
func (c *configState) wantScrollMethod(method ScrollMethod, button uint16) {
	c.scrollMethodWanted = method
	c.scrollButtonWanted = button
}

// maybeApplyGatedConfig applies any pending wanted values if anyButtonDown
// is false, returning whether anything changed.
func (c *configState) maybeApplyGatedConfig(anyButtonDown bool) (changed bool) {
	if anyButtonDown {
		return false
	}
	if c.leftHandedCurrent != c.leftHandedWanted {
		c.leftHandedCurrent = c.leftHandedWanted
		changed = true
	}
	if c.scrollMethodCurrent != c.scrollMethodWanted || c.scrollButtonCurrent != c.scrollButtonWanted {
		c.scrollMethodCurrent = c.scrollMethodWanted
		c.scrollButtonCurrent = c.scrollButtonWanted
		changed = true
	}
	return changed
}

// effectiveButton swaps LEFT/RIGHT when left-handed mode is in effect.
func (c *configState) effectiveButton(code uint16) uint16 {
	if !c.leftHandedCurrent {
		return code
	}
	switch code {
	case BtnLeft:
		return BtnRight
	case BtnRight:
		return BtnLeft
	default:
		return code
	}
}
