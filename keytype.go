package libinput

// keyType classifies an EV_KEY code the way evdev_process_key's
// get_key_type does: BTN_TOUCH never becomes a keyboard key or pointer
// button event (it drives the single-touch ABS pipeline instead), the
// BTN_TOOL_* finger-count/tool-type indicators are dropped outright since
// they carry no press/release semantics of their own, and the remaining
// ranges split into keyboard keys vs. pointer buttons.
type keyType int

const (
	keyTypeNone keyType = iota
	keyTypeKey
	keyTypeButton
)

func classifyKey(code uint16) keyType {
	switch code {
	case BtnTouch, BtnToolFinger, BtnToolDoubleTap, BtnToolTripleTap, BtnToolPen:
		return keyTypeNone
	}
	switch {
	case code >= keyESC && code <= keyMicMute:
		return keyTypeKey
	case code >= btnMisc && code <= btnGearUp:
		return keyTypeButton
	case code >= keyOk && code <= keyLightsToggle:
		return keyTypeKey
	case code >= btnDPadUp && code <= btnTriggerHappy40:
		return keyTypeButton
	default:
		return keyTypeNone
	}
}
