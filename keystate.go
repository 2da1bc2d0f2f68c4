package libinput

// keyState tracks, per evdev key/button code, whether hardware currently
// reports it down and how many distinct "down" contributions are
// outstanding.
type keyState struct {
	hwDown [keyCnt]bool
	counts [keyCnt]int
}

// isDown reports whether hardware currently reports code as pressed.
func (k *keyState) isDown(code uint16) bool {
	if int(code) >= keyCnt {
		return false
	}
	return k.hwDown[code]
}

// update applies a press/release transition for code, returning the
// resulting down-count and whether the hardware-down bit changed (used to
// drive hw_set_key_down in the original pipeline). A release for a code
// not currently marked down, or a press for a code already marked down, is
// dropped before the count is touched, the same guard evdev_process_key
// applies, so one hardware release always brings a code back to zero.
func (k *keyState) update(code uint16, pressed bool, bug Logger) (count int, applied bool) {
	if int(code) >= keyCnt {
		return 0, false
	}

	if pressed == k.hwDown[code] {
		return k.counts[code], false
	}

	k.hwDown[code] = pressed

	if pressed {
		k.counts[code]++
	} else if k.counts[code] > 0 {
		k.counts[code]--
	}

	if k.counts[code] > 32 && bug != nil {
		bug.Bug("key count for code %d reached abnormal value %d", code, k.counts[code])
	}

	return k.counts[code], true
}

// count returns the current press-count for code.
func (k *keyState) count(code uint16) int {
	if int(code) >= keyCnt {
		return 0
	}
	return k.counts[code]
}

// anyButtonDown reports whether any pointer button in [BTN_LEFT,
// BTN_JOYSTICK) is currently down, used to gate configuration changes.
func (k *keyState) anyButtonDown() bool {
	const btnJoystick = 0x120
	for code := BtnLeft; code < btnJoystick; code++ {
		if int(code) < keyCnt && k.hwDown[code] {
			return true
		}
	}
	return false
}

// forEachDown calls fn for every code currently marked down, used to
// synthesize releases on suspend.
func (k *keyState) forEachDown(fn func(code uint16)) {
	for code := 0; code < keyCnt; code++ {
		if k.hwDown[code] {
			fn(uint16(code))
		}
	}
}
