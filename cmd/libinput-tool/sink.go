package main

import (
	"fmt"
	"time"

	"github.com/bendahl/uinput"

	libinput "github.com/kwm81/libinput"
)

// uinputSink backs libinput.Sink with real kernel-visible virtual
// devices, replacing the reference driver's hand-rolled ioctl calls with
// the library its own go.mod already names but never calls.
type uinputSink struct {
	mouse    uinput.Mouse
	keyboard uinput.Keyboard
	touchpad uinput.TouchPad

	// lastX/lastY track the touchpad's absolute pointer position, since
	// uinput's TouchPad wants MoveTo(x, y) rather than a delta.
	lastX, lastY int32
}

// newUinputSink creates a virtual mouse, keyboard, and absolute touchpad
// under the given name, sized to the calibrated device's axis bounds.
func newUinputSink(name string, absX, absY libinput.AxisInfo) (*uinputSink, error) {
	mouse, err := uinput.CreateMouse("/dev/uinput", []byte(name+"-mouse"))
	if err != nil {
		return nil, fmt.Errorf("create virtual mouse: %w", err)
	}
	keyboard, err := uinput.CreateKeyboard("/dev/uinput", []byte(name+"-keyboard"))
	if err != nil {
		mouse.Close()
		return nil, fmt.Errorf("create virtual keyboard: %w", err)
	}
	touchpad, err := uinput.CreateTouchPad("/dev/uinput", []byte(name+"-touchpad"),
		int32(absX.Min), int32(absX.Max), int32(absY.Min), int32(absY.Max))
	if err != nil {
		mouse.Close()
		keyboard.Close()
		return nil, fmt.Errorf("create virtual touchpad: %w", err)
	}
	return &uinputSink{mouse: mouse, keyboard: keyboard, touchpad: touchpad}, nil
}

func (s *uinputSink) Close() error {
	var result error
	if err := s.mouse.Close(); err != nil {
		result = err
	}
	if err := s.keyboard.Close(); err != nil {
		result = err
	}
	if err := s.touchpad.Close(); err != nil {
		result = err
	}
	return result
}

func (s *uinputSink) PointerMotion(_ time.Duration, dx, dy, _, _ float64) {
	if dx != 0 {
		s.mouse.MoveX(int32(dx))
	}
	if dy != 0 {
		s.mouse.MoveY(int32(dy))
	}
}

func (s *uinputSink) PointerMotionAbsolute(_ time.Duration, x, y int32) {
	s.lastX, s.lastY = x, y
	s.touchpad.MoveTo(x, y)
}

func (s *uinputSink) PointerButton(_ time.Duration, button uint16, state libinput.ButtonState) {
	key := uinputButtonCode(button)
	if key < 0 {
		return
	}
	if state == libinput.StatePressed {
		s.mouse.KeyDown(key)
	} else {
		s.mouse.KeyUp(key)
	}
}

func (s *uinputSink) PointerAxis(_ time.Duration, axis libinput.Axis, value float64) {
	horizontal := axis == libinput.AxisHorizontal
	s.mouse.Wheel(horizontal, int32(value))
}

func (s *uinputSink) KeyboardKey(_ time.Duration, code uint16, state libinput.ButtonState) {
	if state == libinput.StatePressed {
		s.keyboard.KeyDown(int(code))
	} else {
		s.keyboard.KeyUp(int(code))
	}
}

func (s *uinputSink) TouchDown(_ time.Duration, _, _ int, x, y int32) {
	s.lastX, s.lastY = x, y
	s.touchpad.MoveTo(x, y)
	s.touchpad.TouchDown()
}

func (s *uinputSink) TouchMotion(_ time.Duration, _, _ int, x, y int32) {
	s.lastX, s.lastY = x, y
	s.touchpad.MoveTo(x, y)
}

func (s *uinputSink) TouchUp(_ time.Duration, _, _ int) {
	s.touchpad.TouchUp()
}

func (s *uinputSink) TouchFrame(time.Duration) {}

// uinputButtonCode maps the engine's BTN_* codes onto uinput's exported
// key constants. Unknown codes return -1 and are dropped rather than
// forwarded as a bogus key.
func uinputButtonCode(code uint16) int {
	switch code {
	case libinput.BtnLeft:
		return uinput.BtnLeft
	case libinput.BtnRight:
		return uinput.BtnRight
	case libinput.BtnMiddle:
		return uinput.BtnMiddle
	default:
		return -1
	}
}
