package libinput

import "time"

// Sink is the set of typed client emission callbacks an embedder
// implements to receive normalized pointer/keyboard/touch events. The
// engine never buffers these — each is invoked synchronously from within
// the SYN_REPORT flush (or the relevant timer callback) that produces it.
type Sink interface {
	PointerMotion(t time.Duration, dx, dy, dxUnaccel, dyUnaccel float64)
	PointerMotionAbsolute(t time.Duration, x, y int32)
	PointerButton(t time.Duration, button uint16, state ButtonState)
	PointerAxis(t time.Duration, axis Axis, value float64)
	KeyboardKey(t time.Duration, code uint16, state ButtonState)
	TouchDown(t time.Duration, deviceSlot, seatSlot int, x, y int32)
	TouchMotion(t time.Duration, deviceSlot, seatSlot int, x, y int32)
	TouchUp(t time.Duration, deviceSlot, seatSlot int)
	TouchFrame(t time.Duration)
}

// DiscardSink implements Sink by doing nothing; useful as an embed target
// for callers who only care about a subset of callbacks.
type DiscardSink struct{}

func (DiscardSink) PointerMotion(time.Duration, float64, float64, float64, float64) {}
func (DiscardSink) PointerMotionAbsolute(time.Duration, int32, int32) {}
func (DiscardSink) PointerButton(time.Duration, uint16, ButtonState) {}
func (DiscardSink) PointerAxis(time.Duration, Axis, float64) {}
func (DiscardSink) KeyboardKey(time.Duration, uint16, ButtonState) {}
func (DiscardSink) TouchDown(time.Duration, int, int, int32, int32) {}
func (DiscardSink) TouchMotion(time.Duration, int, int, int32, int32) {}
func (DiscardSink) TouchUp(time.Duration, int, int) {}
func (DiscardSink) TouchFrame(time.Duration) {}
