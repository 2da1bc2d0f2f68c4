package libinput

import (
	"time"

	"github.com/kwm81/libinput/internal/timer"
)

// TouchpadDispatch runs the tap-to-click FSM on top of the shared
// ingestion pipeline. One instance is bound to exactly one Device (via
// TagDevice/the first Process call), matching how evdev-mt-touchpad.c's
// tp_dispatch owns one touchpad's gesture state.
type TouchpadDispatch struct {
	fsm     tapFSM
	touches [maxMTSlots + 1]touchRec // index maxMTSlots is the single-touch fallback slot
	down    int                      // fingers currently down
	timerH  timer.Handle
	tags    DeviceTags
	inFrame bool // preFrame has run for the frame in progress
}

// NewTouchpadDispatch returns a fresh, idle touchpad dispatch.
func NewTouchpadDispatch() *TouchpadDispatch {
	return &TouchpadDispatch{}
}

func (t *TouchpadDispatch) TagDevice(dev *Device, tags DeviceTags) {
	t.tags = tags
}

func (t *TouchpadDispatch) DeviceAdded(dev *Device)   {}
func (t *TouchpadDispatch) DeviceRemoved(dev *Device) {}

func (t *TouchpadDispatch) Process(dev *Device, ev RawEvent, now time.Duration) {
	if !t.inFrame {
		t.preFrame(dev)
		t.inFrame = true
	}
	switch ev.Type {
	case EvKey:
		if isClickpadButton(ev.Code) {
			dev.ingestEvent(ev)
			if ev.Value != 0 {
				t.apply(dev, t.fsm.handle(evButton, t.down, true), now)
			}
			return
		}
		dev.ingestEvent(ev)

	case EvSyn:
		if ev.Code == SynReport {
			dev.ingestEvent(ev)
			t.postFrame(dev, now)
			t.inFrame = false
			return
		}
		dev.ingestEvent(ev)

	default:
		dev.ingestEvent(ev)
	}
}

// isClickpadButton reports whether code is BTN_LEFT, BTN_RIGHT or
// BTN_MIDDLE. Process feeds a press of any of them to the tap FSM as a
// BUTTON event, besides passing it through as a normal PointerButton; it
// does not tell clickpads apart from touchpads with separate buttons.
func isClickpadButton(code uint16) bool {
	switch code {
	case BtnLeft, BtnRight, BtnMiddle:
		return true
	default:
		return false
	}
}

// preFrame snapshots which logical touch slots are active at the first
// event of a frame, before anything in the frame is flushed (ABS_MT_SLOT
// flushes mid-frame), so postFrame can diff against the post-flush state
// to find what changed.
func (t *TouchpadDispatch) preFrame(dev *Device) {
	for i := 0; i < maxMTSlots; i++ {
		t.touches[i].down = dev.mt.slots[i].SeatSlot != -1
	}
	t.touches[maxMTSlots].down = dev.absSeatSlot != -1
}

// postFrame compares the snapshot taken in preFrame against the
// post-flush device state and drives the FSM with one evTouch/evRelease
// per slot that changed, followed by an evMotion for any still-down slot
// that just crossed the tap motion threshold.
func (t *TouchpadDispatch) postFrame(dev *Device, now time.Duration) {
	for i := 0; i < maxMTSlots; i++ {
		t.diffSlot(dev, i, dev.mt.slots[i].SeatSlot != -1, Point{X: dev.mt.slots[i].X, Y: dev.mt.slots[i].Y}, now)
	}
	t.diffSlot(dev, maxMTSlots, dev.absSeatSlot != -1, Point{X: dev.mt.slots[0].X, Y: dev.mt.slots[0].Y}, now)
}

func (t *TouchpadDispatch) diffSlot(dev *Device, idx int, nowDown bool, pt Point, now time.Duration) {
	rec := &t.touches[idx]
	switch {
	case nowDown && !rec.down:
		rec.down = true
		rec.initial = pt
		rec.exceeded = false
		t.down++
		t.apply(dev, t.fsm.handle(evTouch, t.down, true), now)

	case nowDown && rec.down:
		if rec.checkMotion(dev, pt) {
			t.poisonOtherTouches(idx)
			t.apply(dev, t.fsm.handle(evMotion, t.down, true), now)
		}

	case !nowDown && rec.down:
		qualified := !rec.exceeded
		rec.down = false
		t.down--
		t.apply(dev, t.fsm.handle(evRelease, t.down, qualified), now)
	}
}

// poisonOtherTouches demotes every other touch still down and still
// qualified as a tap to DEAD the instant idx's touch exceeds the motion
// threshold: tp_tap_handle_state's "any touch exceeding the threshold
// turns all touches into DEAD" — a single over-threshold touch poisons
// the whole frame, not just itself.
func (t *TouchpadDispatch) poisonOtherTouches(idx int) {
	for i := range t.touches {
		if i == idx {
			continue
		}
		if t.touches[i].down {
			t.touches[i].exceeded = true
		}
	}
}

// onTimeout is armed as the tap/drag timer callback; it's a no-op if the
// FSM already left the state the timer was armed for, since arming always
// reuses the single timerH slot and a later real event would have either
// rearmed it (cancelling this deadline) or explicitly cancelled it.
func (t *TouchpadDispatch) onTimeout(dev *Device, now time.Duration) {
	t.apply(dev, t.fsm.handle(evTimeout, t.down, true), now)
}

func (t *TouchpadDispatch) apply(dev *Device, act tapAction, now time.Duration) {
	if act.releaseButton != 0 && dev.Sink != nil {
		dev.Sink.PointerButton(now, act.releaseButton, StateReleased)
	}
	if act.pressButton != 0 && dev.Sink != nil {
		dev.Sink.PointerButton(now, act.pressButton, StatePressed)
	}

	switch act.timer {
	case timerTap:
		t.arm(dev, now, tapTimeout)
	case timerDrag:
		t.arm(dev, now, tapDragTimeout)
	case timerCancel:
		if dev.timers != nil {
			dev.timers.Cancel(t.timerH)
		}
	}
}

// arm schedules the FSM's single timer slot for after, relative to the
// engine's monotonic now — converted to the wall-clock time.Time the
// timer.Wheel deals in the same way scroll.go's button-scroll timer is.
func (t *TouchpadDispatch) arm(dev *Device, now, after time.Duration) {
	if dev.timers == nil {
		return
	}
	deadline := durationToTime(now + after)
	t.timerH = dev.timers.Arm(t.timerH, deadline, func(firedAt time.Time) {
		t.onTimeout(dev, durationFromTime(firedAt))
	})
}

func (t *TouchpadDispatch) Suspend(dev *Device, now time.Duration) {
	if dev.timers != nil {
		dev.timers.Cancel(t.timerH)
	}
	if t.fsm.tapButton != 0 && dev.Sink != nil {
		dev.Sink.PointerButton(now, t.fsm.tapButton, StateReleased)
	}
	t.fsm = tapFSM{}
	if t.down > 0 {
		// A finger still down must not complete a tap once events flow
		// again; DEAD drains back to IDLE when the last finger lifts.
		t.fsm.state = tapDead
	}
}

func (t *TouchpadDispatch) Resume(dev *Device, now time.Duration) {}

func (t *TouchpadDispatch) Remove(dev *Device) {
	if dev.timers != nil {
		dev.timers.Cancel(t.timerH)
	}
}

func (t *TouchpadDispatch) Destroy(dev *Device) {}
