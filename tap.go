package libinput

import "time"

// tapState is the tap-to-click finite state machine's state, modeled on
// evdev-mt-touchpad-tap.c's tp_tap_state.
type tapState int

const (
	tapIdle tapState = iota
	tapTouch
	tapTouch2
	tapTouch3
	tapHold
	tapTouch2Hold
	tapTouch3Hold
	tapTapped
	tapDragging
	tapDraggingWait
	tapDraggingOrDoubletap
	tapDragging2
	tapMultitap
	tapMultitapDown
	tapDead
)

// tapEvent is the FSM's input alphabet.
type tapEvent int

const (
	evTouch tapEvent = iota
	evMotion
	evRelease
	evButton
	evTimeout
)

const (
	tapTimeout     = 180 * time.Millisecond
	tapDragTimeout = 500 * time.Millisecond
)

// tapTimerRequest tells the caller what, if anything, to do with the
// single timer slot a tapFSM owns. Every state that's awaiting a timeout
// rearms the same slot on entry; states that aren't cancel it, so a stale
// callback from a state the FSM has already left can never fire.
type tapTimerRequest int

const (
	timerNone tapTimerRequest = iota
	timerTap
	timerDrag
	timerCancel
)

// tapAction is everything a transition may ask the caller to do: emit a
// synthetic button press/release, and/or rearm or cancel the timer.
type tapAction struct {
	pressButton   uint16
	releaseButton uint16
	timer         tapTimerRequest
}

// tapFSM is the pure state machine: (state, event, finger count) in,
// (new state, action) out. It has no knowledge of Device, Sink, or
// timer.Wheel, which makes every transition testable without a fake
// event source.
type tapFSM struct {
	state     tapState
	tapButton uint16 // the button currently held by a tap/drag, 0 if none
}

// tapButtonFor maps simultaneous finger count to the conventional
// multi-finger tap button: 1 finger left-clicks, 2 right-clicks, 3
// middle-clicks.
func tapButtonFor(fingers int) uint16 {
	switch fingers {
	case 2:
		return BtnRight
	case 3:
		return BtnMiddle
	default:
		return BtnLeft
	}
}

// handle advances the FSM on ev, where fingers is the number of fingers
// down immediately after ev (0 after the last RELEASE, etc), and
// qualified reports whether the specific touch generating a RELEASE was
// never demoted to DEAD by exceeding the tap motion threshold. qualified
// only matters to TOUCH_2/TOUCH_3's RELEASE transition, which emits an
// atomic press+release for the touch that just lifted off regardless of
// any other finger still down.
func (f *tapFSM) handle(ev tapEvent, fingers int, qualified bool) tapAction {
	var act tapAction

	switch f.state {
	case tapIdle:
		if ev == evTouch {
			f.state = tapTouch
			act.timer = timerTap
		}

	case tapTouch:
		switch ev {
		case evTouch:
			f.state = tapTouch2
			act.timer = timerTap
		case evRelease:
			f.state = tapTapped
			f.tapButton = tapButtonFor(1)
			act.pressButton = f.tapButton
			act.timer = timerTap
		case evMotion, evTimeout:
			f.state = tapHold
			act.timer = timerCancel
		case evButton:
			f.state = tapDead
			act.timer = timerCancel
		}

	case tapTouch2:
		switch ev {
		case evTouch:
			f.state = tapTouch3
			act.timer = timerTap
		case evRelease:
			// The releasing touch settles straight into HOLD the
			// instant it lifts, regardless of how many fingers
			// remain down; it only clicks if it was never
			// disqualified by motion in the meantime.
			f.state = tapHold
			if qualified {
				act.pressButton = tapButtonFor(2)
				act.releaseButton = tapButtonFor(2)
			}
			act.timer = timerCancel
		case evMotion, evTimeout:
			f.state = tapTouch2Hold
			act.timer = timerCancel
		case evButton:
			f.state = tapDead
			act.timer = timerCancel
		}

	case tapTouch3:
		switch ev {
		case evRelease:
			f.state = tapTouch2Hold
			if qualified {
				act.pressButton = tapButtonFor(3)
				act.releaseButton = tapButtonFor(3)
			}
			act.timer = timerCancel
		case evMotion, evTimeout:
			f.state = tapTouch3Hold
			act.timer = timerCancel
		case evButton:
			f.state = tapDead
			act.timer = timerCancel
		}

	case tapHold, tapTouch2Hold, tapTouch3Hold:
		switch ev {
		case evTouch:
			f.state = holdUp(f.state)
		case evRelease:
			if fingers == 0 {
				f.state = tapIdle
			} else {
				f.state = holdDown(f.state)
			}
		case evButton:
			f.state = tapDead
		}

	case tapTapped:
		switch ev {
		case evTouch:
			f.state = tapDraggingOrDoubletap
			act.timer = timerDrag
		case evTimeout:
			act.releaseButton = f.tapButton
			f.tapButton = 0
			f.state = tapIdle
		case evButton:
			act.releaseButton = f.tapButton
			f.tapButton = 0
			f.state = tapDead
			act.timer = timerCancel
		}

	case tapDraggingOrDoubletap:
		switch ev {
		case evRelease:
			act.releaseButton = f.tapButton
			f.tapButton = tapButtonFor(1)
			act.pressButton = f.tapButton
			f.state = tapMultitap
			act.timer = timerTap
		case evMotion, evTimeout:
			f.state = tapDragging
			act.timer = timerCancel
		case evButton:
			act.releaseButton = f.tapButton
			f.tapButton = 0
			f.state = tapDead
			act.timer = timerCancel
		}

	case tapDragging:
		switch ev {
		case evRelease:
			f.state = tapDraggingWait
			act.timer = timerDrag
		case evTouch:
			f.state = tapDragging2
		case evButton:
			act.releaseButton = f.tapButton
			f.tapButton = 0
			f.state = tapDead
		}

	case tapDraggingWait:
		switch ev {
		case evTouch:
			f.state = tapDragging
			act.timer = timerCancel
		case evTimeout:
			act.releaseButton = f.tapButton
			f.tapButton = 0
			f.state = tapIdle
		case evButton:
			act.releaseButton = f.tapButton
			f.tapButton = 0
			f.state = tapDead
			act.timer = timerCancel
		}

	case tapDragging2:
		switch ev {
		case evRelease:
			if fingers == 0 {
				f.state = tapDraggingWait
				act.timer = timerDrag
			} else {
				f.state = tapDragging
			}
		case evButton:
			act.releaseButton = f.tapButton
			f.tapButton = 0
			f.state = tapDead
		}

	case tapMultitap:
		switch ev {
		case evTouch:
			f.state = tapMultitapDown
			act.timer = timerDrag
		case evTimeout:
			act.releaseButton = f.tapButton
			f.tapButton = 0
			f.state = tapIdle
		case evButton:
			act.releaseButton = f.tapButton
			f.tapButton = 0
			f.state = tapDead
			act.timer = timerCancel
		}

	case tapMultitapDown:
		switch ev {
		case evRelease:
			act.releaseButton = f.tapButton
			f.tapButton = tapButtonFor(1)
			act.pressButton = f.tapButton
			f.state = tapMultitap
			act.timer = timerTap
		case evMotion, evTimeout:
			f.state = tapDragging
			act.timer = timerCancel
		case evButton:
			act.releaseButton = f.tapButton
			f.tapButton = 0
			f.state = tapDead
			act.timer = timerCancel
		}

	case tapDead:
		if ev == evRelease && fingers == 0 {
			f.state = tapIdle
		}
	}

	return act
}

func holdUp(s tapState) tapState {
	switch s {
	case tapHold:
		return tapTouch2Hold
	case tapTouch2Hold:
		return tapTouch3Hold
	default:
		return s
	}
}

func holdDown(s tapState) tapState {
	switch s {
	case tapTouch3Hold:
		return tapTouch2Hold
	case tapTouch2Hold:
		return tapHold
	default:
		return s
	}
}
