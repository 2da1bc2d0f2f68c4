package libinput

import "testing"

func TestTapSingleFingerTap(t *testing.T) {
	f := &tapFSM{}

	act := f.handle(evTouch, 1, true)
	if f.state != tapTouch || act.timer != timerTap {
		t.Fatalf("after touch: state=%v timer=%v; want tapTouch, timerTap", f.state, act.timer)
	}

	act = f.handle(evRelease, 0, true)
	if f.state != tapTapped {
		t.Fatalf("after release: state=%v; want tapTapped", f.state)
	}
	if act.pressButton != BtnLeft {
		t.Errorf("pressButton = %#x; want BtnLeft", act.pressButton)
	}

	act = f.handle(evTimeout, 0, true)
	if f.state != tapIdle {
		t.Fatalf("after tap timeout: state=%v; want tapIdle", f.state)
	}
	if act.releaseButton != BtnLeft {
		t.Errorf("releaseButton = %#x; want BtnLeft", act.releaseButton)
	}
}

func TestTapTwoFingerTapClicksRight(t *testing.T) {
	f := &tapFSM{}

	f.handle(evTouch, 1, true)
	f.handle(evTouch, 2, true)

	// The first finger to lift settles the FSM into HOLD immediately and
	// clicks atomically, regardless of the second finger still being down.
	act := f.handle(evRelease, 1, true)
	if f.state != tapHold {
		t.Fatalf("releasing one of two fingers: state=%v; want tapHold", f.state)
	}
	if act.pressButton != BtnRight || act.releaseButton != BtnRight {
		t.Errorf("action = %+v; want an atomic BtnRight press+release", act)
	}

	// The remaining finger lifting off just drains HOLD back to IDLE with
	// no further button activity — the click already happened.
	act = f.handle(evRelease, 0, true)
	if f.state != tapIdle {
		t.Fatalf("after the last finger releases: state=%v; want tapIdle", f.state)
	}
	if act.pressButton != 0 || act.releaseButton != 0 {
		t.Errorf("action = %+v; want no button activity, the click already fired", act)
	}
}

func TestTapTwoFingerReleaseDisqualifiedByMotionEmitsNoClick(t *testing.T) {
	f := &tapFSM{}

	f.handle(evTouch, 1, true)
	f.handle(evTouch, 2, true)

	// The releasing touch itself exceeded the motion threshold before
	// lifting, so it is no longer a qualified tap touch even though the
	// FSM state machine reaches the same HOLD transition.
	act := f.handle(evRelease, 1, false)
	if f.state != tapHold {
		t.Fatalf("state=%v; want tapHold regardless of qualification", f.state)
	}
	if act.pressButton != 0 || act.releaseButton != 0 {
		t.Errorf("action = %+v; want no button activity for a disqualified release", act)
	}
}

func TestTapThreeFingerTapClicksMiddle(t *testing.T) {
	f := &tapFSM{}

	f.handle(evTouch, 1, true)
	f.handle(evTouch, 2, true)
	f.handle(evTouch, 3, true)

	act := f.handle(evRelease, 2, true)
	if f.state != tapTouch2Hold {
		t.Fatalf("releasing one of three fingers: state=%v; want tapTouch2Hold", f.state)
	}
	if act.pressButton != BtnMiddle || act.releaseButton != BtnMiddle {
		t.Errorf("action = %+v; want an atomic BtnMiddle press+release", act)
	}

	act = f.handle(evRelease, 1, true)
	if f.state != tapHold {
		t.Fatalf("releasing the second finger: state=%v; want tapHold", f.state)
	}
	if act.pressButton != 0 || act.releaseButton != 0 {
		t.Errorf("action = %+v; want no further button activity", act)
	}

	act = f.handle(evRelease, 0, true)
	if f.state != tapIdle {
		t.Fatalf("releasing the last finger: state=%v; want tapIdle", f.state)
	}
}

func TestTapMotionCancelsTap(t *testing.T) {
	f := &tapFSM{}

	f.handle(evTouch, 1, true)
	act := f.handle(evMotion, 1, true)
	if f.state != tapHold {
		t.Fatalf("after motion: state=%v; want tapHold", f.state)
	}
	if act.timer != timerCancel {
		t.Errorf("timer action = %v; want timerCancel once the touch disqualifies as a tap", act.timer)
	}

	act = f.handle(evRelease, 0, true)
	if f.state != tapIdle {
		t.Fatalf("after releasing a disqualified touch: state=%v; want tapIdle", f.state)
	}
	if act.pressButton != 0 {
		t.Errorf("pressButton = %#x; want 0, a disqualified touch never clicks", act.pressButton)
	}
}

func TestTapAndDragHoldsButtonThroughMotion(t *testing.T) {
	f := &tapFSM{}

	f.handle(evTouch, 1, true)
	f.handle(evRelease, 0, true) // tapped, button pressed
	f.handle(evTouch, 1, true)   // -> tapDraggingOrDoubletap
	if f.state != tapDraggingOrDoubletap {
		t.Fatalf("after second touch within drag window: state=%v; want tapDraggingOrDoubletap", f.state)
	}

	act := f.handle(evMotion, 1, true)
	if f.state != tapDragging {
		t.Fatalf("after motion while ambiguous: state=%v; want tapDragging", f.state)
	}
	if act.releaseButton != 0 {
		t.Errorf("releaseButton = %#x during a confirmed drag; want 0, the button stays held", act.releaseButton)
	}

	act = f.handle(evRelease, 0, true)
	if f.state != tapDraggingWait {
		t.Fatalf("after releasing the drag finger: state=%v; want tapDraggingWait", f.state)
	}

	act = f.handle(evTimeout, 0, true)
	if f.state != tapIdle {
		t.Fatalf("after the drag-wait timeout: state=%v; want tapIdle", f.state)
	}
	if act.releaseButton != BtnLeft {
		t.Errorf("releaseButton = %#x; want BtnLeft to finally release the held drag button", act.releaseButton)
	}
}

func TestTapDoubleTapWithoutDragRetaps(t *testing.T) {
	f := &tapFSM{}

	f.handle(evTouch, 1, true)
	f.handle(evRelease, 0, true)        // tapped
	f.handle(evTouch, 1, true)          // tapDraggingOrDoubletap
	act := f.handle(evRelease, 0, true) // second tap completes before any motion
	if f.state != tapMultitap {
		t.Fatalf("after quick second tap: state=%v; want tapMultitap", f.state)
	}
	if act.releaseButton != BtnLeft || act.pressButton != BtnLeft {
		t.Errorf("action = %+v; want a release of the first tap's button followed by a fresh press", act)
	}
}

func TestTapPhysicalButtonKillsFSMUntilAllFingersRelease(t *testing.T) {
	f := &tapFSM{}

	f.handle(evTouch, 1, true)
	f.handle(evTouch, 2, true)
	act := f.handle(evButton, 2, true)
	if f.state != tapDead {
		t.Fatalf("after a physical click mid-touch: state=%v; want tapDead", f.state)
	}
	if act.timer != timerCancel {
		t.Errorf("timer action = %v; want timerCancel", act.timer)
	}

	f.handle(evRelease, 1, true)
	if f.state != tapDead {
		t.Fatalf("state=%v after releasing one of two fingers; want still tapDead", f.state)
	}

	f.handle(evRelease, 0, true)
	if f.state != tapIdle {
		t.Fatalf("state=%v after releasing the last finger; want tapIdle", f.state)
	}
}

func TestTapButtonForFingerCount(t *testing.T) {
	cases := []struct {
		fingers int
		want    uint16
	}{
		{1, BtnLeft},
		{2, BtnRight},
		{3, BtnMiddle},
		{4, BtnLeft},
	}
	for _, tc := range cases {
		if got := tapButtonFor(tc.fingers); got != tc.want {
			t.Errorf("tapButtonFor(%d) = %#x; want %#x", tc.fingers, got, tc.want)
		}
	}
}
