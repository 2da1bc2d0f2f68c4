package libinput

import (
	"testing"
	"time"

	"github.com/kwm81/libinput/internal/timer"
)

type motionRecordingSink struct {
	DiscardSink
	motions []struct{ dx, dy float64 }
	keys    []struct {
		code  uint16
		state ButtonState
	}
}

func (s *motionRecordingSink) PointerMotion(_ time.Duration, dx, dy, _, _ float64) {
	s.motions = append(s.motions, struct{ dx, dy float64 }{dx, dy})
}

func (s *motionRecordingSink) KeyboardKey(_ time.Duration, code uint16, state ButtonState) {
	s.keys = append(s.keys, struct {
		code  uint16
		state ButtonState
	}{code, state})
}

func TestRelativeMotionFlushesOnSynReport(t *testing.T) {
	d := NewDevice(Identity{Name: "mouse"}, CapPointer, nil, nil)
	sink := &motionRecordingSink{}
	d.Sink = sink

	d.Process(RawEvent{Type: EvRel, Code: RelX, Value: 5})
	d.Process(RawEvent{Type: EvRel, Code: RelY, Value: -3})
	if len(sink.motions) != 0 {
		t.Fatalf("motion emitted before SYN_REPORT: %+v", sink.motions)
	}

	d.Process(RawEvent{Type: EvSyn, Code: SynReport})
	if len(sink.motions) != 1 {
		t.Fatalf("motions after SYN_REPORT = %+v; want exactly one flush", sink.motions)
	}
	if sink.motions[0].dx != 5 || sink.motions[0].dy != -3 {
		t.Errorf("motion = %+v; want dx=5 dy=-3 at default DPI/speed", sink.motions[0])
	}
}

func TestKeyEdgeTriggeredNotification(t *testing.T) {
	d := NewDevice(Identity{Name: "kbd"}, CapKeyboard, nil, nil)
	sink := &motionRecordingSink{}
	d.Sink = sink

	const key = uint16(30) // within the keyboard key range

	d.Process(RawEvent{Type: EvKey, Code: key, Value: 1})
	d.Process(RawEvent{Type: EvKey, Code: key, Value: 1}) // duplicate press, no edge
	if len(sink.keys) != 1 {
		t.Fatalf("keys after duplicate press = %+v; want exactly one press notification", sink.keys)
	}
	if sink.keys[0].state != StatePressed {
		t.Errorf("first key event state = %v; want StatePressed", sink.keys[0].state)
	}

	d.Process(RawEvent{Type: EvKey, Code: key, Value: 0})
	if len(sink.keys) != 2 || sink.keys[1].state != StateReleased {
		t.Fatalf("keys after release = %+v; want a second StateReleased entry", sink.keys)
	}

	// A release with no matching press must be dropped outright.
	d.Process(RawEvent{Type: EvKey, Code: key, Value: 0})
	if len(sink.keys) != 2 {
		t.Errorf("keys after a spurious release = %+v; want no new entry", sink.keys)
	}
}

func TestKeyAutorepeatIsDiscarded(t *testing.T) {
	d := NewDevice(Identity{Name: "kbd"}, CapKeyboard, nil, nil)
	sink := &motionRecordingSink{}
	d.Sink = sink

	const key = uint16(30)
	d.Process(RawEvent{Type: EvKey, Code: key, Value: 1})
	d.Process(RawEvent{Type: EvKey, Code: key, Value: 2}) // autorepeat
	if len(sink.keys) != 1 {
		t.Errorf("keys after autorepeat = %+v; want still just the original press", sink.keys)
	}
}

func TestSuspendSynthesizesReleaseForDownKeys(t *testing.T) {
	d := NewDevice(Identity{Name: "kbd"}, CapKeyboard, nil, nil)
	sink := &motionRecordingSink{}
	d.Sink = sink

	const key = uint16(30)
	d.Process(RawEvent{Type: EvKey, Code: key, Value: 1})
	if len(sink.keys) != 1 {
		t.Fatalf("setup: keys = %+v; want one press", sink.keys)
	}

	d.Suspend(0)
	if len(sink.keys) != 2 || sink.keys[1].state != StateReleased {
		t.Fatalf("keys after Suspend = %+v; want a synthesized release", sink.keys)
	}

	// While suspended, further events are ignored entirely.
	d.Process(RawEvent{Type: EvKey, Code: key, Value: 1})
	if len(sink.keys) != 2 {
		t.Errorf("keys after a press while suspended = %+v; want no new entry", sink.keys)
	}
}

func TestSynDroppedRateLimitsLogging(t *testing.T) {
	var bugs, infos int
	logger := &countingLogger{bugFn: func() { bugs++ }, infoFn: func() { infos++ }}

	d := NewDevice(Identity{Name: "mouse"}, CapPointer, nil, logger)
	sink := &motionRecordingSink{}
	d.Sink = sink

	for i := 0; i < 8; i++ {
		d.Process(RawEvent{Type: EvSyn, Code: SynDropped, Timestamp: time.Duration(i) * time.Millisecond})
	}

	if infos == 0 {
		t.Errorf("no Info-level logging occurred across repeated SYN_DROPPED bursts")
	}
	if infos > 5 {
		t.Errorf("Info-level messages = %d for 8 SYN_DROPPED events within 30s; want at most 5", infos)
	}
}

type countingLogger struct {
	bugFn, infoFn func()
}

func (l *countingLogger) Bug(string, ...any) {
	if l.bugFn != nil {
		l.bugFn()
	}
}
func (l *countingLogger) Info(string, ...any) {
	if l.infoFn != nil {
		l.infoFn()
	}
}
func (l *countingLogger) Debug(string, ...any) {}

func TestScrollOnButtonActivatesAfterTimeout(t *testing.T) {
	wheel := timer.New()
	d := NewDevice(Identity{Name: "mouse"}, CapPointer, wheel, nil)
	sink := &recordingSink{}
	d.Sink = sink

	cfg := DefaultDeviceConfig()
	cfg.ScrollMethodWanted = ScrollOnButton
	cfg.ScrollButton = BtnMiddle
	d.Configure(cfg)
	// Configure's first call already set the current scroll method and
	// button; the gated apply a button release would run finds nothing
	// pending here and changes nothing.
	d.cfg.maybeApplyGatedConfig(false)

	d.Process(RawEvent{Type: EvKey, Code: BtnMiddle, Value: 1, Timestamp: 0})
	if d.scroll.active {
		t.Fatalf("scroll active immediately on button-down; want only after the activation timeout")
	}

	wheel.Advance(time.Unix(0, int64(buttonScrollTimeout+10*time.Millisecond)))
	if !d.scroll.active {
		t.Fatalf("scroll not active after the button-scroll activation timeout fired")
	}

	d.Process(RawEvent{Type: EvRel, Code: RelY, Value: 10, Timestamp: buttonScrollTimeout + 20*time.Millisecond})
	d.Process(RawEvent{Type: EvSyn, Code: SynReport, Timestamp: buttonScrollTimeout + 20*time.Millisecond})
	if len(sink.axisEvents) == 0 {
		t.Errorf("no axis events emitted once scroll-on-button is active and the threshold is crossed")
	}
}
