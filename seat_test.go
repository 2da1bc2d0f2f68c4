package libinput

import (
	"errors"
	"testing"

	"github.com/hashicorp/go-multierror"
)

func TestSeatAllocatesLowestFreeSlot(t *testing.T) {
	s := NewSeat("default")

	a := s.allocateSlot()
	b := s.allocateSlot()
	if a != 0 || b != 1 {
		t.Fatalf("allocateSlot sequence = %d, %d; want 0, 1", a, b)
	}

	s.releaseSlot(a)
	c := s.allocateSlot()
	if c != 0 {
		t.Errorf("allocateSlot after releasing 0 = %d; want 0 (lowest free bit)", c)
	}
}

func TestSeatSlotsExhausted(t *testing.T) {
	s := NewSeat("default")
	for i := 0; i < maxSeatSlots; i++ {
		if got := s.allocateSlot(); got != i {
			t.Fatalf("allocateSlot() iteration %d = %d; want %d", i, got, i)
		}
	}
	if got := s.allocateSlot(); got != -1 {
		t.Errorf("allocateSlot() with all slots taken = %d; want -1", got)
	}
}

func TestSeatAddRemoveDevice(t *testing.T) {
	s := NewSeat("default")
	d := NewDevice(Identity{Name: "mouse"}, CapPointer, nil, nil)

	id := s.AddDevice(d)
	if got, ok := s.Device(id); !ok || got != d {
		t.Fatalf("Device(%d) = %v, %v; want the added device, true", id, got, ok)
	}
	if len(s.Devices()) != 1 {
		t.Errorf("Devices() length = %d; want 1", len(s.Devices()))
	}

	s.RemoveDevice(id, 0)
	if _, ok := s.Device(id); ok {
		t.Errorf("Device(%d) found after RemoveDevice; want not found", id)
	}
	if !d.removed {
		t.Errorf("device.removed = false after RemoveDevice; want true")
	}
}

func TestSeatRemoveDeviceReleasesSeatSlots(t *testing.T) {
	s := NewSeat("default")
	d := NewDevice(Identity{Name: "touchpad"}, CapPointer|CapTouch|CapToolFinger, nil, nil)
	d.Sink = DiscardSink{}
	id := s.AddDevice(d)

	slot := s.allocateSlot()
	d.mt.slots[0].SeatSlot = slot

	s.RemoveDevice(id, 0)

	if s.allocateSlot() != slot {
		t.Errorf("seat slot %d was not released by RemoveDevice", slot)
	}
}

type closingSink struct {
	DiscardSink
	err error
}

func (s *closingSink) Close() error { return s.err }

func TestSeatCloseAggregatesSinkErrors(t *testing.T) {
	s := NewSeat("default")
	okSink := &closingSink{}
	failSink := &closingSink{err: errors.New("boom")}

	d1 := NewDevice(Identity{Name: "ok"}, CapPointer, nil, nil)
	d1.Sink = okSink
	d2 := NewDevice(Identity{Name: "bad"}, CapPointer, nil, nil)
	d2.Sink = failSink

	s.AddDevice(d1)
	s.AddDevice(d2)

	err := s.Close(0)
	if err == nil {
		t.Fatalf("Close() = nil; want an aggregated error from the failing sink")
	}
	merr, ok := err.(*multierror.Error)
	if !ok {
		t.Fatalf("Close() error type = %T; want *multierror.Error", err)
	}
	if len(merr.Errors) != 1 {
		t.Errorf("aggregated error count = %d; want 1 (only the failing sink)", len(merr.Errors))
	}
	if len(s.Devices()) != 0 {
		t.Errorf("Devices() after Close = %d; want 0", len(s.Devices()))
	}
	if !d1.removed || !d2.removed {
		t.Errorf("removed = %v, %v; want both true even though one sink failed to close", d1.removed, d2.removed)
	}
}

func TestSeatSuspendAllSuspendsEveryDevice(t *testing.T) {
	s := NewSeat("default")
	d1 := NewDevice(Identity{Name: "kbd1"}, CapKeyboard, nil, nil)
	d2 := NewDevice(Identity{Name: "kbd2"}, CapKeyboard, nil, nil)
	s.AddDevice(d1)
	s.AddDevice(d2)

	if err := s.SuspendAll(0); err != nil {
		t.Fatalf("SuspendAll() = %v; want nil", err)
	}
	if !d1.suspended || !d2.suspended {
		t.Errorf("suspended = %v, %v; want both true", d1.suspended, d2.suspended)
	}
}

type fakeLEDSink struct {
	last LEDState
	n    int
}

func (f *fakeLEDSink) SetLEDs(state LEDState) error {
	f.last = state
	f.n++
	return nil
}

func TestSeatSetLEDPropagatesToEveryDevice(t *testing.T) {
	s := NewSeat("default")
	led1, led2 := &fakeLEDSink{}, &fakeLEDSink{}

	d1 := NewDevice(Identity{Name: "kbd1"}, CapKeyboard, nil, nil)
	d1.LEDs = led1
	d2 := NewDevice(Identity{Name: "kbd2"}, CapKeyboard, nil, nil)
	d2.LEDs = led2

	s.AddDevice(d1)
	s.AddDevice(d2)

	s.SetLED(LEDCapsLock)

	if led1.n != 1 || led1.last != LEDCapsLock {
		t.Errorf("led1 = %+v; want one SetLEDs(LEDCapsLock) call", led1)
	}
	if led2.n != 1 || led2.last != LEDCapsLock {
		t.Errorf("led2 = %+v; want one SetLEDs(LEDCapsLock) call", led2)
	}
}
