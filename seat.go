package libinput

import (
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"
)

// maxSeatSlots bounds the cross-device touch-slot bitmap: 32 concurrent
// touch points is already far beyond any real hardware's digitizer count,
// and keeping the bitmap in a single uint32 makes allocate/release O(1)
// without a heap allocation.
const maxSeatSlots = 32

// Seat groups every Device that shares one pointer/keyboard/touch focus —
// typically "everything attached to this session" — and owns the single
// cross-device touch-slot bitmap so two touch digitizers on the same seat
// never hand a client the same slot number.
type Seat struct {
	Name string

	slots   uint32 // bit i set iff seat slot i is in use
	devices map[DeviceID]*Device
	nextID  DeviceID

	LEDs LEDSink
}

// NewSeat constructs an empty seat.
func NewSeat(name string) *Seat {
	return &Seat{
		Name:    name,
		devices: make(map[DeviceID]*Device),
	}
}

// allocateSlot returns the lowest-numbered free seat slot, or -1 if all
// maxSeatSlots are in use.
func (s *Seat) allocateSlot() int {
	for i := 0; i < maxSeatSlots; i++ {
		if s.slots&(1<<uint(i)) == 0 {
			s.slots |= 1 << uint(i)
			return i
		}
	}
	return -1
}

// releaseSlot frees a seat slot previously returned by allocateSlot. Called
// with -1 (already-unallocated) is a no-op, matching the call sites that
// don't pre-check.
func (s *Seat) releaseSlot(slot int) {
	if slot < 0 || slot >= maxSeatSlots {
		return
	}
	s.slots &^= 1 << uint(slot)
}

// AddDevice assigns dev an ID scoped to this seat, registers it in the
// arena-and-index device map (Design Note 9 — avoids a cyclic pointer back
// from Seat into Device), and notifies the dispatch.
func (s *Seat) AddDevice(dev *Device) DeviceID {
	id := s.nextID
	s.nextID++
	dev.ID = id
	dev.Seat = s
	s.devices = mapSetDevice(s.devices, id, dev)
	if dev.Dispatch != nil {
		dev.Dispatch.DeviceAdded(dev)
	}
	return id
}

func mapSetDevice(m map[DeviceID]*Device, id DeviceID, dev *Device) map[DeviceID]*Device {
	if m == nil {
		m = make(map[DeviceID]*Device)
	}
	m[id] = dev
	return m
}

// RemoveDevice marks dev removed, releases any seat slots it holds (with a
// TouchUp for each), notifies its dispatch and drops it from the seat's
// device map. Keys or buttons still held down are not released.
func (s *Seat) RemoveDevice(id DeviceID, now time.Duration) {
	dev, ok := s.devices[id]
	if !ok {
		return
	}
	dev.Remove(now)
	if dev.Dispatch != nil {
		dev.Dispatch.DeviceRemoved(dev)
	}
	delete(s.devices, id)
}

// Device looks up a previously-added device by ID.
func (s *Seat) Device(id DeviceID) (*Device, bool) {
	dev, ok := s.devices[id]
	return dev, ok
}

// Devices returns every device currently registered on the seat. The
// returned slice is a snapshot; callers must not rely on ordering.
func (s *Seat) Devices() []*Device {
	out := make([]*Device, 0, len(s.devices))
	for _, dev := range s.devices {
		out = append(out, dev)
	}
	return out
}

// seatCloser is an optional capability a Sink may implement when it owns
// a resource that needs explicit teardown beyond what Device.Remove
// already does — the CLI tool's virtual uinput devices, for instance.
// Checked with a type assertion rather than folded into Sink itself, so
// embedders with nothing to close aren't forced to add a no-op method.
type seatCloser interface {
	Close() error
}

// Close tears down every device on the seat: releasing seat slots,
// notifying each dispatch, and closing any Sink that implements
// seatCloser. Keys or buttons still held down are not released. Failures are
// aggregated across every device with go-multierror instead of
// abandoning the teardown at the first one, the same non-fatal
// aggregation the CLI tool's own shutdown path uses for its local
// resources.
func (s *Seat) Close(now time.Duration) error {
	var result *multierror.Error
	for id, dev := range s.devices {
		dev.Remove(now)
		if dev.Dispatch != nil {
			dev.Dispatch.DeviceRemoved(dev)
		}
		if c, ok := dev.Sink.(seatCloser); ok {
			if err := c.Close(); err != nil {
				result = multierror.Append(result, fmt.Errorf("device %d (%s): %w", id, dev.Ident.Name, err))
			}
		}
	}
	s.devices = make(map[DeviceID]*Device)
	return result.ErrorOrNil()
}

// SuspendAll suspends every device on the seat the way Device.Suspend
// suspends one: every held key/button is synthetically released and the
// dispatch's own Suspend hook runs. The return type mirrors Close's
// aggregating shape, but Device.Suspend has no fallible step today, so
// this always returns nil; it exists so a future per-device teardown
// hook that can fail has somewhere to report into without changing the
// method's signature again.
func (s *Seat) SuspendAll(now time.Duration) error {
	var result *multierror.Error
	for _, dev := range s.devices {
		dev.Suspend(now)
	}
	return result.ErrorOrNil()
}

// SetLED propagates an LED state change to every device on the seat that
// owns an LED sink, mirroring how a physical keyboard's Caps Lock LED
// follows the seat's keyboard focus rather than any one device.
func (s *Seat) SetLED(state LEDState) {
	s.LEDs = nil
	for _, dev := range s.devices {
		if dev.LEDs != nil {
			dev.LEDs.SetLEDs(state)
		}
	}
}
