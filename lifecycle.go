package libinput

import "time"

// Suspend marks the device suspended: every currently-down key/button is
// synthetically released, preserving the client's view of "no button is
// down", then the dispatch's Suspend hook runs so e.g. the tap FSM can
// release its own synthetic state and land in DEAD/IDLE.
func (d *Device) Suspend(now time.Duration) {
	if d.suspended {
		return
	}
	d.suspended = true

	var down []uint16
	d.keys.forEachDown(func(code uint16) { down = append(down, code) })
	for _, code := range down {
		d.releaseKeyOrButton(now, code)
	}

	if d.Dispatch != nil {
		d.Dispatch.Suspend(d, now)
	}
}

// Resume clears the suspension flag and notifies the dispatch, unless the
// device was removed while suspended.
func (d *Device) Resume(now time.Duration) {
	if d.removed {
		return
	}
	if !d.suspended {
		return
	}
	d.suspended = false
	if d.Dispatch != nil {
		d.Dispatch.Resume(d, now)
	}
}

// Remove marks the device removed and releases any seat slots it still
// owns, so the seat's bitmap invariant holds even if the driver never sent
// a matching touch-up.
func (d *Device) Remove(now time.Duration) {
	if d.removed {
		return
	}
	d.removed = true
	d.releaseAllSeatSlots(now)
	if d.Dispatch != nil {
		d.Dispatch.Remove(d)
	}
}

func (d *Device) releaseAllSeatSlots(now time.Duration) {
	for i := range d.mt.slots {
		if s := d.mt.slots[i].SeatSlot; s != -1 {
			d.mt.slots[i].SeatSlot = -1
			d.Seat.releaseSlot(s)
			if d.Sink != nil {
				d.Sink.TouchUp(now, i, s)
			}
		}
	}
	if d.absSeatSlot != -1 {
		s := d.absSeatSlot
		d.absSeatSlot = -1
		d.Seat.releaseSlot(s)
		if d.Sink != nil {
			d.Sink.TouchUp(now, -1, s)
		}
	}
}

// releaseKeyOrButton synthesizes a release for code regardless of current
// hardware state, routing through the same notify path as a real event so
// 0/1-edge semantics and the scroll/left-handed gate still apply.
func (d *Device) releaseKeyOrButton(now time.Duration, code uint16) {
	switch classifyKey(code) {
	case keyTypeKey:
		d.notifyKey(now, code, false)
	case keyTypeButton:
		d.notifyButton(now, code, false)
	}
}
