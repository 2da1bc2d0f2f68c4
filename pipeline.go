package libinput

import (
	"time"

	"github.com/kwm81/libinput/internal/accel"
	"github.com/kwm81/libinput/internal/ratelimit"
)

// notifyKey applies a keyboard key transition, forwarding to the sink
// only on a 0↔1 press-count edge.
func (d *Device) notifyKey(now time.Duration, code uint16, pressed bool) {
	count, applied := d.keys.update(code, pressed, d.log)
	if !applied {
		return
	}
	if (pressed && count == 1) || (!pressed && count == 0) {
		state := StateReleased
		if pressed {
			state = StatePressed
		}
		if d.Sink != nil {
			d.Sink.KeyboardKey(now, code, state)
		}
	}
}

// notifyButton applies a pointer button transition: left-handed swap at
// emission, and scroll-method/left-handed gate check on the release edge.
// When scroll-on-button is active, the configured scroll button is diverted
// to the scroll coordinator by the caller before reaching here instead.
func (d *Device) notifyButton(now time.Duration, code uint16, pressed bool) {
	count, applied := d.keys.update(code, pressed, d.log)
	if !applied {
		return
	}
	if (pressed && count == 1) || (!pressed && count == 0) {
		emitted := d.cfg.effectiveButton(code)
		state := StateReleased
		if pressed {
			state = StatePressed
		}
		if d.Sink != nil {
			d.Sink.PointerButton(now, emitted, state)
		}
		if !pressed {
			d.applyGatedConfigOnRelease()
		}
	}
}

// applyGatedConfigOnRelease is invoked on every button release:
// left-handed and scroll-method changes take effect only when no
// hardware button is down.
func (d *Device) applyGatedConfigOnRelease() {
	d.cfg.maybeApplyGatedConfig(d.keys.anyButtonDown())
}

// Process ingests one decoded raw event by routing it through the
// device's dispatch capability. Devices without a dispatch assigned yet
// fall back to the bare pipeline, which is the same ingestion
// FallbackDispatch itself delegates to.
func (d *Device) Process(ev RawEvent) {
	if d.removed || d.suspended {
		return
	}
	if d.Dispatch != nil {
		d.Dispatch.Process(d, ev, ev.Timestamp)
		return
	}
	d.ingestEvent(ev)
}

// ingestEvent is the shared low-level pipeline both FallbackDispatch and
// TouchpadDispatch build on: accumulate raw events, flush at the sync
// barrier.
func (d *Device) ingestEvent(ev RawEvent) {
	switch ev.Type {
	case EvRel:
		d.processRelative(ev)
	case EvAbs:
		d.processAbsolute(ev)
	case EvKey:
		d.processKey(ev)
	case EvSyn:
		d.processSyn(ev)
	}
}

func (d *Device) processRelative(ev RawEvent) {
	switch ev.Code {
	case RelX:
		if d.pending != pendingRelativeMotion {
			d.flushPending(ev.Timestamp)
		}
		d.rel.dx += ev.Value
		d.pending = pendingRelativeMotion
	case RelY:
		if d.pending != pendingRelativeMotion {
			d.flushPending(ev.Timestamp)
		}
		d.rel.dy += ev.Value
		d.pending = pendingRelativeMotion
	case RelWheel:
		d.flushPending(ev.Timestamp)
		d.emitAxisTick(ev.Timestamp, AxisVertical, -float64(ev.Value)*axisStepDistance)
	case RelHWheel:
		d.flushPending(ev.Timestamp)
		d.emitAxisTick(ev.Timestamp, AxisHorizontal, float64(ev.Value)*axisStepDistance)
	}
}

const axisStepDistance = 10.0

func (d *Device) emitAxisTick(now time.Duration, axis Axis, value float64) {
	if d.scroll.naturalScroll {
		value *= -1
	}
	if d.Sink != nil {
		d.Sink.PointerAxis(now, axis, value)
	}
}

func (d *Device) processAbsolute(ev RawEvent) {
	if d.isMultitouch() {
		d.processTouch(ev)
		return
	}
	switch ev.Code {
	case AbsX:
		d.mt.slots[0].X = ev.Value
		if d.pending == pendingNone {
			d.pending = pendingAbsoluteMotion
		}
	case AbsY:
		d.mt.slots[0].Y = ev.Value
		if d.pending == pendingNone {
			d.pending = pendingAbsoluteMotion
		}
	}
}

func (d *Device) isMultitouch() bool {
	return d.Caps.Has(CapTouch) && d.MTCapable
}

func (d *Device) processTouch(ev RawEvent) {
	switch ev.Code {
	case AbsMTSlot:
		d.flushPending(ev.Timestamp)
		if int(ev.Value) >= 0 && int(ev.Value) < maxMTSlots {
			d.mt.slot = int(ev.Value)
		}
	case AbsMTTrackingID:
		if d.pending != pendingNone && d.pending != pendingAbsoluteMTMotion {
			d.flushPending(ev.Timestamp)
		}
		if ev.Value >= 0 {
			d.pending = pendingAbsoluteMTDown
		} else {
			d.pending = pendingAbsoluteMTUp
		}
	case AbsMTPositionX:
		d.mt.slots[d.mt.slot].X = ev.Value
		if d.pending == pendingNone {
			d.pending = pendingAbsoluteMTMotion
		}
	case AbsMTPositionY:
		d.mt.slots[d.mt.slot].Y = ev.Value
		if d.pending == pendingNone {
			d.pending = pendingAbsoluteMTMotion
		}
	}
}

// processKey implements evdev_process_key: autorepeat is discarded, a
// pending motion is flushed before any key transition, BTN_TOUCH on a
// single-touch device routes to the ABS touch pending kinds, and a
// release for a key never reported down by hardware is dropped.
func (d *Device) processKey(ev RawEvent) {
	if ev.Value == 2 {
		return // kernel autorepeat
	}

	switch ev.Code {
	case BtnToolFinger, BtnToolDoubleTap, BtnToolTripleTap, BtnToolPen:
		// Tool-type/finger-count indicators carry no press/release
		// semantics of their own; the MT tracking-ID stream is the
		// authoritative source for touch down/up, so these must not
		// disturb a pending accumulator mid-frame.
		return
	}

	if ev.Code == BtnTouch && !d.MTCapable {
		d.processTouchButton(ev)
		return
	}

	d.flushPending(ev.Timestamp)

	pressed := ev.Value != 0
	switch classifyKey(ev.Code) {
	case keyTypeKey:
		d.notifyKey(ev.Timestamp, ev.Code, pressed)
	case keyTypeButton:
		if d.cfg.scrollMethodCurrent == ScrollOnButton && ev.Code == d.cfg.scrollButtonCurrent {
			d.scrollButtonTransition(ev.Timestamp, pressed)
			return
		}
		d.notifyButton(ev.Timestamp, ev.Code, pressed)
	}
}

func (d *Device) processTouchButton(ev RawEvent) {
	if d.pending != pendingNone && d.pending != pendingAbsoluteMotion {
		d.flushPending(ev.Timestamp)
	}
	if ev.Value != 0 {
		d.pending = pendingAbsoluteTouchDown
	} else {
		d.pending = pendingAbsoluteTouchUp
	}
}

// processSyn flushes the pending event and, for touch-capable devices,
// emits a touch-frame if any touch kind was produced this cycle.
func (d *Device) processSyn(ev RawEvent) {
	if ev.Code == SynDropped {
		d.handleSynDropped(ev.Timestamp)
		return
	}
	if ev.Code != SynReport {
		return
	}
	needFrame := d.needsTouchFrame()
	d.flushPending(ev.Timestamp)
	if needFrame && d.Sink != nil {
		d.Sink.TouchFrame(ev.Timestamp)
	}
}

func (d *Device) needsTouchFrame() bool {
	if !d.Caps.Has(CapTouch) {
		return false
	}
	switch d.pending {
	case pendingAbsoluteMTDown, pendingAbsoluteMTMotion, pendingAbsoluteMTUp,
		pendingAbsoluteTouchDown, pendingAbsoluteTouchUp, pendingAbsoluteMotion:
		return true
	default:
		return false
	}
}

// flushPending drains the single in-flight pending accumulator, emitting
// whatever semantic event it represents. It always resets pending to
// pendingNone, so a flush can never see stale state from a previous
// frame.
func (d *Device) flushPending(now time.Duration) {
	kind := d.pending
	d.pending = pendingNone

	switch kind {
	case pendingNone:
		return
	case pendingRelativeMotion:
		d.flushRelativeMotion(now)
	case pendingAbsoluteMTDown:
		d.flushMTDown(now)
	case pendingAbsoluteMTMotion:
		d.flushMTMotion(now)
	case pendingAbsoluteMTUp:
		d.flushMTUp(now)
	case pendingAbsoluteTouchDown:
		d.flushTouchDown(now)
	case pendingAbsoluteTouchUp:
		d.flushTouchUp(now)
	case pendingAbsoluteMotion:
		d.flushAbsoluteMotion(now)
	}
}

func (d *Device) flushRelativeMotion(now time.Duration) {
	dxUnaccel := float64(d.rel.dx) / (float64(d.DPI) / defaultMouseDPI)
	dyUnaccel := float64(d.rel.dy) / (float64(d.DPI) / defaultMouseDPI)
	d.rel.dx, d.rel.dy = 0, 0

	if d.cfg.scrollMethodCurrent == ScrollOnButton && d.scroll.buttonDown {
		if d.scroll.active {
			postScroll(d, now, dxUnaccel, dyUnaccel)
		}
		return
	}

	m := accel.Motion{DX: dxUnaccel, DY: dyUnaccel}
	d.Filter.Dispatch(&m, uint64(now.Milliseconds()))

	if m.DX == 0 && m.DY == 0 && dxUnaccel == 0 && dyUnaccel == 0 {
		return
	}
	if d.Sink != nil {
		d.Sink.PointerMotion(now, m.DX, m.DY, dxUnaccel, dyUnaccel)
	}
}

func (d *Device) flushAbsoluteMotion(now time.Duration) {
	x, y := d.applyCalibration(d.mt.slots[0].X, d.mt.slots[0].Y)
	if d.Caps.Has(CapTouch) {
		if d.absSeatSlot == -1 {
			return
		}
		if d.Sink != nil {
			d.Sink.TouchMotion(now, -1, d.absSeatSlot, x, y)
		}
	} else if d.Caps.Has(CapPointer) {
		if d.Sink != nil {
			d.Sink.PointerMotionAbsolute(now, x, y)
		}
	}
}

func (d *Device) flushTouchDown(now time.Duration) {
	if !d.Caps.Has(CapTouch) {
		return
	}
	if d.absSeatSlot != -1 {
		d.log.Bug("%s: driver sent multiple touch down for the same slot", d.Ident.Name)
		return
	}
	seatSlot := d.Seat.allocateSlot()
	d.absSeatSlot = seatSlot
	if seatSlot == -1 {
		return
	}
	x, y := d.applyCalibration(d.mt.slots[0].X, d.mt.slots[0].Y)
	if d.Sink != nil {
		d.Sink.TouchDown(now, -1, seatSlot, x, y)
	}
}

func (d *Device) flushTouchUp(now time.Duration) {
	if !d.Caps.Has(CapTouch) {
		return
	}
	seatSlot := d.absSeatSlot
	d.absSeatSlot = -1
	if seatSlot == -1 {
		return
	}
	d.Seat.releaseSlot(seatSlot)
	if d.Sink != nil {
		d.Sink.TouchUp(now, -1, seatSlot)
	}
}

func (d *Device) flushMTDown(now time.Duration) {
	if !d.Caps.Has(CapTouch) {
		return
	}
	slot := d.mt.slot
	if d.mt.slots[slot].SeatSlot != -1 {
		d.log.Bug("%s: driver sent multiple touch down for slot %d", d.Ident.Name, slot)
		return
	}
	seatSlot := d.Seat.allocateSlot()
	d.mt.slots[slot].SeatSlot = seatSlot
	if seatSlot == -1 {
		return
	}
	x, y := d.applyCalibration(d.mt.slots[slot].X, d.mt.slots[slot].Y)
	if d.Sink != nil {
		d.Sink.TouchDown(now, slot, seatSlot, x, y)
	}
}

func (d *Device) flushMTMotion(now time.Duration) {
	if !d.Caps.Has(CapTouch) {
		return
	}
	slot := d.mt.slot
	seatSlot := d.mt.slots[slot].SeatSlot
	if seatSlot == -1 {
		return
	}
	x, y := d.applyCalibration(d.mt.slots[slot].X, d.mt.slots[slot].Y)
	if d.Sink != nil {
		d.Sink.TouchMotion(now, slot, seatSlot, x, y)
	}
}

func (d *Device) flushMTUp(now time.Duration) {
	if !d.Caps.Has(CapTouch) {
		return
	}
	slot := d.mt.slot
	seatSlot := d.mt.slots[slot].SeatSlot
	d.mt.slots[slot].SeatSlot = -1
	if seatSlot == -1 {
		return
	}
	d.Seat.releaseSlot(seatSlot)
	if d.Sink != nil {
		d.Sink.TouchUp(now, slot, seatSlot)
	}
}

// handleSynDropped finishes the current frame with a synthetic
// SYN_REPORT and rate-limits the warning. The resync itself — reading a
// coherent post-drop snapshot from the kernel and replaying it as plain
// events — is the event source's job; the engine's part is finishing the
// current frame and not double-logging the flood.
func (d *Device) handleSynDropped(now time.Duration) {
	switch d.synDropLimit.Test(durationToTime(now)) {
	case ratelimit.Pass:
		d.log.Info("SYN_DROPPED event from %q - some input events have been lost", d.Ident.Name)
	case ratelimit.Threshold:
		d.log.Info("SYN_DROPPED flood from %q", d.Ident.Name)
	case ratelimit.Exceeded:
		// stay quiet
	}

	d.processSyn(RawEvent{Type: EvSyn, Code: SynReport, Timestamp: now})
}
