package libinput

import "time"

// Scroll build-up/threshold constants.
const (
	buttonScrollTimeout = 200 * time.Millisecond
	scrollThreshold = 5.0
)

// scrollButtonTransition handles a press/release of the configured
// scroll-method-on-button modifier key: press arms a 200ms deadline; if
// released before it fires, replay it as a normal click (motion while the
// button is held before the deadline is discarded and not checked against
// the threshold); otherwise the device has already entered scroll mode and
// release stops it.
func (d *Device) scrollButtonTransition(now time.Duration, pressed bool) {
	if pressed {
		d.scroll.buttonDown = true
		d.armButtonScrollTimer(now)
		return
	}

	d.scroll.buttonDown = false
	if d.timers != nil {
		d.timers.Cancel(d.scroll.timerHandle)
	}
	if d.scroll.active {
		stopScroll(d, now)
		d.scroll.active = false
		return
	}
	// Released quickly: replay as a normal click.
	if d.Sink != nil {
		emitted := d.cfg.effectiveButton(d.cfg.scrollButtonCurrent)
		d.Sink.PointerButton(now, emitted, StatePressed)
		d.Sink.PointerButton(now, emitted, StateReleased)
	}
}

func (d *Device) armButtonScrollTimer(now time.Duration) {
	if d.timers == nil {
		return
	}
	deadline := durationToTime(now + buttonScrollTimeout)
	d.scroll.timerHandle = d.timers.Arm(d.scroll.timerHandle, deadline, func(time.Time) {
		d.scroll.active = true
	})
}

// postScroll accumulates unaccelerated deltas into the build-up
// accumulators and, once a direction crosses the threshold, emits axis
// events. Once an axis is scrolling, the
// orthogonal axis joins only on a single event whose own delta reaches the
// threshold; its build-up does not count, so diagonal drift does not leak
// into it.
func postScroll(d *Device, now time.Duration, dx, dy float64) {
	s := &d.scroll

	s.buildupV += dy
	s.buildupH += dx

	switch {
	case !s.directionV && !s.directionH && abs(s.buildupV) >= scrollThreshold:
		s.directionV = true
	case !s.directionV && s.directionH && abs(dy) >= scrollThreshold:
		// Orthogonal axis already scrolling: only a single event at or
		// over threshold joins it.
		s.directionV = true
	}

	switch {
	case !s.directionH && !s.directionV && abs(s.buildupH) >= scrollThreshold:
		s.directionH = true
	case !s.directionH && s.directionV && abs(dx) >= scrollThreshold:
		s.directionH = true
	}

	if s.directionV && d.Sink != nil {
		d.Sink.PointerAxis(now, AxisVertical, natural(d, dy))
	}
	if s.directionH && d.Sink != nil {
		d.Sink.PointerAxis(now, AxisHorizontal, natural(d, dx))
	}
}

// stopScroll emits a terminating zero value on every axis that was
// active and clears build-up/direction state.
func stopScroll(d *Device, now time.Duration) {
	s := &d.scroll
	if d.Sink != nil {
		if s.directionV {
			d.Sink.PointerAxis(now, AxisVertical, 0)
		}
		if s.directionH {
			d.Sink.PointerAxis(now, AxisHorizontal, 0)
		}
	}
	s.directionV = false
	s.directionH = false
	s.buildupV = 0
	s.buildupH = 0
}

func natural(d *Device, v float64) float64 {
	if d.scroll.naturalScroll {
		return -v
	}
	return v
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func durationToTime(d time.Duration) time.Time {
	return time.Unix(0, int64(d))
}

// durationFromTime is durationToTime's inverse, used to recover the
// engine's monotonic Duration clock from a timer callback's wall-clock
// firedAt argument.
func durationFromTime(t time.Time) time.Duration {
	return time.Duration(t.UnixNano())
}
