// Package accel defines the pointer-acceleration filter contract the
// engine depends on. Acceleration profile curves are an external
// collaborator's concern — this package ships only the contract and one
// reference profile (Linear) a real deployment is expected to replace
// with its own curve.
package accel

// Motion is a relative pointer motion in normalized (1000 DPI reference
// frame) units, mutated in place by Filter.Dispatch.
type Motion struct {
	DX, DY float64
}

// Filter turns unaccelerated, normalized deltas into accelerated deltas.
// Implementations may hold per-device history (velocity trackers, etc.);
// the engine calls Dispatch once per flushed relative-motion event.
type Filter interface {
	// Dispatch applies acceleration to m in place.
	Dispatch(m *Motion, timestampMs uint64)
	// SetSpeed sets the profile's speed input, clamped to [-1, 1] by the
	// caller; returns false if the implementation rejects the value.
	SetSpeed(speed float64) bool
	// Speed returns the last accepted speed value.
	Speed() float64
}

// Linear is a reference Filter: output = input * factor, where factor is
// 1 + speed: 0x (no motion) at speed -1, 1x at speed 0, 2x at speed +1. It has no
// velocity history and exists to make the engine runnable without an
// embedder-supplied acceleration curve.
type Linear struct {
	speed float64
}

// NewLinear returns a Linear filter at the default speed (0, i.e. 1x).
func NewLinear() *Linear {
	return &Linear{}
}

func (l *Linear) factor() float64 {
	return 1 + l.speed
}

// Dispatch implements Filter.
func (l *Linear) Dispatch(m *Motion, _ uint64) {
	f := l.factor()
	m.DX *= f
	m.DY *= f
}

// SetSpeed implements Filter.
func (l *Linear) SetSpeed(speed float64) bool {
	if speed < -1 || speed > 1 {
		return false
	}
	l.speed = speed
	return true
}

// Speed implements Filter.
func (l *Linear) Speed() float64 {
	return l.speed
}
