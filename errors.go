package libinput

import "fmt"

// DeviceUnsupportedError means the device was rejected outright — e.g. it
// carries a joystick button. The embedder should not retry opening it.
type DeviceUnsupportedError struct {
	Path   string
	Reason string
}

func (e *DeviceUnsupportedError) Error() string {
	return fmt.Sprintf("device %q unsupported: %s", e.Path, e.Reason)
}

// DeviceOpenError wraps an open/fstat/syspath failure while bringing up a
// device. The device is dropped, not retried.
type DeviceOpenError struct {
	Path string
	Err  error
}

func (e *DeviceOpenError) Error() string {
	return fmt.Sprintf("opening device %q: %v", e.Path, e.Err)
}

func (e *DeviceOpenError) Unwrap() error { return e.Err }

// KernelInvariantViolation is raised when the driver violates a contract
// the kernel itself should guarantee (e.g. two MT_DOWN events for the same
// slot). It is logged as a kernel bug; the offending event is dropped and
// the pipeline continues.
type KernelInvariantViolation struct {
	Device string
	Detail string
}

func (e *KernelInvariantViolation) Error() string {
	return fmt.Sprintf("kernel invariant violated on %q: %s", e.Device, e.Detail)
}

// InternalInvariantViolation is raised when the engine's own bookkeeping
// goes out of bounds (e.g. a key press-count exceeding 32, or a motion
// event while no finger is down). Logged as a libinput-side bug; the
// pipeline continues.
type InternalInvariantViolation struct {
	Detail string
}

func (e *InternalInvariantViolation) Error() string {
	return fmt.Sprintf("internal invariant violated: %s", e.Detail)
}

// TransientReadError signals EAGAIN/EINTR: not a real error, retry on the
// next event-loop wakeup.
type TransientReadError struct {
	Err error
}

func (e *TransientReadError) Error() string { return fmt.Sprintf("transient read error: %v", e.Err) }
func (e *TransientReadError) Unwrap() error { return e.Err }

// FatalReadError means the device fd should be unregistered from the
// event loop; the device itself stays open so a later resume can reuse it
// rather than racing a new node at the same path.
type FatalReadError struct {
	Err error
}

func (e *FatalReadError) Error() string { return fmt.Sprintf("fatal read error: %v", e.Err) }
func (e *FatalReadError) Unwrap() error { return e.Err }
