package cell

import (
	"errors"
	"fmt"
)

var (
	// ErrRejectedWrite is returned when a property other than "value" is
	// assigned on a signal. The signal is left untouched and nobody is notified.
	ErrRejectedWrite = errors.New("cell: rejected write")

	// ErrCaptureFailed is returned when the function passed to a capture
	// session returns an error or panics.
	ErrCaptureFailed = errors.New("cell: dependency capture failed")

	// ErrCaptureActive is returned when a capture session is started while
	// another one is still running on the same runtime.
	ErrCaptureActive = errors.New("cell: capture session already active")

	ErrValueType       = errors.New("cell: value has wrong type")
	ErrUnknownProperty = errors.New("cell: unknown property")
	ErrNotObject       = errors.New("cell: path does not address an object")
	ErrEmptyPath       = errors.New("cell: empty path")
)

// RejectedWriteError describes a write to a signal property that does not
// accept writes.
type RejectedWriteError struct {
	Signal   string
	Property string
}

func (e *RejectedWriteError) Error() string {
	return fmt.Sprintf("cell: rejected write to %q on signal %s", e.Property, e.Signal)
}

func (e *RejectedWriteError) Is(target error) bool {
	return target == ErrRejectedWrite
}

// CaptureError wraps the failure of a capture run. Exactly one of Err or
// Panic is set.
type CaptureError struct {
	Err   error
	Panic any
}

func (e *CaptureError) Error() string {
	if e.Panic != nil {
		return fmt.Sprintf("cell: dependency capture panicked: %v", e.Panic)
	}
	return fmt.Sprintf("cell: dependency capture failed: %v", e.Err)
}

func (e *CaptureError) Unwrap() error {
	return e.Err
}

func (e *CaptureError) Is(target error) bool {
	return target == ErrCaptureFailed
}
