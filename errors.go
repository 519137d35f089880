package ari

import "fmt"

// Kind categorizes an EngineError.
type Kind int

const (
	// KindInvalidInput marks a caller precondition violation: null
	// buffer, zero dimension, or an out-of-range label caught during
	// the alphabet-bound reduction.
	KindInvalidInput Kind = iota

	// KindDeviceError marks a failure reported during allocation,
	// copy, launch, or synchronization.
	KindDeviceError

	// KindResourceExceeded is a specialized DeviceError: the per-group
	// scratch footprint for the inferred alphabet bound K exceeds the
	// device's scratch limit.
	KindResourceExceeded
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "InvalidInput"
	case KindDeviceError:
		return "DeviceError"
	case KindResourceExceeded:
		return "ResourceExceeded"
	default:
		return "Unknown"
	}
}

// EngineError is a structured error carrying the failing operation,
// a human-readable message, and (for device errors) the underlying
// diagnostic.
type EngineError struct {
	Kind    Kind
	Op      string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *EngineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ari: %s error in %s: %s (caused by: %v)", e.Kind, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("ari: %s error in %s: %s", e.Kind, e.Op, e.Message)
}

// Unwrap exposes the underlying error, if any, for errors.Is/As.
func (e *EngineError) Unwrap() error {
	return e.Err
}

// InvalidInput constructs a KindInvalidInput error.
func InvalidInput(op, message string) error {
	return &EngineError{Kind: KindInvalidInput, Op: op, Message: message}
}

// DeviceError constructs a KindDeviceError error, optionally wrapping
// the low-level cause.
func DeviceError(op, message string, err error) error {
	return &EngineError{Kind: KindDeviceError, Op: op, Message: message, Err: err}
}

// ResourceExceeded constructs a KindResourceExceeded error.
func ResourceExceeded(op, message string) error {
	return &EngineError{Kind: KindResourceExceeded, Op: op, Message: message}
}

// IsInvalidInput reports whether err is a KindInvalidInput EngineError.
func IsInvalidInput(err error) bool {
	e, ok := err.(*EngineError)
	return ok && e.Kind == KindInvalidInput
}

// IsDeviceError reports whether err is a KindDeviceError EngineError
// (ResourceExceeded counts, being a specialization of it).
func IsDeviceError(err error) bool {
	e, ok := err.(*EngineError)
	return ok && (e.Kind == KindDeviceError || e.Kind == KindResourceExceeded)
}

// IsResourceExceeded reports whether err is a KindResourceExceeded
// EngineError.
func IsResourceExceeded(err error) bool {
	e, ok := err.(*EngineError)
	return ok && e.Kind == KindResourceExceeded
}
