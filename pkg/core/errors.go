// pkg/core/errors.go
package core

import (
	"errors"
	"fmt"
)

var (
	// ErrToolkitNotFound indicates no candidate root contained the marker header
	ErrToolkitNotFound = errors.New("CUDA toolkit not found")

	// ErrUnsupportedTarget indicates a discovery strategy was used for a target it does not serve
	ErrUnsupportedTarget = errors.New("unsupported target for discovery strategy")

	// ErrTranslatorFailure indicates the binding generator failed or produced no output
	ErrTranslatorFailure = errors.New("binding translator failed")

	// ErrOutputWrite indicates generated output could not be persisted
	ErrOutputWrite = errors.New("writing generated output failed")
)

// Error wraps an error with the failing step and the offending value
type Error struct {
	Op    string // Step that failed (locate, translate, write)
	Value string // Offending value: path tried, target, command
	Err   error  // Underlying error
}

func (e *Error) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Value, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Errorf builds an *Error whose Err wraps kind with a formatted detail
func Errorf(op, value string, kind error, format string, args ...interface{}) *Error {
	return &Error{
		Op:    op,
		Value: value,
		Err:   fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...)),
	}
}
