// errors.go
package cudabind

import (
	"github.com/arc-language/cudabind/pkg/core"
	"github.com/arc-language/cudabind/pkg/platform"
)

var (
	// ErrToolkitNotFound indicates no candidate root contained include/cuda.h
	ErrToolkitNotFound = core.ErrToolkitNotFound

	// ErrUnsupportedTarget indicates Windows-only discovery was used for another target
	ErrUnsupportedTarget = core.ErrUnsupportedTarget

	// ErrTranslatorFailure indicates the binding generator failed or produced no output
	ErrTranslatorFailure = core.ErrTranslatorFailure

	// ErrOutputWrite indicates generated output could not be persisted
	ErrOutputWrite = core.ErrOutputWrite

	// ErrMalformedTriple indicates the target triple could not be parsed
	ErrMalformedTriple = platform.ErrMalformedTriple
)

// Error wraps an error with the failing step and the offending value
type Error = core.Error
