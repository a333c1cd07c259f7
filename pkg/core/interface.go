// pkg/core/interface.go
package core

import "context"

// Translator turns native headers into Go bindings according to a manifest
type Translator interface {
	// Name returns the translator name (e.g., "c-for-go")
	Name() string

	// Translate runs the translator over manifestPath, writing into outDir
	Translate(ctx context.Context, manifestPath, outDir string) error

	// IsAvailable checks if the translator can be run on this system
	IsAvailable() bool
}
