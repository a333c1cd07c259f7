// pkg/env/library.go
package env

import (
	"github.com/arc-language/cudabind/pkg/platform"
)

// Toolkit is a toolkit installation root seen from a build target
type Toolkit struct {
	Root   string
	Target platform.Triple
}

// New creates a Toolkit for a resolved installation root
func New(root string, target platform.Triple) *Toolkit {
	return &Toolkit{Root: root, Target: target}
}

// GetLibraryPath returns the native library search path
func (t *Toolkit) GetLibraryPath() string {
	return t.Target.Join(t.Root, GetToolkitLayout(t.Target).Libraries)
}

// GetIncludePath returns the header search path
func (t *Toolkit) GetIncludePath() string {
	return t.Target.Join(t.Root, GetToolkitLayout(t.Target).Includes)
}

// GetMarkerPath returns the path of the header that validates the root
func (t *Toolkit) GetMarkerPath() string {
	return t.Target.Join(t.Root, GetToolkitLayout(t.Target).Marker)
}

// GetCompilerFlags returns the flags needed to compile and link against lib
func (t *Toolkit) GetCompilerFlags(lib string) CompilerFlags {
	return CompilerFlags{
		IncludeFlags: []string{"-I" + t.GetIncludePath()},
		LibraryFlags: []string{"-L" + t.GetLibraryPath()},
		LinkFlags:    []string{"-l" + lib},
	}
}

// FindSharedLibrary searches the library directory for a library by name.
// Returns nil when nothing is found.
func (t *Toolkit) FindSharedLibrary(fs FileSystem, name string) *Library {
	dir := t.GetLibraryPath()

	for _, ext := range GetSharedLibraryExtensions(t.Target) {
		filename := "lib" + name + ext
		if t.Target.IsWindows() {
			// Import libraries carry no lib prefix: cuda.lib
			filename = name + ext
		}
		fullPath := t.Target.Join(dir, filename)

		if fs.IsFile(fullPath) {
			return &Library{
				Name:     name,
				Path:     fullPath,
				Type:     ext,
				IsStatic: ext == ".lib",
			}
		}

		// Try versioned: lib{name}{ext}.* (e.g., libcuda.so.1)
		if matches := fs.Glob(fullPath + "*"); len(matches) > 0 {
			return &Library{
				Name:     name,
				Path:     matches[0],
				Type:     ext,
				IsStatic: ext == ".lib",
			}
		}
	}

	return nil
}
