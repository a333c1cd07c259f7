// pkg/env/types.go
package env

// ToolkitLayout defines where files are located within a toolkit root
type ToolkitLayout struct {
	Includes  string // Relative include directory
	Libraries string // Relative library directory for the target
	Marker    string // Relative path of the header proving the root is valid
}

// Library represents a found library file
type Library struct {
	Name     string // Library name (e.g., "cuda")
	Path     string // Absolute path to library file
	Type     string // Extension: ".so", ".dylib", ".lib"
	IsStatic bool   // True for import/static libraries
}

// CompilerFlags holds compiler and linker flags
type CompilerFlags struct {
	IncludeFlags []string // -I flags
	LibraryFlags []string // -L flags
	LinkFlags    []string // -l flags
}

// CFLAGS returns the include flags joined for a #cgo CFLAGS line
func (f CompilerFlags) CFLAGS() []string {
	return f.IncludeFlags
}

// LDFLAGS returns library and link flags in linker order
func (f CompilerFlags) LDFLAGS() []string {
	out := make([]string, 0, len(f.LibraryFlags)+len(f.LinkFlags))
	out = append(out, f.LibraryFlags...)
	return append(out, f.LinkFlags...)
}
