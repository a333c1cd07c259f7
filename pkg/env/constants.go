// pkg/env/constants.go
package env

import (
	"github.com/arc-language/cudabind/pkg/platform"
)

const (
	// OverrideVar lists candidate toolkit roots in platform path-list syntax
	OverrideVar = "CUDA_LIBRARY_PATH"
	// InstallerVar is set by the Windows CUDA installer to the SDK root
	InstallerVar = "CUDA_PATH"
	// OutDirVar names the directory generated output is written to
	OutDirVar = "OUT_DIR"

	// MarkerHeader is the header whose presence confirms a toolkit root
	MarkerHeader = "cuda.h"
	// DefaultLibrary is the driver API shared library linked by name
	DefaultLibrary = "cuda"
)

// GetToolkitLayout returns the toolkit directory structure for a target.
// These are RELATIVE paths within the installation root.
func GetToolkitLayout(target platform.Triple) ToolkitLayout {
	if target.IsWindows() {
		// The Windows installer ships the 64-bit SDK libraries under lib\x64
		return ToolkitLayout{
			Includes:  "include",
			Libraries: `lib\x64`,
			Marker:    `include\` + MarkerHeader,
		}
	}

	return ToolkitLayout{
		Includes:  "include",
		Libraries: "lib64",
		Marker:    "include/" + MarkerHeader,
	}
}

// GetSharedLibraryExtensions returns the library extensions for a target.
// On Windows the linker consumes the import library, not the DLL.
func GetSharedLibraryExtensions(target platform.Triple) []string {
	switch target.GOOS() {
	case "darwin":
		return []string{".dylib"}
	case "windows":
		return []string{".lib"}
	default:
		return []string{".so"}
	}
}
