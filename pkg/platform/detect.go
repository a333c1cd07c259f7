// pkg/platform/detect.go
package platform

import (
	"fmt"
	"runtime"
)

// LookupFunc reads a single environment value
type LookupFunc func(key string) (string, bool)

const (
	// TargetVar names the build target triple, when the build system sets one
	TargetVar = "TARGET"
	// GOOSVar and GOARCHVar are set by go generate
	GOOSVar   = "GOOS"
	GOARCHVar = "GOARCH"
)

var archNames = map[string]string{
	"amd64":   "x86_64",
	"386":     "i686",
	"arm64":   "aarch64",
	"arm":     "armv7",
	"ppc64le": "powerpc64le",
	"riscv64": "riscv64gc",
	"s390x":   "s390x",
}

// FromGo builds a triple from Go's GOOS/GOARCH pair
func FromGo(goos, goarch string) (Triple, error) {
	arch, ok := archNames[goarch]
	if !ok {
		arch = goarch
	}

	switch goos {
	case "linux":
		return ParseTriple(arch + "-unknown-linux-gnu")
	case "windows":
		return ParseTriple(arch + "-pc-windows-msvc")
	case "darwin":
		return ParseTriple(arch + "-apple-darwin")
	case "freebsd", "netbsd", "openbsd", "dragonfly":
		return ParseTriple(arch + "-unknown-" + goos)
	case "android":
		return ParseTriple(arch + "-linux-android")
	default:
		return Triple{}, fmt.Errorf("unsupported operating system: %s", goos)
	}
}

// Detect determines the build target.
// Priority:
// 1. TARGET
// 2. GOOS/GOARCH from the environment (go generate exports them)
// 3. The running binary's platform
func Detect(lookup LookupFunc) (Triple, error) {
	if lookup != nil {
		if target, ok := lookup(TargetVar); ok && target != "" {
			return ParseTriple(target)
		}
	}

	goos, goarch := runtime.GOOS, runtime.GOARCH
	if lookup != nil {
		if v, ok := lookup(GOOSVar); ok && v != "" {
			goos = v
		}
		if v, ok := lookup(GOARCHVar); ok && v != "" {
			goarch = v
		}
	}
	return FromGo(goos, goarch)
}
