// pkg/platform/triple.go
package platform

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedTriple is returned when a target string does not have at least
// the arch, vendor and os components.
var ErrMalformedTriple = errors.New("malformed target triple")

// Triple is a parsed arch-vendor-os[-env] target identifier
type Triple struct {
	Arch   string // x86_64, aarch64, i686
	Vendor string // pc, unknown, apple
	OS     string // linux, windows, darwin
	Env    string // gnu, msvc (optional)
	Raw    string // Original string as given
}

// ParseTriple parses a target triple such as x86_64-pc-windows-msvc.
func ParseTriple(s string) (Triple, error) {
	raw := strings.TrimSpace(s)
	parts := strings.Split(raw, "-")
	if len(parts) < 3 {
		return Triple{}, fmt.Errorf("%w: %q has %d component(s), want at least 3", ErrMalformedTriple, s, len(parts))
	}
	for i, p := range parts {
		if p == "" {
			return Triple{}, fmt.Errorf("%w: %q has an empty component at position %d", ErrMalformedTriple, s, i)
		}
	}

	t := Triple{
		Arch:   parts[0],
		Vendor: parts[1],
		OS:     parts[2],
		Raw:    raw,
	}
	if len(parts) > 3 {
		t.Env = strings.Join(parts[3:], "-")
	}
	return t, nil
}

// MustParseTriple is like ParseTriple but panics on error. Intended for
// package-level tables and tests.
func MustParseTriple(s string) Triple {
	t, err := ParseTriple(s)
	if err != nil {
		panic(err)
	}
	return t
}

func (t Triple) String() string {
	if t.Raw != "" {
		return t.Raw
	}
	s := t.Arch + "-" + t.Vendor + "-" + t.OS
	if t.Env != "" {
		s += "-" + t.Env
	}
	return s
}

// IsWindows reports whether the target belongs to the Windows family.
func (t Triple) IsWindows() bool {
	return t.OS == "windows"
}

// PathListSeparator returns the separator used by path-list environment
// variables on the target.
func (t Triple) PathListSeparator() string {
	if t.IsWindows() {
		return ";"
	}
	return ":"
}

// Separator returns the target's path element separator.
func (t Triple) Separator() string {
	if t.IsWindows() {
		return `\`
	}
	return "/"
}

// SplitPathList splits a path list using the target separator. Empty entries
// are dropped.
func (t Triple) SplitPathList(list string) []string {
	if list == "" {
		return nil
	}
	var paths []string
	for _, p := range strings.Split(list, t.PathListSeparator()) {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

// Join joins path elements with the target separator. Paths are built for the
// target rather than the host, so a Windows layout can be produced on Linux.
func (t Triple) Join(elem ...string) string {
	sep := t.Separator()
	var b strings.Builder
	for _, e := range elem {
		if e == "" {
			continue
		}
		if b.Len() > 0 {
			s := b.String()
			if !strings.HasSuffix(s, "/") && !strings.HasSuffix(s, `\`) {
				b.WriteString(sep)
			}
			e = strings.TrimLeft(e, `/\`)
		}
		b.WriteString(e)
	}
	return b.String()
}

// GOOS returns the Go operating system name for the target.
func (t Triple) GOOS() string {
	switch t.OS {
	case "macos", "ios":
		return "darwin"
	default:
		return t.OS
	}
}
