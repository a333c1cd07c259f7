// pkg/env/fs.go
package env

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FileSystem is the read-only view used to probe toolkit installations
type FileSystem interface {
	// IsFile reports whether path names an existing regular file
	IsFile(path string) bool
	// Glob returns the paths matching pattern, sorted
	Glob(pattern string) []string
}

type osFileSystem struct{}

func (osFileSystem) IsFile(path string) bool {
	info, err := os.Stat(filepath.FromSlash(path))
	return err == nil && info.Mode().IsRegular()
}

func (osFileSystem) Glob(pattern string) []string {
	matches, _ := filepath.Glob(filepath.FromSlash(pattern))
	sort.Strings(matches)
	return matches
}

// OSFileSystem returns a FileSystem backed by the host filesystem
func OSFileSystem() FileSystem {
	return osFileSystem{}
}

// MapFS is an in-memory FileSystem keyed by path. Paths are compared
// verbatim, so Windows-style paths can be faked on any host.
type MapFS struct {
	Files map[string]bool
	// Probes records every path checked with IsFile
	Probes []string
}

// NewMapFS creates a MapFS containing the given files
func NewMapFS(files ...string) *MapFS {
	m := &MapFS{Files: make(map[string]bool)}
	for _, f := range files {
		m.Files[f] = true
	}
	return m
}

func (m *MapFS) IsFile(path string) bool {
	m.Probes = append(m.Probes, path)
	return m.Files[path]
}

// Glob supports a single trailing '*' which is enough for versioned
// library lookups.
func (m *MapFS) Glob(pattern string) []string {
	prefix := strings.TrimSuffix(pattern, "*")
	var out []string
	for f := range m.Files {
		if f == pattern || (prefix != pattern && strings.HasPrefix(f, prefix)) {
			out = append(out, f)
		}
	}
	sort.Strings(out)
	return out
}
