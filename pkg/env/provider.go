// pkg/env/provider.go
package env

import (
	"os"
	"sort"
)

// Provider supplies configuration values such as environment variables.
// All environment access goes through a Provider so tests can substitute
// a fixed set of values.
type Provider interface {
	Lookup(key string) (string, bool)
}

type osProvider struct{}

func (osProvider) Lookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

// OS returns a Provider backed by the process environment
func OS() Provider {
	return osProvider{}
}

// Map is a Provider backed by a fixed set of values
type Map map[string]string

func (m Map) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// Get returns the value of key, or "" when unset
func Get(p Provider, key string) string {
	v, _ := p.Lookup(key)
	return v
}

// Snapshot returns key=value pairs for the given keys, sorted by key.
// Unset keys are omitted.
func Snapshot(p Provider, keys ...string) []string {
	sorted := append([]string(nil), keys...)
	sort.Strings(sorted)

	var out []string
	for _, k := range sorted {
		if v, ok := p.Lookup(k); ok {
			out = append(out, k+"="+v)
		}
	}
	return out
}
