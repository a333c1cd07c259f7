// pkg/translator/rules.go
package translator

import (
	"fmt"
	"regexp"
	"sort"
)

// Rule groups understood by the translator
const (
	GroupType     = "type"
	GroupFunction = "function"
	GroupConst    = "const"
)

// Allowlist restricts emitted bindings to symbols matching these patterns,
// keyed by rule group. Symbols referenced by an allowed symbol are not
// pulled in unless they match a pattern themselves.
type Allowlist map[string][]string

// DefaultAllowlist returns the CUDA driver API naming convention: CU* and
// cuda* types, cu* functions, CU* constants, plus the handful of named
// exceptions the driver headers use.
func DefaultAllowlist() Allowlist {
	return Allowlist{
		GroupType: {
			"^CU.*",
			"^cuuint(32|64)_t",
			"^cudaError_enum",
			"^cu.*Complex$",
			"^cuda.*",
			"^libraryPropertyType.*",
		},
		GroupConst: {
			"^CU.*",
		},
		GroupFunction: {
			"^cu.*",
		},
	}
}

// Merge returns a copy of a with extra patterns appended per group
func (a Allowlist) Merge(extra map[string][]string) Allowlist {
	out := make(Allowlist, len(a))
	for g, ps := range a {
		out[g] = append([]string(nil), ps...)
	}
	for g, ps := range extra {
		out[g] = append(out[g], ps...)
	}
	return out
}

// Validate checks every group name and compiles every pattern
func (a Allowlist) Validate() error {
	for _, g := range a.Groups() {
		switch g {
		case GroupType, GroupFunction, GroupConst:
		default:
			return fmt.Errorf("unknown rule group %q", g)
		}
		for _, p := range a[g] {
			if _, err := regexp.Compile(p); err != nil {
				return fmt.Errorf("rule group %s: invalid pattern %q: %w", g, p, err)
			}
		}
	}
	return nil
}

// Groups returns the group names in sorted order
func (a Allowlist) Groups() []string {
	groups := make([]string, 0, len(a))
	for g := range a {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	return groups
}

// Allows reports whether name is accepted in group
func (a Allowlist) Allows(group, name string) bool {
	for _, p := range a[group] {
		if re, err := regexp.Compile(p); err == nil && re.MatchString(name) {
			return true
		}
	}
	return false
}
