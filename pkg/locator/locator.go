// pkg/locator/locator.go
package locator

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/arc-language/cudabind/pkg/core"
	"github.com/arc-language/cudabind/pkg/env"
	"github.com/arc-language/cudabind/pkg/platform"
)

// Config configures a Locator
type Config struct {
	Env         env.Provider   // Default: process environment
	FS          env.FileSystem // Default: host filesystem
	SearchPaths []string       // Default: core.DefaultSearchPaths
	Logger      *logrus.Logger // Optional
}

// Locator finds the CUDA toolkit installation root for a build target
type Locator struct {
	env    env.Provider
	fs     env.FileSystem
	paths  []string
	logger *logrus.Logger
}

// New creates a Locator
func New(cfg *Config) *Locator {
	if cfg == nil {
		cfg = &Config{}
	}

	l := &Locator{
		env:    cfg.Env,
		fs:     cfg.FS,
		paths:  cfg.SearchPaths,
		logger: cfg.Logger,
	}
	if l.env == nil {
		l.env = env.OS()
	}
	if l.fs == nil {
		l.fs = env.OSFileSystem()
	}
	if l.paths == nil {
		l.paths = core.DefaultSearchPaths
	}
	if l.logger == nil {
		l.logger = logrus.New()
		l.logger.SetOutput(io.Discard)
	}
	return l
}

// Locate returns the installation root, choosing the discovery strategy from
// the target's OS family.
func (l *Locator) Locate(target platform.Triple) (string, error) {
	if target.IsWindows() {
		return l.LocateWindows(target)
	}
	return l.LocatePOSIX(target)
}

// Overrides returns the override list parsed with the target's separator
func (l *Locator) Overrides(target platform.Triple) []string {
	return target.SplitPathList(env.Get(l.env, env.OverrideVar))
}

// Candidates returns the ordered roots LocatePOSIX tries
func (l *Locator) Candidates(target platform.Triple) []string {
	candidates := l.Overrides(target)
	return append(candidates, l.paths...)
}

// LocatePOSIX returns the first candidate containing include/cuda.h
func (l *Locator) LocatePOSIX(target platform.Triple) (string, error) {
	candidates := l.Candidates(target)

	for _, root := range candidates {
		marker := env.New(root, target).GetMarkerPath()
		if l.fs.IsFile(marker) {
			l.logger.WithField("root", root).Debug("found CUDA toolkit")
			return root, nil
		}
		l.logger.WithField("marker", marker).Debug("candidate rejected, marker header missing")
	}

	return "", core.Errorf("locate", strings.Join(candidates, ", "), core.ErrToolkitNotFound,
		"no candidate contains include/%s (set %s to the toolkit root)", env.MarkerHeader, env.OverrideVar)
}

// LocateWindows prefers the first override entry, then the installer
// populated CUDA_PATH. Locate only routes Windows targets here; callers that
// pick the strategy themselves get ErrUnsupportedTarget for any other OS.
func (l *Locator) LocateWindows(target platform.Triple) (string, error) {
	if overrides := l.Overrides(target); len(overrides) > 0 {
		l.logger.WithField("root", overrides[0]).Debugf("using first %s entry", env.OverrideVar)
		return overrides[0], nil
	}

	root := env.Get(l.env, env.InstallerVar)
	if root == "" {
		return "", core.Errorf("locate", "", core.ErrToolkitNotFound,
			"neither %s nor %s is set", env.OverrideVar, env.InstallerVar)
	}

	// The CUDA_PATH layout is only meaningful for Windows targets
	if !target.IsWindows() {
		return "", core.Errorf("locate", target.String(), core.ErrUnsupportedTarget,
			"the %s variable is only used on Windows, your target is %s", env.InstallerVar, target)
	}
	if target.Vendor != "pc" {
		l.logger.WithField("target", target.String()).Warn("expected a Windows target to have vendor 'pc'")
	}

	marker := env.New(root, target).GetMarkerPath()
	if !l.fs.IsFile(marker) {
		return "", core.Errorf("locate", root, core.ErrToolkitNotFound,
			"%s points at %s which does not contain %s", env.InstallerVar, root, marker)
	}

	l.logger.WithField("root", root).Debugf("found CUDA toolkit via %s", env.InstallerVar)
	return root, nil
}
