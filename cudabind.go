// cudabind.go
package cudabind

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/arc-language/cudabind/pkg/core"
	"github.com/arc-language/cudabind/pkg/directive"
	"github.com/arc-language/cudabind/pkg/env"
	"github.com/arc-language/cudabind/pkg/locator"
	"github.com/arc-language/cudabind/pkg/platform"
	"github.com/arc-language/cudabind/pkg/stamp"
	"github.com/arc-language/cudabind/pkg/translator"
)

// Re-export types for convenience
type (
	Triple    = platform.Triple
	Directive = directive.Directive
	Allowlist = translator.Allowlist
)

// Config configures a Director
type Config struct {
	// Settings loaded from cudabind.yaml
	Settings *core.Config

	// ConfigPath is the file whose changes trigger regeneration
	ConfigPath string

	// Target overrides target detection
	Target string

	// OutputDir overrides OUT_DIR and Settings.OutputDir
	OutputDir string

	// Force regenerates even when the stamp matches
	Force bool

	// Env and FS are the injected views of the host; defaults are the real ones
	Env env.Provider
	FS  env.FileSystem

	// Translator runs the binding generator. Default: c-for-go via translator.Runner
	Translator core.Translator

	// Directives receives emitted directives. Default: os.Stdout
	Directives io.Writer

	// Logger for diagnostics. Default: discard
	Logger *logrus.Logger
}

// Result describes one completed run
type Result struct {
	Root       string
	Target     platform.Triple
	OutputDir  string
	Manifest   string
	CgoFlags   string
	Bindings   string
	Directives []directive.Directive
	Skipped    bool // Translator skipped because the stamp matched
}

// Director runs the locate, link, translate sequence once
type Director struct {
	config   *Config
	settings *core.Config
	logger   *logrus.Logger
}

// New creates a Director
func New(cfg *Config) *Director {
	if cfg == nil {
		cfg = &Config{}
	}
	if cfg.Env == nil {
		cfg.Env = env.OS()
	}
	if cfg.FS == nil {
		cfg.FS = env.OSFileSystem()
	}
	if cfg.Directives == nil {
		cfg.Directives = os.Stdout
	}
	if cfg.ConfigPath == "" {
		cfg.ConfigPath = core.DefaultConfigFile
	}

	settings := cfg.Settings
	if settings == nil {
		settings = core.DefaultConfig()
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}

	if cfg.Translator == nil {
		cfg.Translator = translator.NewRunner(&translator.Config{
			Command:     settings.Translator,
			PackageName: settings.PackageName,
			Logger:      logger,
		})
	}

	return &Director{config: cfg, settings: settings, logger: logger}
}

// Target resolves the build target triple
func (d *Director) Target() (platform.Triple, error) {
	if d.config.Target != "" {
		return platform.ParseTriple(d.config.Target)
	}
	return platform.Detect(d.config.Env.Lookup)
}

// OutputDir resolves where generated files go
func (d *Director) OutputDir() string {
	if d.config.OutputDir != "" {
		return d.config.OutputDir
	}
	if dir := env.Get(d.config.Env, env.OutDirVar); dir != "" {
		return dir
	}
	if d.settings.OutputDir != "" {
		return d.settings.OutputDir
	}
	return "."
}

// Locate finds the toolkit root for the build target
func (d *Director) Locate() (string, platform.Triple, error) {
	target, err := d.Target()
	if err != nil {
		return "", platform.Triple{}, &core.Error{Op: "detect target", Err: err}
	}

	l := locator.New(&locator.Config{
		Env:         d.config.Env,
		FS:          d.config.FS,
		SearchPaths: d.settings.SearchPaths,
		Logger:      d.logger,
	})
	root, err := l.Locate(target)
	if err != nil {
		return "", target, err
	}
	return root, target, nil
}

// Manifest builds the translator manifest for a resolved root
func (d *Director) Manifest(root string, target platform.Triple) (*translator.Manifest, error) {
	tk := env.New(root, target)

	opts := translator.DefaultOptions()
	opts.PackageName = d.settings.PackageName
	opts.UmbrellaHeader = d.settings.Header
	opts.IncludeDirs = []string{tk.GetIncludePath()}
	opts.CFlags = tk.GetCompilerFlags(d.settings.Library).CFLAGS()
	if d.settings.EnumStyle != "" {
		opts.EnumStyle = d.settings.EnumStyle
	}

	return translator.BuildManifest(opts, translator.DefaultAllowlist().Merge(d.settings.Allow))
}

// LinkDirectives returns the linker directives without running the translator
func (d *Director) LinkDirectives() ([]directive.Directive, error) {
	root, target, err := d.Locate()
	if err != nil {
		return nil, err
	}
	return directive.ForToolkit(root, target, d.settings.Library), nil
}

// Run performs the whole sequence: discover, emit linker directives, invoke
// the translator, persist output and register the rebuild trigger. Every
// failure is terminal.
func (d *Director) Run(ctx context.Context) (*Result, error) {
	root, target, err := d.Locate()
	if err != nil {
		return nil, err
	}

	outDir := d.OutputDir()
	pkg := d.settings.PackageName
	res := &Result{
		Root:      root,
		Target:    target,
		OutputDir: outDir,
		Manifest:  filepath.Join(outDir, pkg+".yml"),
		CgoFlags:  filepath.Join(outDir, pkg, directive.CgoFlagsFile),
		Bindings:  translator.PrimaryFile(outDir, pkg),
	}

	d.logger.WithFields(logrus.Fields{"root": root, "target": target.String()}).Info("located CUDA toolkit")
	if lib := env.New(root, target).FindSharedLibrary(d.config.FS, d.settings.Library); lib != nil {
		d.logger.WithField("path", lib.Path).Debug("found driver library")
	} else {
		d.logger.WithField("library", d.settings.Library).Warn("driver library not found under the toolkit; linking may fail")
	}

	emitter := directive.NewEmitter(d.config.Directives)
	if err := emitter.Emit(directive.ForToolkit(root, target, d.settings.Library)...); err != nil {
		return nil, err
	}

	manifest, err := d.Manifest(root, target)
	if err != nil {
		return nil, &core.Error{Op: "manifest", Err: err}
	}
	encoded, err := manifest.Marshal()
	if err != nil {
		return nil, &core.Error{Op: "manifest", Err: err}
	}

	current, err := stamp.Compute(stamp.Inputs{
		Root:       root,
		Target:     target.String(),
		ConfigPath: d.config.ConfigPath,
		Manifest:   encoded,
		Env:        env.Snapshot(d.config.Env, env.OverrideVar, env.InstallerVar),
		Outputs:    []string{relTo(outDir, res.Bindings), relTo(outDir, res.CgoFlags)},
	})
	if err != nil {
		return nil, &core.Error{Op: "stamp", Err: err}
	}

	prev, err := stamp.Load(outDir)
	if err != nil {
		d.logger.WithError(err).Warn("ignoring unreadable stamp")
		prev = nil
	}

	if !d.config.Force && current.Fresh(prev, outDir) && sameFile(res.Manifest, encoded) {
		d.logger.Info("bindings are up to date")
		res.Skipped = true
	} else {
		if err := os.MkdirAll(outDir, 0755); err != nil {
			return nil, &core.Error{Op: "write", Value: outDir, Err: fmt.Errorf("%w: %v", core.ErrOutputWrite, err)}
		}
		// The stamp is only rewritten once everything below succeeded
		if err := stamp.Remove(outDir); err != nil {
			return nil, err
		}
		if err := translator.WriteManifest(manifest, res.Manifest); err != nil {
			return nil, err
		}
		if err := d.config.Translator.Translate(ctx, res.Manifest, outDir); err != nil {
			return nil, err
		}
		if _, err := directive.WriteCgoFlags(filepath.Join(outDir, pkg), pkg, root, target, d.settings.Library); err != nil {
			return nil, err
		}
		if err := current.Save(outDir); err != nil {
			return nil, err
		}
		d.logger.WithField("out", filepath.Join(outDir, pkg)).Info("generated CUDA bindings")
	}

	if err := emitter.Emit(directive.RerunIfChanged(d.config.ConfigPath)); err != nil {
		return nil, err
	}
	res.Directives = emitter.Emitted()

	return res, nil
}

func relTo(base, path string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

func sameFile(path string, data []byte) bool {
	existing, err := os.ReadFile(path)
	return err == nil && bytes.Equal(existing, data)
}
