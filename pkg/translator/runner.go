// pkg/translator/runner.go
package translator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/arc-language/cudabind/pkg/core"
	"github.com/arc-language/cudabind/pkg/platform"
)

// DefaultCommand is the c-for-go binding generator
const DefaultCommand = "c-for-go"

// Config configures a Runner
type Config struct {
	Command     string         // Default: DefaultCommand
	Args        []string       // Placed before the generated arguments
	Env         []string       // Extra KEY=value pairs for the subprocess
	PackageName string         // Used to locate the primary output file
	Logger      *logrus.Logger // Optional
}

// Runner invokes the external translator
type Runner struct {
	config *Config
	logger *logrus.Logger
}

var _ core.Translator = (*Runner)(nil)

// NewRunner creates a Runner
func NewRunner(cfg *Config) *Runner {
	if cfg == nil {
		cfg = &Config{}
	}
	if cfg.Command == "" {
		cfg.Command = DefaultCommand
	}
	if cfg.PackageName == "" {
		cfg.PackageName = DefaultOptions().PackageName
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}

	return &Runner{config: cfg, logger: logger}
}

// Name returns the translator command's base name
func (r *Runner) Name() string {
	return filepath.Base(r.config.Command)
}

// IsAvailable checks that the translator can be executed
func (r *Runner) IsAvailable() bool {
	if strings.ContainsAny(r.config.Command, `/\`) {
		info, err := os.Stat(r.config.Command)
		return err == nil && !info.IsDir()
	}
	return platform.CommandExists(r.config.Command)
}

// PrimaryFile returns the path of the file the translator must produce
func PrimaryFile(outDir, pkg string) string {
	return filepath.Join(outDir, pkg, pkg+".go")
}

// Translate runs the translator to completion. Any failure is returned with
// the translator's own output attached verbatim.
func (r *Runner) Translate(ctx context.Context, manifestPath, outDir string) error {
	if !r.IsAvailable() {
		return core.Errorf("translate", r.config.Command, core.ErrTranslatorFailure,
			"translator %q not found in PATH", r.config.Command)
	}

	args := append([]string(nil), r.config.Args...)
	args = append(args, "-out", outDir, "-nostamp", manifestPath)

	cmd := exec.CommandContext(ctx, r.config.Command, args...)
	if len(r.config.Env) > 0 {
		cmd.Env = append(os.Environ(), r.config.Env...)
	}

	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	r.logger.WithFields(logrus.Fields{
		"command":  r.config.Command,
		"manifest": manifestPath,
		"out":      outDir,
	}).Debug("running translator")

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(output.String())
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return core.Errorf("translate", manifestPath, core.ErrTranslatorFailure,
				"%s exited with status %d:\n%s", r.Name(), exitErr.ExitCode(), detail)
		}
		return core.Errorf("translate", manifestPath, core.ErrTranslatorFailure,
			"running %s: %v\n%s", r.Name(), err, detail)
	}

	if r.logger.IsLevelEnabled(logrus.DebugLevel) && output.Len() > 0 {
		r.logger.Debug(strings.TrimSpace(output.String()))
	}

	primary := PrimaryFile(outDir, r.config.PackageName)
	if _, err := os.Stat(primary); err != nil {
		return core.Errorf("translate", primary, core.ErrTranslatorFailure,
			"%s produced no output", r.Name())
	}

	return nil
}

// WriteManifest persists the manifest for the translator to read
func WriteManifest(m *Manifest, path string) error {
	data, err := m.Marshal()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return &core.Error{Op: "write", Value: filepath.Dir(path), Err: fmt.Errorf("%w: %v", core.ErrOutputWrite, err)}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return &core.Error{Op: "write", Value: path, Err: fmt.Errorf("%w: %v", core.ErrOutputWrite, err)}
	}
	return nil
}
