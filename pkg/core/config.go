// pkg/core/config.go
package core

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is looked up in the working directory when no path is given
const DefaultConfigFile = "cudabind.yaml"

// DefaultSearchPaths are the conventional POSIX install locations, tried in
// order after the override list
var DefaultSearchPaths = []string{"/usr/local/cuda", "/opt/cuda"}

// Config holds cudabind configuration
type Config struct {
	// SearchPaths are the conventional install locations tried after the override list
	SearchPaths []string `yaml:"search_paths"`
	// Library is the shared library linked by name
	Library string `yaml:"library"`
	// PackageName is the Go package the bindings are generated into
	PackageName string `yaml:"package_name"`
	// Header is the umbrella header used as parse root
	Header string `yaml:"header"`
	// Translator is the binding generator command
	Translator string `yaml:"translator"`
	// OutputDir is used when OUT_DIR is unset
	OutputDir string `yaml:"output_dir"`
	// EnumStyle selects how C enums are translated: eval or cgo
	EnumStyle string `yaml:"enum_style"`
	// Allow adds patterns to the built-in allowlist, keyed by rule group
	Allow map[string][]string `yaml:"allow,omitempty"`
	Debug bool                `yaml:"debug"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		SearchPaths: append([]string(nil), DefaultSearchPaths...),
		Library:     "cuda",
		PackageName: "cuda",
		Header:      "cuda.h",
		Translator:  "c-for-go",
		OutputDir:   ".",
		EnumStyle:   "eval",
		Debug:       false,
	}
}

// LoadConfig loads configuration from file. A missing file yields defaults;
// fields absent from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFile
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveConfig writes cfg as YAML to path. An existing file is kept unless
// overwrite is set.
func SaveConfig(cfg *Config, path string, overwrite bool) error {
	if path == "" {
		path = DefaultConfigFile
	}

	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return &Error{Op: "init", Value: path, Err: fmt.Errorf("%w: file exists", ErrOutputWrite)}
		}
	}

	var buf bytes.Buffer
	buf.WriteString("# cudabind configuration\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return &Error{Op: "init", Value: dir, Err: fmt.Errorf("%w: %v", ErrOutputWrite, err)}
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return &Error{Op: "init", Value: path, Err: fmt.Errorf("%w: %v", ErrOutputWrite, err)}
	}
	return nil
}
