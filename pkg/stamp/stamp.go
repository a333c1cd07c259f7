// pkg/stamp/stamp.go
package stamp

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/arc-language/cudabind/pkg/core"
)

// FileName is the stamp file written next to the generated output
const FileName = ".cudabind.toml"

// Stamp records the inputs of the last successful generation. Regeneration
// is skipped while the fingerprint matches.
type Stamp struct {
	Root        string   `toml:"root"`
	Target      string   `toml:"target"`
	Config      string   `toml:"config"`
	ConfigHash  string   `toml:"config_hash"`
	Outputs     []string `toml:"outputs"`
	Fingerprint string   `toml:"fingerprint"`
}

// Inputs are the values a generation depends on
type Inputs struct {
	Root       string
	Target     string
	ConfigPath string   // Config file whose changes trigger a rerun
	Manifest   []byte   // Encoded translator manifest
	Env        []string // Sorted KEY=value pairs
	Outputs    []string // Relative paths of required outputs
}

// Compute builds a Stamp from inputs. A missing config file hashes as empty.
func Compute(in Inputs) (*Stamp, error) {
	configHash := ""
	if in.ConfigPath != "" {
		data, err := os.ReadFile(in.ConfigPath)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("hashing %s: %w", in.ConfigPath, err)
		}
		if err == nil {
			configHash = hashOf(data)
		}
	}

	h := sha256.New()
	for _, part := range []string{in.Root, in.Target, configHash, hashOf(in.Manifest), strings.Join(in.Env, "\n")} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}

	return &Stamp{
		Root:        in.Root,
		Target:      in.Target,
		Config:      in.ConfigPath,
		ConfigHash:  configHash,
		Outputs:     append([]string(nil), in.Outputs...),
		Fingerprint: hex.EncodeToString(h.Sum(nil)),
	}, nil
}

func hashOf(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Load reads the stamp in dir. A missing stamp returns nil and no error.
func Load(dir string) (*Stamp, error) {
	path := filepath.Join(dir, FileName)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}

	var s Stamp
	if _, err := toml.DecodeFile(path, &s); err != nil {
		return nil, fmt.Errorf("reading stamp %s: %w", path, err)
	}
	return &s, nil
}

// Save writes the stamp into dir
func (s *Stamp) Save(dir string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(s); err != nil {
		return fmt.Errorf("encoding stamp: %w", err)
	}

	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return &core.Error{Op: "write", Value: path, Err: fmt.Errorf("%w: %v", core.ErrOutputWrite, err)}
	}
	return nil
}

// Remove deletes the stamp in dir so that an interrupted or failed
// generation is never taken as up to date. A missing stamp is not an error.
func Remove(dir string) error {
	path := filepath.Join(dir, FileName)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return &core.Error{Op: "write", Value: path, Err: fmt.Errorf("%w: %v", core.ErrOutputWrite, err)}
	}
	return nil
}

// Fresh reports whether prev matches s and every recorded output still
// exists under dir.
func (s *Stamp) Fresh(prev *Stamp, dir string) bool {
	if prev == nil || prev.Fingerprint != s.Fingerprint {
		return false
	}
	for _, out := range s.Outputs {
		if _, err := os.Stat(filepath.Join(dir, out)); err != nil {
			return false
		}
	}
	return true
}
