package core

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cudabind.yaml")
	require.NoError(t, os.WriteFile(path, []byte("search_paths: [/srv/cuda]\ndebug: true\nallow:\n  function: ['^nvrtc']\n"), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"/srv/cuda"}, cfg.SearchPaths)
	assert.True(t, cfg.Debug)
	assert.Equal(t, []string{"^nvrtc"}, cfg.Allow["function"])
	assert.Equal(t, "c-for-go", cfg.Translator, "unset fields keep defaults")
}

func TestLoadConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cudabind.yaml")
	require.NoError(t, os.WriteFile(path, []byte("search_paths: {"), 0644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "cudabind.yaml")
	cfg := DefaultConfig()
	cfg.Library = "nvrtc"
	cfg.EnumStyle = "cgo"

	require.NoError(t, SaveConfig(cfg, path, false))
	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestSaveConfigKeepsExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cudabind.yaml")
	require.NoError(t, os.WriteFile(path, []byte("library: nvrtc\n"), 0644))

	err := SaveConfig(DefaultConfig(), path, false)
	require.ErrorIs(t, err, ErrOutputWrite)
	assert.Contains(t, err.Error(), path)

	require.NoError(t, SaveConfig(DefaultConfig(), path, true))
	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "cuda", loaded.Library)
}

func TestDefaultConfigSearchPaths(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, DefaultSearchPaths, cfg.SearchPaths)

	cfg.SearchPaths[0] = "/elsewhere"
	assert.Equal(t, "/usr/local/cuda", DefaultSearchPaths[0])
}

func TestError(t *testing.T) {
	err := Errorf("locate", "x86_64-unknown-linux-gnu", ErrUnsupportedTarget, "CUDA_PATH is only used on Windows")
	assert.True(t, errors.Is(err, ErrUnsupportedTarget))
	assert.Equal(t, "locate x86_64-unknown-linux-gnu: unsupported target for discovery strategy: CUDA_PATH is only used on Windows", err.Error())

	var e *Error
	require.True(t, errors.As(error(err), &e))
	assert.Equal(t, "locate", e.Op)

	plain := &Error{Op: "write", Err: ErrOutputWrite}
	assert.Equal(t, "write: writing generated output failed", plain.Error())
}
