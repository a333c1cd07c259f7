package cudabind

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arc-language/cudabind/pkg/core"
	"github.com/arc-language/cudabind/pkg/env"
	"github.com/arc-language/cudabind/pkg/platform"
	"github.com/arc-language/cudabind/pkg/stamp"
)

// fakeTranslator writes a minimal package the way c-for-go lays it out
type fakeTranslator struct {
	calls  int
	err    error
	output string // Bindings content; written even when err is set
}

func (f *fakeTranslator) Name() string {
	return "fake"
}

func (f *fakeTranslator) IsAvailable() bool {
	return true
}

func (f *fakeTranslator) Translate(ctx context.Context, manifestPath, outDir string) error {
	f.calls++
	if _, err := os.Stat(manifestPath); err != nil {
		return fmt.Errorf("manifest not written: %w", err)
	}
	dir := filepath.Join(outDir, "cuda")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	output := f.output
	if output == "" {
		output = "package cuda\n"
	}
	if err := os.WriteFile(filepath.Join(dir, "cuda.go"), []byte(output), 0644); err != nil {
		return err
	}
	return f.err
}

type fixture struct {
	out        string
	config     string
	directives *bytes.Buffer
	translator *fakeTranslator
}

func newFixture(t *testing.T) *fixture {
	dir := t.TempDir()
	return &fixture{
		out:        filepath.Join(dir, "gen"),
		config:     filepath.Join(dir, "cudabind.yaml"),
		directives: &bytes.Buffer{},
		translator: &fakeTranslator{},
	}
}

func (f *fixture) director(vars env.Map, fs env.FileSystem, target string) *Director {
	f.directives.Reset()
	return New(&Config{
		ConfigPath: f.config,
		Target:     target,
		OutputDir:  f.out,
		Env:        vars,
		FS:         fs,
		Translator: f.translator,
		Directives: f.directives,
	})
}

func TestRunDefaultLinuxInstall(t *testing.T) {
	f := newFixture(t)
	fs := env.NewMapFS("/usr/local/cuda/include/cuda.h", "/usr/local/cuda/lib64/libcuda.so")

	res, err := f.director(env.Map{}, fs, "x86_64-unknown-linux-gnu").Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/usr/local/cuda", res.Root)
	assert.False(t, res.Skipped)
	assert.Equal(t, 1, f.translator.calls)
	assert.Equal(t, "cudabind:link-search=native=/usr/local/cuda/lib64\n"+
		"cudabind:link-lib=dylib=cuda\n"+
		"cudabind:rerun-if-changed="+f.config+"\n", f.directives.String())

	assert.FileExists(t, res.Manifest)
	assert.FileExists(t, res.Bindings)
	assert.FileExists(t, res.CgoFlags)
	assert.FileExists(t, filepath.Join(f.out, stamp.FileName))

	flags, err := os.ReadFile(res.CgoFlags)
	require.NoError(t, err)
	assert.Contains(t, string(flags), "#cgo LDFLAGS: -L/usr/local/cuda/lib64 -lcuda")

	manifest, err := os.ReadFile(res.Manifest)
	require.NoError(t, err)
	assert.Contains(t, string(manifest), "/usr/local/cuda/include")
}

func TestRunWindowsOverride(t *testing.T) {
	f := newFixture(t)
	vars := env.Map{env.OverrideVar: `C:\CudaA;C:\CudaB`, env.InstallerVar: `D:\Other`}

	res, err := f.director(vars, env.NewMapFS(), "x86_64-pc-windows-msvc").Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, `C:\CudaA`, res.Root)
	assert.Equal(t, []string{
		`cudabind:link-search=native=C:\CudaA\lib\x64`,
		"cudabind:link-lib=dylib=cuda",
		"cudabind:rerun-if-changed=" + f.config,
	}, directiveStrings(res))
}

func TestRunIsIdempotent(t *testing.T) {
	f := newFixture(t)
	fs := env.NewMapFS("/opt/cuda/include/cuda.h")
	linux := "x86_64-unknown-linux-gnu"

	first, err := f.director(env.Map{}, fs, linux).Run(context.Background())
	require.NoError(t, err)
	firstDirectives := f.directives.String()
	firstFiles := readAll(t, first.Manifest, first.CgoFlags, filepath.Join(f.out, stamp.FileName))

	second, err := f.director(env.Map{}, fs, linux).Run(context.Background())
	require.NoError(t, err)

	assert.True(t, second.Skipped)
	assert.Equal(t, 1, f.translator.calls, "unchanged inputs skip the translator")
	assert.Equal(t, firstDirectives, f.directives.String())
	assert.Equal(t, first.Manifest, second.Manifest)
	assert.Equal(t, first.Bindings, second.Bindings)
	assert.Equal(t, firstFiles, readAll(t, second.Manifest, second.CgoFlags, filepath.Join(f.out, stamp.FileName)))
}

func TestRunConfigChangeTriggersRegeneration(t *testing.T) {
	f := newFixture(t)
	fs := env.NewMapFS("/opt/cuda/include/cuda.h")
	linux := "x86_64-unknown-linux-gnu"

	_, err := f.director(env.Map{}, fs, linux).Run(context.Background())
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(f.config, []byte("debug: true\n"), 0644))
	res, err := f.director(env.Map{}, fs, linux).Run(context.Background())
	require.NoError(t, err)
	assert.False(t, res.Skipped)
	assert.Equal(t, 2, f.translator.calls)
}

func TestRunForce(t *testing.T) {
	f := newFixture(t)
	fs := env.NewMapFS("/opt/cuda/include/cuda.h")

	_, err := f.director(env.Map{}, fs, "x86_64-unknown-linux-gnu").Run(context.Background())
	require.NoError(t, err)

	d := f.director(env.Map{}, fs, "x86_64-unknown-linux-gnu")
	d.config.Force = true
	res, err := d.Run(context.Background())
	require.NoError(t, err)
	assert.False(t, res.Skipped)
	assert.Equal(t, 2, f.translator.calls)
}

func TestRunToolkitNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.director(env.Map{env.OverrideVar: "/nowhere"}, env.NewMapFS(), "x86_64-unknown-linux-gnu").Run(context.Background())
	require.ErrorIs(t, err, ErrToolkitNotFound)
	assert.Contains(t, err.Error(), "/nowhere")
	assert.Empty(t, f.directives.String(), "nothing is emitted before the toolkit is found")
	assert.Equal(t, 0, f.translator.calls)
}

func TestRunMalformedTarget(t *testing.T) {
	f := newFixture(t)

	_, err := f.director(env.Map{}, env.NewMapFS(), "wasm32-wasi").Run(context.Background())
	require.ErrorIs(t, err, ErrMalformedTriple)
	assert.Contains(t, err.Error(), "wasm32-wasi")
}

func TestRunTranslatorFailure(t *testing.T) {
	f := newFixture(t)
	f.translator.err = core.Errorf("translate", "cuda.yml", core.ErrTranslatorFailure, "cuda.h:1: boom")

	_, err := f.director(env.Map{}, env.NewMapFS("/opt/cuda/include/cuda.h"), "x86_64-unknown-linux-gnu").Run(context.Background())
	require.ErrorIs(t, err, ErrTranslatorFailure)
	assert.Contains(t, err.Error(), "cuda.h:1: boom")
	assert.NoFileExists(t, filepath.Join(f.out, stamp.FileName), "a failed run leaves no stamp")
}

func TestRunFailureInvalidatesStamp(t *testing.T) {
	f := newFixture(t)
	fs := env.NewMapFS("/opt/cuda/include/cuda.h")
	linux := "x86_64-unknown-linux-gnu"

	_, err := f.director(env.Map{}, fs, linux).Run(context.Background())
	require.NoError(t, err)

	// A config change reruns the translator, which leaves broken output behind
	require.NoError(t, os.WriteFile(f.config, []byte("debug: true\n"), 0644))
	f.translator.err = core.Errorf("translate", "cuda.yml", core.ErrTranslatorFailure, "cuda.h:7: syntax error")
	f.translator.output = "package cuda\nfunc broken( {\n"
	_, err = f.director(env.Map{}, fs, linux).Run(context.Background())
	require.ErrorIs(t, err, ErrTranslatorFailure)
	assert.NoFileExists(t, filepath.Join(f.out, stamp.FileName))

	// Reverting the config must not revive the first run's stamp
	require.NoError(t, os.Remove(f.config))
	f.translator.err, f.translator.output = nil, ""
	res, err := f.director(env.Map{}, fs, linux).Run(context.Background())
	require.NoError(t, err)
	assert.False(t, res.Skipped)
	assert.Equal(t, 3, f.translator.calls)

	bindings, err := os.ReadFile(res.Bindings)
	require.NoError(t, err)
	assert.Equal(t, "package cuda\n", string(bindings))
	assert.FileExists(t, filepath.Join(f.out, stamp.FileName))
}

func TestManifestEnumStyleFromSettings(t *testing.T) {
	f := newFixture(t)
	d := f.director(env.Map{}, env.NewMapFS(), "x86_64-unknown-linux-gnu")
	d.settings.EnumStyle = "cgo"

	m, err := d.Manifest("/opt/cuda", platform.MustParseTriple("x86_64-unknown-linux-gnu"))
	require.NoError(t, err)
	assert.Equal(t, "cgo", m.Translator.ConstRules["enum"])
}

func TestRunOutputWriteFailure(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.WriteFile(f.out, []byte("not a directory"), 0644))

	_, err := f.director(env.Map{}, env.NewMapFS("/opt/cuda/include/cuda.h"), "x86_64-unknown-linux-gnu").Run(context.Background())
	require.ErrorIs(t, err, ErrOutputWrite)
	assert.Contains(t, err.Error(), f.out)
}

func TestOutputDirPrecedence(t *testing.T) {
	d := New(&Config{Env: env.Map{env.OutDirVar: "/from/env"}})
	assert.Equal(t, "/from/env", d.OutputDir())

	d = New(&Config{Env: env.Map{env.OutDirVar: "/from/env"}, OutputDir: "/from/flag"})
	assert.Equal(t, "/from/flag", d.OutputDir())

	settings := core.DefaultConfig()
	settings.OutputDir = "internal/cuda"
	d = New(&Config{Env: env.Map{}, Settings: settings})
	assert.Equal(t, "internal/cuda", d.OutputDir())
}

func TestTargetFromEnvironment(t *testing.T) {
	d := New(&Config{Env: env.Map{"TARGET": "x86_64-pc-windows-msvc"}})
	target, err := d.Target()
	require.NoError(t, err)
	assert.True(t, target.IsWindows())
}

func TestLinkDirectives(t *testing.T) {
	d := New(&Config{
		Target: "x86_64-unknown-linux-gnu",
		Env:    env.Map{},
		FS:     env.NewMapFS("/usr/local/cuda/include/cuda.h"),
	})

	ds, err := d.LinkDirectives()
	require.NoError(t, err)
	require.Len(t, ds, 2)
	assert.Equal(t, "cudabind:link-search=native=/usr/local/cuda/lib64", ds[0].String())
	assert.Equal(t, "cudabind:link-lib=dylib=cuda", ds[1].String())
}

func directiveStrings(res *Result) []string {
	var out []string
	for _, d := range res.Directives {
		out = append(out, d.String())
	}
	return out
}

func readAll(t *testing.T, paths ...string) map[string]string {
	out := make(map[string]string, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		require.NoError(t, err)
		out[p] = string(data)
	}
	return out
}
