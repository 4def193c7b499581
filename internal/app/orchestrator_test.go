package app

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corey/symscan/internal/ports"
)

// fakeToolchain implements ports.Toolchain with scripted behavior.
type fakeToolchain struct {
	compiler   string
	compileErr error
	output     []byte
	binContent []byte // artifact written on success; defaults to a stub
	finds      int
	compiles   int
}

func (f *fakeToolchain) Find() string {
	f.finds++
	return f.compiler
}

func (f *fakeToolchain) Compile(compiler, srcPath, binPath string) ([]byte, error) {
	f.compiles++
	if f.compileErr != nil {
		return f.output, f.compileErr
	}
	content := f.binContent
	if content == nil {
		content = []byte("bin")
	}
	if err := os.WriteFile(binPath, content, 0755); err != nil {
		return nil, err
	}
	return f.output, nil
}

// fakeBuilds is an in-memory ports.BuildState.
type fakeBuilds struct {
	rec *ports.BuildRecord
}

func (f *fakeBuilds) SaveBuild(rec *ports.BuildRecord) error { f.rec = rec; return nil }
func (f *fakeBuilds) LastBuild() (*ports.BuildRecord, error) { return f.rec, nil }
func (f *fakeBuilds) Clear() error                           { f.rec = nil; return nil }

// fakeBackend records invocations.
type fakeBackend struct {
	name string
	runs int
	err  error
}

func (f *fakeBackend) Name() string              { return f.name }
func (f *fakeBackend) Run(_ ports.RunSpec) error { f.runs++; return f.err }

func quietLog() *Log {
	return &Log{Verbose: true, Out: &bytes.Buffer{}, Err: &bytes.Buffer{}}
}

// newTestOrchestrator wires an orchestrator over a temp project with fake
// backends. Returns the orchestrator plus the native and fallback fakes.
func newTestOrchestrator(t *testing.T, tc *fakeToolchain, builds ports.BuildState, mode Mode) (*Orchestrator, *fakeBackend, *fakeBackend) {
	t.Helper()
	native := &fakeBackend{name: "native"}
	fallback := &fakeBackend{name: "fallback"}
	o := &Orchestrator{
		Toolchain:     tc,
		Builds:        builds,
		Paths:         NewPaths(t.TempDir()),
		Mode:          mode,
		ScannerSource: []byte("/* scanner source */\n"),
		Log:           quietLog(),
		NewNative:     func(string) ports.Backend { return native },
		NewFallback:   func() ports.Backend { return fallback },
	}
	return o, native, fallback
}

func TestToolchainUnavailableForcesFallback(t *testing.T) {
	tc := &fakeToolchain{compiler: ""}
	o, native, fallback := newTestOrchestrator(t, tc, nil, ModeAuto)

	name, err := o.Run(ports.RunSpec{Source: "lib.c", Out: "out.json", Schema: 1})
	require.NoError(t, err)
	assert.Equal(t, "fallback", name)
	assert.Equal(t, 1, fallback.runs)
	assert.Zero(t, native.runs)
	assert.Zero(t, tc.compiles)
}

func TestNativeModeWithoutToolchainFails(t *testing.T) {
	tc := &fakeToolchain{compiler: ""}
	o, native, fallback := newTestOrchestrator(t, tc, nil, ModeNative)

	_, err := o.Run(ports.RunSpec{Source: "lib.c", Out: "out.json", Schema: 1})
	assert.ErrorIs(t, err, ErrToolchainUnavailable)
	assert.Zero(t, native.runs)
	assert.Zero(t, fallback.runs)
}

func TestFallbackModeSkipsToolchainEntirely(t *testing.T) {
	tc := &fakeToolchain{compiler: "/usr/bin/cc"}
	o, native, fallback := newTestOrchestrator(t, tc, nil, ModeFallback)

	name, err := o.Run(ports.RunSpec{Source: "lib.c", Out: "out.json", Schema: 1})
	require.NoError(t, err)
	assert.Equal(t, "fallback", name)
	assert.Equal(t, 1, fallback.runs)
	assert.Zero(t, native.runs)
	assert.Zero(t, tc.finds)
}

func TestCompileSuccessRunsNative(t *testing.T) {
	tc := &fakeToolchain{compiler: "/usr/bin/cc"}
	builds := &fakeBuilds{}
	o, native, fallback := newTestOrchestrator(t, tc, builds, ModeAuto)

	name, err := o.Run(ports.RunSpec{Source: "lib.c", Out: "out.json", Schema: 1})
	require.NoError(t, err)
	assert.Equal(t, "native", name)
	assert.Equal(t, 1, native.runs)
	assert.Zero(t, fallback.runs)
	assert.Equal(t, 1, tc.compiles)

	require.NotNil(t, builds.rec)
	assert.True(t, builds.rec.Succeeded)
	assert.Equal(t, "/usr/bin/cc", builds.rec.Compiler)
}

func TestFreshArtifactSkipsRebuild(t *testing.T) {
	tc := &fakeToolchain{compiler: "/usr/bin/cc"}
	o, native, _ := newTestOrchestrator(t, tc, nil, ModeAuto)

	// Pre-materialize the backend source and a newer artifact.
	require.NoError(t, o.Paths.EnsureDirs())
	require.NoError(t, os.WriteFile(o.Paths.ScannerSrc, o.ScannerSource, 0644))
	require.NoError(t, os.WriteFile(o.Paths.Artifact, []byte("bin"), 0755))
	old := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(o.Paths.ScannerSrc, old, old))

	name, err := o.Run(ports.RunSpec{Source: "lib.c", Out: "out.json", Schema: 1})
	require.NoError(t, err)
	assert.Equal(t, "native", name)
	assert.Equal(t, 1, native.runs)
	assert.Zero(t, tc.compiles, "fresh artifact must not trigger a rebuild")
}

func TestChangedScannerSourceInvalidatesArtifact(t *testing.T) {
	tc := &fakeToolchain{compiler: "/usr/bin/cc"}
	o, native, _ := newTestOrchestrator(t, tc, nil, ModeAuto)

	// Stale setup: artifact newer than an outdated materialized source.
	require.NoError(t, o.Paths.EnsureDirs())
	require.NoError(t, os.WriteFile(o.Paths.ScannerSrc, []byte("old source"), 0644))
	require.NoError(t, os.WriteFile(o.Paths.Artifact, []byte("bin"), 0755))
	old := time.Now().Add(-time.Hour)
	recent := time.Now().Add(-time.Minute)
	require.NoError(t, os.Chtimes(o.Paths.ScannerSrc, old, old))
	require.NoError(t, os.Chtimes(o.Paths.Artifact, recent, recent))

	_, err := o.Run(ports.RunSpec{Source: "lib.c", Out: "out.json", Schema: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, tc.compiles, "changed source must force a rebuild")
	assert.Equal(t, 1, native.runs)

	got, err := os.ReadFile(o.Paths.ScannerSrc)
	require.NoError(t, err)
	assert.Equal(t, o.ScannerSource, got)
}

func TestCompileFailureFallsBackAndIsRecorded(t *testing.T) {
	tc := &fakeToolchain{
		compiler:   "/usr/bin/cc",
		compileErr: errors.New("exit status 1"),
		output:     []byte("scanner.c:3: error: expected ';'\n"),
	}
	builds := &fakeBuilds{}
	o, native, fallback := newTestOrchestrator(t, tc, builds, ModeAuto)

	name, err := o.Run(ports.RunSpec{Source: "lib.c", Out: "out.json", Schema: 1})
	require.NoError(t, err)
	assert.Equal(t, "fallback", name)
	assert.Equal(t, 1, fallback.runs)
	assert.Zero(t, native.runs)

	require.NotNil(t, builds.rec)
	assert.False(t, builds.rec.Succeeded)
	assert.Contains(t, builds.rec.Diagnostic, "expected ';'")
}

func TestCompileFailureInNativeModePropagates(t *testing.T) {
	tc := &fakeToolchain{compiler: "/usr/bin/cc", compileErr: errors.New("exit status 1")}
	o, _, fallback := newTestOrchestrator(t, tc, &fakeBuilds{}, ModeNative)

	_, err := o.Run(ports.RunSpec{Source: "lib.c", Out: "out.json", Schema: 1})
	assert.ErrorIs(t, err, ErrBuildFailed)
	assert.Zero(t, fallback.runs)
}

func TestRecordedFailureShortCircuitsRetry(t *testing.T) {
	tc := &fakeToolchain{compiler: "/usr/bin/cc", compileErr: errors.New("exit status 1")}
	builds := &fakeBuilds{}
	o, _, fallback := newTestOrchestrator(t, tc, builds, ModeAuto)

	spec := ports.RunSpec{Source: "lib.c", Out: "out.json", Schema: 1}
	_, err := o.Run(spec)
	require.NoError(t, err)
	require.Equal(t, 1, tc.compiles)

	// Same source, same compiler: the recorded failure suppresses the retry.
	_, err = o.Run(spec)
	require.NoError(t, err)
	assert.Equal(t, 1, tc.compiles, "failed build must not be retried for unchanged source")
	assert.Equal(t, 2, fallback.runs)
}

func TestChangedSourceRetriesAfterRecordedFailure(t *testing.T) {
	tc := &fakeToolchain{compiler: "/usr/bin/cc", compileErr: errors.New("exit status 1")}
	builds := &fakeBuilds{}
	o, _, _ := newTestOrchestrator(t, tc, builds, ModeAuto)

	spec := ports.RunSpec{Source: "lib.c", Out: "out.json", Schema: 1}
	_, err := o.Run(spec)
	require.NoError(t, err)
	require.Equal(t, 1, tc.compiles)

	o.ScannerSource = []byte("/* new scanner source */\n")
	_, err = o.Run(spec)
	require.NoError(t, err)
	assert.Equal(t, 2, tc.compiles, "new source fingerprint must retry the build")
}

func TestResetClearsArtifactsAndState(t *testing.T) {
	paths := NewPaths(t.TempDir())
	require.NoError(t, paths.EnsureDirs())
	require.NoError(t, os.WriteFile(paths.ScannerSrc, []byte("src"), 0644))
	require.NoError(t, os.WriteFile(paths.Artifact, []byte("bin"), 0755))
	builds := &fakeBuilds{rec: &ports.BuildRecord{Compiler: "cc"}}

	require.NoError(t, Reset(paths, builds))

	assert.NoFileExists(t, paths.ScannerSrc)
	assert.NoFileExists(t, paths.Artifact)
	assert.Nil(t, builds.rec)

	// Idempotent.
	assert.NoError(t, Reset(paths, builds))
}

func TestPathsLayout(t *testing.T) {
	p := NewPaths("/project")
	assert.Equal(t, filepath.Join("/project", ".symscan"), p.Root)
	assert.Equal(t, filepath.Join("/project", ".symscan", "scanner.c"), p.ScannerSrc)
	assert.Equal(t, filepath.Join("/project", ".symscan", "scanner"), p.Artifact)
	assert.Equal(t, filepath.Join("/project", ".symscan", "state.db"), p.DB)
}
