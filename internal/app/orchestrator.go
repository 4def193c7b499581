package app

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"github.com/corey/symscan/internal/adapters/cc"
	"github.com/corey/symscan/internal/ports"
)

// Mode selects which backends the orchestrator may use. Auto prefers the
// native backend and falls back automatically; the other two pin one
// backend and surface its failures directly.
type Mode string

const (
	ModeAuto     Mode = "auto"
	ModeNative   Mode = "native"
	ModeFallback Mode = "fallback"
)

// State is one phase of the build-or-fallback decision.
type State int

const (
	StateInit State = iota
	StateBuildingNative
	StateNativeReady
	StateFallbackForced
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateBuildingNative:
		return "building-native"
	case StateNativeReady:
		return "native-ready"
	case StateFallbackForced:
		return "fallback-forced"
	}
	return "unknown"
}

// Orchestrator chooses between the native and fallback scanning backends
// and drives one run end to end. Inputs to the choice: configured mode,
// toolchain availability, artifact freshness against the materialized
// backend source, and the recorded outcome of the previous build.
type Orchestrator struct {
	Toolchain     ports.Toolchain
	Builds        ports.BuildState // nil disables the prior-failure short-circuit
	Paths         *Paths
	Mode          Mode
	Annotation    string
	ScannerSource []byte // embedded native backend source
	Log           *Log

	// NewNative and NewFallback are test seams; nil selects the real backends.
	NewNative   func(bin string) ports.Backend
	NewFallback func() ports.Backend
}

// Run performs one orchestrated scan. Returns the name of the backend that
// ran, for the caller's summary.
func (o *Orchestrator) Run(spec ports.RunSpec) (string, error) {
	backend, err := o.selectBackend()
	if err != nil {
		return "", err
	}
	return backend.Name(), backend.Run(spec)
}

// selectBackend walks the decision state machine to a ready backend.
func (o *Orchestrator) selectBackend() (ports.Backend, error) {
	state := StateInit
	var compiler string

	for {
		o.Log.Debugf("orchestrator state: %s", state)

		switch state {
		case StateInit:
			if o.Mode == ModeFallback {
				state = StateFallbackForced
				break
			}
			compiler = o.Toolchain.Find()
			if compiler == "" {
				if o.Mode == ModeNative {
					return nil, ErrToolchainUnavailable
				}
				o.Log.Debugf("no C compiler found")
				state = StateFallbackForced
				break
			}
			state = StateBuildingNative

		case StateBuildingNative:
			if err := o.prepareScannerSource(); err != nil {
				return nil, err
			}
			if cc.Fresh(o.Paths.Artifact, o.Paths.ScannerSrc) {
				o.Log.Debugf("artifact is fresh, skipping rebuild")
				state = StateNativeReady
				break
			}

			srcHash := sourceHash(o.ScannerSource)
			if o.priorBuildFailed(compiler, srcHash) {
				o.Log.Debugf("previous build with %s failed for this source", compiler)
				state = StateFallbackForced
				break
			}

			out, err := o.Toolchain.Compile(compiler, o.Paths.ScannerSrc, o.Paths.Artifact)
			o.recordBuild(compiler, srcHash, err == nil, out)
			if err != nil {
				if o.Mode == ModeNative {
					return nil, fmt.Errorf("%w: %v", ErrBuildFailed, err)
				}
				o.Log.Debugf("native build failed: %v", err)
				state = StateFallbackForced
				break
			}
			state = StateNativeReady

		case StateNativeReady:
			if o.NewNative != nil {
				return o.NewNative(o.Paths.Artifact), nil
			}
			return &NativeBackend{Bin: o.Paths.Artifact, Annotation: o.Annotation, Log: o.Log}, nil

		case StateFallbackForced:
			if o.NewFallback != nil {
				return o.NewFallback(), nil
			}
			return &FallbackBackend{Annotation: o.Annotation, Log: o.Log}, nil
		}
	}
}

// prepareScannerSource materializes the embedded backend source under
// .symscan/. Rewriting only on content change keeps the file's mtime
// stable, so the freshness check stays meaningful across runs.
func (o *Orchestrator) prepareScannerSource() error {
	if err := o.Paths.EnsureDirs(); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	existing, err := os.ReadFile(o.Paths.ScannerSrc)
	if err == nil && bytes.Equal(existing, o.ScannerSource) {
		return nil
	}
	if err := os.WriteFile(o.Paths.ScannerSrc, o.ScannerSource, 0644); err != nil {
		return fmt.Errorf("materialize scanner source: %w", err)
	}
	return nil
}

// priorBuildFailed reports whether the recorded last build failed for the
// same compiler and the same backend source.
func (o *Orchestrator) priorBuildFailed(compiler, srcHash string) bool {
	if o.Builds == nil {
		return false
	}
	rec, err := o.Builds.LastBuild()
	if err != nil || rec == nil {
		return false
	}
	return !rec.Succeeded && rec.Compiler == compiler && rec.SourceHash == srcHash
}

// recordBuild persists the build outcome. Best-effort: a store failure
// costs a retried compile next run, nothing more.
func (o *Orchestrator) recordBuild(compiler, srcHash string, succeeded bool, out []byte) {
	if o.Builds == nil {
		return
	}
	rec := &ports.BuildRecord{
		Compiler:   compiler,
		SourceHash: srcHash,
		Succeeded:  succeeded,
		When:       time.Now().Unix(),
		Diagnostic: diagnosticTail(out),
	}
	if err := o.Builds.SaveBuild(rec); err != nil {
		o.Log.Debugf("record build state: %v", err)
	}
}

// diagnosticTail keeps the last 2 KiB of compiler output. Errors come last.
func diagnosticTail(out []byte) string {
	const keep = 2048
	if len(out) > keep {
		out = out[len(out)-keep:]
	}
	return string(out)
}

func sourceHash(src []byte) string {
	sum := sha256.Sum256(src)
	return hex.EncodeToString(sum[:])
}

// Reset deletes the built artifact, the materialized backend source, and
// all recorded build state. The next auto run starts from a clean slate —
// the operator's override for a falsely fresh or poisoned artifact.
func Reset(paths *Paths, builds ports.BuildState) error {
	for _, p := range []string{paths.Artifact, paths.ScannerSrc} {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove %s: %w", p, err)
		}
	}
	if builds != nil {
		if err := builds.Clear(); err != nil {
			return fmt.Errorf("clear build state: %w", err)
		}
	}
	return nil
}
