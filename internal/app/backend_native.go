package app

import (
	"errors"
	"fmt"
	"os/exec"
	"strconv"

	"github.com/corey/symscan/internal/ports"
)

// NativeBackend executes the compiled scanner binary. Invocation follows
// the positional contract <source> <out> <schema> [annotation]; the
// subprocess writes the manifest itself and its diagnostics pass through
// to the run's streams. A non-zero exit propagates as an error.
type NativeBackend struct {
	Bin        string
	Annotation string // export annotation override; "" uses the scanner's default
	Log        *Log
}

// Name identifies this backend in summaries and logs.
func (b *NativeBackend) Name() string { return "native" }

// Run invokes the scanner binary and waits for it to finish.
func (b *NativeBackend) Run(spec ports.RunSpec) error {
	args := []string{spec.Source, spec.Out, strconv.Itoa(spec.Schema)}
	if b.Annotation != "" {
		args = append(args, b.Annotation)
	}
	cmd := exec.Command(b.Bin, args...)
	cmd.Stdout = b.Log.Out
	cmd.Stderr = b.Log.Err

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("native scanner exited %d", exitErr.ExitCode())
		}
		return fmt.Errorf("run native scanner: %w", err)
	}
	return nil
}
