package app

import (
	"fmt"
	"io"
	"os"
)

// Log is a run-scoped logging context. There is no global logger: each
// orchestration run constructs one Log and passes it to every step, so
// verbosity and output destinations are scoped to that run.
type Log struct {
	Verbose bool
	Out     io.Writer
	Err     io.Writer
}

// NewLog returns a Log writing to the process streams.
func NewLog(verbose bool) *Log {
	return &Log{Verbose: verbose, Out: os.Stdout, Err: os.Stderr}
}

// Infof writes an end-user message to the output stream.
func (l *Log) Infof(format string, args ...any) {
	fmt.Fprintf(l.Out, format+"\n", args...)
}

// Debugf writes a step-level diagnostic, shown only in verbose runs.
func (l *Log) Debugf(format string, args ...any) {
	if !l.Verbose {
		return
	}
	fmt.Fprintf(l.Out, "[verbose] "+format+"\n", args...)
}

// Errorf writes a diagnostic to the error stream.
func (l *Log) Errorf(format string, args ...any) {
	fmt.Fprintf(l.Err, "error: "+format+"\n", args...)
}
