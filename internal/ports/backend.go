// Package ports defines the interfaces (contracts) that adapters must implement.
// These are the boundaries of the hexagonal architecture. Domain logic depends
// only on these interfaces, never on concrete implementations.
package ports

// RunSpec carries the arguments every scanning backend accepts. Both the
// native (compiled) and fallback (in-process) backends honor the same
// contract: scan Source, write the manifest to Out, stamp it with Schema.
type RunSpec struct {
	Source  string // path of the source file to scan
	Out     string // manifest destination path
	Schema  int    // manifest schema version
	Verbose bool   // extra diagnostics (fallback backend only)
}

// Backend is one scanning implementation. Run scans spec.Source and writes
// the manifest to spec.Out, or returns an error and leaves any prior
// manifest at spec.Out untouched. Diagnostics go to the run's log context,
// never into the manifest file.
type Backend interface {
	// Name identifies the backend in summaries and logs ("native", "fallback").
	Name() string

	// Run performs one complete scan. The returned error wraps the backend's
	// failure cause; a nil error means the manifest was written.
	Run(spec RunSpec) error
}
