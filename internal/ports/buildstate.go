package ports

// BuildRecord captures the outcome of one native-backend build attempt.
// SourceHash fingerprints the backend source that was compiled, so a
// recorded failure only suppresses retries while that source is unchanged.
type BuildRecord struct {
	Compiler   string `json:"compiler"`
	SourceHash string `json:"source_hash"`
	Succeeded  bool   `json:"succeeded"`
	When       int64  `json:"when"` // unix seconds
	Diagnostic string `json:"diagnostic,omitempty"`
}

// BuildState persists build outcomes between runs so the orchestrator can
// skip a compile that is known to fail for the current backend source.
// The backing store (bbolt) is project-scoped under .symscan/.
//
// Crash safety: SaveBuild must be transactional. A crash mid-write must not
// corrupt a previously committed record.
type BuildState interface {
	// SaveBuild records the outcome of a build attempt, replacing any
	// prior record.
	SaveBuild(rec *BuildRecord) error

	// LastBuild returns the most recent build record.
	// Returns nil, nil when no build has been recorded.
	LastBuild() (*BuildRecord, error)

	// Clear removes all recorded build state. Idempotent.
	Clear() error
}
