package ports

// Toolchain locates and drives a system C compiler. The concrete
// implementation lives in internal/adapters/cc. A nil or empty Find result
// means no compiler is available and the orchestrator must fall back.
type Toolchain interface {
	// Find returns the resolved path of the first available compiler
	// candidate, or "" when none exists on this host.
	Find() string

	// Compile builds srcPath into an executable at binPath using the given
	// compiler. The combined compiler output is always returned so callers
	// can persist diagnostics even on success.
	Compile(compiler, srcPath, binPath string) ([]byte, error)
}
