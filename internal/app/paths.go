package app

import (
	"os"
	"path/filepath"
)

// Paths holds all resolved filesystem paths for the .symscan/ project
// directory. All fields are pre-computed strings.
type Paths struct {
	Root       string // .symscan/
	ScannerSrc string // .symscan/scanner.c — materialized native backend source
	Artifact   string // .symscan/scanner — compiled native backend
	DB         string // .symscan/state.db — build-state store
}

// NewPaths constructs all resolved paths from a project root directory.
func NewPaths(projectRoot string) *Paths {
	root := filepath.Join(projectRoot, ".symscan")
	return &Paths{
		Root:       root,
		ScannerSrc: filepath.Join(root, "scanner.c"),
		Artifact:   filepath.Join(root, "scanner"),
		DB:         filepath.Join(root, "state.db"),
	}
}

// EnsureDirs creates the .symscan/ directory. Idempotent.
func (p *Paths) EnsureDirs() error {
	return os.MkdirAll(p.Root, 0755)
}
