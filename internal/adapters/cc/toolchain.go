// Package cc implements the ports.Toolchain interface on top of the system
// C compiler. Discovery walks an ordered candidate list; absolute candidates
// are stat'd directly, bare names resolve via PATH.
package cc

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// DefaultCompilers are the candidates checked in order when the project
// config does not name its own.
var DefaultCompilers = []string{"cc", "gcc", "clang"}

// Toolchain implements ports.Toolchain.
type Toolchain struct {
	compilers []string
}

// New returns a Toolchain with the given candidate list. An empty list
// selects DefaultCompilers.
func New(compilers []string) *Toolchain {
	if len(compilers) == 0 {
		compilers = DefaultCompilers
	}
	return &Toolchain{compilers: compilers}
}

// Find returns the resolved path of the first available compiler candidate,
// or "" when none exists.
func (t *Toolchain) Find() string {
	for _, c := range t.compilers {
		if filepath.IsAbs(c) {
			if info, err := os.Stat(c); err == nil && !info.IsDir() {
				return c
			}
			continue
		}
		if p, err := exec.LookPath(c); err == nil {
			return p
		}
	}
	return ""
}

// Compile builds srcPath into an executable at binPath. The combined
// compiler output is returned in both the success and failure cases so the
// caller can persist diagnostics.
func (t *Toolchain) Compile(compiler, srcPath, binPath string) ([]byte, error) {
	cmd := exec.Command(compiler, "-O2", "-o", binPath, srcPath)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return out, fmt.Errorf("%s %s: %w", filepath.Base(compiler), filepath.Base(srcPath), err)
	}
	return out, nil
}

// Fresh reports whether the built artifact is newer than the backend source.
// A fresh artifact lets the orchestrator skip the compile subprocess
// entirely. Missing files are never fresh.
func Fresh(artifact, source string) bool {
	ai, err := os.Stat(artifact)
	if err != nil {
		return false
	}
	si, err := os.Stat(source)
	if err != nil {
		return false
	}
	return ai.ModTime().After(si.ModTime())
}
