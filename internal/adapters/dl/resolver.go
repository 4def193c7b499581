// Package dl resolves exported symbols in a built shared library (.so on
// Linux, .dylib on macOS) using purego's dlopen/dlsym. It lets verify prove
// that every function the manifest claims is actually exported by the
// compiled binary.
package dl

import (
	"fmt"

	"github.com/ebitengine/purego"
)

// Resolver holds an open shared-library handle.
type Resolver struct {
	handle uintptr
}

// Open dlopens the shared library at path.
func Open(path string) (*Resolver, error) {
	handle, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_LOCAL)
	if err != nil {
		return nil, fmt.Errorf("dlopen %s: %w", path, err)
	}
	return &Resolver{handle: handle}, nil
}

// Has reports whether the library exports the named symbol.
func (r *Resolver) Has(symbol string) bool {
	addr, err := purego.Dlsym(r.handle, symbol)
	return err == nil && addr != 0
}

// Close releases the library handle. Safe to call once.
func (r *Resolver) Close() error {
	if r.handle == 0 {
		return nil
	}
	err := purego.Dlclose(r.handle)
	r.handle = 0
	return err
}
