package app

import (
	"fmt"
	"os"
	"time"

	"github.com/corey/symscan/internal/domain/extract"
	"github.com/corey/symscan/internal/domain/manifest"
	"github.com/corey/symscan/internal/ports"
)

// FallbackBackend runs the scanning engine in-process. It is the
// guaranteed-progress path when no C toolchain exists or the native build
// fails, and honors the same contract as the compiled scanner.
type FallbackBackend struct {
	Annotation string
	Log        *Log
	Now        func() time.Time // test seam; nil means time.Now
}

// Name identifies this backend in summaries and logs.
func (b *FallbackBackend) Name() string { return "fallback" }

// Run scans spec.Source and writes the manifest to spec.Out.
func (b *FallbackBackend) Run(spec ports.RunSpec) error {
	f, err := os.Open(spec.Source)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer f.Close()

	marker, decls, err := extract.NewScanner(b.Annotation).Scan(f)
	if err != nil {
		return err
	}
	b.Log.Debugf("export marker: %s", marker)
	for _, d := range decls {
		b.Log.Debugf("declaration: %s %s(%s)", d.ReturnType, d.Name, d.Params)
	}

	now := time.Now
	if b.Now != nil {
		now = b.Now
	}
	doc := manifest.New(spec.Source, spec.Schema, decls, now())
	if err := manifest.Write(doc, spec.Out); err != nil {
		return err
	}

	b.Log.Infof("Found %d exported functions. Manifest written to %s", len(decls), spec.Out)
	return nil
}
