// Package native embeds the C source of the compiled scanning backend.
// The orchestrator materializes it under .symscan/ and builds it with the
// discovered toolchain; the resulting binary honors the same invocation
// contract as the in-process fallback.
//
// The source lives under src/ so the Go toolchain never mistakes it for a
// cgo input when cgo is enabled.
//
// Usage:
//
//	os.WriteFile(paths.ScannerSrc, native.ScannerSource, 0644)
package native

import _ "embed"

//go:embed src/scanner.c
var ScannerSource []byte
