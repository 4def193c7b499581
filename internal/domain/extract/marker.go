package extract

import (
	"errors"
	"strings"
)

// DefaultAnnotation is the platform-export attribute whose #define alias
// marks exported declarations. Configurable so codebases using a different
// visibility attribute can still be scanned.
const DefaultAnnotation = "__declspec(dllexport)"

// ErrMarkerNotFound means the source never defines an export-marker alias.
// Fatal for the whole scan: without a marker no declaration can be trusted.
var ErrMarkerNotFound = errors.New("no export marker definition found in source")

// markerFromLine inspects one line for a marker-defining directive:
// a #define whose replacement contains the export annotation. The #define
// must be the first token on the line (whitespace aside), so commented-out
// directives do not count. Returns the defined identifier and true when the
// line introduces the marker.
func markerFromLine(line, annotation string) (string, bool) {
	if !strings.Contains(line, annotation) {
		return "", false
	}
	fields := strings.Fields(line)
	if len(fields) >= 2 && fields[0] == "#define" {
		return fields[1], true
	}
	return "", false
}
