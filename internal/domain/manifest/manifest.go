// Package manifest models the versioned export manifest and writes it to
// disk. The document layout is deterministic: fixed field order, fixed
// indentation, always-present exported_functions. Two runs over identical
// declarations differ only in the timestamp field.
package manifest

import (
	"time"

	"github.com/corey/symscan/internal/domain/extract"
)

// SchemaVersion is the current manifest document schema.
const SchemaVersion = 1

// timeLayout is ISO-8601 with a numeric UTC offset, second resolution.
const timeLayout = "2006-01-02T15:04:05-07:00"

// Entry is one exported function in the document. Args carries the raw
// parameter text exactly as extracted.
type Entry struct {
	Name       string `json:"name"`
	ReturnType string `json:"return_type"`
	Args       string `json:"args"`
}

// Document is the manifest for one scanned source. Field order here is the
// field order on disk.
type Document struct {
	SchemaVersion int     `json:"schema_version"`
	Source        string  `json:"source"`
	Timestamp     string  `json:"timestamp"`
	Exported      []Entry `json:"exported_functions"`
}

// New builds a Document from extracted declarations. Exported is always
// non-nil so an empty scan serializes as [] rather than null.
func New(source string, schema int, decls []extract.Declaration, now time.Time) *Document {
	entries := make([]Entry, 0, len(decls))
	for _, d := range decls {
		entries = append(entries, Entry{
			Name:       d.Name,
			ReturnType: d.ReturnType,
			Args:       d.Params,
		})
	}
	return &Document{
		SchemaVersion: schema,
		Source:        source,
		Timestamp:     now.Format(timeLayout),
		Exported:      entries,
	}
}
