// Package extract recognizes exported function declarations in native source
// text. The grammar is deliberately restricted: a declaration is one line
// beginning with the export marker, followed by a return-type token, a name
// token, and a parenthesized parameter list on the same line. Anything else
// is out of grammar and skipped, never an error.
package extract

import (
	"bufio"
	"io"
	"strings"
)

// Declaration is one exported function recognized by the line grammar.
// Params is the raw text between the parentheses, not decomposed further.
type Declaration struct {
	Name       string
	ReturnType string
	Params     string
}

// Scanner extracts exported declarations from source text.
type Scanner struct {
	annotation string
}

// NewScanner returns a Scanner that discovers the export marker via the
// given annotation substring. An empty annotation selects DefaultAnnotation.
func NewScanner(annotation string) *Scanner {
	if annotation == "" {
		annotation = DefaultAnnotation
	}
	return &Scanner{annotation: annotation}
}

// Scan reads the source in a single streaming pass. Lines seen before the
// marker definition are buffered and replayed once the marker is known, so
// declarations textually preceding the #define are still extracted. Returns
// the discovered marker and all recognized declarations in file order.
// Returns ErrMarkerNotFound when no marker-defining line exists.
func (s *Scanner) Scan(r io.Reader) (string, []Declaration, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)

	var marker string
	var pending []string
	var decls []Declaration

	for sc.Scan() {
		line := sc.Text()
		if marker == "" {
			if m, ok := markerFromLine(line, s.annotation); ok {
				marker = m
				for _, buffered := range pending {
					if d, ok := parseLine(buffered, marker); ok {
						decls = append(decls, d)
					}
				}
				pending = nil
				continue
			}
			pending = append(pending, line)
			continue
		}
		if d, ok := parseLine(line, marker); ok {
			decls = append(decls, d)
		}
	}
	if err := sc.Err(); err != nil {
		return "", nil, err
	}
	if marker == "" {
		return "", nil, ErrMarkerNotFound
	}
	return marker, decls, nil
}

// parseLine applies the three-field grammar to one line. The marker must be
// an exact prefix followed by whitespace: a marker that is merely a prefix
// of a longer identifier does not match. Name and return type must be
// non-empty; parameter text may be empty (e.g. "add()").
func parseLine(line, marker string) (Declaration, bool) {
	if !strings.HasPrefix(line, marker) {
		return Declaration{}, false
	}
	rest := line[len(marker):]
	if rest == "" || (rest[0] != ' ' && rest[0] != '\t') {
		return Declaration{}, false
	}

	ret, rest := nextToken(rest)
	if ret == "" {
		return Declaration{}, false
	}
	name, rest := nextToken(rest)
	if name == "" {
		return Declaration{}, false
	}

	rest = strings.TrimLeft(rest, " \t")
	if rest == "" || rest[0] != '(' {
		return Declaration{}, false
	}
	close := strings.IndexByte(rest, ')')
	if close < 0 {
		return Declaration{}, false
	}
	params := strings.TrimSpace(rest[1:close])

	return Declaration{Name: name, ReturnType: ret, Params: params}, true
}

// nextToken skips leading whitespace and consumes one token, which ends at
// whitespace or an opening parenthesis.
func nextToken(s string) (string, string) {
	s = strings.TrimLeft(s, " \t")
	end := strings.IndexAny(s, " \t(")
	if end < 0 {
		return s, ""
	}
	return s[:end], s[end:]
}
