package cell

import "strings"

// lineBreaks collapses characters that would break the line-oriented chunk
// format. CRLF is listed before CR so it collapses to a single space.
var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ")

// Escape returns s as a quoted text cell: line breaks and tabs become spaces,
// surrounding whitespace is trimmed, and quotes are doubled.
func Escape(s string) string {
	s = lineBreaks.Replace(s)
	s = strings.TrimSpace(s)
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// Text returns the quoted cell for any raw value. nil renders as "".
func Text(v any) string {
	return Escape(Stringify(v))
}

// Numeric returns the bare cell for a price, weight, dimension, or inventory
// field. Empty values render as an empty cell; the result is never quoted.
func Numeric(v any) string {
	if IsFalsy(v) {
		return ""
	}
	return Stringify(v)
}

// Line joins cells with the delimiter. The result has no trailing delimiter
// and no newline.
func Line(delim string, cells ...string) string {
	return strings.Join(cells, delim)
}

// Header renders a header line from column keys. Keys are escaped like text
// cells; the newline terminator is included.
func Header(delim string, keys []string) string {
	cells := make([]string, len(keys))
	for i, k := range keys {
		cells[i] = Escape(k)
	}
	return Line(delim, cells...) + "\n"
}
