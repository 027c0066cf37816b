package types

import "strings"

// ColumnType selects how a raw field value is rendered into a cell.
type ColumnType string

// Column types recognized by the value coercer. Any other type tag found in
// column metadata resolves to ColumnPlain.
const (
	ColumnUnspecified ColumnType = ""
	ColumnPlain       ColumnType = "plain"
	ColumnList        ColumnType = "list"
	ColumnImage       ColumnType = "image"
	ColumnFile        ColumnType = "file"
	ColumnTable       ColumnType = "table"
)

// ParseColumnType maps a metadata type tag to a ColumnType. Matching is case
// insensitive; unknown tags are plain text.
func ParseColumnType(tag string) ColumnType {
	switch ColumnType(strings.ToLower(strings.TrimSpace(tag))) {
	case "":
		return ColumnUnspecified
	case ColumnList:
		return ColumnList
	case ColumnImage:
		return ColumnImage
	case ColumnFile:
		return ColumnFile
	case ColumnTable:
		return ColumnTable
	default:
		return ColumnPlain
	}
}

// Column is a resolved column declaration: the field key used for the header
// and the type used for coercion.
type Column struct {
	Key  string     `json:"key"`
	Type ColumnType `json:"type,omitempty"`
}

// Format names the top-level shape of a catalog document.
type Format string

// Recognized document formats.
const (
	FormatUnknown  Format = ""
	FormatProducts Format = "products"
	FormatSchema   Format = "schema"
)
