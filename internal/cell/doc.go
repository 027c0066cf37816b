// Package cell renders raw catalog values into delimited-text cells.
//
// Coerce turns a raw JSON value into text according to a column type. Text
// and Numeric produce the final cell form, and Line joins cells into one
// record. None of these functions fail: unsupported shapes degrade to empty
// or stringified output.
//
// Text cells are always quoted, numeric cells never are:
//
//	"A1","Widget","",9.99,,"Tools"
package cell
