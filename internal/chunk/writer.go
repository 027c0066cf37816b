// Package chunk splits serialized rows into size-bounded chunk files.
//
// A Writer accumulates a header and rows until the next row would push the
// chunk past its byte budget, then hands the chunk to a Sink and starts the
// next one with the header repeated. Chunks are numbered per table from 1
// with no gaps, and a row is never split across chunks.
package chunk

import (
	"bytes"
	"fmt"
	"iter"
	"path/filepath"
	"strings"

	"github.com/mesh-intelligence/tabulate/pkg/types"
)

// BOM is the UTF-8 byte-order mark written at the start of every chunk so
// spreadsheet tools detect the encoding. It counts toward the budget.
const BOM = "\uFEFF"

// Chunk describes one persisted chunk.
type Chunk struct {
	Name  string `json:"name"`
	Table string `json:"table"`
	Index int    `json:"index"`
	Bytes int    `json:"bytes"`
	Rows  int    `json:"rows"`
}

// FileName returns the chunk file name for a table and 1-based index.
func FileName(table string, index int) string {
	return fmt.Sprintf("%s_%d.csv", table, index)
}

// ValidTableName reports whether table can prefix a chunk file name: it must
// be a single path element, not "." or "..", without separators.
func ValidTableName(table string) bool {
	return isPlainName(table)
}

func isPlainName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.ContainsAny(name, "/\\\x00") {
		return false
	}
	return filepath.Base(name) == name
}

// Sink persists finished chunks. content is the complete file body,
// BOM included.
type Sink interface {
	Put(c Chunk, content []byte) error
}

// Writer groups rows into chunks no larger than MaxBytes. The budget is
// best-effort per append: a chunk holding a single row that alone exceeds
// the budget is still written.
type Writer struct {
	sink     Sink
	maxBytes int
}

// NewWriter returns a Writer persisting chunks to sink.
func NewWriter(sink Sink, maxBytes int) *Writer {
	return &Writer{sink: sink, maxBytes: maxBytes}
}

// Write consumes rows and persists the table's chunks. header must end with
// a newline; rows must not. A table with no rows produces no chunks.
// Sink failures are wrapped with types.ErrWriteFailure; chunks already
// persisted are returned alongside the error.
func (w *Writer) Write(table, header string, rows iter.Seq[string]) ([]Chunk, error) {
	var (
		chunks []Chunk
		buf    bytes.Buffer
		count  int
	)
	reset := func() {
		buf.Reset()
		buf.WriteString(BOM)
		buf.WriteString(header)
		count = 0
	}
	flush := func() error {
		c := Chunk{
			Name:  FileName(table, len(chunks)+1),
			Table: table,
			Index: len(chunks) + 1,
			Bytes: buf.Len(),
			Rows:  count,
		}
		if err := w.sink.Put(c, buf.Bytes()); err != nil {
			return fmt.Errorf("%w: %s: %w", types.ErrWriteFailure, c.Name, err)
		}
		chunks = append(chunks, c)
		return nil
	}

	reset()
	for row := range rows {
		size := len(row) + 1
		if count > 0 && buf.Len()+size > w.maxBytes {
			if err := flush(); err != nil {
				return chunks, err
			}
			reset()
		}
		buf.WriteString(row)
		buf.WriteByte('\n')
		count++
	}

	if count > 0 {
		if err := flush(); err != nil {
			return chunks, err
		}
	}
	return chunks, nil
}
