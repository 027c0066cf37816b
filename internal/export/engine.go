package export

import (
	"fmt"
	"io"
	"iter"

	"github.com/mesh-intelligence/tabulate/internal/chunk"
	"github.com/mesh-intelligence/tabulate/pkg/types"
)

// TableReport summarizes the chunks written for one table.
type TableReport struct {
	Name   string        `json:"name"`
	Rows   int           `json:"rows"`
	Chunks []chunk.Chunk `json:"chunks"`
}

// Report summarizes a run.
type Report struct {
	Format types.Format  `json:"format"`
	Tables []TableReport `json:"tables"`
}

// Chunks returns the number of chunks written across all tables.
func (r *Report) Chunks() int {
	n := 0
	for _, t := range r.Tables {
		n += len(t.Chunks)
	}
	return n
}

// Engine runs exports synchronously. It performs no internal concurrency;
// long loops yield to the host through Hooks.OnTick.
type Engine struct {
	opts   types.Options
	writer *chunk.Writer
	hooks  types.Hooks
}

// NewEngine returns an Engine writing chunks to sink.
func NewEngine(opts types.Options, sink chunk.Sink, hooks types.Hooks) (*Engine, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	return &Engine{
		opts:   opts,
		writer: chunk.NewWriter(sink, opts.MaxBytes),
		hooks:  hooks,
	}, nil
}

// Run parses the document from r, detects its format, and exports every
// table. Parse and detection failures happen before any chunk is written.
// On a write failure the returned report lists the chunks that were
// persisted before it.
func (e *Engine) Run(r io.Reader) (*Report, error) {
	doc, err := Parse(r)
	if err != nil {
		return nil, err
	}
	format, err := Detect(doc)
	if err != nil {
		return nil, err
	}

	report := &Report{Format: format}
	switch format {
	case types.FormatProducts:
		err = e.exportProducts(doc.([]any), report)
	case types.FormatSchema:
		err = e.exportSchema(doc.(map[string]any), report)
	}
	if err != nil {
		return report, err
	}
	e.hooks.Log(fmt.Sprintf("export complete: %d tables, %d chunks", len(report.Tables), report.Chunks()))
	return report, nil
}

// writeTable streams one table through the chunk writer and records it.
func (e *Engine) writeTable(name, header string, rows iter.Seq[string], report *Report) error {
	chunks, err := e.writer.Write(name, header, rows)
	t := TableReport{Name: name, Chunks: chunks}
	for _, c := range chunks {
		t.Rows += c.Rows
	}
	report.Tables = append(report.Tables, t)
	if err != nil {
		return fmt.Errorf("table %s: %w", name, err)
	}
	if len(chunks) > 0 {
		e.hooks.Log(fmt.Sprintf("table %s: %d rows in %d chunks", name, t.Rows, len(chunks)))
	}
	return nil
}
