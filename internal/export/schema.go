package export

import (
	"fmt"
	"iter"
	"sort"

	"github.com/mesh-intelligence/tabulate/internal/cell"
	"github.com/mesh-intelligence/tabulate/internal/chunk"
	"github.com/mesh-intelligence/tabulate/pkg/types"
)

// schemaTable is a declared table with its columns resolved once, before
// any row is rendered.
type schemaTable struct {
	name    string
	columns []types.Column
	rows    []any
}

// resolveTables returns the exportable tables of a schema document in name
// order. Tables without column declarations or without rows are left out,
// and so are tables whose name cannot be used as a file name prefix.
func resolveTables(doc map[string]any, hooks types.Hooks) []schemaTable {
	schema, _ := doc[keySchema].(map[string]any)
	data, _ := doc[keyData].(map[string]any)
	info, _ := doc[keySchemaInfo].(map[string]any)

	names := make([]string, 0, len(schema))
	for name := range schema {
		names = append(names, name)
	}
	sort.Strings(names)

	var tables []schemaTable
	for _, name := range names {
		if !chunk.ValidTableName(name) {
			hooks.Log(fmt.Sprintf("skipping table %q: not usable as a file name", name))
			continue
		}
		decls := asList(schema[name])
		rows := asList(data[name])
		if len(decls) == 0 || len(rows) == 0 {
			continue
		}
		meta, _ := info[name].(map[string]any)
		tables = append(tables, schemaTable{
			name:    name,
			columns: resolveColumns(decls, meta),
			rows:    rows,
		})
	}
	return tables
}

// resolveColumns turns column declarations into keys and types. A
// declaration is a bare field name or a single-entry object keyed by the
// field name. The type comes from the table's column metadata.
func resolveColumns(decls []any, meta map[string]any) []types.Column {
	cols := make([]types.Column, len(decls))
	for i, decl := range decls {
		key := columnKey(decl)
		cols[i] = types.Column{Key: key, Type: columnType(meta, key)}
	}
	return cols
}

func columnKey(decl any) string {
	m, ok := decl.(map[string]any)
	if !ok {
		return cell.Stringify(decl)
	}
	// A well-formed declaration has one entry; the lowest key keeps
	// malformed ones deterministic.
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Strings(keys)
	return keys[0]
}

func columnType(meta map[string]any, key string) types.ColumnType {
	col, ok := meta[key].(map[string]any)
	if !ok {
		return types.ColumnUnspecified
	}
	tag, _ := col["type"].(string)
	return types.ParseColumnType(tag)
}

// exportSchema writes one chunk sequence per declared table.
func (e *Engine) exportSchema(doc map[string]any, report *Report) error {
	p := newProgress(e.hooks, e.opts.TickEvery)
	tables := resolveTables(doc, e.hooks)

	total := 0
	for _, t := range tables {
		total += len(t.rows)
	}
	e.hooks.Log(fmt.Sprintf("schema document: %d tables, %d rows", len(tables), total))
	e.hooks.Total(total)

	for _, t := range tables {
		keys := make([]string, len(t.columns))
		for i, c := range t.columns {
			keys[i] = c.Key
		}
		header := cell.Header(e.opts.Delimiter, keys)
		if err := e.writeTable(t.name, header, e.schemaLines(t, p), report); err != nil {
			return err
		}
	}
	return nil
}

// schemaLines renders each row by aligning its positions with the columns.
// Missing trailing values are absent; extra values are ignored. Rows that
// are not arrays are skipped and logged.
func (e *Engine) schemaLines(t schemaTable, p *progress) iter.Seq[string] {
	return func(yield func(string) bool) {
		cells := make([]string, len(t.columns))
		for i, raw := range t.rows {
			p.step()
			row, ok := raw.([]any)
			if !ok {
				e.hooks.Log(fmt.Sprintf("skipping row %d of table %q: not an array", i, t.name))
				continue
			}
			for j, col := range t.columns {
				var v any
				if j < len(row) {
					v = row[j]
				}
				cells[j] = cell.Escape(cell.Coerce(v, col.Type))
			}
			if !yield(cell.Line(e.opts.Delimiter, cells...)) {
				return
			}
		}
	}
}
