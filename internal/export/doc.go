// Package export converts a catalog document into size-bounded delimited
// chunk files.
//
// A run parses the document once, detects its shape, and hands it to one of
// two exporters:
//
//   - a top-level array of product objects becomes the products, variants,
//     and categories tables, each with a fixed header;
//   - an object carrying data_schema and data sections becomes one table per
//     declared schema, with columns and coercion taken from the schema and
//     the optional data_schema_info metadata.
//
// Each table is streamed through a chunk.Writer, so every table gets its own
// {table}_{n}.csv sequence. Malformed or unrecognized documents fail before
// any chunk is written.
package export
