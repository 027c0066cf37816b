package chunk

import (
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

//go:embed archive.sql
var archiveSQL string

// SQLiteSink stores chunks in a SQLite archive, one row per chunk name.
// Re-exporting a chunk with the same name replaces its row, the same way a
// re-run replaces a chunk file.
type SQLiteSink struct {
	db    *sql.DB
	runID string
}

// OpenSQLiteSink opens (creating if needed) the archive at path. Rows written
// through the sink are tagged with runID; an empty runID gets a new UUID v7.
func OpenSQLiteSink(path, runID string) (*SQLiteSink, error) {
	if runID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return nil, fmt.Errorf("generating run id: %w", err)
		}
		runID = id.String()
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating archive dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}
	if _, err := db.Exec(archiveSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating archive schema: %w", err)
	}
	return &SQLiteSink{db: db, runID: runID}, nil
}

// RunID returns the run identifier stamped on archived chunks.
func (s *SQLiteSink) RunID() string {
	return s.runID
}

// Put archives one chunk.
func (s *SQLiteSink) Put(c Chunk, content []byte) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO chunks (name, table_name, chunk_index, bytes, rows, content, run_id, written_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.Name, c.Table, c.Index, c.Bytes, c.Rows, content, s.runID,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("archiving chunk: %w", err)
	}
	return nil
}

// Chunks lists the archived chunks of a table in index order.
func (s *SQLiteSink) Chunks(table string) ([]Chunk, error) {
	rows, err := s.db.Query(
		`SELECT name, table_name, chunk_index, bytes, rows FROM chunks
		 WHERE table_name = ? ORDER BY chunk_index`, table)
	if err != nil {
		return nil, fmt.Errorf("querying archive: %w", err)
	}
	defer rows.Close()

	var chunks []Chunk
	for rows.Next() {
		var c Chunk
		if err := rows.Scan(&c.Name, &c.Table, &c.Index, &c.Bytes, &c.Rows); err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}
		chunks = append(chunks, c)
	}
	return chunks, rows.Err()
}

// Content returns the archived body of the named chunk.
func (s *SQLiteSink) Content(name string) ([]byte, error) {
	var content []byte
	err := s.db.QueryRow(`SELECT content FROM chunks WHERE name = ?`, name).Scan(&content)
	if err != nil {
		return nil, fmt.Errorf("reading chunk %s: %w", name, err)
	}
	return content, nil
}

// Close releases the database handle.
func (s *SQLiteSink) Close() error {
	return s.db.Close()
}
