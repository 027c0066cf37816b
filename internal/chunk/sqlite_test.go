package chunk

import (
	"path/filepath"
	"slices"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteSinkArchivesChunks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive", "chunks.db")
	sink, err := OpenSQLiteSink(path, "")
	require.NoError(t, err)
	defer sink.Close()

	_, err = uuid.Parse(sink.RunID())
	require.NoError(t, err, "generated run id is a UUID")

	chunks, err := NewWriter(sink, 40).Write("variants", "h\n", slices.Values(makeRows(5, 12)))
	require.NoError(t, err)

	archived, err := sink.Chunks("variants")
	require.NoError(t, err)
	assert.Equal(t, chunks, archived)

	content, err := sink.Content("variants_1.csv")
	require.NoError(t, err)
	assert.Equal(t, chunks[0].Bytes, len(content))
	assert.Equal(t, BOM+"h\n", string(content[:len(BOM)+2]))
}

func TestSQLiteSinkReplacesChunkByName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chunks.db")
	sink, err := OpenSQLiteSink(path, "run-1")
	require.NoError(t, err)
	defer sink.Close()

	require.NoError(t, sink.Put(Chunk{Name: "t_1.csv", Table: "t", Index: 1, Bytes: 3, Rows: 1}, []byte("old")))
	require.NoError(t, sink.Put(Chunk{Name: "t_1.csv", Table: "t", Index: 1, Bytes: 3, Rows: 1}, []byte("new")))

	archived, err := sink.Chunks("t")
	require.NoError(t, err)
	require.Len(t, archived, 1)

	content, err := sink.Content("t_1.csv")
	require.NoError(t, err)
	assert.Equal(t, "new", string(content))

	_, err = sink.Content("missing_1.csv")
	assert.Error(t, err)
}
