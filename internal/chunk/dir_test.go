package chunk

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/tabulate/pkg/types"
)

func TestDirSinkWritesChunkFilesWithBOM(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	w := NewWriter(NewDirSink(dir), 1<<20)

	_, err := w.Write("products", "a\n", slices.Values([]string{`"x"`}))
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "products_1.csv"))
	require.NoError(t, err)
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, data[:3])
	assert.Equal(t, "a\n\"x\"\n", string(data[3:]))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "no temp files left behind")
}

func TestDirSinkOverwritesButKeepsSurplusChunks(t *testing.T) {
	dir := t.TempDir()
	sink := NewDirSink(dir)

	_, err := NewWriter(sink, 20).Write("t", "h\n", slices.Values(makeRows(6, 8)))
	require.NoError(t, err)
	first, err := filepath.Glob(filepath.Join(dir, "t_*.csv"))
	require.NoError(t, err)
	require.Greater(t, len(first), 1)

	_, err = NewWriter(sink, 1<<20).Write("t", "h\n", slices.Values([]string{"only"}))
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "t_1.csv"))
	require.NoError(t, err)
	assert.Equal(t, BOM+"h\nonly\n", string(data))

	second, err := filepath.Glob(filepath.Join(dir, "t_*.csv"))
	require.NoError(t, err)
	assert.Equal(t, len(first), len(second), "stale higher-indexed chunks are not removed")
}

func TestDirSinkReportsUnwritableDir(t *testing.T) {
	parent := t.TempDir()
	blocker := filepath.Join(parent, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	err := NewDirSink(filepath.Join(blocker, "out")).Put(Chunk{Name: "t_1.csv"}, []byte("x"))
	assert.Error(t, err)
}

type failingSink struct{}

func (failingSink) Put(Chunk, []byte) error { return errors.New("boom") }

func TestTeeForwardsToEverySink(t *testing.T) {
	a, b := newMemSink(), newMemSink()
	tee := Tee{a, b}

	require.NoError(t, tee.Put(Chunk{Name: "t_1.csv"}, []byte("body")))
	assert.Equal(t, "body", a.contents["t_1.csv"])
	assert.Equal(t, "body", b.contents["t_1.csv"])

	c := newMemSink()
	err := Tee{failingSink{}, c}.Put(Chunk{Name: "t_1.csv"}, []byte("body"))
	assert.EqualError(t, err, "boom")
	assert.Empty(t, c.chunks)
}

func TestDirSinkRefusesPathLikeNames(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "out")
	sink := NewDirSink(dir)

	for _, name := range []string{"../escaped_1.csv", "a/b_1.csv", "..", "", `a\b_1.csv`} {
		err := sink.Put(Chunk{Name: name}, []byte("x"))
		assert.Error(t, err, name)
	}

	_, err := os.Stat(filepath.Join(root, "escaped_1.csv"))
	assert.True(t, os.IsNotExist(err))

	_, err = NewWriter(sink, 1<<20).Write("../escaped", "h\n", slices.Values([]string{"r"}))
	assert.ErrorIs(t, err, types.ErrWriteFailure)
	_, err = os.Stat(filepath.Join(root, "escaped_1.csv"))
	assert.True(t, os.IsNotExist(err))
}
