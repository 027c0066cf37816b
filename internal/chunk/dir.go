package chunk

import (
	"fmt"
	"os"
	"path/filepath"
)

// DirSink writes each chunk as a file in Dir. Files are written atomically
// using the temp-file, fsync, rename pattern, so a chunk file is either
// complete or absent. Existing files with the same name are replaced.
type DirSink struct {
	Dir string
}

// NewDirSink returns a sink writing into dir.
func NewDirSink(dir string) *DirSink {
	return &DirSink{Dir: dir}
}

// Put writes content to Dir/c.Name. Names that are not a single file name
// are refused so no chunk lands outside Dir.
func (s *DirSink) Put(c Chunk, content []byte) error {
	if !isPlainName(c.Name) {
		return fmt.Errorf("chunk name %q is not a plain file name", c.Name)
	}
	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	return writeFileAtomic(filepath.Join(dir, c.Name), content)
}

func writeFileAtomic(path string, content []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".chunk-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing chunk: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("setting file mode: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// Tee fans every chunk out to several sinks in order. The first failure
// stops the fan-out.
type Tee []Sink

// Put forwards the chunk to each sink.
func (t Tee) Put(c Chunk, content []byte) error {
	for _, s := range t {
		if err := s.Put(c, content); err != nil {
			return err
		}
	}
	return nil
}
