package storage

import (
	"bufio"
	"bytes"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"
)

// DefaultMaxFileSize is the largest file ReadLines accepts by default.
const DefaultMaxFileSize = 10 * 1024 * 1024

var bom = []byte{0xEF, 0xBB, 0xBF}

// FileStore reads and writes line-oriented text files.
type FileStore struct {
	maxFileSize int64 // 0 = unlimited
}

// Option configures a FileStore.
type Option func(*FileStore)

// WithMaxFileSize sets the maximum file size. Zero disables the check.
func WithMaxFileSize(size int64) Option {
	return func(s *FileStore) {
		s.maxFileSize = size
	}
}

// NewFileStore creates a FileStore.
func NewFileStore(opts ...Option) *FileStore {
	s := &FileStore{maxFileSize: DefaultMaxFileSize}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ReadLines returns the lines of the file at path.
func (s *FileStore) ReadLines(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &PathError{Op: "read", Path: path, Err: err}
	}
	if info.IsDir() {
		return nil, &PathError{Op: "read", Path: path, Err: ErrIsDirectory}
	}
	if s.maxFileSize > 0 && info.Size() > s.maxFileSize {
		return nil, &PathError{Op: "read", Path: path, Err: ErrFileTooLarge}
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &PathError{Op: "read", Path: path, Err: err}
	}
	if isBinary(content) {
		return nil, &PathError{Op: "read", Path: path, Err: ErrBinaryFile}
	}
	return splitLines(bytes.TrimPrefix(content, bom)), nil
}

// WriteLines writes each line followed by '\n' to path. An existing file
// keeps its permissions.
func (s *FileStore) WriteLines(path string, lines iter.Seq[[]byte]) (err error) {
	perm := fs.FileMode(0o644)
	if info, statErr := os.Stat(path); statErr == nil {
		if info.IsDir() {
			return &PathError{Op: "write", Path: path, Err: ErrIsDirectory}
		}
		perm = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return &PathError{Op: "write", Path: path, Err: err}
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
			err = &PathError{Op: "write", Path: path, Err: err}
		}
	}()

	w := bufio.NewWriter(tmp)
	for l := range lines {
		if _, err = w.Write(l); err != nil {
			return err
		}
		if err = w.WriteByte('\n'); err != nil {
			return err
		}
	}
	if err = w.Flush(); err != nil {
		return err
	}
	if err = tmp.Chmod(perm); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// splitLines splits on '\n' and strips one trailing '\r' from each line.
func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	text := strings.TrimSuffix(string(content), "\n")
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// isBinary reports content with null bytes or mostly control characters.
func isBinary(content []byte) bool {
	if len(content) == 0 {
		return false
	}
	sample := content[:min(len(content), 8192)]
	if bytes.IndexByte(sample, 0) >= 0 {
		return true
	}

	nonText := 0
	for _, b := range sample {
		if b < 32 && b != '\t' && b != '\n' && b != '\r' {
			nonText++
		}
	}
	return float64(nonText)/float64(len(sample)) > 0.1
}
