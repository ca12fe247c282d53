package upload

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	apperrors "emotion-audio/internal/app/errors"
)

const tempPattern = "emotion-audio-*"

// Store hands out uniquely named temp files for uploads and tracks how many are held
type Store struct {
	dir      string
	inFlight atomic.Int64
}

// NewStore creates a store rooted at dir. An empty dir uses os.TempDir().
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the directory temp files are created in
func (s *Store) Dir() string {
	if s.dir == "" {
		return os.TempDir()
	}
	return s.dir
}

// InFlight reports the number of acquired and not yet released temp files
func (s *Store) InFlight() int64 {
	return s.inFlight.Load()
}

// Acquire creates an empty temp file with the given extension.
// The caller must defer Release on the returned file.
func (s *Store) Acquire(ext string) (*TempFile, error) {
	f, err := os.CreateTemp(s.dir, tempPattern+ext)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create temp file")
	}
	s.inFlight.Add(1)

	return &TempFile{
		store: s,
		file:  f,
		path:  f.Name(),
	}, nil
}

// TempFile is a write-once file removed on Release
type TempFile struct {
	store   *Store
	file    *os.File
	path    string
	written bool
	size    int64
	once    sync.Once
	err     error
}

// Path returns the file's location on disk
func (t *TempFile) Path() string {
	return t.path
}

// Size returns the number of bytes written
func (t *TempFile) Size() int64 {
	return t.size
}

// WriteFrom copies r into the file and closes it. At most limit+1 bytes are
// copied so callers can detect an oversized body without buffering it all;
// a limit <= 0 copies everything. The returned count is the bytes written.
func (t *TempFile) WriteFrom(r io.Reader, limit int64) (int64, error) {
	if t.written {
		return 0, fmt.Errorf("temp file %s already written", t.path)
	}
	t.written = true

	src := r
	if limit > 0 {
		src = io.LimitReader(r, limit+1)
	}

	n, err := io.Copy(t.file, src)
	t.size = n
	closeErr := t.file.Close()
	t.file = nil
	if err != nil {
		return n, apperrors.Wrap(err, "failed to write upload")
	}
	if closeErr != nil {
		return n, apperrors.Wrap(closeErr, "failed to close temp file")
	}
	return n, nil
}

// Release closes and deletes the file. It is safe to call more than once.
func (t *TempFile) Release() error {
	t.once.Do(func() {
		if t.file != nil {
			_ = t.file.Close()
			t.file = nil
		}
		if err := os.Remove(t.path); err != nil && !os.IsNotExist(err) {
			t.err = apperrors.Wrap(err, "failed to remove temp file")
		}
		t.store.inFlight.Add(-1)
	})
	return t.err
}
