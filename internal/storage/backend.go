package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/money-ledger/money/internal/ledger"
)

// ErrNoDocument is returned by a Backend that has nothing stored yet.
var ErrNoDocument = errors.New("no ledger document")

// PersistenceError wraps a failed read or write of the ledger document.
type PersistenceError struct {
	Op       string // "load" or "save"
	Location string
	Err      error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s ledger %s: %v", e.Op, e.Location, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Backend reads and replaces the whole persisted document.
type Backend interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
	Location() string
	Close() error
}

// Open picks a backend from the path: ".db" and ".bolt" files use bbolt,
// everything else is a plain JSON file.
func Open(path string) (Backend, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".bolt":
		b, err := OpenBolt(path)
		if err != nil {
			return nil, err
		}
		return b, nil
	}
	return NewFileBackend(path), nil
}

// Load reads and decodes the document. A backend with nothing stored yields
// an empty store.
func Load(ctx context.Context, b Backend) (*ledger.Store, error) {
	data, err := b.Read(ctx)
	if errors.Is(err, ErrNoDocument) {
		return ledger.NewStore(), nil
	}
	if err != nil {
		return nil, &PersistenceError{Op: "load", Location: b.Location(), Err: err}
	}
	s, err := Decode(data)
	if err != nil {
		return nil, &PersistenceError{Op: "load", Location: b.Location(), Err: err}
	}
	return s, nil
}

// Save encodes the store and replaces the stored document. The store is
// untouched on failure so the caller can retry.
func Save(ctx context.Context, b Backend, s *ledger.Store) error {
	data, err := Encode(s)
	if err != nil {
		return &PersistenceError{Op: "save", Location: b.Location(), Err: err}
	}
	if err := b.Write(ctx, data); err != nil {
		return &PersistenceError{Op: "save", Location: b.Location(), Err: err}
	}
	return nil
}

// FileBackend stores the document as a JSON file.
type FileBackend struct {
	path string
}

// NewFileBackend creates a FileBackend for path.
func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

// Location returns the file path.
func (f *FileBackend) Location() string { return f.path }

// Read returns the file contents, or ErrNoDocument if it does not exist.
func (f *FileBackend) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoDocument
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", f.path, err)
	}
	return data, nil
}

// Write replaces the file by writing a sibling temp file and renaming it
// over the previous file, so a crash never leaves a truncated ledger behind.
func (f *FileBackend) Write(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating ledger dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("replacing %s: %w", f.path, err)
	}
	return nil
}

// Close is a no-op for files.
func (f *FileBackend) Close() error { return nil }
