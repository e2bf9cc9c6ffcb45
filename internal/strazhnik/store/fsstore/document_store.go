package fsstore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BrandonDHaskell/Strazhnik/server/internal/strazhnik/store"
)

// DocumentStore copies uploaded documents into a managed directory.
type DocumentStore struct {
	dir string
}

func NewDocumentStore(dir string) *DocumentStore {
	return &DocumentStore{dir: dir}
}

func (s *DocumentStore) Dir() string { return s.dir }

// Put writes r to dir/name, replacing any file already there.
func (s *DocumentStore) Put(_ context.Context, name string, r io.Reader) error {
	if name == "" || filepath.Base(name) != name {
		return fmt.Errorf("put document: invalid name %q", name)
	}
	if err := ensureDir(s.dir); err != nil {
		return err
	}

	path := filepath.Join(s.dir, name)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, filePerm)
	if err != nil {
		return fmt.Errorf("%w: create %s: %w", store.ErrStorageWrite, path, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		return fmt.Errorf("%w: copy to %s: %w", store.ErrStorageWrite, path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", store.ErrStorageWrite, path, err)
	}
	return nil
}
