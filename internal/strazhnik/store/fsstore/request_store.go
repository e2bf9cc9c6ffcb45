package fsstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/BrandonDHaskell/Strazhnik/server/internal/strazhnik/store"
	"github.com/BrandonDHaskell/Strazhnik/server/internal/strazhnik/types"
)

// RequestStore writes one indented JSON file per request, named by its ID.
type RequestStore struct {
	dir string
}

func NewRequestStore(dir string) *RequestStore {
	return &RequestStore{dir: dir}
}

func (s *RequestStore) Dir() string { return s.dir }

func (s *RequestStore) Save(_ context.Context, id string, rec types.VisitorPassRequest) error {
	if !types.ValidRequestID(id) {
		return fmt.Errorf("save request: invalid id %q", id)
	}
	if err := ensureDir(s.dir); err != nil {
		return err
	}

	data, err := encodeIndented(rec)
	if err != nil {
		return fmt.Errorf("encode request %s: %w", id, err)
	}

	path := filepath.Join(s.dir, id)
	if err := os.WriteFile(path, data, filePerm); err != nil {
		return fmt.Errorf("%w: write %s: %w", store.ErrStorageWrite, path, err)
	}
	return nil
}

func (s *RequestStore) Load(_ context.Context, id string) (types.VisitorPassRequest, error) {
	if !types.ValidRequestID(id) {
		return types.VisitorPassRequest{}, store.ErrNotFound
	}

	data, err := os.ReadFile(filepath.Join(s.dir, id))
	if errors.Is(err, fs.ErrNotExist) {
		return types.VisitorPassRequest{}, store.ErrNotFound
	}
	if err != nil {
		return types.VisitorPassRequest{}, fmt.Errorf("read request %s: %w", id, err)
	}

	var rec types.VisitorPassRequest
	if err := json.Unmarshal(data, &rec); err != nil {
		return types.VisitorPassRequest{}, fmt.Errorf("decode request %s: %w", id, err)
	}
	return rec, nil
}

// List returns the IDs of all stored requests, oldest first. A missing
// directory is an empty store.
func (s *RequestStore) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}

	var ids []string
	for _, e := range entries {
		if e.IsDir() || !types.ValidRequestID(e.Name()) {
			continue
		}
		ids = append(ids, e.Name())
	}
	sort.Strings(ids)
	return ids, nil
}
