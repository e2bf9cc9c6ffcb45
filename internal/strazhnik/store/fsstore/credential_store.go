package fsstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BrandonDHaskell/Strazhnik/server/internal/strazhnik/store"
	"github.com/BrandonDHaskell/Strazhnik/server/internal/strazhnik/types"
)

// credentialFile is the on-disk layout: {"users": [...]}.
type credentialFile struct {
	Users []types.CredentialRecord `json:"users"`
}

type CredentialStore struct {
	path string
}

func NewCredentialStore(path string) *CredentialStore {
	return &CredentialStore{path: path}
}

func (s *CredentialStore) Path() string { return s.path }

// EnsureInitialized writes the seeded credential file when none exists. An
// existing file is never touched, so it is safe to call on every start.
func (s *CredentialStore) EnsureInitialized(_ context.Context) error {
	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat credentials: %w", err)
	}

	if err := ensureDir(filepath.Dir(s.path)); err != nil {
		return err
	}

	data, err := encodeIndented(credentialFile{Users: store.SeedCredentials()})
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}

	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if errors.Is(err, fs.ErrExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: create %s: %w", store.ErrStorageWrite, s.path, err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("%w: write %s: %w", store.ErrStorageWrite, s.path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", store.ErrStorageWrite, s.path, err)
	}
	return nil
}

// Find returns the first record whose role and login both match exactly.
func (s *CredentialStore) Find(_ context.Context, role types.Role, login string) (types.CredentialRecord, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return types.CredentialRecord{}, store.ErrNotFound
	}
	if err != nil {
		return types.CredentialRecord{}, fmt.Errorf("read credentials: %w", err)
	}

	var file credentialFile
	if err := json.Unmarshal(data, &file); err != nil {
		return types.CredentialRecord{}, fmt.Errorf("decode credentials: %w", err)
	}

	for _, u := range file.Users {
		if u.Role == role && u.Login == login {
			return u, nil
		}
	}
	return types.CredentialRecord{}, store.ErrNotFound
}
