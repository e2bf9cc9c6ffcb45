package memory

import (
	"context"
	"sync"

	"github.com/BrandonDHaskell/Strazhnik/server/internal/strazhnik/store"
	"github.com/BrandonDHaskell/Strazhnik/server/internal/strazhnik/types"
)

// CredentialStore is an in-memory credential list.
// It is intended for use in tests and dev environments.
type CredentialStore struct {
	mu      sync.RWMutex
	users   []types.CredentialRecord
	lookups int
}

// NewCredentialStore starts empty; EnsureInitialized seeds it. Pass records
// to start with a custom list instead.
func NewCredentialStore(users ...types.CredentialRecord) *CredentialStore {
	return &CredentialStore{users: append([]types.CredentialRecord(nil), users...)}
}

func (s *CredentialStore) EnsureInitialized(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.users) == 0 {
		s.users = store.SeedCredentials()
	}
	return nil
}

func (s *CredentialStore) Find(_ context.Context, role types.Role, login string) (types.CredentialRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lookups++
	for _, u := range s.users {
		if u.Role == role && u.Login == login {
			return u, nil
		}
	}
	return types.CredentialRecord{}, store.ErrNotFound
}

// Lookups returns how many times Find was called.  Test-only helper.
func (s *CredentialStore) Lookups() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lookups
}
