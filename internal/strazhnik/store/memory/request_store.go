package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/BrandonDHaskell/Strazhnik/server/internal/strazhnik/store"
	"github.com/BrandonDHaskell/Strazhnik/server/internal/strazhnik/types"
)

type RequestStore struct {
	mu   sync.RWMutex
	data map[string]types.VisitorPassRequest
	err  error
}

func NewRequestStore() *RequestStore {
	return &RequestStore{
		data: make(map[string]types.VisitorPassRequest),
	}
}

// FailWrites makes every subsequent Save return err.  Test-only helper.
func (s *RequestStore) FailWrites(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *RequestStore) Save(_ context.Context, id string, rec types.VisitorPassRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.data[id] = rec
	return nil
}

func (s *RequestStore) Load(_ context.Context, id string) (types.VisitorPassRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.data[id]
	if !ok {
		return types.VisitorPassRequest{}, store.ErrNotFound
	}
	return rec, nil
}

func (s *RequestStore) List(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
