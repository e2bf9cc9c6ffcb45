package service

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/BrandonDHaskell/Strazhnik/server/internal/strazhnik/types"
)

// SessionRegistry remembers which principal opened which token. Sessions
// live until the process exits.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]types.Principal
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{sessions: make(map[string]types.Principal)}
}

func (r *SessionRegistry) Open(p types.Principal) string {
	token := uuid.NewString()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[token] = p
	return token
}

func (r *SessionRegistry) Lookup(token string) (types.Principal, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return types.Principal{}, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.sessions[token]
	return p, ok
}
