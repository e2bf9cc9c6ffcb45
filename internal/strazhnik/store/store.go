package store

import (
	"context"
	"errors"
	"io"

	"github.com/BrandonDHaskell/Strazhnik/server/internal/strazhnik/types"
)

var (
	// ErrNotFound is returned by lookups that match nothing, including a
	// lookup against a store whose backing file does not exist yet.
	ErrNotFound = errors.New("not found")

	// ErrStorageWrite wraps any failure to create a managed directory or
	// write a file or row.
	ErrStorageWrite = errors.New("storage write failed")
)

// CredentialStore holds staff credentials. It is read-only apart from the
// one-time seeding done by EnsureInitialized.
type CredentialStore interface {
	EnsureInitialized(ctx context.Context) error
	Find(ctx context.Context, role types.Role, login string) (types.CredentialRecord, error)
}

// RequestStore persists visitor pass requests keyed by request ID. Saving an
// existing ID replaces it.
type RequestStore interface {
	Save(ctx context.Context, id string, rec types.VisitorPassRequest) error
	Load(ctx context.Context, id string) (types.VisitorPassRequest, error)
	List(ctx context.Context) ([]string, error)
}

// DocumentStore receives copies of uploaded documents under generated names.
type DocumentStore interface {
	Put(ctx context.Context, name string, r io.Reader) error
}
