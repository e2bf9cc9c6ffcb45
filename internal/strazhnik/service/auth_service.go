package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/BrandonDHaskell/Strazhnik/server/internal/digest"
	"github.com/BrandonDHaskell/Strazhnik/server/internal/strazhnik/store"
	"github.com/BrandonDHaskell/Strazhnik/server/internal/strazhnik/types"
)

var (
	ErrMissingInput       = errors.New("all fields are required")
	ErrUnknownRole        = errors.New("unknown role")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

const (
	adminWelcome   = "Welcome, administrator!"
	officerWelcome = "Welcome, %s"
)

type AuthService struct {
	credentials store.CredentialStore
	sessions    *SessionRegistry
}

func NewAuthService(cs store.CredentialStore, sessions *SessionRegistry) *AuthService {
	return &AuthService{credentials: cs, sessions: sessions}
}

// Authenticate checks login, password and secret word against the stored
// record for role. Password and secret mismatches are reported as the same
// error. Inputs are used exactly as given.
func (s *AuthService) Authenticate(ctx context.Context, req types.LoginRequest) (types.Principal, error) {
	if strings.TrimSpace(req.Role) == "" || req.Login == "" || req.Password == "" || req.Secret == "" {
		return types.Principal{}, ErrMissingInput
	}

	role, ok := types.ParseRole(req.Role)
	if !ok {
		return types.Principal{}, fmt.Errorf("%w: %q", ErrUnknownRole, req.Role)
	}

	rec, err := s.credentials.Find(ctx, role, req.Login)
	if errors.Is(err, store.ErrNotFound) {
		return types.Principal{}, ErrUserNotFound
	}
	if err != nil {
		return types.Principal{}, fmt.Errorf("lookup %s: %w", req.Login, err)
	}

	// Both digests are compared even when the first one fails.
	passOK := digest.Matches(req.Password, rec.PasswordHash)
	secretOK := digest.Matches(req.Secret, rec.SecretHash)
	if !passOK || !secretOK {
		return types.Principal{}, ErrInvalidCredentials
	}

	return types.Principal{
		Role:        rec.Role,
		Login:       rec.Login,
		DisplayName: rec.DisplayName,
	}, nil
}

// Login authenticates and decides what happens next. Administrators only get
// a greeting; security officers get a session token for the request workflow.
func (s *AuthService) Login(ctx context.Context, req types.LoginRequest) (types.LoginResponse, error) {
	p, err := s.Authenticate(ctx, req)
	if err != nil {
		return types.LoginResponse{}, err
	}

	resp := types.LoginResponse{
		OK:          true,
		Role:        p.Role,
		DisplayName: p.DisplayName,
	}

	switch p.Role {
	case types.RoleSecurityOfficer:
		resp.Token = s.sessions.Open(p)
		resp.Message = fmt.Sprintf(officerWelcome, p.DisplayName)
	default:
		resp.Message = adminWelcome
	}
	return resp, nil
}
