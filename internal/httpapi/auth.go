package httpapi

import (
	"net/http"
	"strings"

	"github.com/BrandonDHaskell/Strazhnik/server/internal/strazhnik/types"
)

type officerHandler func(w http.ResponseWriter, r *http.Request, p types.Principal)

// requireOfficer resolves the bearer token to a signed-in security officer.
func (s *Server) requireOfficer(next officerHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			writeError(w, r, http.StatusUnauthorized, "unauthorized", "missing bearer token")
			return
		}
		p, ok := s.sessions.Lookup(token)
		if !ok {
			writeError(w, r, http.StatusUnauthorized, "unauthorized", "unknown or expired session")
			return
		}
		if p.Role != types.RoleSecurityOfficer {
			writeError(w, r, http.StatusForbidden, "forbidden", "security officer role required")
			return
		}
		next(w, r, p)
	}
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
