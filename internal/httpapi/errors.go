package httpapi

import (
	"errors"
	"net/http"

	"github.com/BrandonDHaskell/Strazhnik/server/internal/strazhnik/service"
	"github.com/BrandonDHaskell/Strazhnik/server/internal/strazhnik/store"
)

type errorMapping struct {
	target error
	status int
	code   string
}

var errorMappings = []errorMapping{
	{service.ErrMissingInput, http.StatusBadRequest, "missing_fields"},
	{service.ErrUnknownRole, http.StatusBadRequest, "unknown_role"},
	{service.ErrUserNotFound, http.StatusUnauthorized, "user_not_found"},
	{service.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials"},
	{service.ErrUnknownDocumentKind, http.StatusNotFound, "unknown_document_kind"},
	{service.ErrDocumentTooLarge, http.StatusBadRequest, "document_too_large"},
	{service.ErrDocumentWrongFormat, http.StatusBadRequest, "document_wrong_format"},
	{service.ErrDocumentUnreadable, http.StatusBadRequest, "document_unreadable"},
	{service.ErrNotOfficer, http.StatusForbidden, "forbidden"},
	{service.ErrInvalidRequestID, http.StatusBadRequest, "invalid_request_id"},
	{service.ErrRequestNotFound, http.StatusNotFound, "not_found"},
	{store.ErrStorageWrite, http.StatusInternalServerError, "storage_write_failed"},
}

// writeServiceError maps a service error onto a status and error code.
// Validation failures carry every violation in details.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		respond(w, r, http.StatusUnprocessableEntity, errorBody{
			Error:   "validation_failed",
			Message: "request form has errors",
			Details: verr.Violations,
		})
		return
	}

	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			msg := err.Error()
			if m.status >= http.StatusInternalServerError {
				s.logger.Printf("%s error: %v", op, err)
				msg = m.target.Error()
			}
			writeError(w, r, m.status, m.code, msg)
			return
		}
	}

	s.logger.Printf("%s error: %v", op, err)
	writeError(w, r, http.StatusInternalServerError, "internal_error", "unexpected server error")
}
