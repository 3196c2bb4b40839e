package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"nexuscore-backend/internal/domain"
	"nexuscore-backend/internal/flow"
	"nexuscore-backend/internal/logger"
	"nexuscore-backend/internal/security"
)

var errBadRequest = errors.New("malformed request body")

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("Failed to encode response", "error", err)
	}
}

// writeError maps domain and flow errors onto status codes. Anything
// unrecognised is a 500 and is logged.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := classify(err)
	if status == http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	writeJSON(w, status, errorResponse{Error: errorBody{Code: code, Message: err.Error()}})
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrCredentialMismatch):
		return http.StatusUnauthorized, "CREDENTIAL_MISMATCH"
	case errors.Is(err, domain.ErrIdentityRevoked):
		return http.StatusUnauthorized, "IDENTITY_REVOKED"
	case errors.Is(err, domain.ErrAuthRequired):
		return http.StatusUnauthorized, "AUTH_REQUIRED"
	case errors.Is(err, security.ErrInvalidToken),
		errors.Is(err, security.ErrExpiredToken),
		errors.Is(err, security.ErrWrongTokenType):
		return http.StatusUnauthorized, "INVALID_TOKEN"

	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "FORBIDDEN"

	case errors.Is(err, domain.ErrNoActiveFlow):
		return http.StatusNotFound, "NO_ACTIVE_FLOW"
	case errors.Is(err, domain.ErrPostNotFound),
		errors.Is(err, domain.ErrMemberNotFound),
		errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound, "NOT_FOUND"

	case errors.Is(err, domain.ErrFlowInProgress),
		errors.Is(err, flow.ErrNotCancellable),
		errors.Is(err, flow.ErrInvalidTransition):
		return http.StatusConflict, "FLOW_CONFLICT"

	case errors.Is(err, errBadRequest),
		errors.Is(err, domain.ErrUnknownView),
		errors.Is(err, domain.ErrRoleNotSelectable),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrPasswordMismatch),
		errors.Is(err, domain.ErrPasswordRequired),
		errors.Is(err, domain.ErrUnknownCopyType),
		errors.Is(err, domain.ErrUnknownContext),
		errors.Is(err, flow.ErrUnknownMethod),
		errors.Is(err, flow.ErrMethodNotAccepted),
		errors.Is(err, flow.ErrUnknownGateway):
		return http.StatusBadRequest, "INVALID_ARGUMENT"
	}
	return http.StatusInternalServerError, "INTERNAL"
}

// decode reads a JSON body into v. An empty body leaves v untouched.
func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return errors.Join(errBadRequest, err)
	}
	return nil
}
