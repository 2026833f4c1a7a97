package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"taskmanager/apperrors"
	"taskmanager/logging"
	"taskmanager/middleware"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			logging.Logger.Errorf("Event ID: RESPONSE_ENCODE_FAILED, Description: Failed to encode response: %v", err)
		}
	}
}

// writeError maps the error taxonomy onto HTTP responses. Validation errors
// serialize their field map directly; everything else gets a flat detail
// message.
func writeError(w http.ResponseWriter, err error) {
	var validationErr *apperrors.ValidationError
	if errors.As(err, &validationErr) {
		writeJSON(w, http.StatusBadRequest, validationErr.Fields)
		return
	}

	var authErr *apperrors.AuthError
	if errors.As(err, &authErr) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": authErr.Message})
		return
	}

	var forbiddenErr *apperrors.ForbiddenError
	if errors.As(err, &forbiddenErr) {
		writeJSON(w, http.StatusForbidden, map[string]string{"detail": forbiddenErr.Message})
		return
	}

	var notFoundErr *apperrors.NotFoundError
	if errors.As(err, &notFoundErr) {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
		return
	}

	logging.Logger.Errorf("Event ID: INTERNAL_ERROR, Description: Unhandled error: %v", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"detail": "Internal server error"})
}

// requireIdentity pulls the authenticated identity out of the context. The
// auth middleware always sets it on protected routes; a miss means the route
// was wired without the middleware.
func requireIdentity(w http.ResponseWriter, r *http.Request) (middleware.Identity, bool) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Authentication credentials were not provided."})
		return middleware.Identity{}, false
	}
	return identity, true
}

func pathID(r *http.Request) (uint, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
