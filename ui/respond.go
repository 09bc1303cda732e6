package ui

import (
	"encoding/json"
	"net/http"

	apperrors "abtest-analytics/internal/errors"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError writes a structured {error: message} body with the status the
// caller passes in.
func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// writeAppError infers the status from the error itself via
// apperrors.HTTPStatus, for callers that don't have a fixed status mapping.
func writeAppError(w http.ResponseWriter, err error) {
	writeError(w, apperrors.HTTPStatus(err), err)
}

func decodeJSON(r *http.Request, dst interface{}) error {
	decoder := json.NewDecoder(r.Body)
	return decoder.Decode(dst)
}
