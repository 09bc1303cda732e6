package ui

import (
	"net/http"

	"abtest-analytics/internal/normalize"
	"abtest-analytics/internal/validator"
)

func (s *Server) handleValidateData(w http.ResponseWriter, r *http.Request) {
	var records []normalize.Record
	if err := decodeJSON(r, &records); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	lines := normalize.Transactions(records)
	summary := validator.Validate(lines)
	writeJSON(w, http.StatusOK, summary)
}
