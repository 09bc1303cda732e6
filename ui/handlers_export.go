package ui

import (
	"net/http"

	"abtest-analytics/adapters/excelexport"
	"abtest-analytics/internal/orchestrator"
)

// handleExportXLSX takes the /calculate-revenue request shape, runs the full
// metric panel on it, and renders the response as a downloadable workbook
// instead of JSON, for analysts who want the virtual table and metric panel
// in a spreadsheet.
func (s *Server) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	var req RevenueRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	envelope := buildEnvelope(req.RawData.Overall, req.RawData.Transaction)
	resp, err := s.orchestrator.Run(envelope, orchestrator.RevenueBucket{}, nil)
	if err != nil {
		writeAppError(w, err)
		return
	}

	book, err := excelexport.Render(resp)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="analysis.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(book)
}
