package ui

import (
	"net/http"

	"abtest-analytics/domain/analytics"
	"abtest-analytics/internal/virtualtable"
)

// handleCreateAnalysis returns the virtual table with column metadata and
// the metric glossary, per spec.md §6.
func (s *Server) handleCreateAnalysis(w http.ResponseWriter, r *http.Request) {
	var req RevenueRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	envelope := buildEnvelope(req.RawData.Overall, req.RawData.Transaction)
	vt := virtualtable.Build(envelope.Transactions)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"virtual_table": vt,
		"columns": []string{
			"transaction_id", "variation", "device_category", "revenue", "quantity",
			"item_category2", "item_name", "item_bundle", "item_name_simple", "unique_products",
		},
		"glossary": analytics.Glossary,
	})
}
