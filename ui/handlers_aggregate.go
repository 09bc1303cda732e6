package ui

import (
	"net/http"

	"abtest-analytics/internal/normalize"
	"abtest-analytics/internal/virtualtable"
)

// handleAggregateTransactions groups a bare transaction-line array into the
// per-transaction summary surface (spec.md §6).
func (s *Server) handleAggregateTransactions(w http.ResponseWriter, r *http.Request) {
	var records []normalize.Record
	if err := decodeJSON(r, &records); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if len(records) == 0 {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"data":    []virtualtable.AggregateTransaction{},
			"meta":    map[string]int{"input_records": 0, "output_records": 0},
		})
		return
	}

	if _, ok := records[0]["transaction_id"]; !ok {
		writeError(w, http.StatusBadRequest, errMissingTransactionID)
		return
	}
	if _, ok := records[0]["item_category2"]; !ok {
		writeError(w, http.StatusBadRequest, errMissingItemCategory2)
		return
	}

	lines := normalize.Transactions(records)
	summaries := virtualtable.AggregateSummaries(lines)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    summaries,
		"meta": map[string]int{
			"input_records":  len(records),
			"output_records": len(summaries),
		},
	})
}
