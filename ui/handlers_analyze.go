package ui

import (
	"net/http"

	"abtest-analytics/internal/normalize"
)

// handleAnalyze normalizes the envelope and reports row/column shape,
// without running the metric panel (spec.md §6).
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if len(req.OverallData) == 0 {
		writeError(w, http.StatusUnprocessableEntity, errEmptyOverallData)
		return
	}

	transactionRecords := applyFilters(req.TransactionData, req.Filters)

	overall := normalize.CleanTable(req.OverallData)
	transaction := normalize.CleanTable(transactionRecords)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"raw_data": map[string]interface{}{
			"overall":     overall,
			"transaction": transaction,
		},
		"summary": map[string]interface{}{
			"overall_rows":        len(overall),
			"transaction_rows":    len(transaction),
			"columns_overall":     columnNames(overall),
			"columns_transaction": columnNames(transaction),
		},
	})
}

func columnNames(records []normalize.Record) []string {
	seen := make(map[string]bool)
	var columns []string
	for _, rec := range records {
		for col := range rec {
			if !seen[col] {
				seen[col] = true
				columns = append(columns, col)
			}
		}
	}
	return columns
}

// applyFilters keeps only transaction records whose device_category and
// item_category2 (when non-empty in the filter set) match one of the
// requested values.
func applyFilters(records []normalize.Record, filters Filters) []normalize.Record {
	if len(filters.DeviceCategory) == 0 && len(filters.ItemCategory2) == 0 {
		return records
	}

	deviceSet := toSet(filters.DeviceCategory)
	categorySet := toSet(filters.ItemCategory2)

	out := make([]normalize.Record, 0, len(records))
	for _, rec := range records {
		if len(deviceSet) > 0 && !matchesField(rec, "device_category", deviceSet) {
			continue
		}
		if len(categorySet) > 0 && !matchesField(rec, "item_category2", categorySet) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

func matchesField(rec normalize.Record, field string, allowed map[string]bool) bool {
	value, _ := rec[field].(string)
	return allowed[value]
}
