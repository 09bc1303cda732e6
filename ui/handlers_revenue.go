package ui

import (
	"net/http"
	"time"

	"abtest-analytics/internal/orchestrator"
)

// revenueMetrics is the panel /calculate-revenue surfaces.
var revenueMetrics = []string{"users", "transaction_rate", "aov", "avg_products", "total_revenue", "arpu"}

func (s *Server) handleCalculateRevenue(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	var req RevenueRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if len(req.RawData.Transaction) == 0 {
		writeError(w, http.StatusInternalServerError, errTransactionDataRequired)
		return
	}

	envelope := buildEnvelope(req.RawData.Overall, req.RawData.Transaction)
	resp, err := s.orchestrator.Run(envelope, orchestrator.RevenueBucket{}, revenueMetrics)
	if err != nil {
		writeAppError(w, err)
		return
	}

	s.recordAudit(envelope, resp, started)
	writeJSON(w, http.StatusOK, resp)
}
