package ui

import (
	"net/http"
	"time"

	"abtest-analytics/internal/orchestrator"
)

// overviewMetrics is the reduced panel /calculate-overview surfaces.
var overviewMetrics = []string{"users", "add_to_cart_rate", "transaction_rate", "total_revenue"}

func (s *Server) handleCalculateOverview(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	var req OverviewRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	envelope := buildEnvelope(req.Overall, req.Transaction)
	resp, err := s.orchestrator.Run(envelope, orchestrator.RevenueBucket{}, overviewMetrics)
	if err != nil {
		writeAppError(w, err)
		return
	}

	s.recordAudit(envelope, resp, started)
	writeJSON(w, http.StatusOK, resp)
}
