// Package ui is the HTTP surface over the analysis core: routing, request
// decoding, CORS, and response shaping. Everything here is a thin adapter —
// the statistics live in internal/.
package ui

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"abtest-analytics/adapters/auditlog"
	"abtest-analytics/domain/analytics"
	"abtest-analytics/domain/core"
	"abtest-analytics/internal/orchestrator"
	"abtest-analytics/internal/statkernel"
	"abtest-analytics/ports"
)

// Server wires the chi router to the analysis core.
type Server struct {
	router       *chi.Mux
	orchestrator *orchestrator.Orchestrator
	audit        auditlog.Recorder
	maxBodyBytes int64
}

// Config configures the HTTP surface.
type Config struct {
	MaxBodyBytes         int64
	BootstrapConfig      statkernel.BootstrapConfig
	TotalRevenueCIMethod string
	RNGSource            ports.RNGSource
	AuditRecorder        auditlog.Recorder
}

// NewServer builds the router and registers every route.
func NewServer(cfg Config) *Server {
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 10 << 20
	}
	if cfg.AuditRecorder == nil {
		cfg.AuditRecorder = auditlog.NoopRecorder{}
	}

	s := &Server{
		router: chi.NewRouter(),
		orchestrator: orchestrator.New(
			statkernel.NewKernel(), cfg.RNGSource, cfg.BootstrapConfig, cfg.TotalRevenueCIMethod,
		),
		audit:        cfg.AuditRecorder,
		maxBodyBytes: cfg.MaxBodyBytes,
	}

	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// Router exposes the underlying handler for http.ListenAndServe.
func (s *Server) Router() http.Handler { return s.router }

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(corsMiddleware)
	s.router.Use(s.bodyLimitMiddleware)
}

// corsMiddleware is wide-open by design (spec.md §6): this is a stateless
// analytics API with no cookies or credentials to protect.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) bodyLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) setupRoutes() {
	s.router.Post("/analyze", s.handleAnalyze)
	s.router.Post("/aggregate-transactions", s.handleAggregateTransactions)
	s.router.Post("/calculate-overview", s.handleCalculateOverview)
	s.router.Post("/calculate-revenue", s.handleCalculateRevenue)
	s.router.Post("/validate-data", s.handleValidateData)
	s.router.Post("/create-analysis", s.handleCreateAnalysis)
	s.router.Get("/health", s.handleHealth)

	s.router.Get("/metrics/glossary", s.handleGlossary)
	s.router.Post("/analyze/export.xlsx", s.handleExportXLSX)
}

func (s *Server) recordAudit(envelope orchestrator.Envelope, resp *analytics.Response, started time.Time) {
	variations := make([]string, len(envelope.Overall))
	for i, row := range envelope.Overall {
		variations[i] = row.Variation
	}
	entry := auditlog.Entry{
		RunID:            resp.RunID,
		EnvelopeHash:     core.ComputeEnvelopeHash(variations, len(envelope.Overall), len(envelope.Transactions)),
		ControlVariation: resp.Control,
		VariationCount:   len(envelope.Overall),
		Duration:         time.Since(started),
		RecordedAt:       core.NewTimestamp(started),
	}
	if err := s.audit.Record(context.Background(), entry); err != nil {
		log.Printf("[Server] failed to record audit entry: %v", err)
	}
}
