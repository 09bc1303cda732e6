// Package auditlog records lightweight, non-business-data telemetry about
// each analysis request (control variation, variation count, duration) so
// operators can see traffic shape without persisting the experiments
// themselves — this is not the experiment persistence spec.md excludes.
package auditlog

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"abtest-analytics/domain/core"
)

// Recorder accepts one audit entry per /analyze-family request.
type Recorder interface {
	Record(ctx context.Context, entry Entry) error
}

// Entry is one audited request.
type Entry struct {
	RunID            core.RunID
	EnvelopeHash     core.EnvelopeHash
	ControlVariation string
	VariationCount   int
	Duration         time.Duration
	RecordedAt       core.Timestamp
}

// postgresRecorder implements Recorder against a Postgres analysis_audit_log table.
type postgresRecorder struct {
	db *sqlx.DB
}

// NewPostgresRecorder wraps an existing connection. Callers typically reach
// this through Connect, which returns a NoopRecorder when unconfigured.
func NewPostgresRecorder(db *sqlx.DB) Recorder {
	return &postgresRecorder{db: db}
}

// Connect opens a Postgres connection for the audit log when databaseURL is
// non-empty; otherwise it returns a NoopRecorder so the caller never has to
// branch on whether auditing is configured.
func Connect(databaseURL string) (Recorder, error) {
	if databaseURL == "" {
		return NoopRecorder{}, nil
	}

	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to audit log database: %w", err)
	}
	return NewPostgresRecorder(db), nil
}

func (r *postgresRecorder) Record(ctx context.Context, entry Entry) error {
	query := `INSERT INTO analysis_audit_log (
		run_id, envelope_hash, control_variation, variation_count, duration_ms, recorded_at
	) VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.ExecContext(ctx, query,
		entry.RunID.String(), entry.EnvelopeHash.String(), entry.ControlVariation, entry.VariationCount,
		entry.Duration.Milliseconds(), entry.RecordedAt.Time(),
	)
	if err != nil {
		return fmt.Errorf("failed to record audit entry: %w", err)
	}
	return nil
}

// NoopRecorder is used when DATABASE_URL is unset; every call succeeds
// without doing anything.
type NoopRecorder struct{}

func (NoopRecorder) Record(context.Context, Entry) error { return nil }
