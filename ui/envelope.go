package ui

import (
	"abtest-analytics/internal/normalize"
	"abtest-analytics/internal/orchestrator"
)

// buildEnvelope normalizes raw overall/transaction records into the typed
// envelope the orchestrator consumes.
func buildEnvelope(overall, transaction []normalize.Record) orchestrator.Envelope {
	return orchestrator.Envelope{
		Overall:      normalize.Overall(overall),
		Transactions: normalize.Transactions(transaction),
	}
}
