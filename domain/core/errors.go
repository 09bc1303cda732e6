package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// ErrNoControlVariation is returned when the orchestrator cannot find
	// exactly one variation whose name contains "control".
	ErrNoControlVariation = errors.New("no control variation found")
	// ErrAmbiguousControl is returned when more than one variation matches.
	ErrAmbiguousControl = errors.New("multiple control variations found")
	// ErrEmptyOverall is returned when the overall table has no rows.
	ErrEmptyOverall = errors.New("overall table is empty")
	// ErrMissingTransactionData is returned when an endpoint requires the
	// transaction log but none was supplied.
	ErrMissingTransactionData = errors.New("transaction data is required")
	// ErrInsufficientSamples marks a calculator/kernel input too small to
	// produce a meaningful statistic; callers degrade to a zero result.
	ErrInsufficientSamples = errors.New("insufficient samples for statistical test")
)

// NewAmbiguousControlError reports every variation name that matched.
func NewAmbiguousControlError(matches []string) error {
	return fmt.Errorf("%w: %v", ErrAmbiguousControl, matches)
}

// IsControlConfigError reports whether err stems from control-variation discovery.
func IsControlConfigError(err error) bool {
	return errors.Is(err, ErrNoControlVariation) || errors.Is(err, ErrAmbiguousControl)
}
