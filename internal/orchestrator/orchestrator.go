// Package orchestrator drives one analysis request end-to-end: it builds
// the virtual table, finds the control variation, runs every metric
// calculator for every variation against that control, and assembles the
// response, degrading individual calculator failures per spec.md §7.
package orchestrator

import (
	"log"
	"strings"

	"golang.org/x/sync/errgroup"

	"abtest-analytics/domain/analytics"
	"abtest-analytics/domain/core"
	"abtest-analytics/internal/metrics"
	"abtest-analytics/internal/statkernel"
	"abtest-analytics/internal/virtualtable"
	"abtest-analytics/ports"
)

// Orchestrator wires the statistical kernel and RNG source the metric panel
// needs into a single request-scoped entry point.
type Orchestrator struct {
	env metrics.Environment
}

// New constructs an Orchestrator. bootstrap controls the percentile
// bootstrap; totalRevenueCIMethod selects "closed_form" or "bootstrap" for
// the Total Revenue interval.
func New(kernel *statkernel.Kernel, rngSource ports.RNGSource, bootstrap statkernel.BootstrapConfig, totalRevenueCIMethod string) *Orchestrator {
	return &Orchestrator{
		env: metrics.Environment{
			Kernel:               kernel,
			RNGSource:            rngSource,
			Bootstrap:            bootstrap,
			TotalRevenueCIMethod: totalRevenueCIMethod,
		},
	}
}

// Envelope is the common shape of the orchestrated endpoints: the overall
// aggregate and the raw transaction log.
type Envelope struct {
	Overall      []analytics.OverallRow
	Transactions []analytics.TransactionLine
}

// RevenueBucket bounds the RevenueDistributionCalculator; callers of
// endpoints that don't surface this metric pass the zero value.
type RevenueBucket struct {
	Low, High float64
}

// Run builds the virtual table, resolves the control, computes every
// calculator in selected for each variation, and assembles the response.
// selected restricts which named metrics are computed (nil/empty runs the
// full panel), matching the differing metric sets §6 assigns per endpoint.
func (o *Orchestrator) Run(envelope Envelope, bucket RevenueBucket, selected []string) (*analytics.Response, error) {
	if len(envelope.Overall) == 0 {
		return nil, core.ErrEmptyOverall
	}

	vt := virtualtable.Build(envelope.Transactions)

	controlIdx, err := findControl(envelope.Overall)
	if err != nil {
		return nil, err
	}
	control := envelope.Overall[controlIdx]
	controlTxns := filterByVariation(vt, control.Variation)

	panel := selectPanel(metrics.Panel(bucket.Low, bucket.High), selected)

	// The per-variation loop is embarrassingly parallel (spec.md §5): each
	// worker only reads shared inputs and writes its own slice index.
	results := make([]analytics.VariationMetrics, len(envelope.Overall))
	g := new(errgroup.Group)
	for i, row := range envelope.Overall {
		i, row := i, row
		g.Go(func() error {
			variationTxns := filterByVariation(vt, row.Variation)
			in := metrics.Inputs{
				VariationOverall: row,
				ControlOverall:   control,
				VariationTxns:    variationTxns,
				ControlTxns:      controlTxns,
			}
			results[i] = o.computeVariation(row.Variation, in, panel)
			return nil
		})
	}
	_ = g.Wait() // per-metric failures are already swallowed in computeVariation

	data := make(map[string]analytics.VariationMetrics, len(envelope.Overall))
	for i, row := range envelope.Overall {
		data[row.Variation] = results[i]
	}

	return &analytics.Response{
		RunID:        core.NewRunID(),
		Success:      true,
		Data:         data,
		Control:      control.Variation,
		VirtualTable: vt,
	}, nil
}

// computeVariation runs every calculator in panel, isolating each one:
// a panicking or failing calculator degrades to a zeroed MetricResult and an
// error log entry instead of aborting the response (spec.md §7).
func (o *Orchestrator) computeVariation(variationName string, in metrics.Inputs, panel []metrics.Calculator) analytics.VariationMetrics {
	result := make(analytics.VariationMetrics, len(panel))
	for _, calc := range panel {
		result[calc.Name()] = o.safeCalculate(variationName, calc, in)
	}
	return result
}

func (o *Orchestrator) safeCalculate(variationName string, calc metrics.Calculator, in metrics.Inputs) (res analytics.MetricResult) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Orchestrator] metric calculator panicked: metric=%s variation=%s panic=%v",
				calc.Name(), variationName, r)
			res = analytics.ZeroMetricResult()
		}
	}()
	return calc.Calculate(in, o.env)
}

func selectPanel(full []metrics.Calculator, selected []string) []metrics.Calculator {
	if len(selected) == 0 {
		return full
	}
	want := make(map[string]bool, len(selected))
	for _, name := range selected {
		want[name] = true
	}
	out := make([]metrics.Calculator, 0, len(selected))
	for _, calc := range full {
		if want[calc.Name()] {
			out = append(out, calc)
		}
	}
	return out
}

func filterByVariation(vt []analytics.VirtualTransaction, variation string) []analytics.VirtualTransaction {
	out := make([]analytics.VirtualTransaction, 0, len(vt))
	for _, t := range vt {
		if t.Variation == variation {
			out = append(out, t)
		}
	}
	return out
}

// findControl applies the first-match, case-insensitive "control" substring
// rule from spec.md §4.5, failing fast on zero or multiple matches.
func findControl(overall []analytics.OverallRow) (int, error) {
	idx := -1
	var matches []string
	for i, row := range overall {
		if strings.Contains(strings.ToLower(row.Variation), "control") {
			if idx == -1 {
				idx = i
			}
			matches = append(matches, row.Variation)
		}
	}
	if idx == -1 {
		return 0, core.ErrNoControlVariation
	}
	if len(matches) > 1 {
		return 0, core.NewAmbiguousControlError(matches)
	}
	return idx, nil
}
