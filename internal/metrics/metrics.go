// Package metrics implements the fixed panel of calculators from spec.md
// §4.4: one unit per metric, each pairing an estimator with the correct
// statistical test and interval method and assembling a uniform
// analytics.MetricResult.
package metrics

import (
	"math"

	"abtest-analytics/domain/analytics"
	"abtest-analytics/internal/statkernel"
	"abtest-analytics/ports"
)

// Inputs is the slice of data one calculator needs: the variation and
// control rows from the overall aggregate, plus their virtual-table slices.
type Inputs struct {
	VariationOverall analytics.OverallRow
	ControlOverall   analytics.OverallRow
	VariationTxns    []analytics.VirtualTransaction
	ControlTxns      []analytics.VirtualTransaction
}

// Environment threads the shared statistical kernel, RNG source, and
// bootstrap configuration into every calculator without global state.
type Environment struct {
	Kernel    *statkernel.Kernel
	RNGSource ports.RNGSource
	Bootstrap statkernel.BootstrapConfig
	// TotalRevenueCIMethod is "closed_form" (default, matches spec.md) or
	// "bootstrap" per the configuration flag spec.md §9 asks for.
	TotalRevenueCIMethod string
}

// Calculator computes one named metric for a variation against its control.
type Calculator interface {
	Name() string
	Calculate(in Inputs, env Environment) analytics.MetricResult
}

// uplift applies the uniform definition from spec.md §4.4, guarded to 0
// when the control value is non-positive.
func uplift(value, controlValue float64) float64 {
	if controlValue <= 0 {
		return 0
	}
	return round2((value - controlValue) / controlValue * 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func revenues(txns []analytics.VirtualTransaction) []float64 {
	out := make([]float64, len(txns))
	for i, t := range txns {
		out[i] = t.Revenue
	}
	return out
}

func quantities(txns []analytics.VirtualTransaction) []float64 {
	out := make([]float64, len(txns))
	for i, t := range txns {
		out[i] = float64(t.Quantity)
	}
	return out
}

func sumFloat(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}

// Panel lists the calculators run for every variation, in the uniform
// response order.
func Panel(revenueBucketLow, revenueBucketHigh float64) []Calculator {
	return []Calculator{
		&UsersCalculator{},
		&AddToCartRateCalculator{},
		&TransactionRateCalculator{},
		&AOVCalculator{},
		&AvgProductsCalculator{},
		&TotalRevenueCalculator{},
		&ARPUCalculator{},
		&RevenueDistributionCalculator{Low: revenueBucketLow, High: revenueBucketHigh},
	}
}
