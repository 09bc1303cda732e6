package metrics

import (
	"abtest-analytics/domain/analytics"
	"abtest-analytics/internal/statkernel"
)

// TotalRevenueCalculator sums per-transaction revenue. Its confidence
// interval is, by default, the nonstandard closed-form construction from
// spec.md §4.4 (Mann-Whitney standard error divided by control total); set
// Environment.TotalRevenueCIMethod to "bootstrap" to use the percentile
// bootstrap on Sum instead, per the configuration flag spec.md §9 requires.
type TotalRevenueCalculator struct{}

func (c *TotalRevenueCalculator) Name() string { return "total_revenue" }

func (c *TotalRevenueCalculator) Calculate(in Inputs, env Environment) analytics.MetricResult {
	variationRevenue := revenues(in.VariationTxns)
	controlRevenue := revenues(in.ControlTxns)

	value := round2(sumFloat(variationRevenue))
	control := round2(sumFloat(controlRevenue))

	_, p := env.Kernel.MannWhitneyU(variationRevenue, controlRevenue)
	up := uplift(value, control)

	var lower, upper float64
	if env.TotalRevenueCIMethod == "bootstrap" {
		lower, upper = env.Kernel.BootstrapRelativeDifference(
			variationRevenue, controlRevenue,
			len(variationRevenue), len(controlRevenue),
			statkernel.Sum, env.Bootstrap, env.RNGSource,
		)
	} else {
		lower, upper = env.Kernel.TotalRevenueClosedFormInterval(
			len(variationRevenue), len(controlRevenue), up, control,
		)
	}

	variationCount := len(variationRevenue)
	controlCount := len(controlRevenue)

	return analytics.MetricResult{
		Value:              value,
		ControlValue:       control,
		Uplift:             up,
		Confidence:         statkernel.Confidence(p),
		ConfidenceInterval: analytics.ConfidenceInterval{Lower: lower, Upper: upper},
		// rate equals total for this metric, not a per-transaction mean: the
		// original processor sets rate = total here uniquely among calculators.
		Details: analytics.Details{
			Variation: analytics.SideDetail{Count: variationCount, Total: value, Rate: value, Unit: analytics.UnitCurrency},
			Control:   analytics.SideDetail{Count: controlCount, Total: control, Rate: control, Unit: analytics.UnitCurrency},
		},
	}
}
