package metrics

import (
	"abtest-analytics/domain/analytics"
	"abtest-analytics/internal/statkernel"
)

// AOVCalculator computes Average Order Value (mean per-transaction revenue).
// Its bootstrap preserves the asymmetry flagged in spec.md §9: the control
// side is resampled with size |a_v| rather than |a_c|.
type AOVCalculator struct{}

func (c *AOVCalculator) Name() string { return "aov" }

func (c *AOVCalculator) Calculate(in Inputs, env Environment) analytics.MetricResult {
	variationRevenue := revenues(in.VariationTxns)
	controlRevenue := revenues(in.ControlTxns)

	value := round2(statkernel.Mean(variationRevenue))
	control := round2(statkernel.Mean(controlRevenue))

	_, p := env.Kernel.MannWhitneyU(variationRevenue, controlRevenue)

	// Asymmetric resample: both sides drawn with size |a_v|, per the
	// preserved-verbatim AOV quirk.
	lower, upper := env.Kernel.BootstrapRelativeDifference(
		variationRevenue, controlRevenue,
		len(variationRevenue), len(variationRevenue),
		statkernel.Mean, env.Bootstrap, env.RNGSource,
	)

	return analytics.MetricResult{
		Value:              value,
		ControlValue:       control,
		Uplift:             uplift(value, control),
		Confidence:         statkernel.Confidence(p),
		ConfidenceInterval: analytics.ConfidenceInterval{Lower: lower, Upper: upper},
		Details: analytics.Details{
			Variation: analytics.SideDetail{Count: len(variationRevenue), Total: round2(sumFloat(variationRevenue)), Rate: value, Unit: analytics.UnitCurrency},
			Control:   analytics.SideDetail{Count: len(controlRevenue), Total: round2(sumFloat(controlRevenue)), Rate: control, Unit: analytics.UnitCurrency},
		},
	}
}
