package metrics

import (
	"abtest-analytics/domain/analytics"
	"abtest-analytics/internal/statkernel"
)

// ARPUCalculator computes Average Revenue Per User: total revenue divided by
// the variation's (or control's) user count from the overall table. Each
// bootstrap side divides its own resampled sum by its own user count, so the
// two sides use distinct statistic closures rather than a shared reducer.
type ARPUCalculator struct{}

func (c *ARPUCalculator) Name() string { return "arpu" }

func (c *ARPUCalculator) Calculate(in Inputs, env Environment) analytics.MetricResult {
	variationRevenue := revenues(in.VariationTxns)
	controlRevenue := revenues(in.ControlTxns)

	usersV := in.VariationOverall.Users
	usersC := in.ControlOverall.Users

	value := arpu(sumFloat(variationRevenue), usersV)
	control := arpu(sumFloat(controlRevenue), usersC)

	_, p := env.Kernel.MannWhitneyU(variationRevenue, controlRevenue)

	statisticV := func(sample []float64) float64 { return arpu(statkernel.Sum(sample), usersV) }
	statisticC := func(sample []float64) float64 { return arpu(statkernel.Sum(sample), usersC) }

	lower, upper := env.Kernel.BootstrapRelativeDifferenceAsymmetric(
		variationRevenue, controlRevenue,
		len(variationRevenue), len(controlRevenue),
		statisticV, statisticC,
		env.Bootstrap, env.RNGSource,
	)

	return analytics.MetricResult{
		Value:              value,
		ControlValue:       control,
		Uplift:             uplift(value, control),
		Confidence:         statkernel.Confidence(p),
		ConfidenceInterval: analytics.ConfidenceInterval{Lower: lower, Upper: upper},
		Details: analytics.Details{
			Variation: analytics.SideDetail{Count: usersV, Total: round2(sumFloat(variationRevenue)), Rate: value, Unit: analytics.UnitCurrency},
			Control:   analytics.SideDetail{Count: usersC, Total: round2(sumFloat(controlRevenue)), Rate: control, Unit: analytics.UnitCurrency},
		},
	}
}

func arpu(totalRevenue float64, users int) float64 {
	if users == 0 {
		return 0
	}
	return round2(totalRevenue / float64(users))
}
