package metrics

import (
	"abtest-analytics/domain/analytics"
	"abtest-analytics/internal/statkernel"
)

// RevenueDistributionCalculator computes the fraction of transactions whose
// revenue falls in [Low, High]. The significance test runs on the full
// revenue arrays (not just the in-bucket counts), per spec.md §4.4; the
// interval treats the in-bucket fraction as a proportion difference.
type RevenueDistributionCalculator struct {
	Low, High float64
}

func (c *RevenueDistributionCalculator) Name() string { return "revenue_distribution" }

func (c *RevenueDistributionCalculator) Calculate(in Inputs, env Environment) analytics.MetricResult {
	variationRevenue := revenues(in.VariationTxns)
	controlRevenue := revenues(in.ControlTxns)

	inBucketV := countInBucket(variationRevenue, c.Low, c.High)
	inBucketC := countInBucket(controlRevenue, c.Low, c.High)

	value := rate(inBucketV, len(variationRevenue))
	control := rate(inBucketC, len(controlRevenue))

	_, p := env.Kernel.MannWhitneyU(variationRevenue, controlRevenue)
	lower, upper := env.Kernel.WilsonProportionInterval(inBucketV, len(variationRevenue), inBucketC, len(controlRevenue))

	return analytics.MetricResult{
		Value:              value,
		ControlValue:       control,
		Uplift:             uplift(value, control),
		Confidence:         statkernel.Confidence(p),
		ConfidenceInterval: analytics.ConfidenceInterval{Lower: lower, Upper: upper},
		Details: analytics.Details{
			Variation: analytics.SideDetail{Count: inBucketV, Total: float64(len(variationRevenue)), Rate: value, Unit: analytics.UnitPercentage},
			Control:   analytics.SideDetail{Count: inBucketC, Total: float64(len(controlRevenue)), Rate: control, Unit: analytics.UnitPercentage},
		},
	}
}

func countInBucket(revenue []float64, low, high float64) int {
	count := 0
	for _, v := range revenue {
		if v >= low && v <= high {
			count++
		}
	}
	return count
}
