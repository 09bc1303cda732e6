package metrics

import (
	"abtest-analytics/domain/analytics"
	"abtest-analytics/internal/statkernel"
)

// AvgProductsCalculator computes mean per-transaction quantity, with a
// symmetric bootstrap (each side resampled at its own original size).
type AvgProductsCalculator struct{}

func (c *AvgProductsCalculator) Name() string { return "avg_products" }

func (c *AvgProductsCalculator) Calculate(in Inputs, env Environment) analytics.MetricResult {
	variationQty := quantities(in.VariationTxns)
	controlQty := quantities(in.ControlTxns)

	value := round2(statkernel.Mean(variationQty))
	control := round2(statkernel.Mean(controlQty))

	_, p := env.Kernel.MannWhitneyU(variationQty, controlQty)

	lower, upper := env.Kernel.BootstrapRelativeDifference(
		variationQty, controlQty,
		len(variationQty), len(controlQty),
		statkernel.Mean, env.Bootstrap, env.RNGSource,
	)

	return analytics.MetricResult{
		Value:              value,
		ControlValue:       control,
		Uplift:             uplift(value, control),
		Confidence:         statkernel.Confidence(p),
		ConfidenceInterval: analytics.ConfidenceInterval{Lower: lower, Upper: upper},
		Details: analytics.Details{
			Variation: analytics.SideDetail{Count: len(variationQty), Total: sumFloat(variationQty), Rate: value, Unit: analytics.UnitQuantity},
			Control:   analytics.SideDetail{Count: len(controlQty), Total: sumFloat(controlQty), Rate: control, Unit: analytics.UnitQuantity},
		},
	}
}
