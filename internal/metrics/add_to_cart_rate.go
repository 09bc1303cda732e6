package metrics

import (
	"abtest-analytics/domain/analytics"
	"abtest-analytics/internal/statkernel"
)

// AddToCartRateCalculator computes user_add_to_carts / users * 100, tested
// with Fisher's exact test on the add-to-cart/no-add-to-cart contingency and
// interval-bounded with the Wilson-style proportion-difference construction.
type AddToCartRateCalculator struct{}

func (c *AddToCartRateCalculator) Name() string { return "add_to_cart_rate" }

func (c *AddToCartRateCalculator) Calculate(in Inputs, env Environment) analytics.MetricResult {
	succV, usersV := in.VariationOverall.UserAddToCarts, in.VariationOverall.Users
	succC, usersC := in.ControlOverall.UserAddToCarts, in.ControlOverall.Users

	value := rate(succV, usersV)
	control := rate(succC, usersC)

	table := statkernel.Contingency2x2{
		SuccessVariation: succV, FailVariation: usersV - succV,
		SuccessControl: succC, FailControl: usersC - succC,
	}
	p := env.Kernel.FisherExactTwoSided(table)
	lower, upper := env.Kernel.WilsonProportionInterval(succV, usersV, succC, usersC)

	return analytics.MetricResult{
		Value:              value,
		ControlValue:       control,
		Uplift:             uplift(value, control),
		Confidence:         statkernel.Confidence(p),
		ConfidenceInterval: analytics.ConfidenceInterval{Lower: lower, Upper: upper},
		Details: analytics.Details{
			Variation: analytics.SideDetail{Count: succV, Total: float64(usersV), Rate: value, Unit: analytics.UnitPercentage},
			Control:   analytics.SideDetail{Count: succC, Total: float64(usersC), Rate: control, Unit: analytics.UnitPercentage},
		},
	}
}

func rate(successes, total int) float64 {
	if total == 0 {
		return 0
	}
	return round2(float64(successes) / float64(total) * 100)
}
