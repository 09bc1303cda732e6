package metrics

import "abtest-analytics/domain/analytics"

// UsersCalculator reports overall.users verbatim. Per spec.md §4.4 it carries
// no test or interval: uplift and confidence are emitted as zero.
type UsersCalculator struct{}

func (c *UsersCalculator) Name() string { return "users" }

func (c *UsersCalculator) Calculate(in Inputs, _ Environment) analytics.MetricResult {
	value := float64(in.VariationOverall.Users)
	control := float64(in.ControlOverall.Users)

	return analytics.MetricResult{
		Value:        value,
		ControlValue: control,
		Uplift:       0,
		Confidence:   0,
		Details: analytics.Details{
			Variation: analytics.SideDetail{Count: in.VariationOverall.Users, Total: value, Rate: value, Unit: analytics.UnitQuantity},
			Control:   analytics.SideDetail{Count: in.ControlOverall.Users, Total: control, Rate: control, Unit: analytics.UnitQuantity},
		},
	}
}
