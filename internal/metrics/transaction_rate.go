package metrics

import (
	"abtest-analytics/domain/analytics"
	"abtest-analytics/internal/statkernel"
)

// TransactionRateCalculator computes the count of virtual transactions for a
// variation divided by its users, tested and interval-bounded identically to
// AddToCartRateCalculator but against the transaction-count contingency.
type TransactionRateCalculator struct{}

func (c *TransactionRateCalculator) Name() string { return "transaction_rate" }

func (c *TransactionRateCalculator) Calculate(in Inputs, env Environment) analytics.MetricResult {
	txnV, usersV := len(in.VariationTxns), in.VariationOverall.Users
	txnC, usersC := len(in.ControlTxns), in.ControlOverall.Users

	value := rate(txnV, usersV)
	control := rate(txnC, usersC)

	table := statkernel.Contingency2x2{
		SuccessVariation: txnV, FailVariation: usersV - txnV,
		SuccessControl: txnC, FailControl: usersC - txnC,
	}
	p := env.Kernel.FisherExactTwoSided(table)
	lower, upper := env.Kernel.WilsonProportionInterval(txnV, usersV, txnC, usersC)

	return analytics.MetricResult{
		Value:              value,
		ControlValue:       control,
		Uplift:             uplift(value, control),
		Confidence:         statkernel.Confidence(p),
		ConfidenceInterval: analytics.ConfidenceInterval{Lower: lower, Upper: upper},
		Details: analytics.Details{
			Variation: analytics.SideDetail{Count: txnV, Total: float64(usersV), Rate: value, Unit: analytics.UnitPercentage},
			Control:   analytics.SideDetail{Count: txnC, Total: float64(usersC), Rate: control, Unit: analytics.UnitPercentage},
		},
	}
}
