package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"abtest-analytics/domain/analytics"
	"abtest-analytics/internal/statkernel"
	"abtest-analytics/ports"
)

func testEnv() Environment {
	return Environment{
		Kernel:               statkernel.NewKernel(),
		RNGSource:            ports.NewRNGSource(),
		Bootstrap:            statkernel.BootstrapConfig{Replicates: 200, Seed: 7, SeedFromEntropy: false},
		TotalRevenueCIMethod: "closed_form",
	}
}

func txns(variation string, revenue float64, count int) []analytics.VirtualTransaction {
	out := make([]analytics.VirtualTransaction, count)
	for i := range out {
		out[i] = analytics.VirtualTransaction{
			TransactionID: variation + string(rune('a'+i)),
			Variation:     variation,
			Revenue:       revenue,
			Quantity:      1,
		}
	}
	return out
}

// TestTransactionRate_S1 covers spec.md §8 scenario S1.
func TestTransactionRate_S1(t *testing.T) {
	in := Inputs{
		VariationOverall: analytics.OverallRow{Variation: "V1", Users: 1000, UserAddToCarts: 330},
		ControlOverall:   analytics.OverallRow{Variation: "Control", Users: 1000, UserAddToCarts: 300},
		VariationTxns:    txns("V1", 50, 120),
		ControlTxns:      txns("Control", 50, 100),
	}

	result := (&TransactionRateCalculator{}).Calculate(in, testEnv())

	assert.Equal(t, 12.0, result.Value)
	assert.Equal(t, 10.0, result.ControlValue)
	assert.Equal(t, 20.0, result.Uplift)
	assert.True(t, result.Confidence >= 85 && result.Confidence <= 90, "got %v", result.Confidence)
}

// TestAOV_S2 covers spec.md §8 scenario S2.
func TestAOV_S2(t *testing.T) {
	in := Inputs{
		VariationOverall: analytics.OverallRow{Variation: "V1", Users: 1000},
		ControlOverall:   analytics.OverallRow{Variation: "Control", Users: 1000},
		VariationTxns:    txns("V1", 110, 50),
		ControlTxns:      txns("Control", 100, 50),
	}

	result := (&AOVCalculator{}).Calculate(in, testEnv())

	assert.Equal(t, 110.0, result.Value)
	assert.Equal(t, 100.0, result.ControlValue)
	assert.Equal(t, 10.0, result.Uplift)
	assert.True(t, result.Confidence > 99, "got %v", result.Confidence)
}

func TestUsersCalculator_EmitsNoUpliftOrConfidence(t *testing.T) {
	in := Inputs{
		VariationOverall: analytics.OverallRow{Users: 500},
		ControlOverall:   analytics.OverallRow{Users: 400},
	}
	result := (&UsersCalculator{}).Calculate(in, testEnv())

	assert.Equal(t, 500.0, result.Value)
	assert.Equal(t, 400.0, result.ControlValue)
	assert.Equal(t, 0.0, result.Uplift)
	assert.Equal(t, 0.0, result.Confidence)
}

// TestTotalRevenue_ConservesSum covers spec.md §8 scenario S3 (conservation).
func TestTotalRevenue_ConservesSum(t *testing.T) {
	variationTxns := txns("V1", 25.5, 10)
	controlTxns := txns("Control", 20.0, 8)

	in := Inputs{
		VariationOverall: analytics.OverallRow{Users: 100},
		ControlOverall:   analytics.OverallRow{Users: 100},
		VariationTxns:    variationTxns,
		ControlTxns:      controlTxns,
	}
	result := (&TotalRevenueCalculator{}).Calculate(in, testEnv())

	assert.InDelta(t, 255.0, result.Value, 0.01)
	assert.InDelta(t, 160.0, result.ControlValue, 0.01)
}

func TestAddToCartRate_ControlAgainstItselfHasZeroUplift(t *testing.T) {
	in := Inputs{
		VariationOverall: analytics.OverallRow{Variation: "Control", Users: 1000, UserAddToCarts: 300},
		ControlOverall:   analytics.OverallRow{Variation: "Control", Users: 1000, UserAddToCarts: 300},
	}
	result := (&AddToCartRateCalculator{}).Calculate(in, testEnv())

	// spec.md §8 property 3: control coherence — uplift is zero, interval centers on 0.
	assert.Equal(t, 0.0, result.Uplift)
	assert.InDelta(t, 0.0, result.ConfidenceInterval.Lower+result.ConfidenceInterval.Upper, 0.01)
}

func TestRevenueDistributionCalculator_Bucketing(t *testing.T) {
	in := Inputs{
		VariationOverall: analytics.OverallRow{Users: 100},
		ControlOverall:   analytics.OverallRow{Users: 100},
		VariationTxns: append(txns("V1", 10, 5), txns("V1", 200, 5)...),
		ControlTxns:   txns("Control", 10, 10),
	}
	calc := &RevenueDistributionCalculator{Low: 0, High: 50}
	result := calc.Calculate(in, testEnv())

	require.Equal(t, 50.0, result.Value) // 5 of 10 variation txns fall in [0,50]
	assert.Equal(t, 100.0, result.ControlValue)
}

func TestUplift_GuardsNonPositiveControl(t *testing.T) {
	assert.Equal(t, 0.0, uplift(10, 0))
	assert.Equal(t, 0.0, uplift(10, -5))
	assert.Equal(t, 100.0, uplift(20, 10))
}
