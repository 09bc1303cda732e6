package statkernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"abtest-analytics/ports"
)

// TestFisherExactTwoSided_S1 covers spec.md §8 scenario S1.
func TestFisherExactTwoSided_S1(t *testing.T) {
	k := NewKernel()
	table := Contingency2x2{
		SuccessVariation: 120, FailVariation: 880,
		SuccessControl: 100, FailControl: 900,
	}

	p := k.FisherExactTwoSided(table)
	confidence := Confidence(p)

	assert.True(t, confidence >= 85 && confidence <= 90, "expected confidence in [85,90], got %v", confidence)
}

func TestFisherExactTwoSided_IdenticalTablesGiveHighPValue(t *testing.T) {
	k := NewKernel()
	table := Contingency2x2{
		SuccessVariation: 50, FailVariation: 50,
		SuccessControl: 50, FailControl: 50,
	}

	p := k.FisherExactTwoSided(table)
	assert.InDelta(t, 1.0, p, 0.05)
}

func TestFisherExactTwoSided_EmptyMarginReturnsOne(t *testing.T) {
	k := NewKernel()
	p := k.FisherExactTwoSided(Contingency2x2{})
	assert.Equal(t, 1.0, p)
}

// TestMannWhitneyU_S2 covers spec.md §8 scenario S2: fully separated samples.
func TestMannWhitneyU_FullySeparatedSamplesAreHighlyConfident(t *testing.T) {
	k := NewKernel()

	control := make([]float64, 50)
	variation := make([]float64, 50)
	for i := range control {
		control[i] = 100
		variation[i] = 110
	}

	u, p := k.MannWhitneyU(variation, control)
	confidence := Confidence(p)

	assert.Equal(t, float64(50*50), u) // every variation value ranks above every control value
	assert.True(t, confidence > 99, "expected near-100%% confidence, got %v", confidence)
}

func TestMannWhitneyU_IdenticalSamplesGiveLowConfidence(t *testing.T) {
	k := NewKernel()
	a := []float64{1, 2, 3, 4, 5}
	b := []float64{1, 2, 3, 4, 5}

	_, p := k.MannWhitneyU(a, b)
	assert.InDelta(t, 1.0, p, 0.2)
}

func TestMannWhitneyU_EmptySampleReturnsNeutral(t *testing.T) {
	k := NewKernel()
	u, p := k.MannWhitneyU(nil, []float64{1, 2})
	assert.Equal(t, 0.0, u)
	assert.Equal(t, 1.0, p)
}

// TestWilsonProportionInterval_S4 covers spec.md §8 scenario S4.
func TestWilsonProportionInterval_S4(t *testing.T) {
	k := NewKernel()
	lower, upper := k.WilsonProportionInterval(2100, 10000, 2000, 10000)

	assert.True(t, lower <= 5.0 && upper >= 5.0, "expected interval to straddle +5%% uplift, got [%v, %v]", lower, upper)
}

func TestWilsonProportionInterval_ZeroControlReturnsZero(t *testing.T) {
	k := NewKernel()
	lower, upper := k.WilsonProportionInterval(10, 100, 0, 100)
	assert.Equal(t, 0.0, lower)
	assert.Equal(t, 0.0, upper)
}

func TestBootstrapRelativeDifference_DeterministicUnderFixedSeed(t *testing.T) {
	k := NewKernel()
	variation := []float64{100, 110, 105, 120, 95}
	control := []float64{90, 95, 100, 85, 92}
	cfg := BootstrapConfig{Replicates: 200, Seed: 42, SeedFromEntropy: false}
	rngSource := ports.NewRNGSource()

	l1, u1 := k.BootstrapRelativeDifference(variation, control, len(variation), len(control), Mean, cfg, rngSource)
	l2, u2 := k.BootstrapRelativeDifference(variation, control, len(variation), len(control), Mean, cfg, rngSource)

	assert.Equal(t, l1, l2) // spec.md §8 property 7: idempotent under fixed seed
	assert.Equal(t, u1, u2)
	assert.True(t, l1 <= u1)
}

func TestBootstrapRelativeDifference_EmptySampleReturnsZero(t *testing.T) {
	k := NewKernel()
	cfg := BootstrapConfig{Replicates: 10, Seed: 1}
	lower, upper := k.BootstrapRelativeDifference(nil, []float64{1, 2}, 0, 2, Mean, cfg, ports.NewRNGSource())
	assert.Equal(t, 0.0, lower)
	assert.Equal(t, 0.0, upper)
}

func TestTotalRevenueClosedFormInterval_ZeroControlReturnsZero(t *testing.T) {
	k := NewKernel()
	lower, upper := k.TotalRevenueClosedFormInterval(10, 10, 5.0, 0)
	assert.Equal(t, 0.0, lower)
	assert.Equal(t, 0.0, upper)
}

func TestTotalRevenueClosedFormInterval_CentersOnUplift(t *testing.T) {
	k := NewKernel()
	lower, upper := k.TotalRevenueClosedFormInterval(50, 50, 10.0, 5000)
	require.True(t, lower < 10.0)
	require.True(t, upper > 10.0)
}
