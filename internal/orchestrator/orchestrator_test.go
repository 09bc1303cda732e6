package orchestrator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"abtest-analytics/domain/analytics"
	"abtest-analytics/domain/core"
	"abtest-analytics/internal/statkernel"
	"abtest-analytics/ports"
)

func testOrchestrator() *Orchestrator {
	return New(
		statkernel.NewKernel(),
		ports.NewRNGSource(),
		statkernel.BootstrapConfig{Replicates: 100, Seed: 3, SeedFromEntropy: false},
		"closed_form",
	)
}

func line(txID, variation string, revenue float64) analytics.TransactionLine {
	return analytics.TransactionLine{TransactionID: txID, Variation: variation, Revenue: revenue, Quantity: 1}
}

// TestRun_ControlDetection_S6 covers spec.md §8 scenario S6.
func TestRun_ControlDetection_S6(t *testing.T) {
	o := testOrchestrator()
	envelope := Envelope{
		Overall: []analytics.OverallRow{
			{Variation: "Original (control)", Users: 100, UserAddToCarts: 20},
			{Variation: "B", Users: 100, UserAddToCarts: 25},
		},
		Transactions: []analytics.TransactionLine{
			line("t1", "Original (control)", 50),
			line("t2", "B", 55),
		},
	}

	resp, err := o.Run(envelope, RevenueBucket{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Original (control)", resp.Control)
}

func TestRun_NoControlVariationFails(t *testing.T) {
	o := testOrchestrator()
	envelope := Envelope{
		Overall: []analytics.OverallRow{{Variation: "A", Users: 10}, {Variation: "B", Users: 10}},
	}

	_, err := o.Run(envelope, RevenueBucket{}, nil)
	assert.ErrorIs(t, err, core.ErrNoControlVariation)
}

func TestRun_AmbiguousControlFails(t *testing.T) {
	o := testOrchestrator()
	envelope := Envelope{
		Overall: []analytics.OverallRow{
			{Variation: "Control A", Users: 10},
			{Variation: "Control B", Users: 10},
		},
	}

	_, err := o.Run(envelope, RevenueBucket{}, nil)
	assert.ErrorIs(t, err, core.ErrAmbiguousControl)
}

func TestRun_EmptyOverallFails(t *testing.T) {
	o := testOrchestrator()
	_, err := o.Run(Envelope{}, RevenueBucket{}, nil)
	assert.ErrorIs(t, err, core.ErrEmptyOverall)
}

// TestRun_ControlCoherence covers spec.md §8 property 3: the control row's
// own uplift against itself is zero.
func TestRun_ControlCoherence(t *testing.T) {
	o := testOrchestrator()
	envelope := Envelope{
		Overall: []analytics.OverallRow{
			{Variation: "Control", Users: 1000, UserAddToCarts: 300},
			{Variation: "V1", Users: 1000, UserAddToCarts: 330},
		},
		Transactions: []analytics.TransactionLine{
			line("c1", "Control", 100), line("c2", "Control", 100),
			line("v1", "V1", 110), line("v2", "V1", 110),
		},
	}

	resp, err := o.Run(envelope, RevenueBucket{}, []string{"transaction_rate"})
	require.NoError(t, err)

	controlMetrics := resp.Data["Control"]
	assert.Equal(t, 0.0, controlMetrics["transaction_rate"].Uplift)
}

func TestRun_SelectedRestrictsPanel(t *testing.T) {
	o := testOrchestrator()
	envelope := Envelope{
		Overall: []analytics.OverallRow{
			{Variation: "Control", Users: 100, UserAddToCarts: 20},
			{Variation: "V1", Users: 100, UserAddToCarts: 25},
		},
		Transactions: []analytics.TransactionLine{
			line("c1", "Control", 50), line("v1", "V1", 55),
		},
	}

	resp, err := o.Run(envelope, RevenueBucket{}, []string{"users", "total_revenue"})
	require.NoError(t, err)

	metricsForV1 := resp.Data["V1"]
	assert.Len(t, metricsForV1, 2)
	_, hasUsers := metricsForV1["users"]
	_, hasRevenue := metricsForV1["total_revenue"]
	assert.True(t, hasUsers)
	assert.True(t, hasRevenue)
}

// TestRun_VirtualTableUniqueness covers spec.md §8 property 1.
func TestRun_VirtualTableUniqueness(t *testing.T) {
	o := testOrchestrator()
	envelope := Envelope{
		Overall: []analytics.OverallRow{{Variation: "Control", Users: 10}},
		Transactions: []analytics.TransactionLine{
			line("t1", "Control", 10), line("t1", "Control", 5), line("t2", "Control", 7),
		},
	}

	resp, err := o.Run(envelope, RevenueBucket{}, nil)
	require.NoError(t, err)
	assert.Len(t, resp.VirtualTable, 2)
}
