package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"abtest-analytics/domain/analytics"
)

func TestValidate_EmptyInput(t *testing.T) {
	summary := Validate(nil)
	assert.Equal(t, 0, summary.RowCount)
	assert.Empty(t, summary.Warnings)
}

func TestValidate_FlagsNegativeRevenueAndNonPositiveQuantityAndMissingVariation(t *testing.T) {
	lines := []analytics.TransactionLine{
		{TransactionID: "t1", Variation: "Control", Revenue: -5, Quantity: 1},
		{TransactionID: "t2", Variation: "Control", Revenue: 10, Quantity: 0},
		{TransactionID: "t3", Variation: "", Revenue: 10, Quantity: 1},
		{TransactionID: "t4", Variation: "Control", Revenue: 10, Quantity: 1},
	}

	summary := Validate(lines)
	require.Len(t, summary.Warnings, 3)

	byType := make(map[string]Warning, len(summary.Warnings))
	for _, w := range summary.Warnings {
		byType[w.Type] = w
	}

	assert.Equal(t, 1, byType["negative_revenue"].Count)
	assert.Equal(t, 1, byType["non_positive_quantity"].Count)
	assert.Equal(t, 1, byType["missing_variation"].Count)
}

func TestValidate_CapsExamplesAtTwo(t *testing.T) {
	lines := make([]analytics.TransactionLine, 5)
	for i := range lines {
		lines[i] = analytics.TransactionLine{TransactionID: "t", Variation: "Control", Revenue: -1, Quantity: 1}
	}

	summary := Validate(lines)
	require.Len(t, summary.Warnings, 1)
	assert.Equal(t, 5, summary.Warnings[0].Count)
	assert.Len(t, summary.Warnings[0].Examples, 2)
}

func TestValidate_ComputesMinMaxMean(t *testing.T) {
	lines := []analytics.TransactionLine{
		{Revenue: 10, Quantity: 1, Variation: "Control"},
		{Revenue: 20, Quantity: 3, Variation: "Control"},
	}

	summary := Validate(lines)
	assert.Equal(t, 10.0, summary.RevenueMin)
	assert.Equal(t, 20.0, summary.RevenueMax)
	assert.Equal(t, 15.0, summary.RevenueMean)
	assert.Equal(t, 1, summary.QuantityMin)
	assert.Equal(t, 3, summary.QuantityMax)
	assert.Equal(t, 2.0, summary.QuantityMean)
}
