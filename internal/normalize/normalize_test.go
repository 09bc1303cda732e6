package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCleanRevenue_RoundTrip covers spec.md §8 property 8.
func TestCleanRevenue_RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
		want  float64
	}{
		{"currency with symbol and thousands separator", "€ 1,234.56", 1234.56},
		{"negative string", "-42", -42.0},
		{"empty string", "", 0.0},
		{"nil", nil, 0.0},
		{"already numeric", 99.95, 99.95},
		{"garbage", "N/A", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CleanRevenue(tt.input)
			assert.InDelta(t, tt.want, got, 0.0001)
		})
	}
}

func TestCleanTable_OnlyTouchesRevenueColumns(t *testing.T) {
	records := []Record{
		{"revenue": "$10.50", "total_revenue": "$5", "quantity": "3"},
	}

	cleaned := CleanTable(records)
	require.Len(t, cleaned, 1)
	assert.Equal(t, 10.50, cleaned[0]["revenue"])
	assert.Equal(t, 5.0, cleaned[0]["total_revenue"])
	assert.Equal(t, "3", cleaned[0]["quantity"]) // untouched, non-revenue column
}

func TestOverall_CoercesAndDefaults(t *testing.T) {
	records := []Record{
		{"variation": "Control", "users": 1000.0, "user_add_to_carts": 300.0},
		{"variation": "V1", "users": nil, "user_add_to_carts": "not-a-number"},
	}

	rows := Overall(records)
	require.Len(t, rows, 2)
	assert.Equal(t, "Control", rows[0].Variation)
	assert.Equal(t, 1000, rows[0].Users)
	assert.Equal(t, 300, rows[0].UserAddToCarts)

	assert.Equal(t, "V1", rows[1].Variation)
	assert.Equal(t, 0, rows[1].Users)
	assert.Equal(t, 0, rows[1].UserAddToCarts)
}

func TestTransactions_SynthesizesMissingOptionalColumns(t *testing.T) {
	records := []Record{
		{"transaction_id": "t1", "variation": "Control", "revenue": "12.00", "quantity": 2.0},
	}

	lines := Transactions(records)
	require.Len(t, lines, 1)
	assert.Equal(t, "N/A", lines[0].ItemCategory2)
	assert.Equal(t, "N/A", lines[0].ItemName)
	assert.Equal(t, 12.00, lines[0].Revenue)
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestTransactions_PreservesPresentButEmptyColumn(t *testing.T) {
	records := []Record{
		{"transaction_id": "t1", "variation": "Control", "item_name": "", "revenue": "1"},
	}

	lines := Transactions(records)
	require.Len(t, lines, 1)
	assert.Equal(t, "", lines[0].ItemName) // present, just empty — not synthesized to N/A
}
