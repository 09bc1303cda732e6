package virtualtable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"abtest-analytics/domain/analytics"
)

func line(txID, variation, device string, revenue float64, qty int, itemName string) analytics.TransactionLine {
	return analytics.TransactionLine{
		TransactionID:  txID,
		Variation:      variation,
		DeviceCategory: device,
		Revenue:        revenue,
		Quantity:       qty,
		ItemName:       itemName,
		ItemCategory2:  "N/A",
		ItemBundle:     "N/A",
		ItemNameSimple: "N/A",
	}
}

func TestBuild_SumsRevenueAndQuantity(t *testing.T) {
	lines := []analytics.TransactionLine{
		line("t1", "Control", "desktop", 10.125, 1, "shoe"),
		line("t1", "", "", 5.005, 2, "sock"),
	}

	vt := Build(lines)
	require.Len(t, vt, 1)
	assert.Equal(t, "t1", vt[0].TransactionID)
	assert.Equal(t, "Control", vt[0].Variation) // first non-empty wins
	assert.Equal(t, "desktop", vt[0].DeviceCategory)
	assert.InDelta(t, 15.13, vt[0].Revenue, 0.0001) // rounded to 2 decimals
	assert.Equal(t, 3, vt[0].Quantity)
	assert.Equal(t, "shoe | sock", vt[0].ItemName)
}

func TestBuild_PreservesInputOrder(t *testing.T) {
	lines := []analytics.TransactionLine{
		line("t2", "V1", "mobile", 1, 1, "a"),
		line("t1", "Control", "desktop", 2, 1, "b"),
	}

	vt := Build(lines)
	require.Len(t, vt, 2)
	assert.Equal(t, "t2", vt[0].TransactionID)
	assert.Equal(t, "t1", vt[1].TransactionID)
}

func TestAggregateSummaries_CapsAtThreeWithOverflowSuffix(t *testing.T) {
	lines := []analytics.TransactionLine{
		line("t1", "Control", "desktop", 1, 1, "alpha"),
		line("t1", "", "", 1, 1, "bravo"),
		line("t1", "", "", 1, 1, "charlie"),
		line("t1", "", "", 1, 1, "delta"),
		line("t1", "", "", 1, 1, "echo"),
	}

	summaries := AggregateSummaries(lines)
	require.Len(t, summaries, 1)
	assert.Equal(t, "alpha | bravo | charlie (+2 autres)", summaries[0].ItemName)
	assert.Equal(t, "5 produits (5 unités)", summaries[0].ProductsSummary)
}

func TestAggregateSummaries_SingularPluralization(t *testing.T) {
	lines := []analytics.TransactionLine{
		line("t1", "Control", "desktop", 1, 1, "alpha"),
	}

	summaries := AggregateSummaries(lines)
	require.Len(t, summaries, 1)
	assert.Equal(t, "1 produit (1 unité)", summaries[0].ProductsSummary)
}

func TestAggregateSummaries_NoOverflowBelowCap(t *testing.T) {
	lines := []analytics.TransactionLine{
		line("t1", "Control", "desktop", 1, 1, "alpha"),
		line("t1", "", "", 1, 1, "bravo"),
	}

	summaries := AggregateSummaries(lines)
	require.Len(t, summaries, 1)
	assert.Equal(t, "alpha | bravo", summaries[0].ItemName)
}
