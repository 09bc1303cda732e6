// Package validator runs non-blocking sanity checks over a transaction log,
// per spec.md §4.6. It never rejects input; it only surfaces warnings.
package validator

import (
	"abtest-analytics/domain/analytics"
)

// Warning flags a class of suspicious rows, carrying up to two example rows
// so a caller can inspect without scanning the whole payload.
type Warning struct {
	Type     string                      `json:"type"`
	Message  string                      `json:"message"`
	Count    int                         `json:"count"`
	Examples []analytics.TransactionLine `json:"examples"`
}

// Summary is the base-count and min/max/mean report over revenue and
// quantity, alongside any warnings raised.
type Summary struct {
	RowCount     int       `json:"row_count"`
	RevenueMin   float64   `json:"revenue_min"`
	RevenueMax   float64   `json:"revenue_max"`
	RevenueMean  float64   `json:"revenue_mean"`
	QuantityMin  int       `json:"quantity_min"`
	QuantityMax  int       `json:"quantity_max"`
	QuantityMean float64   `json:"quantity_mean"`
	Warnings     []Warning `json:"warnings"`
}

const maxExamplesPerWarning = 2

// Validate computes base statistics and raises warnings for negative
// revenue, non-positive quantity, and missing variation, per spec.md §4.6.
func Validate(lines []analytics.TransactionLine) Summary {
	summary := Summary{RowCount: len(lines)}
	if len(lines) == 0 {
		return summary
	}

	var negativeRevenue, nonPositiveQty, missingVariation []analytics.TransactionLine
	var revenueSum float64
	var quantitySum int

	summary.RevenueMin = lines[0].Revenue
	summary.RevenueMax = lines[0].Revenue
	summary.QuantityMin = lines[0].Quantity
	summary.QuantityMax = lines[0].Quantity

	for _, line := range lines {
		if line.Revenue < summary.RevenueMin {
			summary.RevenueMin = line.Revenue
		}
		if line.Revenue > summary.RevenueMax {
			summary.RevenueMax = line.Revenue
		}
		if line.Quantity < summary.QuantityMin {
			summary.QuantityMin = line.Quantity
		}
		if line.Quantity > summary.QuantityMax {
			summary.QuantityMax = line.Quantity
		}
		revenueSum += line.Revenue
		quantitySum += line.Quantity

		if line.Revenue < 0 {
			negativeRevenue = appendExample(negativeRevenue, line)
		}
		if line.Quantity <= 0 {
			nonPositiveQty = appendExample(nonPositiveQty, line)
		}
		if line.Variation == "" {
			missingVariation = appendExample(missingVariation, line)
		}
	}

	summary.RevenueMean = revenueSum / float64(len(lines))
	summary.QuantityMean = float64(quantitySum) / float64(len(lines))

	summary.Warnings = collectWarnings(lines, negativeRevenue, nonPositiveQty, missingVariation)

	return summary
}

func appendExample(examples []analytics.TransactionLine, line analytics.TransactionLine) []analytics.TransactionLine {
	if len(examples) >= maxExamplesPerWarning {
		return examples
	}
	return append(examples, line)
}

func collectWarnings(lines []analytics.TransactionLine, negativeRevenue, nonPositiveQty, missingVariation []analytics.TransactionLine) []Warning {
	var warnings []Warning

	if count := countMatching(lines, func(l analytics.TransactionLine) bool { return l.Revenue < 0 }); count > 0 {
		warnings = append(warnings, Warning{
			Type: "negative_revenue", Message: "rows with negative revenue",
			Count: count, Examples: negativeRevenue,
		})
	}
	if count := countMatching(lines, func(l analytics.TransactionLine) bool { return l.Quantity <= 0 }); count > 0 {
		warnings = append(warnings, Warning{
			Type: "non_positive_quantity", Message: "rows with quantity <= 0",
			Count: count, Examples: nonPositiveQty,
		})
	}
	if count := countMatching(lines, func(l analytics.TransactionLine) bool { return l.Variation == "" }); count > 0 {
		warnings = append(warnings, Warning{
			Type: "missing_variation", Message: "rows with missing variation",
			Count: count, Examples: missingVariation,
		})
	}

	return warnings
}

func countMatching(lines []analytics.TransactionLine, pred func(analytics.TransactionLine) bool) int {
	count := 0
	for _, l := range lines {
		if pred(l) {
			count++
		}
	}
	return count
}
