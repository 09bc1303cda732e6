// Package normalize cleans raw request payloads — heterogeneous maps of
// field name to value — into the typed OverallRow/TransactionLine tables the
// rest of the pipeline operates on. No row is ever rejected here: malformed
// cells silently degrade to zero/empty, matching spec.md §4.1.
package normalize

import (
	"strconv"
	"strings"

	"abtest-analytics/domain/analytics"
)

// Record is one raw input row as decoded from JSON.
type Record map[string]interface{}

// CleanRevenue coerces a raw cell into a float64 following spec.md §4.1:
// nil/empty -> 0, already-numeric -> cast, otherwise strip every character
// that isn't a digit, dot, or minus sign and parse; unparsable -> 0.
func CleanRevenue(value interface{}) float64 {
	switch v := value.(type) {
	case nil:
		return 0.0
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0.0
		}
		var sb strings.Builder
		for _, r := range trimmed {
			if (r >= '0' && r <= '9') || r == '.' || r == '-' {
				sb.WriteRune(r)
			}
		}
		cleaned := sb.String()
		if cleaned == "" || cleaned == "-" || cleaned == "." {
			return 0.0
		}
		f, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0.0
		}
		return f
	default:
		return 0.0
	}
}

// cleanString coerces a raw cell to a string, defaulting missing cells to "".
func cleanString(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return ""
	}
}

// cleanInt coerces a raw cell to an int, defaulting missing/unparsable cells to 0.
func cleanInt(value interface{}) int {
	switch v := value.(type) {
	case nil:
		return 0
	case float64:
		return int(v)
	case float32:
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0
		}
		if i, err := strconv.Atoi(trimmed); err == nil {
			return i
		}
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return int(f)
		}
		return 0
	default:
		return 0
	}
}

// isRevenueColumn applies spec.md §4.1's "every column whose name contains
// the substring revenue (case-insensitive)" rule.
func isRevenueColumn(name string) bool {
	return strings.Contains(strings.ToLower(name), "revenue")
}

// CleanTable applies clean_revenue to every revenue-tagged column across all
// rows and returns the cleaned records; it does not otherwise alter shape.
func CleanTable(records []Record) []Record {
	cleaned := make([]Record, len(records))
	for i, rec := range records {
		row := make(Record, len(rec))
		for k, v := range rec {
			if isRevenueColumn(k) {
				row[k] = CleanRevenue(v)
			} else {
				row[k] = v
			}
		}
		cleaned[i] = row
	}
	return cleaned
}

// Overall converts cleaned raw records into typed OverallRow entries.
func Overall(records []Record) []analytics.OverallRow {
	cleaned := CleanTable(records)
	rows := make([]analytics.OverallRow, 0, len(cleaned))
	for _, rec := range cleaned {
		rows = append(rows, analytics.OverallRow{
			Variation:      cleanString(rec["variation"]),
			Users:          cleanInt(rec["users"]),
			UserAddToCarts: cleanInt(rec["user_add_to_carts"]),
		})
	}
	return rows
}

// optionalColumns lists the TransactionLine fields that are synthesized as
// the constant "N/A" when absent from the payload, per spec.md §4.2, so
// downstream calculators see a uniform schema.
var optionalColumns = []string{"item_category2", "item_name", "item_bundle", "item_name_simple"}

// Transactions converts cleaned raw records into typed TransactionLine entries.
func Transactions(records []Record) []analytics.TransactionLine {
	cleaned := CleanTable(records)
	present := presentColumns(records, optionalColumns)

	lines := make([]analytics.TransactionLine, 0, len(cleaned))
	for _, rec := range cleaned {
		line := analytics.TransactionLine{
			TransactionID:  cleanString(rec["transaction_id"]),
			Variation:      cleanString(rec["variation"]),
			DeviceCategory: cleanString(rec["device_category"]),
			Quantity:       cleanInt(rec["quantity"]),
			Revenue:        CleanRevenue(rec["revenue"]),
		}
		line.ItemCategory2 = optionalString(rec, "item_category2", present)
		line.ItemName = optionalString(rec, "item_name", present)
		line.ItemBundle = optionalString(rec, "item_bundle", present)
		line.ItemNameSimple = optionalString(rec, "item_name_simple", present)
		lines = append(lines, line)
	}
	return lines
}

// presentColumns reports, for each candidate column, whether any input
// record actually carries that key — distinguishing "column missing" (N/A
// for every row) from "column present but this cell empty" (empty string).
func presentColumns(records []Record, candidates []string) map[string]bool {
	present := make(map[string]bool, len(candidates))
	for _, col := range candidates {
		for _, rec := range records {
			if _, ok := rec[col]; ok {
				present[col] = true
				break
			}
		}
	}
	return present
}

func optionalString(rec Record, column string, present map[string]bool) string {
	if !present[column] {
		return "N/A"
	}
	return cleanString(rec[column])
}
