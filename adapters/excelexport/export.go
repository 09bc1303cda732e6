// Package excelexport renders an analysis response to a .xlsx workbook for
// the /analyze/export.xlsx surface, mirroring the reader idiom the rest of
// the codebase uses for Excel I/O but for writing.
package excelexport

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"abtest-analytics/domain/analytics"
)

const (
	sheetVirtualTable = "Virtual Table"
	sheetMetrics      = "Metrics"
)

// Render writes the virtual table and the per-variation metric panel into a
// workbook and returns its bytes.
func Render(resp *analytics.Response) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeVirtualTableSheet(f, resp.VirtualTable); err != nil {
		return nil, fmt.Errorf("failed to write virtual table sheet: %w", err)
	}
	if err := writeMetricsSheet(f, resp); err != nil {
		return nil, fmt.Errorf("failed to write metrics sheet: %w", err)
	}

	f.SetActiveSheet(0)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeVirtualTableSheet(f *excelize.File, rows []analytics.VirtualTransaction) error {
	if _, err := f.NewSheet(sheetVirtualTable); err != nil {
		return err
	}

	headers := []string{"transaction_id", "variation", "device_category", "revenue", "quantity", "item_name"}
	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheetVirtualTable, cell, header); err != nil {
			return err
		}
	}

	for i, row := range rows {
		rowNum := i + 2
		values := []interface{}{row.TransactionID, row.Variation, row.DeviceCategory, row.Revenue, row.Quantity, row.ItemName}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, rowNum)
			if err := f.SetCellValue(sheetVirtualTable, cell, value); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeMetricsSheet(f *excelize.File, resp *analytics.Response) error {
	if _, err := f.NewSheet(sheetMetrics); err != nil {
		return err
	}

	headers := []string{"variation", "metric", "value", "control_value", "uplift", "confidence", "ci_lower", "ci_upper"}
	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheetMetrics, cell, header); err != nil {
			return err
		}
	}

	rowNum := 2
	for _, entry := range orderedEntries(resp) {
		values := []interface{}{
			entry.variation, entry.metric, entry.result.Value, entry.result.ControlValue,
			entry.result.Uplift, entry.result.Confidence,
			entry.result.ConfidenceInterval.Lower, entry.result.ConfidenceInterval.Upper,
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, rowNum)
			if err := f.SetCellValue(sheetMetrics, cell, value); err != nil {
				return err
			}
		}
		rowNum++
	}
	return nil
}

type metricRow struct {
	variation string
	metric    string
	result    analytics.MetricResult
}

// orderedEntries walks the glossary order within each variation (variations
// sorted by name) so the exported sheet lists metrics in the same order every
// time, regardless of Go's randomized map iteration.
func orderedEntries(resp *analytics.Response) []metricRow {
	variations := make([]string, 0, len(resp.Data))
	for variation := range resp.Data {
		variations = append(variations, variation)
	}
	sort.Strings(variations)

	var out []metricRow
	for _, variation := range variations {
		panel := resp.Data[variation]
		for _, entry := range analytics.Glossary {
			if result, ok := panel[entry.Name]; ok {
				out = append(out, metricRow{variation: variation, metric: entry.Name, result: result})
			}
		}
	}
	return out
}
