// Package virtualtable collapses a per-line-item transaction log into one
// row per transaction_id, per spec.md §4.2.
package virtualtable

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"abtest-analytics/domain/analytics"
)

// group accumulates one transaction_id's lines during the pass.
type group struct {
	transactionID  string
	variation      string
	deviceCategory string
	revenue        float64
	quantity       int
	itemCategory2  map[string]struct{}
	itemName       map[string]struct{}
	itemBundle     map[string]struct{}
	itemNameSimple map[string]struct{}
	lineCount      int
}

func newGroup(id string) *group {
	return &group{
		transactionID:  id,
		itemCategory2:  make(map[string]struct{}),
		itemName:       make(map[string]struct{}),
		itemBundle:     make(map[string]struct{}),
		itemNameSimple: make(map[string]struct{}),
	}
}

func addNonEmpty(set map[string]struct{}, value string) {
	if value != "" && value != "N/A" {
		set[value] = struct{}{}
	}
}

func sortedJoin(set map[string]struct{}) string {
	values := make([]string, 0, len(set))
	for v := range set {
		values = append(values, v)
	}
	sort.Strings(values)
	return strings.Join(values, " | ")
}

// Build groups cleaned transaction lines into one VirtualTransaction per
// transaction_id. Revenue is summed and rounded to 2 decimals; quantity is
// summed; variation/device_category take the first non-empty occurrence;
// the remaining descriptive fields are concatenated as the full sorted set
// (no cap — the 3-item cap only applies to the aggregate-transactions
// surface, see AggregateSummaries).
func Build(lines []analytics.TransactionLine) []analytics.VirtualTransaction {
	order := make([]string, 0)
	groups := make(map[string]*group)

	for _, line := range lines {
		g, ok := groups[line.TransactionID]
		if !ok {
			g = newGroup(line.TransactionID)
			groups[line.TransactionID] = g
			order = append(order, line.TransactionID)
		}

		if g.variation == "" {
			g.variation = line.Variation
		}
		if g.deviceCategory == "" {
			g.deviceCategory = line.DeviceCategory
		}
		g.revenue += line.Revenue
		g.quantity += line.Quantity
		g.lineCount++

		addNonEmpty(g.itemCategory2, line.ItemCategory2)
		addNonEmpty(g.itemName, line.ItemName)
		addNonEmpty(g.itemBundle, line.ItemBundle)
		addNonEmpty(g.itemNameSimple, line.ItemNameSimple)
	}

	out := make([]analytics.VirtualTransaction, 0, len(order))
	for _, id := range order {
		g := groups[id]
		out = append(out, analytics.VirtualTransaction{
			TransactionID:  g.transactionID,
			Variation:      g.variation,
			DeviceCategory: g.deviceCategory,
			Revenue:        round2(g.revenue),
			Quantity:       g.quantity,
			ItemCategory2:  sortedJoin(g.itemCategory2),
			ItemName:       sortedJoin(g.itemName),
			ItemBundle:     sortedJoin(g.itemBundle),
			ItemNameSimple: sortedJoin(g.itemNameSimple),
			UniqueProducts: g.lineCount,
		})
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// AggregateTransaction is the per-result shape returned by the
// /aggregate-transactions surface: a VirtualTransaction whose descriptive
// fields are capped at 3 items (with an overflow suffix) plus a
// human-readable products_summary string.
type AggregateTransaction struct {
	analytics.VirtualTransaction
	ProductsSummary string `json:"products_summary"`
}

const maxSummaryItems = 3

// capJoin sorts the set, keeps the first maxSummaryItems entries, and
// appends "(+N autres)" when more were dropped.
func capJoin(set map[string]struct{}) string {
	values := make([]string, 0, len(set))
	for v := range set {
		values = append(values, v)
	}
	sort.Strings(values)

	if len(values) <= maxSummaryItems {
		return strings.Join(values, " | ")
	}
	overflow := len(values) - maxSummaryItems
	return strings.Join(values[:maxSummaryItems], " | ") + fmt.Sprintf(" (+%d autres)", overflow)
}

func pluralizeFr(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}

// productsSummary renders "{k} produit(s) ({q} unité(s))" with correct
// French pluralization, per spec.md §6.
func productsSummary(uniqueProducts, quantity int) string {
	return fmt.Sprintf("%s (%s)",
		pluralizeFr(uniqueProducts, "produit", "produits"),
		pluralizeFr(quantity, "unité", "unités"))
}

// AggregateSummaries builds the /aggregate-transactions response: one
// AggregateTransaction per transaction_id, with descriptive fields capped at
// 3 items and a products_summary string.
func AggregateSummaries(lines []analytics.TransactionLine) []AggregateTransaction {
	order := make([]string, 0)
	groups := make(map[string]*group)

	for _, line := range lines {
		g, ok := groups[line.TransactionID]
		if !ok {
			g = newGroup(line.TransactionID)
			groups[line.TransactionID] = g
			order = append(order, line.TransactionID)
		}
		if g.variation == "" {
			g.variation = line.Variation
		}
		if g.deviceCategory == "" {
			g.deviceCategory = line.DeviceCategory
		}
		g.revenue += line.Revenue
		g.quantity += line.Quantity
		g.lineCount++

		addNonEmpty(g.itemCategory2, line.ItemCategory2)
		addNonEmpty(g.itemName, line.ItemName)
		addNonEmpty(g.itemBundle, line.ItemBundle)
		addNonEmpty(g.itemNameSimple, line.ItemNameSimple)
	}

	out := make([]AggregateTransaction, 0, len(order))
	for _, id := range order {
		g := groups[id]
		vt := analytics.VirtualTransaction{
			TransactionID:  g.transactionID,
			Variation:      g.variation,
			DeviceCategory: g.deviceCategory,
			Revenue:        round2(g.revenue),
			Quantity:       g.quantity,
			ItemCategory2:  capJoin(g.itemCategory2),
			ItemName:       capJoin(g.itemName),
			ItemBundle:     capJoin(g.itemBundle),
			ItemNameSimple: capJoin(g.itemNameSimple),
			UniqueProducts: g.lineCount,
		}
		out = append(out, AggregateTransaction{
			VirtualTransaction: vt,
			ProductsSummary:    productsSummary(len(g.itemName), g.quantity),
		})
	}
	return out
}
