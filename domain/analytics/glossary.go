package analytics

// GlossaryEntry names and describes one metric in the fixed panel, used by
// the /create-analysis and /metrics/glossary surfaces.
type GlossaryEntry struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Glossary is the fixed, ordered description of every metric the pipeline
// computes. Order matches spec.md §4.4's table.
var Glossary = []GlossaryEntry{
	{Name: "users", Description: "Distinct users recorded for the variation in the overall aggregate."},
	{Name: "add_to_cart_rate", Description: "Users who added to cart divided by users, as a percentage."},
	{Name: "transaction_rate", Description: "Virtual transactions divided by users, as a percentage."},
	{Name: "aov", Description: "Average Order Value: mean revenue per transaction."},
	{Name: "avg_products", Description: "Average item quantity per transaction."},
	{Name: "total_revenue", Description: "Sum of per-transaction revenue."},
	{Name: "arpu", Description: "Average Revenue Per User: total revenue divided by users."},
	{Name: "revenue_distribution", Description: "Fraction of transactions with revenue inside a bucket range."},
}
