package ui

import "abtest-analytics/domain/analytics"

// glossaryEntries exposes the fixed metric glossary for the
// /metrics/glossary surface, kept separate from /create-analysis's embedded
// glossary field so each endpoint's response shape can evolve independently.
func glossaryEntries() []analytics.GlossaryEntry {
	return analytics.Glossary
}
