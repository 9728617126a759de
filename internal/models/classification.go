package models

import "npatel/merge-csv/internal/logging"

// Provenance records which classification tier decided a category. It is an
// auditable contract: the value must always match the tier that produced
// the category.
type Provenance string

const (
	// ProvenanceMapping marks categories from the custom mapping table.
	ProvenanceMapping Provenance = "mapping"
	// ProvenanceRegex marks categories from the ordered pattern rules.
	ProvenanceRegex Provenance = "regex"
	// ProvenanceStatistical marks categories from the trained text classifier.
	ProvenanceStatistical Provenance = "statistical"
	// ProvenanceUncategorized marks transactions no tier could decide.
	ProvenanceUncategorized Provenance = "uncategorized"
)

// CategoryUncategorized is the universal fallback label. It is never a
// valid predicted label and never feeds back into training.
const CategoryUncategorized = "Uncategorized"

// CategoryTransfers is the reserved category assigned by the fixed
// transfer fallback pattern, so stray transfer phrasing stays out of
// income/expense totals downstream.
const CategoryTransfers = "Transfers & Payments"

// ClassificationResult pairs an assigned category with the tier that
// produced it.
type ClassificationResult struct {
	Category   string
	Provenance Provenance
}

// TierCounts tracks how many transactions each tier resolved during a run.
type TierCounts struct {
	Mapping       int
	Regex         int
	Statistical   int
	Uncategorized int
}

// Record increments the counter for the given provenance.
func (tc *TierCounts) Record(p Provenance) {
	switch p {
	case ProvenanceMapping:
		tc.Mapping++
	case ProvenanceRegex:
		tc.Regex++
	case ProvenanceStatistical:
		tc.Statistical++
	default:
		tc.Uncategorized++
	}
}

// Total returns the number of classified transactions.
func (tc TierCounts) Total() int {
	return tc.Mapping + tc.Regex + tc.Statistical + tc.Uncategorized
}

// LogSummary logs a one-line breakdown of the run's classification outcome.
func (tc TierCounts) LogSummary(logger logging.Logger) {
	if logger == nil {
		return
	}
	logger.Info("Categorization summary",
		logging.Field{Key: "total", Value: tc.Total()},
		logging.Field{Key: "mapping", Value: tc.Mapping},
		logging.Field{Key: "regex", Value: tc.Regex},
		logging.Field{Key: "statistical", Value: tc.Statistical},
		logging.Field{Key: "uncategorized", Value: tc.Uncategorized},
	)
}
