package categorizer

import "npatel/merge-csv/internal/models"

// CategorizationStrategy defines one tier of the classification waterfall.
// Each strategy implements a specific approach (substring mapping, pattern
// rules, statistical model).
type CategorizationStrategy interface {
	// Categorize attempts to categorize a transaction description using this
	// strategy. The result is only valid when found is true.
	Categorize(description string) (result models.ClassificationResult, found bool)

	// Name returns the name of this strategy for logging and debugging purposes.
	Name() string
}
