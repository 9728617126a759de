package categorizer

import (
	"regexp"

	"npatel/merge-csv/internal/logging"
	"npatel/merge-csv/internal/models"
	"npatel/merge-csv/internal/store"
)

// compiledRule pairs a compiled pattern with its category.
type compiledRule struct {
	pattern  *regexp.Regexp
	category string
}

// RuleStrategy implements categorization from the ordered regex rule table.
// The first rule whose pattern matches wins; a fixed transfer fallback runs
// after all configured rules regardless of overrides.
type RuleStrategy struct {
	rules    []compiledRule
	fallback compiledRule
}

// NewRuleStrategy compiles the rule table. Patterns match case-insensitively;
// rules whose patterns fail to compile are skipped with a warning rather than
// failing the run.
func NewRuleStrategy(rules []store.Rule, logger logging.Logger) *RuleStrategy {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}

	compiled := make([]compiledRule, 0, len(rules))
	for _, rule := range rules {
		re, err := regexp.Compile("(?i)" + rule.Pattern)
		if err != nil {
			logger.WithError(err).Warn("Skipping invalid rule pattern",
				logging.Field{Key: logging.FieldCategory, Value: rule.Category})
			continue
		}
		compiled = append(compiled, compiledRule{pattern: re, category: rule.Category})
	}

	// The fallback pattern is a source constant and always compiles.
	fallback := compiledRule{
		pattern:  regexp.MustCompile(store.TransferFallback.Pattern),
		category: store.TransferFallback.Category,
	}

	return &RuleStrategy{rules: compiled, fallback: fallback}
}

// Name returns the name of this strategy.
func (s *RuleStrategy) Name() string {
	return "Rules"
}

// Categorize runs the ordered rules, then the transfer fallback.
func (s *RuleStrategy) Categorize(description string) (models.ClassificationResult, bool) {
	for _, rule := range s.rules {
		if rule.pattern.MatchString(description) {
			return models.ClassificationResult{
				Category:   rule.category,
				Provenance: models.ProvenanceRegex,
			}, true
		}
	}

	if s.fallback.pattern.MatchString(description) {
		return models.ClassificationResult{
			Category:   s.fallback.category,
			Provenance: models.ProvenanceRegex,
		}, true
	}

	return models.ClassificationResult{}, false
}
