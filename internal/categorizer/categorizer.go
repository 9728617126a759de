// Package categorizer assigns spending categories to transaction
// descriptions through an ordered waterfall of strategies: the custom
// substring mapping, the regex rule table, and a trained statistical
// classifier. The first strategy that decides wins; anything left over is
// "Uncategorized".
package categorizer

import (
	"strings"

	"npatel/merge-csv/internal/corpus"
	"npatel/merge-csv/internal/logging"
	"npatel/merge-csv/internal/models"
	"npatel/merge-csv/internal/store"
)

// Options bundles the tunables for building a Categorizer.
type Options struct {
	Mapping             map[string]string
	Rules               []store.Rule
	Categories          []string
	ConfidenceThreshold float64
	MinTrainingSamples  int
	Cache               *ModelCache
}

// Categorizer runs the classification waterfall and keeps per-tier counts
// for the run's audit report.
type Categorizer struct {
	strategies  []CategorizationStrategy
	statistical *StatisticalStrategy
	minSamples  int
	cache       *ModelCache
	counts      models.TierCounts
	logger      logging.Logger
}

// New builds a Categorizer with all three tiers. The statistical tier stays
// disabled until Train is called.
func New(opts Options, logger logging.Logger) *Categorizer {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}

	statistical := NewStatisticalStrategy(opts.Categories, opts.ConfidenceThreshold, logger)

	minSamples := opts.MinTrainingSamples
	if minSamples < 1 {
		minSamples = 1
	}

	return &Categorizer{
		strategies: []CategorizationStrategy{
			NewMappingStrategy(opts.Mapping),
			NewRuleStrategy(opts.Rules, logger),
			statistical,
		},
		statistical: statistical,
		minSamples:  minSamples,
		cache:       opts.Cache,
		logger:      logger,
	}
}

// Train fits the statistical tier on the corpus. A training failure disables
// that tier only; the mapping and rule tiers keep working.
func (c *Categorizer) Train(examples []corpus.Example) {
	if err := c.statistical.Train(examples, c.minSamples, c.cache); err != nil {
		c.logger.WithError(err).Warn("Statistical tier disabled for this run")
	}
}

// Categorize runs the waterfall for one description. It always returns a
// result; descriptions nothing matched come back as "Uncategorized". Tier
// counts are updated as a side effect.
func (c *Categorizer) Categorize(description string) models.ClassificationResult {
	if strings.TrimSpace(description) == "" {
		c.counts.Record(models.ProvenanceUncategorized)
		return models.ClassificationResult{
			Category:   models.CategoryUncategorized,
			Provenance: models.ProvenanceUncategorized,
		}
	}

	for _, strategy := range c.strategies {
		if result, found := strategy.Categorize(description); found {
			c.counts.Record(result.Provenance)
			return result
		}
	}

	c.counts.Record(models.ProvenanceUncategorized)
	return models.ClassificationResult{
		Category:   models.CategoryUncategorized,
		Provenance: models.ProvenanceUncategorized,
	}
}

// Counts returns the per-tier decision counts accumulated so far.
func (c *Categorizer) Counts() models.TierCounts {
	return c.counts
}
