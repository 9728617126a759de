package categorizer

import (
	"sort"
	"strings"

	"npatel/merge-csv/internal/models"
)

// MappingStrategy implements categorization from the user-maintained
// substring mapping table. Keys are matched as case-sensitive substrings of
// the description, longest key first, so the most specific entry wins.
type MappingStrategy struct {
	mapping map[string]string
	keys    []string
}

// NewMappingStrategy creates the tier-one strategy from a mapping table.
// Entries with empty or "Uncategorized" values never match.
func NewMappingStrategy(mapping map[string]string) *MappingStrategy {
	cleaned := make(map[string]string, len(mapping))
	for key, category := range mapping {
		if key == "" || category == "" || strings.EqualFold(category, models.CategoryUncategorized) {
			continue
		}
		cleaned[key] = category
	}

	keys := make([]string, 0, len(cleaned))
	for key := range cleaned {
		keys = append(keys, key)
	}
	// Longest first; ties broken alphabetically so matching is deterministic.
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	return &MappingStrategy{mapping: cleaned, keys: keys}
}

// Name returns the name of this strategy.
func (s *MappingStrategy) Name() string {
	return "Mapping"
}

// Categorize matches the description against mapping keys, longest first.
func (s *MappingStrategy) Categorize(description string) (models.ClassificationResult, bool) {
	for _, key := range s.keys {
		if strings.Contains(description, key) {
			return models.ClassificationResult{
				Category:   s.mapping[key],
				Provenance: models.ProvenanceMapping,
			}, true
		}
	}
	return models.ClassificationResult{}, false
}

// Len reports how many usable mapping entries the strategy holds.
func (s *MappingStrategy) Len() int {
	return len(s.keys)
}
