// Package corpus assembles the labeled training examples for the statistical
// classifier from the custom mapping table and prior periods' merged output,
// and fingerprints the result for model cache reuse.
package corpus

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"npatel/merge-csv/internal/common"
	"npatel/merge-csv/internal/logging"
	"npatel/merge-csv/internal/models"
)

// periodLayout is the folder naming convention for period directories.
const periodLayout = "January 2006"

// Example is one labeled training pair.
type Example struct {
	Text  string
	Label string
}

// Builder assembles training examples for one run.
type Builder struct {
	AccountsDir    string
	CurrentPeriod  string
	HistoryPeriods int
	logger         logging.Logger
}

// NewBuilder creates a corpus builder. historyPeriods bounds how many prior
// period folders contribute examples.
func NewBuilder(accountsDir, currentPeriod string, historyPeriods int, logger logging.Logger) *Builder {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Builder{
		AccountsDir:    accountsDir,
		CurrentPeriod:  currentPeriod,
		HistoryPeriods: historyPeriods,
		logger:         logger,
	}
}

// Build combines mapping entries and historical merged rows into one training
// set. Mapping entries take precedence: a historical row whose description
// already appears is dropped. "Uncategorized" labels never enter the corpus.
func (b *Builder) Build(mapping map[string]string) []Example {
	examples := make([]Example, 0, len(mapping))
	seen := make(map[string]bool, len(mapping))

	keys := make([]string, 0, len(mapping))
	for key := range mapping {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		category := mapping[key]
		if category == "" || strings.EqualFold(category, models.CategoryUncategorized) {
			continue
		}
		examples = append(examples, Example{Text: key, Label: category})
		seen[key] = true
	}

	for _, pair := range b.loadHistorical() {
		if seen[pair.Text] {
			continue
		}
		examples = append(examples, pair)
		seen[pair.Text] = true
	}

	return examples
}

// loadHistorical reads (description, category) pairs from merged.csv in up to
// HistoryPeriods other period folders, newest first.
func (b *Builder) loadHistorical() []Example {
	type candidate struct {
		when time.Time
		path string
	}

	entries, err := os.ReadDir(b.AccountsDir)
	if err != nil {
		b.logger.WithError(err).Warn("Could not scan accounts directory for history")
		return nil
	}

	var candidates []candidate
	for _, entry := range entries {
		if !entry.IsDir() || entry.Name() == b.CurrentPeriod {
			continue
		}
		when, err := parsePeriod(entry.Name())
		if err != nil {
			continue
		}
		mergedPath := filepath.Join(b.AccountsDir, entry.Name(), "merged.csv")
		if _, err := os.Stat(mergedPath); err != nil {
			continue
		}
		candidates = append(candidates, candidate{when: when, path: mergedPath})
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].when.After(candidates[j].when)
	})
	if b.HistoryPeriods >= 0 && len(candidates) > b.HistoryPeriods {
		candidates = candidates[:b.HistoryPeriods]
	}

	var pairs []Example
	for _, c := range candidates {
		rows, err := common.ReadCSVFile[models.SimplifiedRow](c.path)
		if err != nil {
			b.logger.WithError(err).Warn("Skipping unreadable historical output",
				logging.Field{Key: logging.FieldFile, Value: c.path})
			continue
		}
		for _, row := range rows {
			desc := strings.TrimSpace(row.Description)
			cat := strings.TrimSpace(row.Category)
			if desc == "" || cat == "" || cat == models.CategoryUncategorized {
				continue
			}
			pairs = append(pairs, Example{Text: desc, Label: cat})
		}
	}

	return pairs
}

// parsePeriod parses a period folder name case-insensitively, so "MAY 2025"
// and "May 2025" both count.
func parsePeriod(name string) (time.Time, error) {
	fields := strings.Fields(strings.ToLower(name))
	for i, f := range fields {
		fields[i] = strings.ToUpper(f[:1]) + f[1:]
	}
	return time.Parse(periodLayout, strings.Join(fields, " "))
}

// Fingerprint returns a stable 16-hex-character hash of the training set,
// independent of example order.
func Fingerprint(examples []Example) string {
	pairs := make([][2]string, len(examples))
	for i, ex := range examples {
		pairs[i] = [2]string{ex.Text, ex.Label}
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i][0] != pairs[j][0] {
			return pairs[i][0] < pairs[j][0]
		}
		return pairs[i][1] < pairs[j][1]
	})

	content, err := json.Marshal(pairs)
	if err != nil {
		// Marshalling string pairs cannot fail in practice.
		return ""
	}

	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])[:16]
}
