package categorizer

import (
	"os"
	"path/filepath"
	"testing"

	"npatel/merge-csv/internal/corpus"
	"npatel/merge-csv/internal/logging"
	"npatel/merge-csv/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var trainingCategories = []string{"Food & Drink", "Transport & Travel", "Uncategorized"}

func trainingExamples() []corpus.Example {
	return []corpus.Example{
		{Text: "tim hortons", Label: "Food & Drink"},
		{Text: "starbucks coffee", Label: "Food & Drink"},
		{Text: "mcdonalds", Label: "Food & Drink"},
		{Text: "burger king", Label: "Food & Drink"},
		{Text: "pizza pizza", Label: "Food & Drink"},
		{Text: "uber trip", Label: "Transport & Travel"},
		{Text: "lyft ride", Label: "Transport & Travel"},
		{Text: "presto fare", Label: "Transport & Travel"},
		{Text: "vets cab", Label: "Transport & Travel"},
		{Text: "pearson parking", Label: "Transport & Travel"},
	}
}

func TestStatisticalStrategyUntrained(t *testing.T) {
	strategy := NewStatisticalStrategy(trainingCategories, 0.70, logging.NewMockLogger())

	assert.False(t, strategy.Trained())
	_, found := strategy.Categorize("tim hortons")
	assert.False(t, found)
}

func TestStatisticalTrainTooFewSamples(t *testing.T) {
	strategy := NewStatisticalStrategy(trainingCategories, 0.70, logging.NewMockLogger())

	err := strategy.Train(trainingExamples()[:3], 10, nil)
	require.NoError(t, err)
	assert.False(t, strategy.Trained())
}

func TestStatisticalTrainSingleLabel(t *testing.T) {
	examples := make([]corpus.Example, 0, 12)
	for _, ex := range trainingExamples() {
		examples = append(examples, corpus.Example{Text: ex.Text, Label: "Food & Drink"})
	}

	strategy := NewStatisticalStrategy(trainingCategories, 0.70, logging.NewMockLogger())
	err := strategy.Train(examples, 5, nil)
	require.NoError(t, err)
	assert.False(t, strategy.Trained())
}

func TestStatisticalTrainAndPredict(t *testing.T) {
	strategy := NewStatisticalStrategy(trainingCategories, 0.30, logging.NewMockLogger())

	err := strategy.Train(trainingExamples(), 5, nil)
	require.NoError(t, err)
	require.True(t, strategy.Trained())

	result, found := strategy.Categorize("tim hortons")
	require.True(t, found)
	assert.Equal(t, "Food & Drink", result.Category)
	assert.Equal(t, models.ProvenanceStatistical, result.Provenance)

	result, found = strategy.Categorize("uber trip")
	require.True(t, found)
	assert.Equal(t, "Transport & Travel", result.Category)
}

func TestStatisticalConfidenceGateIsStrict(t *testing.T) {
	// Probabilities never exceed 1, so a threshold of 1.0 rejects everything:
	// the gate requires strictly greater confidence.
	strategy := NewStatisticalStrategy(trainingCategories, 1.0, logging.NewMockLogger())

	err := strategy.Train(trainingExamples(), 5, nil)
	require.NoError(t, err)
	require.True(t, strategy.Trained())

	_, found := strategy.Categorize("tim hortons")
	assert.False(t, found)
}

func TestStatisticalConfidenceEqualToThresholdIsRejected(t *testing.T) {
	strategy := NewStatisticalStrategy(trainingCategories, 0.30, logging.NewMockLogger())
	require.NoError(t, strategy.Train(trainingExamples(), 5, nil))
	require.True(t, strategy.Trained())

	// Pin the threshold to the exact score the model produces for this
	// description: equality must fall on the reject side of the gate.
	scores, best, _, err := strategy.safeScores(featurize("tim hortons"))
	require.NoError(t, err)
	require.True(t, best >= 0)
	confidence := scores[best]

	strategy.threshold = confidence
	_, found := strategy.Categorize("tim hortons")
	assert.False(t, found, "a score equal to the threshold must not pass")

	strategy.threshold = confidence - 1e-9
	result, found := strategy.Categorize("tim hortons")
	require.True(t, found)
	assert.Equal(t, "Food & Drink", result.Category)
}

func TestStatisticalRejectsLabelOutsideCategorySet(t *testing.T) {
	// "Transport & Travel" is trained but not configured, so its predictions
	// are discarded.
	strategy := NewStatisticalStrategy([]string{"Food & Drink"}, 0.30, logging.NewMockLogger())

	err := strategy.Train(trainingExamples(), 5, nil)
	require.NoError(t, err)

	_, found := strategy.Categorize("uber trip")
	assert.False(t, found)
}

func TestStatisticalEmptyDescription(t *testing.T) {
	strategy := NewStatisticalStrategy(trainingCategories, 0.30, logging.NewMockLogger())
	require.NoError(t, strategy.Train(trainingExamples(), 5, nil))

	_, found := strategy.Categorize("   ")
	assert.False(t, found)
}

func TestModelCacheRoundTrip(t *testing.T) {
	accountsDir := t.TempDir()
	cache := NewModelCache(accountsDir, logging.NewMockLogger())
	examples := trainingExamples()

	first := NewStatisticalStrategy(trainingCategories, 0.30, logging.NewMockLogger())
	require.NoError(t, first.Train(examples, 5, cache))
	require.True(t, first.Trained())

	fingerprint := corpus.Fingerprint(examples)
	artifact := filepath.Join(accountsDir, ".ml_cache", "classifier-"+fingerprint+".gob")
	_, err := os.Stat(artifact)
	require.NoError(t, err)

	// A second strategy trained on the identical corpus reuses the artifact
	// and predicts the same way.
	second := NewStatisticalStrategy(trainingCategories, 0.30, logging.NewMockLogger())
	require.NoError(t, second.Train(examples, 5, cache))
	require.True(t, second.Trained())

	result, found := second.Categorize("tim hortons")
	require.True(t, found)
	assert.Equal(t, "Food & Drink", result.Category)
}

func TestModelCacheInvalidation(t *testing.T) {
	accountsDir := t.TempDir()
	cache := NewModelCache(accountsDir, logging.NewMockLogger())
	examples := trainingExamples()

	strategy := NewStatisticalStrategy(trainingCategories, 0.30, logging.NewMockLogger())
	require.NoError(t, strategy.Train(examples, 5, cache))

	// Changing one example changes the fingerprint, forcing a retrain and a
	// fresh artifact; the stale one is dropped.
	changed := append(append([]corpus.Example{}, examples...),
		corpus.Example{Text: "shell gas station", Label: "Transport & Travel"})
	require.NoError(t, strategy.Train(changed, 5, cache))

	matches, err := filepath.Glob(filepath.Join(accountsDir, ".ml_cache", "classifier-*.gob"))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Contains(t, matches[0], corpus.Fingerprint(changed))
}

func TestModelCacheCorruptArtifactIsAMiss(t *testing.T) {
	accountsDir := t.TempDir()
	cacheDir := filepath.Join(accountsDir, ".ml_cache")
	require.NoError(t, os.MkdirAll(cacheDir, 0o755))

	examples := trainingExamples()
	fingerprint := corpus.Fingerprint(examples)
	artifact := filepath.Join(cacheDir, "classifier-"+fingerprint+".gob")
	require.NoError(t, os.WriteFile(artifact, []byte("not a gob"), 0o644))

	cache := NewModelCache(accountsDir, logging.NewMockLogger())
	_, ok := cache.Load(fingerprint)
	assert.False(t, ok)

	// Training still succeeds by refitting and overwriting the artifact.
	strategy := NewStatisticalStrategy(trainingCategories, 0.30, logging.NewMockLogger())
	require.NoError(t, strategy.Train(examples, 5, cache))
	assert.True(t, strategy.Trained())
}

func TestFeaturize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"empty", "", nil},
		{"whitespace", "   ", nil},
		{"short text becomes one token", "ab", []string{"ab"}},
		{"three runes", "abc", []string{"abc"}},
		{
			"grams of three to five runes",
			"abcde",
			[]string{"abc", "bcd", "cde", "abcd", "bcde", "abcde"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, featurize(tt.input))
		})
	}
}
