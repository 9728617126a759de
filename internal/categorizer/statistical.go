package categorizer

import (
	"fmt"
	"sort"
	"strings"

	"npatel/merge-csv/internal/corpus"
	"npatel/merge-csv/internal/logging"
	"npatel/merge-csv/internal/models"

	"github.com/jbrukh/bayesian"
)

// StatisticalStrategy is the final waterfall tier: a naive Bayes TF-IDF text
// classifier over character n-grams of the description. Its predictions only
// count when the winning probability strictly exceeds the confidence
// threshold and the predicted label belongs to the configured category set.
type StatisticalStrategy struct {
	classifier *bayesian.Classifier
	categories map[string]bool
	threshold  float64
	trained    bool
	logger     logging.Logger
}

// NewStatisticalStrategy creates an untrained strategy. Until Train succeeds
// the strategy never matches.
func NewStatisticalStrategy(categories []string, threshold float64, logger logging.Logger) *StatisticalStrategy {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}

	categorySet := make(map[string]bool, len(categories))
	for _, c := range categories {
		categorySet[c] = true
	}

	if threshold < 0 {
		threshold = 0
	}
	if threshold > 1 {
		threshold = 1
	}

	return &StatisticalStrategy{
		categories: categorySet,
		threshold:  threshold,
		logger:     logger,
	}
}

// Name returns the name of this strategy.
func (s *StatisticalStrategy) Name() string {
	return "Statistical"
}

// Trained reports whether the model is ready to predict.
func (s *StatisticalStrategy) Trained() bool {
	return s.trained
}

// Train fits the classifier on the corpus, reusing a cached model when the
// fingerprint matches. Too few examples or fewer than two distinct labels
// leave the tier disabled without error; a training failure disables the tier
// and is reported.
func (s *StatisticalStrategy) Train(examples []corpus.Example, minSamples int, cache *ModelCache) error {
	s.classifier = nil
	s.trained = false

	if len(examples) < minSamples {
		s.logger.Debug("Skipping statistical training, corpus too small",
			logging.Field{Key: logging.FieldCount, Value: len(examples)})
		return nil
	}

	classes := distinctLabels(examples)
	if len(classes) < 2 {
		s.logger.Debug("Skipping statistical training, need at least two labels")
		return nil
	}

	fingerprint := corpus.Fingerprint(examples)

	if cache != nil {
		if cached, ok := cache.Load(fingerprint); ok {
			s.classifier = cached
			s.trained = true
			s.logger.Debug("Reusing cached classifier",
				logging.Field{Key: logging.FieldFingerprint, Value: fingerprint})
			return nil
		}
	}

	classifier, err := fitClassifier(examples, classes)
	if err != nil {
		return fmt.Errorf("statistical training failed: %w", err)
	}

	s.classifier = classifier
	s.trained = true

	if cache != nil {
		if err := cache.Save(fingerprint, classifier); err != nil {
			// A cache write failure costs a retrain next run, nothing else.
			s.logger.WithError(err).Warn("Could not cache trained classifier")
		}
	}

	return nil
}

// fitClassifier trains a balanced TF-IDF naive Bayes model. The bayesian
// package panics on degenerate input, so fitting is fenced with recover.
func fitClassifier(examples []corpus.Example, classes []bayesian.Class) (classifier *bayesian.Classifier, err error) {
	defer func() {
		if r := recover(); r != nil {
			classifier = nil
			err = fmt.Errorf("classifier fit panicked: %v", r)
		}
	}()

	classifier = bayesian.NewClassifierTfIdf(classes...)

	// Oversample smaller classes to the size of the largest so frequent
	// categories do not drown out rare ones.
	byLabel := make(map[string][][]string)
	maxCount := 0
	for _, ex := range examples {
		doc := featurize(ex.Text)
		if len(doc) == 0 {
			continue
		}
		byLabel[ex.Label] = append(byLabel[ex.Label], doc)
		if len(byLabel[ex.Label]) > maxCount {
			maxCount = len(byLabel[ex.Label])
		}
	}

	labels := make([]string, 0, len(byLabel))
	for label := range byLabel {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	for _, label := range labels {
		docs := byLabel[label]
		for i := 0; i < maxCount; i++ {
			classifier.Learn(docs[i%len(docs)], bayesian.Class(label))
		}
	}

	classifier.ConvertTermsFreqToTfIdf()
	return classifier, nil
}

// Categorize predicts a category for the description. The prediction is
// discarded unless its probability strictly exceeds the threshold and the
// label is in the configured category set.
func (s *StatisticalStrategy) Categorize(description string) (models.ClassificationResult, bool) {
	if !s.trained || s.classifier == nil {
		return models.ClassificationResult{}, false
	}

	doc := featurize(description)
	if len(doc) == 0 {
		return models.ClassificationResult{}, false
	}

	scores, best, _, err := s.safeScores(doc)
	if err != nil || best < 0 || best >= len(s.classifier.Classes) {
		return models.ClassificationResult{}, false
	}

	confidence := scores[best]
	if !(confidence > s.threshold) {
		return models.ClassificationResult{}, false
	}

	predicted := string(s.classifier.Classes[best])
	if !s.categories[predicted] {
		return models.ClassificationResult{}, false
	}

	return models.ClassificationResult{
		Category:   predicted,
		Provenance: models.ProvenanceStatistical,
	}, true
}

// safeScores wraps SafeProbScores with an extra recover: scoring must never
// take down a merge run.
func (s *StatisticalStrategy) safeScores(doc []string) (scores []float64, inx int, strict bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("classifier scoring panicked: %v", r)
		}
	}()
	return s.classifier.SafeProbScores(doc)
}

// distinctLabels returns the sorted distinct labels of the corpus.
func distinctLabels(examples []corpus.Example) []bayesian.Class {
	set := make(map[string]bool)
	for _, ex := range examples {
		set[ex.Label] = true
	}
	labels := make([]string, 0, len(set))
	for label := range set {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	classes := make([]bayesian.Class, len(labels))
	for i, label := range labels {
		classes[i] = bayesian.Class(label)
	}
	return classes
}

// featurize turns a description into character n-gram tokens (3 to 5 runes,
// lowercased). Descriptions shorter than three runes become one token.
func featurize(description string) []string {
	text := strings.ToLower(strings.TrimSpace(description))
	if text == "" {
		return nil
	}

	runes := []rune(text)
	if len(runes) < 3 {
		return []string{text}
	}

	var grams []string
	for n := 3; n <= 5; n++ {
		if len(runes) < n {
			break
		}
		for i := 0; i+n <= len(runes); i++ {
			grams = append(grams, string(runes[i:i+n]))
		}
	}
	return grams
}
