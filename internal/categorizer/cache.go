package categorizer

import (
	"fmt"
	"os"
	"path/filepath"

	"npatel/merge-csv/internal/logging"

	"github.com/jbrukh/bayesian"
)

// cacheDirName is the hidden directory under the accounts root that holds
// trained model artifacts.
const cacheDirName = ".ml_cache"

// ModelCache persists trained classifiers keyed by corpus fingerprint.
// Artifacts are named classifier-<fingerprint>.gob so a fingerprint match is
// a filename hit; any unreadable artifact is a miss, never an error.
type ModelCache struct {
	dir    string
	logger logging.Logger
}

// NewModelCache creates a cache rooted under the accounts directory.
func NewModelCache(accountsDir string, logger logging.Logger) *ModelCache {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &ModelCache{
		dir:    filepath.Join(accountsDir, cacheDirName),
		logger: logger,
	}
}

func (c *ModelCache) artifactPath(fingerprint string) string {
	return filepath.Join(c.dir, fmt.Sprintf("classifier-%s.gob", fingerprint))
}

// Load returns the cached classifier for the fingerprint, if a readable
// artifact exists.
func (c *ModelCache) Load(fingerprint string) (*bayesian.Classifier, bool) {
	path := c.artifactPath(fingerprint)
	if _, err := os.Stat(path); err != nil {
		return nil, false
	}

	classifier, err := newClassifierFromArtifact(path)
	if err != nil {
		c.logger.WithError(err).Warn("Ignoring unreadable classifier artifact",
			logging.Field{Key: logging.FieldFile, Value: path})
		return nil, false
	}
	return classifier, true
}

// newClassifierFromArtifact fences the gob decode with recover so a truncated
// artifact behaves like a miss.
func newClassifierFromArtifact(path string) (classifier *bayesian.Classifier, err error) {
	defer func() {
		if r := recover(); r != nil {
			classifier = nil
			err = fmt.Errorf("artifact decode panicked: %v", r)
		}
	}()
	return bayesian.NewClassifierFromFile(path)
}

// Save writes the trained classifier for the fingerprint and drops artifacts
// from older corpora.
func (c *ModelCache) Save(fingerprint string, classifier *bayesian.Classifier) error {
	if err := os.MkdirAll(c.dir, 0750); err != nil {
		return fmt.Errorf("error creating cache directory: %w", err)
	}

	path := c.artifactPath(fingerprint)
	if err := classifier.WriteToFile(path); err != nil {
		return fmt.Errorf("error writing classifier artifact: %w", err)
	}

	stale, err := filepath.Glob(filepath.Join(c.dir, "classifier-*.gob"))
	if err == nil {
		for _, old := range stale {
			if old == path {
				continue
			}
			if err := os.Remove(old); err != nil {
				c.logger.WithError(err).Warn("Could not remove stale classifier artifact",
					logging.Field{Key: logging.FieldFile, Value: old})
			}
		}
	}

	return nil
}
