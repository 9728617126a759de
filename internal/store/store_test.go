package store

import (
	"os"
	"path/filepath"
	"testing"

	"npatel/merge-csv/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMapping(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected map[string]string
	}{
		{
			name:    "valid mapping",
			content: `{"TIM HORTONS": "Food & Drink", "UBER": "Transport & Travel"}`,
			expected: map[string]string{
				"TIM HORTONS": "Food & Drink",
				"UBER":        "Transport & Travel",
			},
		},
		{
			name:     "drops uncategorized and empty values",
			content:  `{"A": "Uncategorized", "B": "", "C": "Health", "": "Health"}`,
			expected: map[string]string{"C": "Health"},
		},
		{
			name:    "trims keys and values",
			content: `{"  TIM HORTONS  ": "  Food & Drink  "}`,
			expected: map[string]string{
				"TIM HORTONS": "Food & Drink",
			},
		},
		{
			name:     "malformed json yields empty mapping",
			content:  `{not json`,
			expected: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, "custom_mapping.json", tt.content)

			s := NewRuleStore(dir, logging.NewMockLogger())
			assert.Equal(t, tt.expected, s.LoadMapping())
		})
	}
}

func TestLoadMappingMissingFile(t *testing.T) {
	s := NewRuleStore(t.TempDir(), logging.NewMockLogger())
	assert.Empty(t, s.LoadMapping())
}

func TestLoadRulesDefaults(t *testing.T) {
	s := NewRuleStore(t.TempDir(), logging.NewMockLogger())
	rules, categories := s.LoadRules()

	assert.Equal(t, DefaultRules(), rules)
	assert.Equal(t, DefaultCategories(), categories)
	assert.Contains(t, categories, "Uncategorized")
}

func TestLoadRulesOverride(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "category_rules.json", `{
		"rules": [
			{"pattern": "(?i)netflix", "category": "Subscriptions & Bills"},
			{"pattern": "", "category": "Dropped"}
		],
		"categories": ["Subscriptions & Bills", "Uncategorized"]
	}`)

	s := NewRuleStore(dir, logging.NewMockLogger())
	rules, categories := s.LoadRules()

	require.Len(t, rules, 1)
	assert.Equal(t, "(?i)netflix", rules[0].Pattern)
	assert.Equal(t, []string{"Subscriptions & Bills", "Uncategorized"}, categories)
}

func TestLoadRulesYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "category_rules.yaml", `
rules:
  - pattern: "(?i)spotify"
    category: "Subscriptions & Bills"
`)

	s := NewRuleStore(dir, logging.NewMockLogger())
	rules, categories := s.LoadRules()

	require.Len(t, rules, 1)
	assert.Equal(t, "(?i)spotify", rules[0].Pattern)
	// Categories were not overridden, defaults remain.
	assert.Equal(t, DefaultCategories(), categories)
}

func TestLoadRulesMalformedFallsBack(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "category_rules.json", `{broken`)

	s := NewRuleStore(dir, logging.NewMockLogger())
	rules, categories := s.LoadRules()

	assert.Equal(t, DefaultRules(), rules)
	assert.Equal(t, DefaultCategories(), categories)
}

func TestLoadAliases(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "vendor_aliases.json", `{
		"TIM HORTONS #1234": "Tim Hortons",
		"TIM": "Tim",
		"UBER *TRIP": "Uber"
	}`)

	s := NewRuleStore(dir, logging.NewMockLogger())
	aliases, keys := s.LoadAliases()

	assert.Len(t, aliases, 3)
	// Longest keys first so the most specific alias wins.
	assert.Equal(t, []string{"TIM HORTONS #1234", "UBER *TRIP", "TIM"}, keys)
}

func TestLoadIgnoreList(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected []string
	}{
		{
			name:     "bare list",
			content:  `["Payment Thank You", "  CC PAYMENT  "]`,
			expected: []string{"payment thank you", "cc payment"},
		},
		{
			name:     "object with descriptions",
			content:  `{"descriptions": ["Internal Move"]}`,
			expected: []string{"internal move"},
		},
		{
			name:     "malformed",
			content:  `42`,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, "ignore_list.json", tt.content)

			s := NewRuleStore(dir, logging.NewMockLogger())
			assert.Equal(t, tt.expected, s.LoadIgnoreList())
		})
	}
}

func TestLoadProfile(t *testing.T) {
	t.Run("missing file uses default", func(t *testing.T) {
		s := NewRuleStore(t.TempDir(), logging.NewMockLogger())
		assert.Equal(t, DefaultProfile(), s.LoadProfile())
	})

	t.Run("selects default profile by name", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "profiles.json", `{
			"default": "rbc",
			"profiles": {
				"cibc": {"file_pattern": "cibc*.csv"},
				"rbc": {"file_pattern": "rbc*.csv", "date_col": 1, "desc_col": 2, "debit_col": 3, "credit_col": 4, "account_col": 0}
			}
		}`)

		s := NewRuleStore(dir, logging.NewMockLogger())
		profile := s.LoadProfile()

		assert.Equal(t, "rbc*.csv", profile.FilePattern)
		assert.Equal(t, 1, profile.DateCol)
		assert.Equal(t, 0, profile.AccountCol)
	})

	t.Run("unknown default name falls back", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "profiles.json", `{"default": "nope", "profiles": {}}`)

		s := NewRuleStore(dir, logging.NewMockLogger())
		assert.Equal(t, DefaultProfile(), s.LoadProfile())
	})

	t.Run("yaml variant", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "profiles.yaml", `
default: td
profiles:
  td:
    file_pattern: "td*.csv"
    desc_col: 2
`)

		s := NewRuleStore(dir, logging.NewMockLogger())
		profile := s.LoadProfile()

		assert.Equal(t, "td*.csv", profile.FilePattern)
		assert.Equal(t, 2, profile.DescCol)
		// Omitted fields keep the built-in defaults.
		assert.Equal(t, 3, profile.CreditCol)
	})

	t.Run("partial profile keeps built-in columns", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "profiles.json", `{
			"default": "cibc",
			"profiles": {"cibc": {"file_pattern": "cibc-*.csv"}}
		}`)

		s := NewRuleStore(dir, logging.NewMockLogger())
		profile := s.LoadProfile()

		assert.Equal(t, "cibc-*.csv", profile.FilePattern)
		assert.Equal(t, 1, profile.DescCol)
		assert.Equal(t, 4, profile.AccountCol)
	})

	t.Run("malformed file falls back", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "profiles.json", `{broken`)

		s := NewRuleStore(dir, logging.NewMockLogger())
		assert.Equal(t, DefaultProfile(), s.LoadProfile())
	})
}

func TestFindConfigFileAbsolute(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "custom_mapping.json", `{}`)

	s := NewRuleStore(t.TempDir(), logging.NewMockLogger())

	found, err := s.FindConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, found)

	_, err = s.FindConfigFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}
