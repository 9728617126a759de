// Package store loads the user-editable rule tables that drive merging and
// categorization: the substring mapping, the regex rule set, vendor aliases,
// the ignore list, and the bank profile.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"npatel/merge-csv/internal/logging"

	"gopkg.in/yaml.v3"
)

// Rule is one ordered regex rule: the first rule whose pattern matches a
// description wins.
type Rule struct {
	Pattern  string `json:"pattern" yaml:"pattern"`
	Category string `json:"category" yaml:"category"`
}

// Profile describes how to read one bank's export files: which files to pick
// up and which positional columns carry each field.
type Profile struct {
	FilePattern string `json:"file_pattern" yaml:"file_pattern"`
	DateCol     int    `json:"date_col" yaml:"date_col"`
	DescCol     int    `json:"desc_col" yaml:"desc_col"`
	DebitCol    int    `json:"debit_col" yaml:"debit_col"`
	CreditCol   int    `json:"credit_col" yaml:"credit_col"`
	AccountCol  int    `json:"account_col" yaml:"account_col"`
}

// RuleStore resolves and loads rule tables from the accounts directory, with
// fallback lookups in the working directory and the user config directory.
type RuleStore struct {
	AccountsDir string
	logger      logging.Logger
}

// NewRuleStore creates a store rooted at the given accounts directory.
func NewRuleStore(accountsDir string, logger logging.Logger) *RuleStore {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &RuleStore{
		AccountsDir: accountsDir,
		logger:      logger,
	}
}

// FindConfigFile looks for a rule table in standard locations.
func (s *RuleStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filepath.Join(s.AccountsDir, filename), // Accounts directory
		filename,                               // Current directory
		filepath.Join("config", filename),      // ./config/ directory
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}

	// If still not found, check in user's home directory under .config/merge-csv/
	homeDir, err := os.UserHomeDir()
	if err == nil {
		configPath := filepath.Join(homeDir, ".config", "merge-csv", filename)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}
	}

	return "", os.ErrNotExist
}

// LoadMapping loads the description substring mapping from
// custom_mapping.json. Entries with empty or "Uncategorized" values are
// dropped. A missing or malformed file yields an empty mapping.
func (s *RuleStore) LoadMapping() map[string]string {
	mapping := make(map[string]string)

	path, err := s.FindConfigFile("custom_mapping.json")
	if err != nil {
		s.logger.Debug("No custom mapping file found", logging.Field{Key: logging.FieldFile, Value: "custom_mapping.json"})
		return mapping
	}

	data, err := os.ReadFile(path)
	if err != nil {
		s.logger.WithError(err).Warn("Could not read custom mapping", logging.Field{Key: logging.FieldFile, Value: path})
		return mapping
	}

	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		s.logger.WithError(err).Warn("Could not parse custom mapping", logging.Field{Key: logging.FieldFile, Value: path})
		return mapping
	}

	for key, value := range raw {
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" || value == "" || strings.EqualFold(value, "uncategorized") {
			continue
		}
		mapping[key] = value
	}

	return mapping
}

// categoryRulesFile mirrors the on-disk shape of category_rules.json and its
// YAML variant.
type categoryRulesFile struct {
	Rules      []Rule   `json:"rules" yaml:"rules"`
	Categories []string `json:"categories" yaml:"categories"`
}

// LoadRules loads the ordered regex rules and the category universe from
// category_rules.json (or category_rules.yaml). Either section falls back to
// the built-in defaults independently when absent or empty.
func (s *RuleStore) LoadRules() ([]Rule, []string) {
	var parsed categoryRulesFile
	loaded := false

	if path, err := s.FindConfigFile("category_rules.json"); err == nil {
		loaded = s.readRulesFile(path, json.Unmarshal, &parsed)
	} else if path, err := s.FindConfigFile("category_rules.yaml"); err == nil {
		loaded = s.readRulesFile(path, yaml.Unmarshal, &parsed)
	}

	rules := DefaultRules()
	categories := DefaultCategories()
	if loaded {
		valid := make([]Rule, 0, len(parsed.Rules))
		for _, r := range parsed.Rules {
			if r.Pattern != "" && r.Category != "" {
				valid = append(valid, r)
			}
		}
		if len(valid) > 0 {
			rules = valid
		}
		if len(parsed.Categories) > 0 {
			categories = parsed.Categories
		}
	}

	return rules, categories
}

func (s *RuleStore) readRulesFile(path string, unmarshal func([]byte, interface{}) error, out *categoryRulesFile) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		s.logger.WithError(err).Warn("Could not read category rules", logging.Field{Key: logging.FieldFile, Value: path})
		return false
	}
	if err := unmarshal(data, out); err != nil {
		s.logger.WithError(err).Warn("Could not parse category rules", logging.Field{Key: logging.FieldFile, Value: path})
		return false
	}
	return true
}

// LoadAliases loads vendor_aliases.json: raw description substrings mapped to
// clean vendor names. Keys are returned sorted longest-first so callers apply
// the most specific alias.
func (s *RuleStore) LoadAliases() (map[string]string, []string) {
	aliases := make(map[string]string)

	path, err := s.FindConfigFile("vendor_aliases.json")
	if err != nil {
		return aliases, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		s.logger.WithError(err).Warn("Could not read vendor aliases", logging.Field{Key: logging.FieldFile, Value: path})
		return aliases, nil
	}

	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		s.logger.WithError(err).Warn("Could not parse vendor aliases", logging.Field{Key: logging.FieldFile, Value: path})
		return aliases, nil
	}

	for key, value := range raw {
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" || value == "" {
			continue
		}
		aliases[key] = value
	}

	keys := make([]string, 0, len(aliases))
	for key := range aliases {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	return aliases, keys
}

// LoadIgnoreList loads ignore_list.json: descriptions containing any entry
// (case-insensitive) are excluded from the merge. The file may be a bare list
// or an object with a "descriptions" key.
func (s *RuleStore) LoadIgnoreList() []string {
	path, err := s.FindConfigFile("ignore_list.json")
	if err != nil {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		s.logger.WithError(err).Warn("Could not read ignore list", logging.Field{Key: logging.FieldFile, Value: path})
		return nil
	}

	var entries []string
	var asList []string
	if err := json.Unmarshal(data, &asList); err == nil {
		entries = asList
	} else {
		var asObject struct {
			Descriptions []string `json:"descriptions"`
		}
		if err := json.Unmarshal(data, &asObject); err == nil {
			entries = asObject.Descriptions
		} else {
			s.logger.WithError(err).Warn("Could not parse ignore list", logging.Field{Key: logging.FieldFile, Value: path})
			return nil
		}
	}

	var ignores []string
	for _, entry := range entries {
		entry = strings.ToLower(strings.TrimSpace(entry))
		if entry != "" {
			ignores = append(ignores, entry)
		}
	}
	return ignores
}

// profilesFile mirrors the on-disk shape of profiles.json and its YAML
// variant. Profile bodies stay raw so absent fields keep their built-in
// defaults instead of zeroing out.
type profilesFile struct {
	Default      string                     `json:"default" yaml:"-"`
	Profiles     map[string]json.RawMessage `json:"profiles" yaml:"-"`
	YAMLDefault  string                     `json:"-" yaml:"default"`
	YAMLProfiles map[string]yaml.Node       `json:"-" yaml:"profiles"`
}

// LoadProfile loads the active bank profile from profiles.json (or
// profiles.yaml). Any failure falls back to the built-in profile; fields a
// profile omits keep their built-in values.
func (s *RuleStore) LoadProfile() Profile {
	profile := DefaultProfile()

	if path, err := s.FindConfigFile("profiles.json"); err == nil {
		return s.loadJSONProfile(path, profile)
	}
	if path, err := s.FindConfigFile("profiles.yaml"); err == nil {
		return s.loadYAMLProfile(path, profile)
	}
	return profile
}

func (s *RuleStore) loadJSONProfile(path string, profile Profile) Profile {
	data, err := os.ReadFile(path)
	if err != nil {
		s.logger.WithError(err).Warn("Could not read bank profiles", logging.Field{Key: logging.FieldFile, Value: path})
		return profile
	}

	var file profilesFile
	if err := json.Unmarshal(data, &file); err != nil {
		s.logger.WithError(err).Warn("Could not parse bank profiles", logging.Field{Key: logging.FieldFile, Value: path})
		return profile
	}

	raw, ok := file.Profiles[file.Default]
	if !ok {
		s.logger.Warn(fmt.Sprintf("Bank profile %q not found, using default", file.Default))
		return profile
	}

	if err := json.Unmarshal(raw, &profile); err != nil {
		s.logger.WithError(err).Warn("Could not parse bank profile", logging.Field{Key: logging.FieldFile, Value: path})
		return DefaultProfile()
	}
	if profile.FilePattern == "" {
		profile.FilePattern = DefaultProfile().FilePattern
	}
	return profile
}

func (s *RuleStore) loadYAMLProfile(path string, profile Profile) Profile {
	data, err := os.ReadFile(path)
	if err != nil {
		s.logger.WithError(err).Warn("Could not read bank profiles", logging.Field{Key: logging.FieldFile, Value: path})
		return profile
	}

	var file profilesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		s.logger.WithError(err).Warn("Could not parse bank profiles", logging.Field{Key: logging.FieldFile, Value: path})
		return profile
	}

	node, ok := file.YAMLProfiles[file.YAMLDefault]
	if !ok {
		s.logger.Warn(fmt.Sprintf("Bank profile %q not found, using default", file.YAMLDefault))
		return profile
	}

	if err := node.Decode(&profile); err != nil {
		s.logger.WithError(err).Warn("Could not parse bank profile", logging.Field{Key: logging.FieldFile, Value: path})
		return DefaultProfile()
	}
	if profile.FilePattern == "" {
		profile.FilePattern = DefaultProfile().FilePattern
	}
	return profile
}
