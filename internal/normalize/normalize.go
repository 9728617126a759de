// Package normalize applies description-level cleanup to merged transactions:
// an ignore filter that drops noise rows and an alias rewriter that replaces
// raw bank descriptions with clean vendor names.
package normalize

import "strings"

// IgnoreFilter drops transactions whose description contains any configured
// entry, compared case-insensitively.
type IgnoreFilter struct {
	entries []string
}

// NewIgnoreFilter builds a filter from already-lowercased entries.
func NewIgnoreFilter(entries []string) *IgnoreFilter {
	return &IgnoreFilter{entries: entries}
}

// ShouldIgnore reports whether the description matches any ignore entry.
func (f *IgnoreFilter) ShouldIgnore(description string) bool {
	if len(f.entries) == 0 {
		return false
	}
	d := strings.ToLower(strings.TrimSpace(description))
	if d == "" {
		return false
	}
	for _, entry := range f.entries {
		if strings.Contains(d, entry) {
			return true
		}
	}
	return false
}

// AliasRewriter replaces raw descriptions with clean vendor names. The first
// alias key found as a substring wins; keys are checked longest-first so the
// most specific alias applies. Matching is case-sensitive: alias keys are
// written the way the bank prints them.
type AliasRewriter struct {
	aliases map[string]string
	keys    []string
}

// NewAliasRewriter builds a rewriter from an alias table and its keys sorted
// longest-first.
func NewAliasRewriter(aliases map[string]string, sortedKeys []string) *AliasRewriter {
	return &AliasRewriter{aliases: aliases, keys: sortedKeys}
}

// Rewrite returns the clean vendor name for the description, or the
// description unchanged when no alias matches.
func (r *AliasRewriter) Rewrite(description string) string {
	if len(r.keys) == 0 || strings.TrimSpace(description) == "" {
		return description
	}
	for _, key := range r.keys {
		if strings.Contains(description, key) {
			return r.aliases[key]
		}
	}
	return description
}
