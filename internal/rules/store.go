// Package rules holds user-taught pattern-to-category overrides. The store
// keeps one rule per case-normalized pattern and round-trips to a versioned
// JSON file, merging on load so rules survive across sessions.
package rules

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/mlsantos/pitaka/internal/model"
)

// FormatVersion is the persisted rule-file format version.
const FormatVersion = 1

// defaultConfidence is assigned to freshly learned rules.
const defaultConfidence = 0.95

// Store owns the learned rules, keyed by pattern.
type Store struct {
	rules map[string]model.LearnedRule
}

// NewStore creates an empty rule store.
func NewStore() *Store {
	return &Store{rules: make(map[string]model.LearnedRule)}
}

// NormalizePattern case-normalizes a pattern or description for matching.
func NormalizePattern(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Learn records a rule for the given pattern, overwriting any prior rule
// for the same normalized pattern.
func (s *Store) Learn(pattern, category, normalizedMerchant string, source model.RuleSource) (model.LearnedRule, error) {
	key := NormalizePattern(pattern)
	if key == "" {
		return model.LearnedRule{}, fmt.Errorf("pattern cannot be empty")
	}
	if strings.TrimSpace(category) == "" {
		return model.LearnedRule{}, fmt.Errorf("category cannot be empty")
	}

	rule := model.LearnedRule{
		Pattern:            key,
		Category:           category,
		NormalizedMerchant: normalizedMerchant,
		Source:             source,
		Confidence:         defaultConfidence,
		CreatedAt:          time.Now().UTC(),
	}
	s.rules[key] = rule
	return rule, nil
}

// Forget removes the rule for a pattern. It reports whether one existed.
func (s *Store) Forget(pattern string) bool {
	key := NormalizePattern(pattern)
	if _, ok := s.rules[key]; !ok {
		return false
	}
	delete(s.rules, key)
	return true
}

// Match finds the rule governing a normalized description: an exact pattern
// match first, then the longest pattern contained in the description.
func (s *Store) Match(normalizedDescription string) (rule model.LearnedRule, exact, ok bool) {
	if r, found := s.rules[normalizedDescription]; found {
		return r, true, true
	}

	var best model.LearnedRule
	for pattern, r := range s.rules {
		if !strings.Contains(normalizedDescription, pattern) {
			continue
		}
		if !ok || len(r.Pattern) > len(best.Pattern) ||
			(len(r.Pattern) == len(best.Pattern) && r.Pattern < best.Pattern) {
			best, ok = r, true
		}
	}
	return best, false, ok
}

// Len returns the number of stored rules.
func (s *Store) Len() int {
	return len(s.rules)
}

// All returns every rule sorted by pattern.
func (s *Store) All() []model.LearnedRule {
	out := make([]model.LearnedRule, 0, len(s.rules))
	for _, r := range s.rules {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Pattern < out[j].Pattern })
	return out
}

// ruleFile is the on-disk layout.
type ruleFile struct {
	Version int                 `json:"version"`
	Rules   []model.LearnedRule `json:"rules"`
}

// Save writes all rules to path as versioned JSON.
func (s *Store) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create rules directory: %w", err)
	}

	data, err := json.MarshalIndent(ruleFile{Version: FormatVersion, Rules: s.All()}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode rules: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write rules file: %w", err)
	}
	return nil
}

// Load merges rules from path into the store, keyed by pattern; loaded
// rules overwrite in-memory ones for the same pattern. It returns how many
// rules were merged and how many records were malformed; malformed records
// are skipped but never silently, the count always surfaces.
func (s *Store) Load(path string) (loaded, malformed int, err error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read rules file: %w", err)
	}

	var file ruleFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return 0, 0, fmt.Errorf("failed to parse rules file: %w", err)
	}
	if file.Version != FormatVersion {
		return 0, 0, fmt.Errorf("unsupported rules file version %d", file.Version)
	}

	for _, r := range file.Rules {
		if !validRule(r) {
			malformed++
			continue
		}
		r.Pattern = NormalizePattern(r.Pattern)
		s.rules[r.Pattern] = r
		loaded++
	}
	return loaded, malformed, nil
}

func validRule(r model.LearnedRule) bool {
	if NormalizePattern(r.Pattern) == "" || strings.TrimSpace(r.Category) == "" {
		return false
	}
	return r.Confidence >= 0 && r.Confidence <= 1
}
