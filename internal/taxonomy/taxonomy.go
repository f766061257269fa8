// Package taxonomy holds the static merchant and category mapping data the
// categorizer resolves against: canonical merchant keys with display names
// and categories, known textual variations, and per-category keyword sets.
// A Taxonomy is built once and treated as immutable afterwards.
package taxonomy

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Merchant maps a canonical uppercase key to a display name and category.
type Merchant struct {
	Key         string `yaml:"key"`
	DisplayName string `yaml:"name"`
	Category    string `yaml:"category"`
}

// Category is a spending category with its keyword set for fallback
// matching. Declaration order is the tie-break order for keyword matches.
type Category struct {
	Name     string
	Keywords []string
}

// Taxonomy is the full mapping data set.
type Taxonomy struct {
	merchants  map[string]Merchant
	variations map[string]string
	categories []Category
	keys       []string
}

// New builds a taxonomy from the built-in mapping data.
func New() *Taxonomy {
	t := &Taxonomy{
		merchants:  make(map[string]Merchant, len(builtinMerchants)),
		variations: make(map[string]string, len(builtinVariations)),
		categories: builtinCategories,
	}
	for _, m := range builtinMerchants {
		t.merchants[m.Key] = m
	}
	for variation, key := range builtinVariations {
		t.variations[variation] = key
	}
	t.rebuildKeys()
	return t
}

// overlay is the YAML layout for user-supplied mapping extensions.
type overlay struct {
	Merchants  []Merchant        `yaml:"merchants"`
	Variations map[string]string `yaml:"variations"`
}

// LoadOverlay merges user-supplied merchant mappings from a YAML file.
// Overlay entries win over built-in ones for the same key.
func (t *Taxonomy) LoadOverlay(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read taxonomy overlay: %w", err)
	}

	var o overlay
	if err := yaml.Unmarshal(raw, &o); err != nil {
		return fmt.Errorf("failed to parse taxonomy overlay: %w", err)
	}

	for _, m := range o.Merchants {
		m.Key = strings.ToUpper(strings.TrimSpace(m.Key))
		if m.Key == "" || m.Category == "" {
			return fmt.Errorf("overlay merchant %q: key and category are required", m.DisplayName)
		}
		if m.DisplayName == "" {
			m.DisplayName = m.Key
		}
		t.merchants[m.Key] = m
	}
	for variation, key := range o.Variations {
		t.variations[strings.ToUpper(strings.TrimSpace(variation))] = strings.ToUpper(strings.TrimSpace(key))
	}
	t.rebuildKeys()
	return nil
}

// Merchant looks up a canonical key.
func (t *Taxonomy) Merchant(key string) (Merchant, bool) {
	m, ok := t.merchants[strings.ToUpper(strings.TrimSpace(key))]
	return m, ok
}

// CanonicalKey collapses a known textual variation to its canonical key.
// Unknown input is returned unchanged (uppercased and trimmed).
func (t *Taxonomy) CanonicalKey(name string) string {
	normalized := strings.ToUpper(strings.TrimSpace(name))
	if key, ok := t.variations[normalized]; ok {
		return key
	}
	return normalized
}

// Keys returns all canonical merchant keys in deterministic order.
func (t *Taxonomy) Keys() []string {
	return t.keys
}

// Categories returns the category list in declaration order.
func (t *Taxonomy) Categories() []Category {
	return t.categories
}

// CategoryNames returns just the category names, in declaration order.
func (t *Taxonomy) CategoryNames() []string {
	names := make([]string, len(t.categories))
	for i, c := range t.categories {
		names[i] = c.Name
	}
	return names
}

func (t *Taxonomy) rebuildKeys() {
	t.keys = make([]string, 0, len(t.merchants))
	for key := range t.merchants {
		t.keys = append(t.keys, key)
	}
	sort.Strings(t.keys)
}
