// Package merchant resolves free-text merchant strings to canonical display
// names using exact, variation and partial matching against the taxonomy.
package merchant

import (
	"strings"

	"github.com/mlsantos/pitaka/internal/taxonomy"
)

// MatchType describes how a merchant string was resolved.
type MatchType string

const (
	// MatchCustom means a caller-supplied custom mapping matched.
	MatchCustom MatchType = "custom"
	// MatchExact means the input collapsed to a canonical taxonomy key.
	MatchExact MatchType = "exact"
	// MatchPartial means a taxonomy key was found inside the input.
	MatchPartial MatchType = "partial"
)

// Confidence constants for the resolution tiers.
const (
	exactConfidence      = 0.98
	partialBase          = 0.85
	partialRatioWeight   = 0.10
	partialPosPenalty    = 0.05
	partialMinConfidence = 0.70
	partialMaxConfidence = 0.95
	prefixRetryPenalty   = 0.95
	maxPrefixWords       = 4
)

// Result is the outcome of normalizing one merchant string. A miss is a
// result with empty Normalized and confidence 0, never an error.
type Result struct {
	Original   string
	Normalized string
	MatchType  MatchType
	Confidence float64
}

// Normalizer resolves merchant strings against the taxonomy plus an
// optional caller-supplied custom mapping.
type Normalizer struct {
	tax    *taxonomy.Taxonomy
	custom map[string]string
}

// New creates a normalizer. The custom mapping (raw uppercase string to
// display name) takes precedence over taxonomy lookups and may be nil.
func New(tax *taxonomy.Taxonomy, custom map[string]string) *Normalizer {
	return &Normalizer{tax: tax, custom: custom}
}

// Normalize resolves a raw merchant string. Resolution order: custom
// mapping, variation-collapsed exact taxonomy lookup, then partial match
// over all taxonomy keys keeping the earliest occurrence (longer key wins a
// position tie).
func (n *Normalizer) Normalize(raw string) Result {
	result := Result{Original: raw}
	input := strings.ToUpper(strings.TrimSpace(raw))
	if input == "" {
		return result
	}

	if display, ok := n.custom[input]; ok {
		result.Normalized = display
		result.MatchType = MatchCustom
		result.Confidence = exactConfidence
		return result
	}

	key := n.tax.CanonicalKey(input)
	if m, ok := n.tax.Merchant(key); ok {
		result.Normalized = m.DisplayName
		result.MatchType = MatchExact
		result.Confidence = exactConfidence
		return result
	}

	bestKey, bestPos := "", -1
	for _, candidate := range n.tax.Keys() {
		pos := strings.Index(input, candidate)
		if pos < 0 {
			continue
		}
		if bestPos < 0 || pos < bestPos || (pos == bestPos && len(candidate) > len(bestKey)) {
			bestKey, bestPos = candidate, pos
		}
	}
	if bestPos < 0 {
		return result
	}

	m, _ := n.tax.Merchant(bestKey)
	matchRatio := float64(len(bestKey)) / float64(len(input))
	confidence := partialBase + matchRatio*partialRatioWeight
	if bestPos > 0 {
		confidence -= partialPosPenalty
	}
	result.Normalized = m.DisplayName
	result.MatchType = MatchPartial
	result.Confidence = clamp(confidence, partialMinConfidence, partialMaxConfidence)
	return result
}

// ExtractMerchant normalizes a full transaction description, retrying on
// progressively shorter word-prefixes. Descriptions often append order
// numbers or branch names after the merchant token, so a prefix match is
// accepted with a small penalty.
func (n *Normalizer) ExtractMerchant(description string) Result {
	full := n.Normalize(description)
	if full.Normalized != "" {
		return full
	}

	words := strings.Fields(strings.ToUpper(strings.TrimSpace(description)))
	start := maxPrefixWords
	if len(words) < start {
		start = len(words)
	}
	for count := start; count >= 1; count-- {
		if count == len(words) {
			continue // same as the full input, already tried
		}
		prefix := strings.Join(words[:count], " ")
		r := n.Normalize(prefix)
		if r.Normalized != "" {
			r.Original = description
			r.Confidence *= prefixRetryPenalty
			return r
		}
	}

	return Result{Original: description}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
