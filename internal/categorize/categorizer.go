// Package categorize assigns a spending category and canonical merchant to
// transaction descriptions through a fixed resolution hierarchy: learned
// rule, exact merchant mapping, partial merchant mapping, keyword match,
// then the uncategorized fallback. Every input maps to a result; "no
// signal" is a confidence-0 result, never an error.
package categorize

import (
	"strings"

	"github.com/mlsantos/pitaka/internal/model"
	"github.com/mlsantos/pitaka/internal/rules"
	"github.com/mlsantos/pitaka/internal/taxonomy"
)

// Confidence constants per resolution tier.
const (
	exactConfidence      = 0.98
	partialBase          = 0.90
	partialRatioWeight   = 0.05
	partialMax           = 0.95
	keywordTokenConf     = 0.75
	keywordSubstringConf = 0.70
	substringRuleFactor  = 0.9
)

// Categorizer resolves descriptions against learned rules and the taxonomy.
// The keyword index is built at construction and immutable afterwards.
type Categorizer struct {
	tax        *taxonomy.Taxonomy
	rules      *rules.Store
	tokenIndex map[string]string
}

// New creates a categorizer. The rule store may be empty but not nil.
func New(tax *taxonomy.Taxonomy, ruleStore *rules.Store) *Categorizer {
	c := &Categorizer{
		tax:        tax,
		rules:      ruleStore,
		tokenIndex: make(map[string]string),
	}
	// First category to claim a keyword wins, matching declaration order.
	for _, cat := range tax.Categories() {
		for _, kw := range cat.Keywords {
			if _, taken := c.tokenIndex[kw]; !taken {
				c.tokenIndex[kw] = cat.Name
			}
		}
	}
	return c
}

// Categorize resolves one description. First matching tier wins.
func (c *Categorizer) Categorize(description string) model.CategorizationResult {
	normalized := rules.NormalizePattern(description)
	if normalized == "" {
		return fallbackResult()
	}

	if rule, exact, ok := c.rules.Match(normalized); ok {
		confidence := rule.Confidence
		if !exact {
			confidence *= substringRuleFactor
		}
		return model.CategorizationResult{
			Category:           rule.Category,
			NormalizedMerchant: rule.NormalizedMerchant,
			Method:             model.MethodLearned,
			Confidence:         confidence,
		}
	}

	if m, ok := c.tax.Merchant(c.tax.CanonicalKey(normalized)); ok {
		return model.CategorizationResult{
			Category:           m.Category,
			NormalizedMerchant: m.DisplayName,
			Method:             model.MethodExactMerchant,
			Confidence:         exactConfidence,
		}
	}

	if result, ok := c.partialMerchant(normalized); ok {
		return result
	}

	if result, ok := c.keywordMatch(normalized); ok {
		return result
	}

	return fallbackResult()
}

// CategorizeAll maps Categorize across descriptions, preserving order.
func (c *Categorizer) CategorizeAll(descriptions []string) []model.CategorizationResult {
	results := make([]model.CategorizationResult, len(descriptions))
	for i, d := range descriptions {
		results[i] = c.Categorize(d)
	}
	return results
}

// CategorizeTransactions categorizes each transaction in place, filling
// Category and MerchantName. Order is preserved.
func (c *Categorizer) CategorizeTransactions(txns []model.Transaction) []model.CategorizationResult {
	results := make([]model.CategorizationResult, len(txns))
	for i := range txns {
		r := c.Categorize(txns[i].Description)
		txns[i].Category = r.Category
		if r.NormalizedMerchant != "" {
			txns[i].MerchantName = r.NormalizedMerchant
		}
		results[i] = r
	}
	return results
}

// partialMerchant scans all taxonomy keys for containment, keeping the one
// occurring earliest in the input; a longer key wins a position tie.
func (c *Categorizer) partialMerchant(input string) (model.CategorizationResult, bool) {
	bestKey, bestPos := "", -1
	for _, candidate := range c.tax.Keys() {
		pos := strings.Index(input, candidate)
		if pos < 0 {
			continue
		}
		if bestPos < 0 || pos < bestPos || (pos == bestPos && len(candidate) > len(bestKey)) {
			bestKey, bestPos = candidate, pos
		}
	}
	if bestPos < 0 {
		return model.CategorizationResult{}, false
	}

	m, _ := c.tax.Merchant(bestKey)
	matchRatio := float64(len(bestKey)) / float64(len(input))
	confidence := partialBase + matchRatio*partialRatioWeight
	if confidence > partialMax {
		confidence = partialMax
	}
	return model.CategorizationResult{
		Category:           m.Category,
		NormalizedMerchant: m.DisplayName,
		Method:             model.MethodPartialMerchant,
		Confidence:         confidence,
	}, true
}

// keywordMatch tokenizes the description and looks for the first token in
// the keyword index, then falls back to the first keyword found as a
// substring anywhere.
func (c *Categorizer) keywordMatch(input string) (model.CategorizationResult, bool) {
	lower := strings.ToLower(input)

	for _, token := range strings.FieldsFunc(lower, func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	}) {
		if category, ok := c.tokenIndex[token]; ok {
			return model.CategorizationResult{
				Category:   category,
				Method:     model.MethodKeyword,
				Confidence: keywordTokenConf,
			}, true
		}
	}

	for _, cat := range c.tax.Categories() {
		for _, kw := range cat.Keywords {
			if strings.Contains(lower, kw) {
				return model.CategorizationResult{
					Category:   cat.Name,
					Method:     model.MethodKeyword,
					Confidence: keywordSubstringConf,
				}, true
			}
		}
	}

	return model.CategorizationResult{}, false
}

func fallbackResult() model.CategorizationResult {
	return model.CategorizationResult{
		Category:   model.Uncategorized,
		Method:     model.MethodNone,
		Confidence: 0,
	}
}
