package model

import "time"

// RuleSource indicates how a learned rule was created.
type RuleSource string

const (
	// RuleSourceManual indicates a rule taught via the learn command.
	RuleSourceManual RuleSource = "MANUAL"
	// RuleSourceCorrection indicates a rule created by correcting a
	// categorization result.
	RuleSourceCorrection RuleSource = "CORRECTION"
	// RuleSourceImport indicates a rule loaded from an external rule file.
	RuleSourceImport RuleSource = "IMPORT"
)

// LearnedRule is a user-taught pattern-to-category override. Patterns are
// stored case-normalized (uppercase, trimmed); there is exactly one rule per
// unique pattern, and learning the same pattern again overwrites it.
type LearnedRule struct {
	CreatedAt          time.Time  `json:"created_at"`
	Pattern            string     `json:"pattern"`
	Category           string     `json:"category"`
	NormalizedMerchant string     `json:"normalized_merchant,omitempty"`
	Source             RuleSource `json:"source"`
	Confidence         float64    `json:"confidence"`
}
