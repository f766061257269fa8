package model

// CategorizationMethod indicates which step of the resolution hierarchy
// produced a category.
type CategorizationMethod string

// Categorization method constants, strongest to weakest.
const (
	MethodLearned         CategorizationMethod = "learned"
	MethodExactMerchant   CategorizationMethod = "exact_merchant"
	MethodPartialMerchant CategorizationMethod = "partial_merchant"
	MethodKeyword         CategorizationMethod = "keyword"
	MethodNone            CategorizationMethod = "none"
)

// CategorizationResult is the outcome of categorizing one description.
// Every input maps to a result; "no signal" is a confidence-0 result with
// MethodNone, never an error.
type CategorizationResult struct {
	Category           string
	NormalizedMerchant string
	Method             CategorizationMethod
	Confidence         float64
}

// Uncategorized is the fallback category when no resolution step matches.
const Uncategorized = "Uncategorized"
