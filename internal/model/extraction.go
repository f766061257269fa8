package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quality-score penalties applied when structural statement metadata is
// missing. These reduce the averaged per-transaction confidence and the
// result is clamped to [0,1].
const (
	PenaltyMissingAccount = 0.05
	PenaltyMissingPeriod  = 0.02
)

// ExtractionResult holds everything a parser variant recovered from one
// statement document. Produced once per document and never mutated after.
type ExtractionResult struct {
	PeriodStart    time.Time
	PeriodEnd      time.Time
	SourcePath     string
	Fingerprint    string
	AccountNumber  string
	AccountHolder  string
	Source         SourceKind
	Transactions   []Transaction
	ParsingErrors  []string
	OpeningBalance decimal.Decimal
	ClosingBalance decimal.Decimal
	HasBalances    bool
	QualityScore   float64
}

// CalculateQualityScore returns the mean per-transaction confidence, reduced
// by penalties for missing structural metadata. An empty extraction scores 0.
func (r *ExtractionResult) CalculateQualityScore() float64 {
	if len(r.Transactions) == 0 {
		return 0
	}

	var sum float64
	for _, txn := range r.Transactions {
		sum += txn.Confidence
	}
	score := sum / float64(len(r.Transactions))

	if r.AccountNumber == "" {
		score -= PenaltyMissingAccount
	}
	if r.PeriodStart.IsZero() || r.PeriodEnd.IsZero() {
		score -= PenaltyMissingPeriod
	}

	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// DocumentError records a document that failed to import.
type DocumentError struct {
	Path  string
	Error string
}

// SkippedDocument records a document skipped as an already-imported duplicate.
type SkippedDocument struct {
	Path   string
	Reason string
}

// BatchResult aggregates the outcome of importing many documents.
type BatchResult struct {
	Results        []ExtractionResult
	Errors         []DocumentError
	Skipped        []SkippedDocument
	AverageQuality float64
}

// TransactionCount returns the total transactions across all successful
// extractions in the batch.
func (b *BatchResult) TransactionCount() int {
	var n int
	for i := range b.Results {
		n += len(b.Results[i].Transactions)
	}
	return n
}
