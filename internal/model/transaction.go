// Package model defines the core domain models used throughout the application.
package model

import (
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// SourceKind identifies the statement-format variant a transaction came from.
type SourceKind string

// Supported statement sources.
const (
	SourceBPI     SourceKind = "bpi"
	SourceBDO     SourceKind = "bdo"
	SourceGCash   SourceKind = "gcash"
	SourceMaya    SourceKind = "maya"
	SourceOFX     SourceKind = "ofx"
	SourceUnknown SourceKind = "unknown"
)

// Transaction represents a single financial transaction extracted from a
// statement. Amounts follow the ledger sign convention: debits are negative,
// credits are positive. Confidence is a heuristic [0,1] extraction-quality
// score, not a probability.
type Transaction struct {
	Date         time.Time
	ID           string
	Description  string
	MerchantName string // Canonical merchant name, set by categorization
	Category     string // Spending category, set by categorization
	Reference    string // Statement reference number, if present
	AccountID    string
	Hash         string
	Source       SourceKind
	Amount       decimal.Decimal
	Confidence   float64
}

// GenerateHash creates a stable content hash for duplicate detection.
func (t *Transaction) GenerateHash() string {
	data := fmt.Sprintf("%s:%s:%s:%s",
		t.Date.Format("2006-01-02"),
		t.Amount.StringFixed(2),
		t.Description,
		t.AccountID)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}

// IsDebit reports whether the transaction is money going out.
func (t *Transaction) IsDebit() bool {
	return t.Amount.IsNegative()
}
