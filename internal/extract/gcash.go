package extract

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mlsantos/pitaka/internal/document"
	"github.com/mlsantos/pitaka/internal/model"
)

// GCashExtractor parses GCash e-wallet exports. Table layout:
// datetime, description, reference, debit, credit, balance.
// GCash exports carry a fixed ISO-style timestamp, so dates here are never
// ambiguous.
type GCashExtractor struct{}

// NewGCashExtractor creates a new GCash parser variant.
func NewGCashExtractor() *GCashExtractor {
	return &GCashExtractor{}
}

// Source returns the source kind this variant handles.
func (e *GCashExtractor) Source() model.SourceKind {
	return model.SourceGCash
}

var gcashDateLayouts = []string{"2006-01-02 15:04:05", "2006-01-02 15:04", "2006-01-02"}

// Extract parses every transaction table in the document.
func (e *GCashExtractor) Extract(_ context.Context, doc document.Document) (*model.ExtractionResult, error) {
	result := &model.ExtractionResult{Source: model.SourceGCash}

	tableCount := 0
	for page := 0; page < doc.PageCount(); page++ {
		parseStatementMeta(doc.PageText(page), result)

		for _, table := range doc.PageTables(page) {
			tableCount++
			for rowIdx, row := range table {
				if isHeaderRow(row) {
					continue
				}
				txn, err := e.parseRow(row, result.AccountNumber)
				if err != nil {
					result.ParsingErrors = append(result.ParsingErrors,
						fmt.Sprintf("page %d row %d: %v", page+1, rowIdx+1, err))
					continue
				}
				result.Transactions = append(result.Transactions, *txn)
			}
		}
	}

	if tableCount == 0 {
		return nil, extractionErr(doc, model.SourceGCash, "no transaction tables found")
	}

	result.QualityScore = result.CalculateQualityScore()
	return result, nil
}

func (e *GCashExtractor) parseRow(row []string, accountID string) (*model.Transaction, error) {
	if len(row) < 5 {
		return nil, fmt.Errorf("expected at least 5 columns, got %d", len(row))
	}

	var date time.Time
	var err error
	for _, layout := range gcashDateLayouts {
		date, err = time.Parse(layout, strings.TrimSpace(row[0]))
		if err == nil {
			break
		}
	}
	if err != nil {
		return nil, fmt.Errorf("invalid date %q", row[0])
	}

	amount, err := ParseDebitCredit(row[3], row[4])
	if err != nil {
		return nil, err
	}

	description := strings.TrimSpace(row[1])
	txn := &model.Transaction{
		ID:          uuid.NewString(),
		Date:        date,
		Description: description,
		Reference:   strings.TrimSpace(row[2]),
		AccountID:   accountID,
		Source:      model.SourceGCash,
		Amount:      amount,
		Confidence:  rowConfidence(description, false),
	}
	txn.Hash = txn.GenerateHash()
	return txn, nil
}
