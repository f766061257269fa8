package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/mlsantos/pitaka/internal/document"
	"github.com/mlsantos/pitaka/internal/model"
)

// BPIExtractor parses BPI statements. Table layout:
// date, description, reference, debit, credit.
type BPIExtractor struct{}

// NewBPIExtractor creates a new BPI parser variant.
func NewBPIExtractor() *BPIExtractor {
	return &BPIExtractor{}
}

// Source returns the source kind this variant handles.
func (e *BPIExtractor) Source() model.SourceKind {
	return model.SourceBPI
}

// Extract parses every transaction table in the document. Bad rows are
// skipped and recorded; only a document with no tables at all is a failure.
func (e *BPIExtractor) Extract(_ context.Context, doc document.Document) (*model.ExtractionResult, error) {
	result := &model.ExtractionResult{Source: model.SourceBPI}

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
		return nil, extractionErr(doc, model.SourceBPI, "no transaction tables found")
	}

	result.QualityScore = result.CalculateQualityScore()
	return result, nil
}

func (e *BPIExtractor) parseRow(row []string, accountID string) (*model.Transaction, error) {
	if len(row) < 5 {
		return nil, fmt.Errorf("expected 5 columns, got %d", len(row))
	}

	date, ambiguous, err := ParseFlexibleDate(row[0])
	if err != nil {
		return nil, err
	}
	if ambiguous {
		logAmbiguousDate(string(model.SourceBPI), row[0])
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
		Source:      model.SourceBPI,
		Amount:      amount,
		Confidence:  rowConfidence(description, ambiguous),
	}
	txn.Hash = txn.GenerateHash()
	return txn, nil
}
