package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/mlsantos/pitaka/internal/document"
	"github.com/mlsantos/pitaka/internal/model"
)

// BDOExtractor parses BDO statements. Table layout:
// date, description, debit, credit, running balance.
type BDOExtractor struct{}

// NewBDOExtractor creates a new BDO parser variant.
func NewBDOExtractor() *BDOExtractor {
	return &BDOExtractor{}
}

// Source returns the source kind this variant handles.
func (e *BDOExtractor) Source() model.SourceKind {
	return model.SourceBDO
}

// Extract parses every transaction table in the document.
func (e *BDOExtractor) Extract(_ context.Context, doc document.Document) (*model.ExtractionResult, error) {
	result := &model.ExtractionResult{Source: model.SourceBDO}

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
		return nil, extractionErr(doc, model.SourceBDO, "no transaction tables found")
	}

	result.QualityScore = result.CalculateQualityScore()
	return result, nil
}

func (e *BDOExtractor) parseRow(row []string, accountID string) (*model.Transaction, error) {
	if len(row) < 4 {
		return nil, fmt.Errorf("expected at least 4 columns, got %d", len(row))
	}

	date, ambiguous, err := ParseFlexibleDate(row[0])
	if err != nil {
		return nil, err
	}
	if ambiguous {
		logAmbiguousDate(string(model.SourceBDO), row[0])
	}

	amount, err := ParseDebitCredit(row[2], row[3])
	if err != nil {
		return nil, err
	}

	description := strings.TrimSpace(row[1])
	txn := &model.Transaction{
		ID:          uuid.NewString(),
		Date:        date,
		Description: description,
		AccountID:   accountID,
		Source:      model.SourceBDO,
		Amount:      amount,
		Confidence:  rowConfidence(description, ambiguous),
	}
	txn.Hash = txn.GenerateHash()
	return txn, nil
}
