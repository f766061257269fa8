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

// MayaExtractor parses Maya e-wallet exports. Table layout:
// date, description, signed amount. Debits appear parenthesized or
// minus-prefixed in the single amount column.
type MayaExtractor struct{}

// NewMayaExtractor creates a new Maya parser variant.
func NewMayaExtractor() *MayaExtractor {
	return &MayaExtractor{}
}

// Source returns the source kind this variant handles.
func (e *MayaExtractor) Source() model.SourceKind {
	return model.SourceMaya
}

var mayaDateLayouts = []string{"Jan 02, 2006", "Jan 2, 2006", "January 2, 2006"}

// Extract parses every transaction table in the document.
func (e *MayaExtractor) Extract(_ context.Context, doc document.Document) (*model.ExtractionResult, error) {
	result := &model.ExtractionResult{Source: model.SourceMaya}

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
		return nil, extractionErr(doc, model.SourceMaya, "no transaction tables found")
	}

	result.QualityScore = result.CalculateQualityScore()
	return result, nil
}

func (e *MayaExtractor) parseRow(row []string, accountID string) (*model.Transaction, error) {
	if len(row) < 3 {
		return nil, fmt.Errorf("expected 3 columns, got %d", len(row))
	}

	var date time.Time
	var err error
	for _, layout := range mayaDateLayouts {
		date, err = time.Parse(layout, strings.TrimSpace(row[0]))
		if err == nil {
			break
		}
	}
	if err != nil {
		return nil, fmt.Errorf("invalid date %q", row[0])
	}

	amount, err := ParseAmount(row[2])
	if err != nil {
		return nil, err
	}

	description := strings.TrimSpace(row[1])
	txn := &model.Transaction{
		ID:          uuid.NewString(),
		Date:        date,
		Description: description,
		AccountID:   accountID,
		Source:      model.SourceMaya,
		Amount:      amount,
		Confidence:  rowConfidence(description, false),
	}
	txn.Hash = txn.GenerateHash()
	return txn, nil
}
