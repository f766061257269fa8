package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/aclindsa/ofxgo"
	"github.com/google/uuid"
	"github.com/mlsantos/pitaka/internal/document"
	"github.com/mlsantos/pitaka/internal/model"
	"github.com/shopspring/decimal"
)

// OFXExtractor parses OFX/QFX exports through ofxgo. OFX already carries the
// ledger sign convention (debits negative), so amounts pass through as-is.
type OFXExtractor struct{}

// NewOFXExtractor creates a new OFX parser variant.
func NewOFXExtractor() *OFXExtractor {
	return &OFXExtractor{}
}

// Source returns the source kind this variant handles.
func (e *OFXExtractor) Source() model.SourceKind {
	return model.SourceOFX
}

// descriptionPrefixes are processor boilerplate stripped from OFX names.
var descriptionPrefixes = []string{
	"POS PURCHASE ",
	"PURCHASE AUTHORIZED ON ",
	"DEBIT CARD PURCHASE ",
	"ACH DEBIT ",
	"CHECK CARD ",
}

// Extract parses the OFX payload assembled from all document pages.
func (e *OFXExtractor) Extract(_ context.Context, doc document.Document) (*model.ExtractionResult, error) {
	var sb strings.Builder
	for page := 0; page < doc.PageCount(); page++ {
		sb.WriteString(doc.PageText(page))
	}
	content := strings.TrimLeft(sb.String(), " \t\r\n")

	resp, err := ofxgo.ParseResponse(strings.NewReader(content))
	if err != nil {
		return nil, extractionErr(doc, model.SourceOFX, "failed to parse OFX payload: %w", err)
	}

	result := &model.ExtractionResult{Source: model.SourceOFX}

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			e.appendStatement(result, stmt.BankTranList, string(stmt.BankAcctFrom.AcctID))
		}
	}
	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			e.appendStatement(result, stmt.BankTranList, string(stmt.CCAcctFrom.AcctID))
		}
	}

	result.QualityScore = result.CalculateQualityScore()
	return result, nil
}

func (e *OFXExtractor) appendStatement(result *model.ExtractionResult, list *ofxgo.TransactionList, accountID string) {
	if list == nil {
		return
	}
	if result.AccountNumber == "" {
		result.AccountNumber = accountID
	}
	if result.PeriodStart.IsZero() {
		result.PeriodStart = list.DtStart.Time
		result.PeriodEnd = list.DtEnd.Time
	}

	for _, ofxTxn := range list.Transactions {
		description := cleanOFXName(string(ofxTxn.Name))

		// TrnAmt is an exact rational; its String form is the decimal
		// representation, so the amount never passes through a float.
		amount, err := decimal.NewFromString(ofxTxn.TrnAmt.String())
		if err != nil {
			result.ParsingErrors = append(result.ParsingErrors,
				fmt.Sprintf("transaction %s: invalid amount %q", ofxTxn.FiTID, ofxTxn.TrnAmt.String()))
			continue
		}

		txn := model.Transaction{
			ID:          uuid.NewString(),
			Date:        ofxTxn.DtPosted.Time,
			Description: description,
			Reference:   string(ofxTxn.FiTID),
			AccountID:   accountID,
			Source:      model.SourceOFX,
			Amount:      amount,
			Confidence:  rowConfidence(description, false),
		}
		txn.Hash = txn.GenerateHash()
		result.Transactions = append(result.Transactions, txn)
	}
}

// cleanOFXName strips processor boilerplate from a transaction name.
func cleanOFXName(name string) string {
	name = strings.TrimSpace(name)
	upper := strings.ToUpper(name)
	for _, prefix := range descriptionPrefixes {
		if strings.HasPrefix(upper, prefix) {
			return strings.TrimSpace(name[len(prefix):])
		}
	}
	return name
}
