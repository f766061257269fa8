package extract

import (
	"context"
	"testing"
	"time"

	"github.com/mlsantos/pitaka/internal/document"
	"github.com/mlsantos/pitaka/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectSource(t *testing.T) {
	tests := []struct {
		name string
		text string
		want model.SourceKind
	}{
		{name: "bpi full name", text: "BANK OF THE PHILIPPINE ISLANDS\nStatement of Account", want: model.SourceBPI},
		{name: "bdo", text: "BDO Unibank, Inc.\nAccount Statement", want: model.SourceBDO},
		{name: "gcash", text: "GCash Transaction History", want: model.SourceGCash},
		{name: "maya", text: "PayMaya statement export", want: model.SourceMaya},
		{name: "ofx header", text: "OFXHEADER:100\nDATA:OFXSGML", want: model.SourceOFX},
		{name: "no signal", text: "Some random receipt text", want: model.SourceUnknown},
		{name: "empty", text: "", want: model.SourceUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := document.FromPages("test", []document.Page{{Text: tt.text}})
			assert.Equal(t, tt.want, DetectSource(doc))
		})
	}
}

func TestForSource(t *testing.T) {
	for _, e := range All() {
		got, err := ForSource(e.Source())
		require.NoError(t, err)
		assert.Equal(t, e.Source(), got.Source())
	}

	_, err := ForSource(model.SourceUnknown)
	assert.Error(t, err)
}

func TestBPIExtract(t *testing.T) {
	header := "BANK OF THE PHILIPPINE ISLANDS\n" +
		"Account Number: 1234-5678-90\n" +
		"Statement Period: January 1, 2024 to January 31, 2024\n"

	doc := document.FromPages("bpi.json", []document.Page{{
		Text: header,
		Tables: []document.Table{{
			{"Date", "Description", "Reference", "Debit", "Credit"},
			{"01/15/2024", "JOLLIBEE MAKATI", "REF001", "250.00", ""},
			{"01/16/2024", "SALARY CREDIT", "REF002", "", "50,000.00"},
			{"not-a-date", "BROKEN ROW", "REF003", "1.00", ""},
			{"01/17/2024", "GRAB RIDE", "REF004", "both", "set"},
		}},
	}})

	result, err := NewBPIExtractor().Extract(context.Background(), doc)
	require.NoError(t, err)

	require.Len(t, result.Transactions, 2)
	assert.Len(t, result.ParsingErrors, 2, "bad rows are skipped, not fatal")
	assert.Equal(t, model.SourceBPI, result.Source)
	assert.Equal(t, "1234-5678-90", result.AccountNumber)
	assert.False(t, result.PeriodStart.IsZero())

	first := result.Transactions[0]
	assert.Equal(t, "JOLLIBEE MAKATI", first.Description)
	assert.True(t, first.Amount.Equal(decimal.NewFromInt(-250)), "debit must be negative, got %s", first.Amount)
	assert.Equal(t, "REF001", first.Reference)
	assert.NotEmpty(t, first.ID)
	assert.NotEmpty(t, first.Hash)

	second := result.Transactions[1]
	assert.True(t, second.Amount.Equal(decimal.NewFromInt(50000)), "credit must be positive, got %s", second.Amount)

	assert.Greater(t, result.QualityScore, 0.0)
	assert.LessOrEqual(t, result.QualityScore, 1.0)
}

func TestBPIExtractNoTables(t *testing.T) {
	doc := document.FromPages("empty.json", []document.Page{{Text: "BPI something"}})

	_, err := NewBPIExtractor().Extract(context.Background(), doc)
	require.Error(t, err)

	var extractionErr *ExtractionError
	require.ErrorAs(t, err, &extractionErr)
	assert.Equal(t, model.SourceBPI, extractionErr.Source)
}

func TestBDOExtract(t *testing.T) {
	doc := document.FromPages("bdo.json", []document.Page{{
		Text: "BDO Unibank, Inc.\nAccount No: 001234567890\n",
		Tables: []document.Table{{
			{"Date", "Description", "Debit", "Credit", "Balance"},
			{"03/04/2024", "MERALCO PAYMENT", "3,200.00", "", "12,800.00"},
		}},
	}})

	result, err := NewBDOExtractor().Extract(context.Background(), doc)
	require.NoError(t, err)
	require.Len(t, result.Transactions, 1)
	assert.Equal(t, "001234567890", result.AccountNumber)

	txn := result.Transactions[0]
	assert.True(t, txn.Amount.Equal(decimal.NewFromInt(-3200)))
	assert.Equal(t, time.March, txn.Date.Month(), "ambiguous dates default to month-first")
	assert.InDelta(t, 0.95, txn.Confidence, 1e-9, "the ambiguous date costs confidence")
}

func TestGCashExtract(t *testing.T) {
	doc := document.FromPages("gcash.json", []document.Page{{
		Text: "GCash Transaction History\nAccount Number: 09171234567\n",
		Tables: []document.Table{{
			{"Date and Time", "Description", "Reference", "Debit", "Credit", "Balance"},
			{"2024-01-15 12:30:00", "GRABFOOD - JOLLIBEE", "GC001", "350.00", "", "1,650.00"},
			{"2024-01-15 18:00:00", "CASH IN", "GC002", "", "2,000.00", "3,650.00"},
		}},
	}})

	result, err := NewGCashExtractor().Extract(context.Background(), doc)
	require.NoError(t, err)
	require.Len(t, result.Transactions, 2)
	assert.Empty(t, result.ParsingErrors)

	first := result.Transactions[0]
	assert.Equal(t, 12, first.Date.Hour())
	assert.True(t, first.Amount.IsNegative())
	assert.Equal(t, model.SourceGCash, first.Source)
}

func TestMayaExtract(t *testing.T) {
	doc := document.FromPages("maya.json", []document.Page{{
		Text: "Maya  Wallet Statement\n",
		Tables: []document.Table{{
			{"Date", "Description", "Amount"},
			{"Jan 15, 2024", "NETFLIX SUBSCRIPTION", "(549.00)"},
			{"Jan 20, 2024", "REFUND SHOPEE", "120.00"},
		}},
	}})

	result, err := NewMayaExtractor().Extract(context.Background(), doc)
	require.NoError(t, err)
	require.Len(t, result.Transactions, 2)

	assert.True(t, result.Transactions[0].Amount.Equal(decimal.NewFromFloat(-549)),
		"parenthesized amount must be negative")
	assert.True(t, result.Transactions[1].Amount.Equal(decimal.NewFromInt(120)))
}

func TestRowConfidence(t *testing.T) {
	assert.InDelta(t, 1.0, rowConfidence("JOLLIBEE MAKATI BRANCH", false), 1e-9)
	assert.InDelta(t, 0.9, rowConfidence("ATM", false), 1e-9, "short description is penalized")
	assert.InDelta(t, 0.95, rowConfidence("JOLLIBEE MAKATI BRANCH", true), 1e-9, "ambiguous date is penalized")
	assert.GreaterOrEqual(t, rowConfidence("", true), 0.0)
}
