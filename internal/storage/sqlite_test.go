package storage

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mlsantos/pitaka/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	s, err := NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func testTransaction(description, category string, amount float64, date time.Time) model.Transaction {
	txn := model.Transaction{
		ID:          uuid.NewString(),
		Date:        date,
		Description: description,
		Category:    category,
		Amount:      decimal.NewFromFloat(amount),
		Source:      model.SourceBPI,
		Confidence:  0.95,
	}
	txn.Hash = txn.GenerateHash()
	return txn
}

func TestSaveAndGetTransactions(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	txns := []model.Transaction{
		testTransaction("JOLLIBEE MAKATI", "Food & Dining", -250, date),
		testTransaction("SALARY CREDIT", "Income", 50000, date.AddDate(0, 0, 1)),
	}
	require.NoError(t, s.SaveTransactions(ctx, txns))

	got, err := s.GetAllTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "JOLLIBEE MAKATI", got[0].Description)
	assert.True(t, got[0].Amount.Equal(decimal.NewFromInt(-250)))
	assert.Equal(t, model.SourceBPI, got[0].Source)
	assert.InDelta(t, 0.95, got[0].Confidence, 1e-9)

	count, err := s.GetTransactionCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestSaveTransactionsHashConflict(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	original := testTransaction("JOLLIBEE MAKATI", "Food & Dining", -250, date)
	require.NoError(t, s.SaveTransactions(ctx, []model.Transaction{original}))

	// Same content hash under a new ID: the stored row must win.
	reimported := original
	reimported.ID = uuid.NewString()
	require.NoError(t, s.SaveTransactions(ctx, []model.Transaction{reimported}))

	got, err := s.GetAllTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, original.ID, got[0].ID)
}

func TestSaveTransactionsValidation(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	tests := []struct {
		name string
		txns []model.Transaction
	}{
		{name: "nil slice", txns: nil},
		{name: "empty slice", txns: []model.Transaction{}},
		{name: "missing hash", txns: []model.Transaction{{
			ID: "x", Date: time.Now(), Description: "d",
		}}},
		{name: "confidence out of range", txns: []model.Transaction{{
			ID: "x", Hash: "h", Date: time.Now(), Description: "d", Confidence: 1.5,
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, s.SaveTransactions(ctx, tt.txns))
		})
	}
}

func TestGetTransactionsByCategory(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	require.NoError(t, s.SaveTransactions(ctx, []model.Transaction{
		testTransaction("JOLLIBEE", "Food & Dining", -250, date),
		testTransaction("MCDO", "Food & Dining", -180, date),
		testTransaction("MERALCO", "Utilities", -3200, date),
	}))

	food, err := s.GetTransactionsByCategory(ctx, "Food & Dining")
	require.NoError(t, err)
	assert.Len(t, food, 2)

	_, err = s.GetTransactionsByCategory(ctx, "  ")
	assert.Error(t, err)
}

func TestGetCategorySummary(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	uncategorized := testTransaction("MYSTERY", "", -10, date)
	require.NoError(t, s.SaveTransactions(ctx, []model.Transaction{
		testTransaction("JOLLIBEE", "Food & Dining", -250, date),
		testTransaction("MCDO", "Food & Dining", -180, date),
		uncategorized,
	}))

	summary, err := s.GetCategorySummary(ctx, date.AddDate(0, 0, -1), date.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.True(t, summary["Food & Dining"].Equal(decimal.NewFromInt(-430)))
	assert.True(t, summary[model.Uncategorized].Equal(decimal.NewFromInt(-10)))

	t.Run("range excludes outside dates", func(t *testing.T) {
		summary, err := s.GetCategorySummary(ctx, date.AddDate(0, 1, 0), date.AddDate(0, 2, 0))
		require.NoError(t, err)
		assert.Empty(t, summary)
	})

	t.Run("inverted range rejected", func(t *testing.T) {
		_, err := s.GetCategorySummary(ctx, date, date.AddDate(0, 0, -5))
		assert.ErrorIs(t, err, ErrInvalidDateRange)
	})
}

func TestDocumentLedger(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	seen, err := s.SeenFingerprints(ctx)
	require.NoError(t, err)
	assert.Empty(t, seen)

	require.NoError(t, s.RecordDocument(ctx, "fp-1", "a.txt", 0.93))
	require.NoError(t, s.RecordDocument(ctx, "fp-2", "b.txt", 0.88))
	require.NoError(t, s.RecordDocument(ctx, "fp-1", "a-again.txt", 0.50), "re-recording is a no-op")

	seen, err = s.SeenFingerprints(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"fp-1": true, "fp-2": true}, seen)

	assert.Error(t, s.RecordDocument(ctx, "", "c.txt", 0.9))
}

func TestMigrateIdempotent(t *testing.T) {
	s := newTestStorage(t)
	require.NoError(t, s.Migrate(context.Background()), "a second migrate applies nothing")
}

func TestNewSQLiteStorageEmptyPath(t *testing.T) {
	_, err := NewSQLiteStorage("")
	assert.Error(t, err)
}
