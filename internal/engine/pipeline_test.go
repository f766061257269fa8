package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mlsantos/pitaka/internal/categorize"
	"github.com/mlsantos/pitaka/internal/dupes"
	"github.com/mlsantos/pitaka/internal/model"
	"github.com/mlsantos/pitaka/internal/rules"
	"github.com/mlsantos/pitaka/internal/taxonomy"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStorage struct {
	saved     []model.Transaction
	stored    []model.Transaction
	seen      map[string]bool
	documents map[string]string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{
		seen:      make(map[string]bool),
		documents: make(map[string]string),
	}
}

func (f *fakeStorage) SaveTransactions(_ context.Context, txns []model.Transaction) error {
	f.saved = append(f.saved, txns...)
	return nil
}

func (f *fakeStorage) GetAllTransactions(_ context.Context) ([]model.Transaction, error) {
	return f.stored, nil
}

func (f *fakeStorage) SeenFingerprints(_ context.Context) (map[string]bool, error) {
	return f.seen, nil
}

func (f *fakeStorage) RecordDocument(_ context.Context, fingerprint, path string, _ float64) error {
	f.documents[fingerprint] = path
	return nil
}

const bpiStatement = `BANK OF THE PHILIPPINE ISLANDS
Account Number: 1234-5678-90
Statement Period: January 1 2024 to January 31 2024

Date,Description,Reference,Debit,Credit
01/15/2024,JOLLIBEE MAKATI,REF001,250.00,
01/16/2024,XQZW 9912,REF002,120.00,
`

func writeStatement(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newTestPipeline(store Storage) *Pipeline {
	categorizer := categorize.New(taxonomy.New(), rules.NewStore())
	return New(store, categorizer, dupes.NewDetector(dupes.DefaultConfig()), dupes.NewResolver())
}

func TestPipelineRun(t *testing.T) {
	store := newFakeStorage()
	p := newTestPipeline(store)
	path := writeStatement(t, "bpi.txt", bpiStatement)

	summary, err := p.Run(context.Background(), []string{path}, Options{})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.DocumentsImported)
	assert.Equal(t, 0, summary.DocumentsFailed)
	assert.Equal(t, 2, summary.Transactions)
	assert.Equal(t, 1, summary.Uncategorized)
	assert.Equal(t, 2, summary.TransactionsStored)
	assert.Greater(t, summary.AverageQuality, 0.0)

	require.Len(t, store.saved, 2)
	assert.Equal(t, "Food & Dining", store.saved[0].Category)
	assert.Equal(t, "Jollibee", store.saved[0].MerchantName)
	assert.Equal(t, model.Uncategorized, store.saved[1].Category)
	assert.Len(t, store.documents, 1)
}

func TestPipelineRunDryRun(t *testing.T) {
	store := newFakeStorage()
	p := newTestPipeline(store)
	path := writeStatement(t, "bpi.txt", bpiStatement)

	summary, err := p.Run(context.Background(), []string{path}, Options{DryRun: true})
	require.NoError(t, err)

	assert.Equal(t, 2, summary.TransactionsStored)
	assert.Empty(t, store.saved, "dry run persists nothing")
	assert.Empty(t, store.documents)
}

func TestPipelineRunDetectsStoredDuplicates(t *testing.T) {
	store := newFakeStorage()
	p := newTestPipeline(store)
	path := writeStatement(t, "bpi.txt", bpiStatement)

	// Seed storage with a transaction identical to one in the statement;
	// it carries a different ID, as a prior import would have assigned.
	first, err := p.Run(context.Background(), []string{path}, Options{DryRun: true})
	require.NoError(t, err)
	require.Equal(t, 0, first.DuplicateMatches)

	seedStore := newFakeStorage()
	seedRun := newTestPipeline(seedStore)
	_, err = seedRun.Run(context.Background(), []string{path}, Options{})
	require.NoError(t, err)
	store.stored = seedStore.saved

	summary, err := p.Run(context.Background(), []string{path}, Options{
		AutoResolve:   true,
		MinConfidence: 0.95,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, summary.DuplicateMatches, "each incoming row matches its stored twin")
	assert.Equal(t, 2, summary.DuplicateGroups)
	assert.Equal(t, 2, summary.AutoResolved)
	assert.Equal(t, 0, summary.TransactionsStored,
		"stored twins win, incoming duplicates are filtered out")
	assert.Empty(t, store.saved)
}

func TestPipelineRunHonorsUniqueResolutions(t *testing.T) {
	// Two identical stored transactions the detector scores at full
	// confidence, e.g. a genuinely split bill.
	date := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
	twinA := model.Transaction{
		ID: "twin-a", Date: date, Description: "SHAKEYS BGC",
		Amount: decimal.NewFromInt(-900), Source: model.SourceBPI,
	}
	twinB := twinA
	twinB.ID = "twin-b"

	store := newFakeStorage()
	store.stored = []model.Transaction{twinA, twinB}

	resolver := dupes.NewResolver()
	categorizer := categorize.New(taxonomy.New(), rules.NewStore())
	p := New(store, categorizer, dupes.NewDetector(dupes.DefaultConfig()), resolver)
	path := writeStatement(t, "bpi.txt", bpiStatement)

	before, err := p.Run(context.Background(), []string{path}, Options{DryRun: true})
	require.NoError(t, err)
	require.Equal(t, 1, before.DuplicateMatches, "the stored twins match each other")

	// The user confirms the twins are two real charges.
	require.NoError(t, resolver.MarkUnique([]string{"twin-a", "twin-b"}, "split bill"))

	after, err := p.Run(context.Background(), []string{path}, Options{DryRun: true})
	require.NoError(t, err)
	assert.Equal(t, 0, after.DuplicateMatches, "a unique-marked pair never re-surfaces")
	assert.Equal(t, 0, after.DuplicateGroups)
	assert.Equal(t, 2, after.TransactionsStored, "the incoming batch is unaffected")
}

func TestPipelineRunSkipsSeenDocuments(t *testing.T) {
	store := newFakeStorage()
	p := newTestPipeline(store)
	path := writeStatement(t, "bpi.txt", bpiStatement)

	summary, err := p.Run(context.Background(), []string{path}, Options{})
	require.NoError(t, err)
	require.Len(t, store.documents, 1)

	for fp := range store.documents {
		store.seen[fp] = true
	}

	summary, err = p.Run(context.Background(), []string{path}, Options{})
	require.NoError(t, err)
	assert.Equal(t, 0, summary.DocumentsImported)
	assert.Equal(t, 1, summary.DocumentsSkipped)
	assert.Equal(t, 0, summary.Transactions)
}

func TestPipelineRunReportsFailures(t *testing.T) {
	store := newFakeStorage()
	p := newTestPipeline(store)
	broken := writeStatement(t, "broken.pdf", "%PDF-1.7 binary")

	summary, err := p.Run(context.Background(), []string{broken}, Options{})
	require.NoError(t, err, "document failures surface in the summary, not as a run error")
	assert.Equal(t, 1, summary.DocumentsFailed)
	require.Len(t, summary.Errors, 1)
	assert.Equal(t, broken, summary.Errors[0].Path)
}
