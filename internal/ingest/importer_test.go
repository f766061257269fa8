package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mlsantos/pitaka/internal/common"
	"github.com/mlsantos/pitaka/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bpiStatement = `BANK OF THE PHILIPPINE ISLANDS
Account Number: 1234-5678-90
Statement Period: January 1 2024 to January 31 2024

Date,Description,Reference,Debit,Credit
01/15/2024,JOLLIBEE MAKATI,REF001,250.00,
01/16/2024,SALARY CREDIT,REF002,,50000.00
`

const gcashStatement = `GCash Transaction History
Account Number: 09171234567

Date and Time,Description,Reference,Debit,Credit
2024-01-15 12:30:00,GRABFOOD - JOLLIBEE,GC001,350.00,
`

func writeStatement(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestImportAll(t *testing.T) {
	dir := t.TempDir()
	bpi := writeStatement(t, dir, "bpi.txt", bpiStatement)
	gcash := writeStatement(t, dir, "gcash.txt", gcashStatement)

	imp := NewImporter()
	batch, err := imp.ImportAll(context.Background(), []string{bpi, gcash})
	require.NoError(t, err)

	require.Len(t, batch.Results, 2)
	assert.Empty(t, batch.Errors)
	assert.Empty(t, batch.Skipped)
	assert.Equal(t, 3, batch.TransactionCount())
	assert.Greater(t, batch.AverageQuality, 0.0)

	assert.Equal(t, model.SourceBPI, batch.Results[0].Source)
	assert.Equal(t, bpi, batch.Results[0].SourcePath)
	assert.NotEmpty(t, batch.Results[0].Fingerprint)
	assert.Equal(t, model.SourceGCash, batch.Results[1].Source)
}

func TestImportAllSkipsDuplicateContent(t *testing.T) {
	dir := t.TempDir()
	first := writeStatement(t, dir, "bpi.txt", bpiStatement)
	copied := writeStatement(t, dir, "bpi-copy.txt", bpiStatement)

	imp := NewImporter()
	batch, err := imp.ImportAll(context.Background(), []string{first, copied})
	require.NoError(t, err)

	require.Len(t, batch.Results, 1, "identical content imports once")
	require.Len(t, batch.Skipped, 1)
	assert.Equal(t, copied, batch.Skipped[0].Path)
}

func TestImportAllSeenFingerprints(t *testing.T) {
	dir := t.TempDir()
	path := writeStatement(t, dir, "bpi.txt", bpiStatement)

	// First session records the fingerprint.
	firstRun := NewImporter()
	batch, err := firstRun.ImportAll(context.Background(), []string{path})
	require.NoError(t, err)
	require.Len(t, batch.Results, 1)
	fp := batch.Results[0].Fingerprint

	// A later session seeded from storage skips the same document.
	imp := NewImporter(WithSeenFingerprints(map[string]bool{fp: true}))
	batch, err = imp.ImportAll(context.Background(), []string{path})
	require.NoError(t, err)
	assert.Empty(t, batch.Results)
	require.Len(t, batch.Skipped, 1)
}

func TestImportAllContinuesAfterFailure(t *testing.T) {
	dir := t.TempDir()
	broken := writeStatement(t, dir, "broken.pdf", "%PDF-1.7 binary")
	good := writeStatement(t, dir, "bpi.txt", bpiStatement)

	imp := NewImporter()
	batch, err := imp.ImportAll(context.Background(), []string{broken, good})
	require.NoError(t, err)

	require.Len(t, batch.Errors, 1)
	assert.Equal(t, broken, batch.Errors[0].Path)
	require.Len(t, batch.Results, 1, "a bad document never aborts the batch")
}

func TestImportAllUnrecognizedFormat(t *testing.T) {
	dir := t.TempDir()
	path := writeStatement(t, dir, "mystery.txt", "just some prose with no statement structure")

	imp := NewImporter()
	batch, err := imp.ImportAll(context.Background(), []string{path})
	require.NoError(t, err)
	require.Len(t, batch.Errors, 1)
	assert.Empty(t, batch.Results)

	t.Run("failed document can be retried", func(t *testing.T) {
		// The fingerprint was not committed, so fixing the file under the
		// same path imports cleanly.
		require.NoError(t, os.WriteFile(path, []byte(bpiStatement), 0o644))
		batch, err := imp.ImportAll(context.Background(), []string{path})
		require.NoError(t, err)
		assert.Len(t, batch.Results, 1)
	})
}

func TestImportAllEmptyInput(t *testing.T) {
	imp := NewImporter()
	_, err := imp.ImportAll(context.Background(), nil)
	assert.ErrorIs(t, err, common.ErrNoDocuments)
}

func TestImportAllContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	imp := NewImporter()
	_, err := imp.ImportAll(ctx, []string{"whatever.txt"})
	assert.ErrorIs(t, err, context.Canceled)
}

type recordingSink struct {
	started  int
	advanced []string
	finished bool
}

func (s *recordingSink) Start(total int)     { s.started = total }
func (s *recordingSink) Advance(path string) { s.advanced = append(s.advanced, path) }
func (s *recordingSink) Finish()             { s.finished = true }

func TestImportAllProgress(t *testing.T) {
	dir := t.TempDir()
	path := writeStatement(t, dir, "bpi.txt", bpiStatement)

	sink := &recordingSink{}
	imp := NewImporter(WithProgress(sink))
	_, err := imp.ImportAll(context.Background(), []string{path})
	require.NoError(t, err)

	assert.Equal(t, 1, sink.started)
	assert.Equal(t, []string{path}, sink.advanced)
	assert.True(t, sink.finished)
}
