// Package engine wires the full ingestion flow together: batch import,
// categorization, duplicate detection and resolution, then persistence.
package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mlsantos/pitaka/internal/categorize"
	"github.com/mlsantos/pitaka/internal/dupes"
	"github.com/mlsantos/pitaka/internal/ingest"
	"github.com/mlsantos/pitaka/internal/model"
)

// Options configures a pipeline run.
type Options struct {
	// Password unlocks protected documents.
	Password string
	// AutoResolve accepts duplicate matches at or above MinConfidence
	// without user review.
	AutoResolve bool
	// MinConfidence is the auto-resolution threshold.
	MinConfidence float64
	// DryRun skips persistence.
	DryRun bool
	// Progress receives per-document import progress; may be nil.
	Progress ingest.ProgressSink
}

// Summary is the quality/error report a pipeline run always produces,
// whether or not individual documents failed.
type Summary struct {
	DocumentsImported  int
	DocumentsFailed    int
	DocumentsSkipped   int
	Transactions       int
	TransactionsStored int
	Uncategorized      int
	DuplicateMatches   int
	DuplicateGroups    int
	AutoResolved       int
	AverageQuality     float64
	Errors             []model.DocumentError
}

// Pipeline runs statement documents through extraction, categorization and
// reconciliation.
type Pipeline struct {
	store       Storage
	categorizer *categorize.Categorizer
	detector    *dupes.Detector
	resolver    *dupes.Resolver
}

// New creates a pipeline.
func New(store Storage, categorizer *categorize.Categorizer, detector *dupes.Detector, resolver *dupes.Resolver) *Pipeline {
	return &Pipeline{
		store:       store,
		categorizer: categorizer,
		detector:    detector,
		resolver:    resolver,
	}
}

// Run imports the given documents end to end and returns the summary. The
// duplicate scan runs over the union of stored and newly extracted
// transactions, and only after the batch is fully collected.
func (p *Pipeline) Run(ctx context.Context, paths []string, opts Options) (*Summary, error) {
	seen, err := p.store.SeenFingerprints(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load imported-document ledger: %w", err)
	}

	importer := ingest.NewImporter(
		ingest.WithSeenFingerprints(seen),
		ingest.WithPassword(opts.Password),
		ingest.WithProgress(opts.Progress),
	)
	batch, err := importer.ImportAll(ctx, paths)
	if err != nil {
		return nil, err
	}

	var incoming []model.Transaction
	for i := range batch.Results {
		incoming = append(incoming, batch.Results[i].Transactions...)
	}

	summary := &Summary{
		DocumentsImported: len(batch.Results),
		DocumentsFailed:   len(batch.Errors),
		DocumentsSkipped:  len(batch.Skipped),
		Transactions:      len(incoming),
		AverageQuality:    batch.AverageQuality,
		Errors:            batch.Errors,
	}

	for _, r := range p.categorizer.CategorizeTransactions(incoming) {
		if r.Method == model.MethodNone {
			summary.Uncategorized++
		}
	}

	stored, err := p.store.GetAllTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load stored transactions: %w", err)
	}
	comparison := make([]model.Transaction, 0, len(stored)+len(incoming))
	comparison = append(comparison, stored...)
	comparison = append(comparison, incoming...)

	matches := p.resolver.FilterMatches(p.detector.FindDuplicates(comparison))
	summary.DuplicateMatches = len(matches)
	summary.DuplicateGroups = len(dupes.GroupDuplicates(matches))

	if opts.AutoResolve {
		summary.AutoResolved = p.resolver.AutoResolve(matches, true, opts.MinConfidence)
	}

	kept := p.resolver.FilterTransactions(incoming)
	summary.TransactionsStored = len(kept)

	if opts.DryRun {
		slog.Info("Dry run, skipping persistence", "transactions", len(kept))
		return summary, nil
	}

	if len(kept) > 0 {
		if err := p.store.SaveTransactions(ctx, kept); err != nil {
			return nil, fmt.Errorf("failed to save transactions: %w", err)
		}
	}
	for i := range batch.Results {
		r := &batch.Results[i]
		if err := p.store.RecordDocument(ctx, r.Fingerprint, r.SourcePath, r.QualityScore); err != nil {
			return nil, fmt.Errorf("failed to record document %s: %w", r.SourcePath, err)
		}
	}

	return summary, nil
}
