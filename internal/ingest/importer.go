// Package ingest runs the parser variants over batches of statement
// documents, skipping content-hash duplicates and aggregating results. One
// bad document never aborts the batch.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mlsantos/pitaka/internal/common"
	"github.com/mlsantos/pitaka/internal/document"
	"github.com/mlsantos/pitaka/internal/extract"
	"github.com/mlsantos/pitaka/internal/model"
)

// ProgressSink receives per-document import progress. Progress is reported
// in the stable caller-supplied document order.
type ProgressSink interface {
	Start(total int)
	Advance(path string)
	Finish()
}

// Importer orchestrates batch ingestion. Documents are processed in the
// order given so content-hash dedup is first-occurrence-wins.
type Importer struct {
	seen     map[string]bool
	progress ProgressSink
	password string
}

// Option configures an Importer.
type Option func(*Importer)

// WithSeenFingerprints pre-populates the already-imported fingerprint set,
// typically from storage, so re-imports across sessions are skipped.
func WithSeenFingerprints(fingerprints map[string]bool) Option {
	return func(i *Importer) {
		for fp := range fingerprints {
			i.seen[fp] = true
		}
	}
}

// WithProgress sets the progress sink.
func WithProgress(sink ProgressSink) Option {
	return func(i *Importer) {
		i.progress = sink
	}
}

// WithPassword supplies the credential for protected documents.
func WithPassword(password string) Option {
	return func(i *Importer) {
		i.password = password
	}
}

// NewImporter creates a batch importer.
func NewImporter(opts ...Option) *Importer {
	imp := &Importer{seen: make(map[string]bool)}
	for _, opt := range opts {
		opt(imp)
	}
	return imp
}

// ImportAll parses every document and aggregates the outcome. A document is
// skipped when its content hash was already seen in this batch or a prior
// import; the hash is committed to the seen set only after a successful
// parse, so a failed document can be retried. Parse failures are recorded
// and the batch continues.
func (imp *Importer) ImportAll(ctx context.Context, paths []string) (*model.BatchResult, error) {
	if len(paths) == 0 {
		return nil, common.ErrNoDocuments
	}

	result := &model.BatchResult{}
	if imp.progress != nil {
		imp.progress.Start(len(paths))
		defer imp.progress.Finish()
	}

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		imp.importOne(ctx, path, result)
		if imp.progress != nil {
			imp.progress.Advance(path)
		}
	}

	var sum float64
	for i := range result.Results {
		sum += result.Results[i].QualityScore
	}
	if len(result.Results) > 0 {
		result.AverageQuality = sum / float64(len(result.Results))
	}

	slog.Info("Batch import finished",
		"documents", len(paths),
		"succeeded", len(result.Results),
		"failed", len(result.Errors),
		"skipped", len(result.Skipped),
		"transactions", result.TransactionCount(),
		"average_quality", result.AverageQuality)

	return result, nil
}

func (imp *Importer) importOne(ctx context.Context, path string, result *model.BatchResult) {
	doc, err := document.Open(path, imp.password)
	if err != nil {
		result.Errors = append(result.Errors, model.DocumentError{Path: path, Error: err.Error()})
		return
	}

	if imp.seen[doc.Fingerprint()] {
		result.Skipped = append(result.Skipped, model.SkippedDocument{
			Path:   path,
			Reason: "content hash already imported",
		})
		slog.Debug("Skipping duplicate document", "path", path)
		return
	}

	extraction, err := imp.extract(ctx, doc)
	if err != nil {
		result.Errors = append(result.Errors, model.DocumentError{Path: path, Error: err.Error()})
		return
	}

	// Commit the fingerprint only after a successful parse so a failed
	// attempt can be retried.
	imp.seen[doc.Fingerprint()] = true
	extraction.SourcePath = path
	extraction.Fingerprint = doc.Fingerprint()
	result.Results = append(result.Results, *extraction)

	if len(extraction.ParsingErrors) > 0 {
		slog.Warn("Document parsed with row-level errors",
			"path", path,
			"rows_skipped", len(extraction.ParsingErrors))
	}
}

// extract picks the parser variant by source detection, falling back to
// trying each variant in turn when detection finds no signal.
func (imp *Importer) extract(ctx context.Context, doc *document.File) (*model.ExtractionResult, error) {
	source := extract.DetectSource(doc)
	if source != model.SourceUnknown {
		extractor, err := extract.ForSource(source)
		if err != nil {
			return nil, err
		}
		return extractor.Extract(ctx, doc)
	}

	var lastErr error
	for _, extractor := range extract.All() {
		extraction, err := extractor.Extract(ctx, doc)
		if err == nil && len(extraction.Transactions) > 0 {
			return extraction, nil
		}
		if err != nil {
			lastErr = err
		}
	}
	if lastErr != nil {
		return nil, fmt.Errorf("unrecognized statement format: %w", lastErr)
	}
	return nil, errors.New("unrecognized statement format")
}
