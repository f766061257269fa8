// Package extract turns heterogeneous statement layouts into a uniform
// transaction representation. One extractor exists per supported source
// kind; dispatch is an explicit, closed table selected by header detection
// rather than open-ended subclassing.
package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/mlsantos/pitaka/internal/document"
	"github.com/mlsantos/pitaka/internal/model"
)

// Extractor is the contract every parser variant implements. Extract fails
// with an *ExtractionError only for document-level problems (unreadable,
// wrong layout); row-level failures are skipped, recorded in ParsingErrors,
// and never abort the document.
type Extractor interface {
	Source() model.SourceKind
	Extract(ctx context.Context, doc document.Document) (*model.ExtractionResult, error)
}

// ExtractionError indicates a document could not be parsed at all.
type ExtractionError struct {
	Err    error
	Path   string
	Source model.SourceKind
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed for %s (%s): %v", e.Path, e.Source, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

func extractionErr(doc document.Document, source model.SourceKind, format string, args ...any) error {
	return &ExtractionError{
		Path:   doc.Path(),
		Source: source,
		Err:    fmt.Errorf(format, args...),
	}
}

// sourceSignals maps header tokens to source kinds. Detection scans pages in
// order and returns the first match.
var sourceSignals = []struct {
	token  string
	source model.SourceKind
}{
	{"BANK OF THE PHILIPPINE ISLANDS", model.SourceBPI},
	{"BPI ", model.SourceBPI},
	{"BDO UNIBANK", model.SourceBDO},
	{"BANCO DE ORO", model.SourceBDO},
	{"GCASH", model.SourceGCash},
	{"PAYMAYA", model.SourceMaya},
	{"MAYA ", model.SourceMaya},
	{"OFXHEADER", model.SourceOFX},
	{"<OFX>", model.SourceOFX},
}

// DetectSource inspects document header text for identifying tokens. It
// returns SourceUnknown rather than guessing when nothing matches.
func DetectSource(doc document.Document) model.SourceKind {
	for page := 0; page < doc.PageCount(); page++ {
		text := strings.ToUpper(doc.PageText(page))
		for _, sig := range sourceSignals {
			if strings.Contains(text, sig.token) {
				return sig.source
			}
		}
	}
	return model.SourceUnknown
}

// All returns every parser variant in stable trial order. The orchestrator
// falls back to trying each in turn when detection comes up empty.
func All() []Extractor {
	return []Extractor{
		NewBPIExtractor(),
		NewBDOExtractor(),
		NewGCashExtractor(),
		NewMayaExtractor(),
		NewOFXExtractor(),
	}
}

// ForSource returns the parser variant for a detected source kind.
func ForSource(source model.SourceKind) (Extractor, error) {
	for _, e := range All() {
		if e.Source() == source {
			return e, nil
		}
	}
	return nil, fmt.Errorf("no extractor for source %q", source)
}

// Per-transaction confidence heuristics shared by the table-based variants.
const (
	penaltyShortDescription = 0.1
	penaltyAmbiguousDate    = 0.05
	shortDescriptionLen     = 5
)

// rowConfidence scores one extracted row. Confidence starts at 1.0 and is
// penalized for thin signals; it is a quality proxy, not a probability.
func rowConfidence(description string, ambiguousDate bool) float64 {
	confidence := 1.0
	if len(strings.TrimSpace(description)) < shortDescriptionLen {
		confidence -= penaltyShortDescription
	}
	if ambiguousDate {
		confidence -= penaltyAmbiguousDate
	}
	if confidence < 0 {
		return 0
	}
	return confidence
}

// isHeaderRow reports whether a table row is a column-header row.
func isHeaderRow(row []string) bool {
	if len(row) == 0 {
		return false
	}
	first := strings.ToUpper(strings.TrimSpace(row[0]))
	return strings.Contains(first, "DATE")
}
