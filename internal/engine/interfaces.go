package engine

import (
	"context"

	"github.com/mlsantos/pitaka/internal/model"
)

// Storage is the persistence contract the pipeline depends on.
type Storage interface {
	SaveTransactions(ctx context.Context, txns []model.Transaction) error
	GetAllTransactions(ctx context.Context) ([]model.Transaction, error)
	SeenFingerprints(ctx context.Context) (map[string]bool, error)
	RecordDocument(ctx context.Context, fingerprint, path string, qualityScore float64) error
}
