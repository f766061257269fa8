package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mlsantos/pitaka/internal/model"
	"github.com/shopspring/decimal"
)

// SaveTransactions stores finalized transactions. Records whose content
// hash is already present are left untouched, so re-importing overlapping
// statements is safe.
func (s *SQLiteStorage) SaveTransactions(ctx context.Context, txns []model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransactions(txns); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO transactions
			(id, hash, date, description, merchant_name, category, reference, account_id, source, amount, confidence)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(hash) DO NOTHING
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i := range txns {
		t := &txns[i]
		_, err := stmt.ExecContext(ctx,
			t.ID, t.Hash, t.Date, t.Description, t.MerchantName, t.Category,
			t.Reference, t.AccountID, string(t.Source), t.Amount.String(), t.Confidence)
		if err != nil {
			return fmt.Errorf("failed to save transaction %s: %w", t.ID, err)
		}
	}

	return tx.Commit()
}

// GetAllTransactions returns every stored transaction ordered by date.
func (s *SQLiteStorage) GetAllTransactions(ctx context.Context) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return s.queryTransactions(ctx, `
		SELECT id, hash, date, description, merchant_name, category, reference, account_id, source, amount, confidence
		FROM transactions
		ORDER BY date, id
	`)
}

// GetTransactionsByCategory returns stored transactions in one category.
func (s *SQLiteStorage) GetTransactionsByCategory(ctx context.Context, category string) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(category, "category"); err != nil {
		return nil, err
	}
	return s.queryTransactions(ctx, `
		SELECT id, hash, date, description, merchant_name, category, reference, account_id, source, amount, confidence
		FROM transactions
		WHERE category = ?
		ORDER BY date, id
	`, category)
}

func (s *SQLiteStorage) queryTransactions(ctx context.Context, query string, args ...any) ([]model.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var txns []model.Transaction
	for rows.Next() {
		var t model.Transaction
		var merchant, category, reference, accountID, source sql.NullString
		var amount string
		if err := rows.Scan(&t.ID, &t.Hash, &t.Date, &t.Description,
			&merchant, &category, &reference, &accountID, &source,
			&amount, &t.Confidence); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		t.MerchantName = merchant.String
		t.Category = category.String
		t.Reference = reference.String
		t.AccountID = accountID.String
		t.Source = model.SourceKind(source.String)
		t.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("invalid stored amount %q: %w", amount, err)
		}
		txns = append(txns, t)
	}
	return txns, rows.Err()
}

// GetTransactionCount returns the number of stored transactions.
func (s *SQLiteStorage) GetTransactionCount(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}

// GetCategorySummary sums amounts per category over a date range.
func (s *SQLiteStorage) GetCategorySummary(ctx context.Context, start, end time.Time) (map[string]decimal.Decimal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: %v is before %v", ErrInvalidDateRange, end, start)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT COALESCE(category, ''), amount
		FROM transactions
		WHERE date >= ? AND date <= ?
	`, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query category summary: %w", err)
	}
	defer func() { _ = rows.Close() }()

	summary := make(map[string]decimal.Decimal)
	for rows.Next() {
		var category, amount string
		if err := rows.Scan(&category, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan summary row: %w", err)
		}
		value, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("invalid stored amount %q: %w", amount, err)
		}
		if category == "" {
			category = model.Uncategorized
		}
		summary[category] = summary[category].Add(value)
	}
	return summary, rows.Err()
}

// RecordDocument adds a parsed document to the imported ledger.
func (s *SQLiteStorage) RecordDocument(ctx context.Context, fingerprint, path string, qualityScore float64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(fingerprint, "fingerprint"); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO imported_documents (fingerprint, path, quality_score)
		VALUES (?, ?, ?)
		ON CONFLICT(fingerprint) DO NOTHING
	`, fingerprint, path, qualityScore)
	if err != nil {
		return fmt.Errorf("failed to record document: %w", err)
	}
	return nil
}

// SeenFingerprints returns every previously imported document fingerprint.
func (s *SQLiteStorage) SeenFingerprints(ctx context.Context) (map[string]bool, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT fingerprint FROM imported_documents`)
	if err != nil {
		return nil, fmt.Errorf("failed to query imported documents: %w", err)
	}
	defer func() { _ = rows.Close() }()

	seen := make(map[string]bool)
	for rows.Next() {
		var fp string
		if err := rows.Scan(&fp); err != nil {
			return nil, fmt.Errorf("failed to scan fingerprint: %w", err)
		}
		seen[fp] = true
	}
	return seen, rows.Err()
}
