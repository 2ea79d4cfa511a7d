package offers

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// Repository is a database-backed repository for offers.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new Repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{db: d}
}

// ListActive returns offers whose window contains the given instant, for the
// given chains. An empty chain list means all chains. Sorted ascending by
// offer price.
func (r *Repository) ListActive(ctx context.Context, at time.Time, chains []string) ([]Offer, error) {
	query := `
		SELECT id, product, chain, offer_price, original_price, valid_from, valid_until
		FROM offers WHERE valid_from <= ? AND valid_until >= ?`
	args := []any{at, at}

	if len(chains) > 0 {
		query += ` AND chain IN (?` + strings.Repeat(",?", len(chains)-1) + `)`
		for _, c := range chains {
			args = append(args, c)
		}
	}
	query += ` ORDER BY offer_price ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list active offers: %w", err)
	}
	defer rows.Close()

	var result []Offer
	for rows.Next() {
		var o Offer
		if err := rows.Scan(&o.ID, &o.Product, &o.Chain, &o.OfferPrice, &o.OriginalPrice, &o.ValidFrom, &o.ValidUntil); err != nil {
			return nil, fmt.Errorf("failed to scan offer row: %w", err)
		}
		result = append(result, o)
	}
	return result, rows.Err()
}

// SaveBatch inserts a batch of offers in one transaction.
func (r *Repository) SaveBatch(ctx context.Context, batch []Offer) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin offer batch: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO offers (product, chain, offer_price, original_price, valid_from, valid_until)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare offer insert: %w", err)
	}
	defer stmt.Close()

	for _, o := range batch {
		if _, err := stmt.ExecContext(ctx, o.Product, o.Chain, o.OfferPrice, o.OriginalPrice, o.ValidFrom, o.ValidUntil); err != nil {
			return fmt.Errorf("failed to insert offer %q: %w", o.Product, err)
		}
	}

	return tx.Commit()
}
