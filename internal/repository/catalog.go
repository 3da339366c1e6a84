package repository

import (
	"context"
	"fmt"

	"github.com/Harrypapa1/pdf-processorHOC-HOL/internal/catalog"
)

// LoadEntries returns every catalog product ordered by code, satisfying
// catalog.Source. The stable ordering is what makes reverse-lookup
// tie-breaking deterministic.
func (s *Store) LoadEntries(ctx context.Context) ([]catalog.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT code, description FROM products ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	defer rows.Close()

	var entries []catalog.Entry
	for rows.Next() {
		var e catalog.Entry
		if err := rows.Scan(&e.Code, &e.Description); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// UpsertProduct inserts or replaces a catalog product.
func (s *Store) UpsertProduct(ctx context.Context, code, description string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO products (code, description) VALUES (?, ?)
		 ON CONFLICT(code) DO UPDATE SET description = excluded.description`,
		code, description)
	if err != nil {
		return fmt.Errorf("upsert product %q: %w", code, err)
	}
	return nil
}
