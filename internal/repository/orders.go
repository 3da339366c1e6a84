package repository

import (
	"context"
	"fmt"
)

// Has reports whether a purchase-order number has been processed before.
func (s *Store) Has(ctx context.Context, poNumber string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM processed_orders WHERE po_number = ?`, poNumber).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check processed order %q: %w", poNumber, err)
	}
	return n > 0, nil
}

// Add records a purchase-order number as processed. Adding a number twice is
// not an error.
func (s *Store) Add(ctx context.Context, poNumber string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO processed_orders (po_number) VALUES (?)
		 ON CONFLICT(po_number) DO NOTHING`, poNumber)
	if err != nil {
		return fmt.Errorf("record processed order %q: %w", poNumber, err)
	}
	return nil
}
