package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// CustomerEmail looks up the import email address for a customer code.
// Returns "" when the customer is unknown; the export pre-flight gate turns
// that into a reviewable issue.
func (s *Store) CustomerEmail(ctx context.Context, code string) (string, error) {
	var email string
	err := s.db.QueryRowContext(ctx,
		`SELECT email FROM customers WHERE code = ?`, code).Scan(&email)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("lookup customer %q: %w", code, err)
	}
	return email, nil
}

// UpsertCustomer inserts or replaces a customer contact row.
func (s *Store) UpsertCustomer(ctx context.Context, code, name, email string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO customers (code, name, email) VALUES (?, ?, ?)
		 ON CONFLICT(code) DO UPDATE SET name = excluded.name, email = excluded.email`,
		code, name, email)
	if err != nil {
		return fmt.Errorf("upsert customer %q: %w", code, err)
	}
	return nil
}
