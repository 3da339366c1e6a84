package repository

import (
	"context"
	"fmt"

	"github.com/Harrypapa1/pdf-processorHOC-HOL/internal/convert"
)

// LoadFactors reads the whole conversion table into memory. The pipeline
// loads this once before a batch; the snapshot is read-only afterwards.
func (s *Store) LoadFactors(ctx context.Context) (convert.StaticTable, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT code, display_name, each_weight_grams FROM conversions`)
	if err != nil {
		return nil, fmt.Errorf("load conversions: %w", err)
	}
	defer rows.Close()

	table := make(convert.StaticTable)
	for rows.Next() {
		var code string
		var f convert.Factor
		if err := rows.Scan(&code, &f.DisplayName, &f.EachWeightGrams); err != nil {
			return nil, fmt.Errorf("scan conversion: %w", err)
		}
		table[code] = f
	}
	return table, rows.Err()
}

// UpsertFactor inserts or replaces a conversion-table row.
func (s *Store) UpsertFactor(ctx context.Context, code string, f convert.Factor) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO conversions (code, display_name, each_weight_grams) VALUES (?, ?, ?)
		 ON CONFLICT(code) DO UPDATE SET display_name = excluded.display_name,
		 each_weight_grams = excluded.each_weight_grams`,
		code, f.DisplayName, f.EachWeightGrams)
	if err != nil {
		return fmt.Errorf("upsert conversion %q: %w", code, err)
	}
	return nil
}
