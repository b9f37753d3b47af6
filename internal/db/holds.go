package db

import (
	"fmt"

	"github.com/banshee-data/holdmap/internal/holds"
	"github.com/banshee-data/holdmap/internal/layout"
)

// ReplaceHolds swaps the stored dataset for records in one transaction.
// source names where the records came from, usually a CSV path.
func (db *DB) ReplaceHolds(records []holds.HoldRecord, source string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM holds"); err != nil {
		return fmt.Errorf("failed to clear holds: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO holds (hold_id, row_label, column_label, angle, grid, source, imported_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(hold_id) DO UPDATE SET
			row_label = excluded.row_label,
			column_label = excluded.column_label,
			angle = excluded.angle,
			grid = excluded.grid,
			source = excluded.source,
			imported_at = excluded.imported_at`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	now := db.clock.Now().Unix()
	for _, r := range records {
		if _, err := stmt.Exec(r.ID, r.Row, r.Column, r.Angle, string(r.Family), source, now); err != nil {
			return fmt.Errorf("failed to insert hold %s: %w", r.ID, err)
		}
	}
	return tx.Commit()
}

// Holds returns every stored record ordered by ID.
func (db *DB) Holds() ([]holds.HoldRecord, error) {
	rows, err := db.Query(`SELECT hold_id, row_label, column_label, angle, grid FROM holds ORDER BY hold_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []holds.HoldRecord
	for rows.Next() {
		var r holds.HoldRecord
		var grid string
		if err := rows.Scan(&r.ID, &r.Row, &r.Column, &r.Angle, &grid); err != nil {
			return nil, err
		}
		r.Family = layout.Family(grid)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// CountHolds returns the number of stored holds.
func (db *DB) CountHolds() (int, error) {
	var n int
	err := db.QueryRow("SELECT COUNT(*) FROM holds").Scan(&n)
	return n, err
}

// LoadDataset builds a dataset from the stored holds.
func (db *DB) LoadDataset(l *layout.Layout) (*holds.Dataset, error) {
	records, err := db.Holds()
	if err != nil {
		return nil, fmt.Errorf("failed to read holds: %w", err)
	}
	return holds.NewDataset(l, records)
}
