package db

import (
	"time"

	"github.com/google/uuid"
)

// Lookup is one entry of the lookup log.
type Lookup struct {
	ID         string    `json:"id"`
	Query      string    `json:"query"`
	HoldID     string    `json:"hold_id,omitempty"`
	Found      bool      `json:"found"`
	Source     string    `json:"source"` // "api", "show" or "voice"
	LookedUpAt time.Time `json:"looked_up_at"`
}

// RecordLookup appends to the lookup log and returns the stored entry.
func (db *DB) RecordLookup(query, holdID string, found bool, source string) (Lookup, error) {
	l := Lookup{
		ID:         uuid.NewString(),
		Query:      query,
		HoldID:     holdID,
		Found:      found,
		Source:     source,
		LookedUpAt: db.clock.Now().UTC(),
	}
	_, err := db.Exec(`INSERT INTO lookups (lookup_id, query, hold_id, found, source, looked_up_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		l.ID, l.Query, l.HoldID, l.Found, l.Source, l.LookedUpAt.UnixNano())
	if err != nil {
		return Lookup{}, err
	}
	return l, nil
}

// RecentLookups returns up to limit entries, newest first.
func (db *DB) RecentLookups(limit int) ([]Lookup, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.Query(`SELECT lookup_id, query, hold_id, found, source, looked_up_at
		FROM lookups ORDER BY looked_up_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Lookup{}
	for rows.Next() {
		var l Lookup
		var ts int64
		if err := rows.Scan(&l.ID, &l.Query, &l.HoldID, &l.Found, &l.Source, &ts); err != nil {
			return nil, err
		}
		l.LookedUpAt = time.Unix(0, ts).UTC()
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
