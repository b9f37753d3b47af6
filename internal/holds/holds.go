// Package holds holds the immutable hold dataset: the mapping from a hold
// identifier to its logical grid cell.
package holds

import (
	"fmt"
	"sort"

	"github.com/banshee-data/holdmap/internal/layout"
	"github.com/banshee-data/holdmap/internal/monitoring"
)

// HoldRecord places one hold on the wall.
type HoldRecord struct {
	ID     string        `json:"id"`
	Row    string        `json:"row"`
	Column string        `json:"column"`
	Angle  string        `json:"angle"` // display only
	Family layout.Family `json:"grid"`
}

// Dataset is a read-only index of hold records keyed by normalised ID. It is
// safe for concurrent use once built.
type Dataset struct {
	records map[string]HoldRecord
	ids     []string
}

// NewDataset validates records against l and indexes them. IDs are normalised
// with NormalizeID. When the same ID appears twice the later record wins, which
// matches loading MAIN before AUX.
func NewDataset(l *layout.Layout, records []HoldRecord) (*Dataset, error) {
	d := &Dataset{records: make(map[string]HoldRecord, len(records))}
	for i, rec := range records {
		rec.ID = NormalizeID(rec.ID)
		if err := validateRecord(l, rec); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if prev, dup := d.records[rec.ID]; dup {
			monitoring.Logf("hold %s at %s/%s replaced by %s/%s", rec.ID, prev.Row, prev.Column, rec.Row, rec.Column)
		}
		d.records[rec.ID] = rec
	}

	d.ids = make([]string, 0, len(d.records))
	for id := range d.records {
		d.ids = append(d.ids, id)
	}
	sort.Strings(d.ids)
	return d, nil
}

func validateRecord(l *layout.Layout, rec HoldRecord) error {
	if rec.ID == "" {
		return fmt.Errorf("empty hold id")
	}
	family, err := layout.FamilyForColumn(rec.Column)
	if err != nil {
		return err
	}
	if rec.Family != family {
		return fmt.Errorf("hold %s: column %s belongs to %s, record says %q", rec.ID, rec.Column, family, rec.Family)
	}
	if _, _, ok := l.ColumnPosition(rec.Column); !ok {
		return &layout.LookupError{Kind: layout.KindColumn, Label: rec.Column, Family: family}
	}
	if !familyHasRow(l, family, rec.Row) {
		return &layout.LookupError{Kind: layout.KindRow, Label: rec.Row, Family: family}
	}
	return nil
}

func familyHasRow(l *layout.Layout, f layout.Family, row string) bool {
	for _, r := range l.Grid(f).Rows() {
		if r == row {
			return true
		}
	}
	return false
}

// Find returns the record for id after normalisation. Unknown IDs yield a
// *layout.LookupError.
func (d *Dataset) Find(id string) (HoldRecord, error) {
	key := NormalizeID(id)
	rec, ok := d.records[key]
	if !ok {
		return HoldRecord{}, &layout.LookupError{Kind: layout.KindHold, Label: key}
	}
	return rec, nil
}

// IDs returns every hold ID in sorted order. The slice must not be modified.
func (d *Dataset) IDs() []string { return d.ids }

func (d *Dataset) Len() int { return len(d.records) }

// Records returns all records ordered by ID.
func (d *Dataset) Records() []HoldRecord {
	out := make([]HoldRecord, len(d.ids))
	for i, id := range d.ids {
		out[i] = d.records[id]
	}
	return out
}
