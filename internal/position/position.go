// Package position turns a logical grid cell into the relative description a
// climber uses on the wall: panel, grid family, row counted from the top of the
// panel and column counted from the nearer edge.
package position

import (
	"fmt"

	"github.com/banshee-data/holdmap/internal/layout"
)

// Side is the wall edge a column ordinal is counted from.
type Side string

const (
	Left  Side = "LEFT"
	Right Side = "RIGHT"
)

// Position is the relative description of one cell.
type Position struct {
	Panel         layout.Panel  `json:"panel"`
	Family        layout.Family `json:"family"`
	RowOrdinal    int           `json:"row_ordinal"`    // 1-based within the panel
	ColumnOrdinal int           `json:"column_ordinal"` // 1-based from Side
	Side          Side          `json:"side"`
}

// RowText renders the row as "2 from the TOP".
func (p Position) RowText() string {
	return fmt.Sprintf("%d from the TOP", p.RowOrdinal)
}

// ColumnText renders the column as "1 from the LEFT" or "3 from the RIGHT".
func (p Position) ColumnText() string {
	return fmt.Sprintf("%d from the %s", p.ColumnOrdinal, p.Side)
}

// GridName is the family's display name.
func (p Position) GridName() string {
	return p.Family.DisplayName()
}

type rowSlot struct {
	panel   layout.Panel
	ordinal int
}

// Resolver answers relative-position queries for one layout. Its tables are
// built once and never modified, so it is safe for concurrent use.
type Resolver struct {
	layout *layout.Layout
	rows   map[layout.Family]map[string]rowSlot
}

// NewResolver precomputes the panel membership tables of l.
func NewResolver(l *layout.Layout) *Resolver {
	r := &Resolver{
		layout: l,
		rows:   make(map[layout.Family]map[string]rowSlot, 2),
	}
	for _, f := range []layout.Family{layout.Main, layout.Aux} {
		slots := make(map[string]rowSlot)
		g := l.Grid(f)
		// Walk panels in check order; the first panel holding a row keeps it.
		for _, name := range layout.PanelOrder {
			for _, p := range g.Panels {
				if p.Name != name {
					continue
				}
				for i, row := range p.Rows {
					if _, taken := slots[row]; !taken {
						slots[row] = rowSlot{panel: name, ordinal: i + 1}
					}
				}
			}
		}
		r.rows[f] = slots
	}
	return r
}

// Resolve describes the cell (row, column). The family comes from column
// parity; labels outside that family's layout yield *layout.LookupError.
func (r *Resolver) Resolve(row, column string) (Position, error) {
	family, err := layout.FamilyForColumn(column)
	if err != nil {
		return Position{}, err
	}
	f, fromLeft, ok := r.layout.ColumnPosition(column)
	if !ok || f != family {
		return Position{}, &layout.LookupError{Kind: layout.KindColumn, Label: column, Family: family}
	}
	slot, ok := r.rows[family][row]
	if !ok {
		return Position{}, &layout.LookupError{Kind: layout.KindRow, Label: row, Family: family}
	}

	total := len(r.layout.Grid(family).Columns)
	fromRight := total - fromLeft + 1
	pos := Position{
		Panel:      slot.panel,
		Family:     family,
		RowOrdinal: slot.ordinal,
	}
	// Ties go to the left.
	if fromLeft <= fromRight {
		pos.ColumnOrdinal, pos.Side = fromLeft, Left
	} else {
		pos.ColumnOrdinal, pos.Side = fromRight, Right
	}
	return pos, nil
}
