package position

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/holdmap/internal/holds"
	"github.com/banshee-data/holdmap/internal/layout"
)

func TestResolveHold1350(t *testing.T) {
	l := layout.Default()
	d, err := holds.Sample(l)
	require.NoError(t, err)

	rec, err := d.Find("1350")
	require.NoError(t, err)

	pos, err := NewResolver(l).Resolve(rec.Row, rec.Column)
	require.NoError(t, err)

	assert.Equal(t, layout.Middle, pos.Panel)
	assert.Equal(t, "Aux", pos.GridName())
	assert.Equal(t, "2 from the TOP", pos.RowText())
	assert.Equal(t, "1 from the LEFT", pos.ColumnText())
}

func TestResolveColumnTieBreak(t *testing.T) {
	r := NewResolver(layout.Default())
	tests := []struct {
		column  string
		ordinal int
		side    Side
	}{
		{"C-1", 1, Left},
		{"C-9", 5, Left},
		{"C-11", 6, Left}, // middle of 11: fromLeft == fromRight
		{"C-13", 5, Right},
		{"C-21", 1, Right},
		{"C-2", 1, Left},
		{"C-10", 5, Left},
		{"C-12", 5, Right}, // 6 from the left, 5 from the right
		{"C-20", 1, Right},
	}
	for _, tt := range tests {
		row := "R-35"
		if f, _ := layout.FamilyForColumn(tt.column); f == layout.Aux {
			row = "R-34"
		}
		pos, err := r.Resolve(row, tt.column)
		require.NoError(t, err, tt.column)
		assert.Equal(t, tt.ordinal, pos.ColumnOrdinal, tt.column)
		assert.Equal(t, tt.side, pos.Side, tt.column)
	}
}

func TestResolvePanelOrdinalsContiguous(t *testing.T) {
	l := layout.Default()
	r := NewResolver(l)

	for _, f := range []layout.Family{layout.Main, layout.Aux} {
		column := l.Grid(f).Columns[0]
		seen := make(map[layout.Panel][]int)
		for _, row := range l.Grid(f).Rows() {
			pos, err := r.Resolve(row, column)
			require.NoError(t, err)
			assert.Equal(t, f, pos.Family)
			seen[pos.Panel] = append(seen[pos.Panel], pos.RowOrdinal)
		}
		for _, p := range l.Grid(f).Panels {
			ordinals := seen[p.Name]
			require.Len(t, ordinals, len(p.Rows), "%s %s", f, p.Name)
			for i, o := range ordinals {
				assert.Equal(t, i+1, o, "%s %s row %d", f, p.Name, i)
			}
		}
	}
}

func TestResolveFamilyMatchesParity(t *testing.T) {
	l := layout.Default()
	d, err := holds.Sample(l)
	require.NoError(t, err)
	r := NewResolver(l)

	for _, rec := range d.Records() {
		pos, err := r.Resolve(rec.Row, rec.Column)
		require.NoError(t, err, rec.ID)
		assert.Equal(t, rec.Family, pos.Family, rec.ID)
	}
}

func TestResolveLookupErrors(t *testing.T) {
	r := NewResolver(layout.Default())
	tests := []struct {
		name        string
		row, column string
		kind        string
	}{
		{"aux row on main column", "R-34", "C-1", layout.KindRow},
		{"main row on aux column", "R-35", "C-2", layout.KindRow},
		{"row outside wall", "R-5", "C-1", layout.KindRow},
		{"column outside wall", "R-35", "C-23", layout.KindColumn},
		{"malformed column", "R-35", "7", layout.KindColumn},
		{"empty", "", "", layout.KindColumn},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, err := r.Resolve(tt.row, tt.column)
			var le *layout.LookupError
			require.ErrorAs(t, err, &le)
			assert.Equal(t, tt.kind, le.Kind)
			assert.Equal(t, Position{}, pos)
		})
	}
}

func TestResolveFirstPanelWins(t *testing.T) {
	// A hand-built layout bypassing Validate can list a row twice; the
	// earlier panel in check order keeps it.
	l := &layout.Layout{
		Main: layout.Grid{
			Columns: []string{"C-1"},
			Panels: []layout.PanelRows{
				{Name: layout.Bottom, Rows: []string{"R-3"}},
				{Name: layout.Top, Rows: []string{"R-5", "R-3"}},
			},
		},
	}
	pos, ok := NewResolver(l).rows[layout.Main]["R-3"]
	require.True(t, ok)
	assert.Equal(t, rowSlot{panel: layout.Top, ordinal: 2}, pos)
}
