// Package layout describes the fixed wall geometry shared by every lookup: the
// two interleaved grid families, their panel segmentation, the physical row
// order and the per-column pixel calibration of the reference photo.
//
// A Layout is read-only once validated. Default and Load both return validated
// layouts; hand-built values must go through Validate before use.
package layout

import (
	"strconv"
	"strings"
)

// Family identifies one of the two interleaved grids.
type Family string

const (
	Main Family = "MAIN" // odd columns
	Aux  Family = "AUX"  // even columns
)

// DisplayName is the short form shown to climbers.
func (f Family) DisplayName() string {
	switch f {
	case Main:
		return "Main"
	case Aux:
		return "Aux"
	default:
		return string(f)
	}
}

// Panel names a vertical section of the wall.
type Panel string

const (
	Top    Panel = "TOP"
	Middle Panel = "MIDDLE"
	Bottom Panel = "BOTTOM"
)

// PanelOrder is the order in which panel membership is tested. The first
// panel containing a row wins.
var PanelOrder = []Panel{Top, Middle, Bottom}

// PanelRows lists the rows of one panel, physically topmost first.
type PanelRows struct {
	Name Panel    `json:"name" yaml:"name"`
	Rows []string `json:"rows" yaml:"rows"`
}

// Grid is the column enumeration and panel segmentation of one family.
type Grid struct {
	Columns []string    `json:"columns" yaml:"columns"`
	Panels  []PanelRows `json:"panels" yaml:"panels"`
}

// Rows returns the family's rows in physical top-to-bottom order.
func (g *Grid) Rows() []string {
	var rows []string
	for _, p := range g.Panels {
		rows = append(rows, p.Rows...)
	}
	return rows
}

// Knot is an intermediate calibration measurement: the column sits at pixel X
// when the normalised vertical position is T.
type Knot struct {
	T float64 `json:"t" yaml:"t"`
	X float64 `json:"x" yaml:"x"`
}

// CalibrationCurve records where a column crosses the top and bottom edges of
// the reference image, plus optional measurements in between.
type CalibrationCurve struct {
	TopX    float64 `json:"top_x" yaml:"top_x"`
	BottomX float64 `json:"bottom_x" yaml:"bottom_x"`
	Knots   []Knot  `json:"knots,omitempty" yaml:"knots,omitempty"`
}

// ImageSize is the pixel size of the reference photo the calibration was
// measured on.
type ImageSize struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// Layout is the complete static wall description.
type Layout struct {
	Name        string                      `json:"name" yaml:"name"`
	Image       ImageSize                   `json:"image" yaml:"image"`
	Rows        []string                    `json:"rows" yaml:"rows"`
	Main        Grid                        `json:"main" yaml:"main"`
	Aux         Grid                        `json:"aux" yaml:"aux"`
	Calibration map[string]CalibrationCurve `json:"calibration" yaml:"calibration"`

	rowIndex    map[string]int
	columnIndex map[string]int
	columnGrid  map[string]Family
}

// Grid returns the grid of the given family, or nil for an unknown family.
func (l *Layout) Grid(f Family) *Grid {
	switch f {
	case Main:
		return &l.Main
	case Aux:
		return &l.Aux
	default:
		return nil
	}
}

// RowIndex returns the physical index of row (0 = topmost).
func (l *Layout) RowIndex(row string) (int, bool) {
	i, ok := l.rowIndex[row]
	return i, ok
}

// ColumnPosition returns the family of column and its 1-based position within
// that family, counted from the left.
func (l *Layout) ColumnPosition(column string) (Family, int, bool) {
	f, ok := l.columnGrid[column]
	if !ok {
		return "", 0, false
	}
	return f, l.columnIndex[column] + 1, true
}

// Columns returns every column of both families ordered left to right.
func (l *Layout) Columns() []string {
	cols := make([]string, 0, len(l.Main.Columns)+len(l.Aux.Columns))
	m, a := l.Main.Columns, l.Aux.Columns
	for len(m) > 0 || len(a) > 0 {
		switch {
		case len(a) == 0:
			cols, m = append(cols, m[0]), m[1:]
		case len(m) == 0:
			cols, a = append(cols, a[0]), a[1:]
		case labelNumber(m[0]) < labelNumber(a[0]):
			cols, m = append(cols, m[0]), m[1:]
		default:
			cols, a = append(cols, a[0]), a[1:]
		}
	}
	return cols
}

// FamilyForColumn derives the grid family from the numeric suffix of a column
// label: odd is MAIN, even is AUX.
func FamilyForColumn(column string) (Family, error) {
	n, ok := parseLabel(column, "C-")
	if !ok || n <= 0 {
		return "", &LookupError{Kind: KindColumn, Label: column}
	}
	if n%2 == 1 {
		return Main, nil
	}
	return Aux, nil
}

func parseLabel(label, prefix string) (int, bool) {
	if !strings.HasPrefix(label, prefix) {
		return 0, false
	}
	n, err := strconv.Atoi(label[len(prefix):])
	if err != nil {
		return 0, false
	}
	return n, true
}

// labelNumber extracts the number from "C-7" or "R-12"; unparsable labels sort last.
func labelNumber(label string) int {
	if i := strings.LastIndexByte(label, '-'); i >= 0 {
		if n, err := strconv.Atoi(label[i+1:]); err == nil {
			return n
		}
	}
	return int(^uint(0) >> 1)
}
