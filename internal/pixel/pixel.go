// Package pixel maps logical grid cells onto the wall photo.
//
// Rows sit in evenly spaced bands down the image. Columns are not vertical in
// the photo: each column follows its calibration curve, a piecewise linear
// function of the normalised height t = y/height through (0, TopX), the
// optional knots and (1, BottomX). A cell's X is always evaluated at its own
// row's Y so the marker lands on the same curve the column indicator traces.
package pixel

import (
	"fmt"

	"gonum.org/v1/gonum/interp"

	"github.com/banshee-data/holdmap/internal/layout"
)

// Placement is a cell resolved to surface coordinates.
type Placement struct {
	Row    string  `json:"row"`
	Column string  `json:"column"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

// Point is one sample of a column curve.
type Point struct {
	X, Y float64
}

// Mapper holds the row bands and column curves for one surface size. It is
// immutable after construction.
type Mapper struct {
	width, height float64
	bands         map[string]float64
	curves        map[string]*interp.PiecewiseLinear
	columns       []string
}

// NewMapper builds the tables for a width×height surface. The calibration is
// scaled from the layout's reference image size, so a photo of a different
// resolution still lines up. Every layout column must have a curve.
func NewMapper(l *layout.Layout, width, height int) (*Mapper, error) {
	if width <= 0 || height <= 0 {
		return nil, &layout.ConfigurationError{Field: "surface", Reason: fmt.Sprintf("size must be positive, got %dx%d", width, height)}
	}
	ref := l.Image
	if ref.Width <= 0 || ref.Height <= 0 {
		return nil, &layout.ConfigurationError{Field: "image", Reason: "reference image size is not set"}
	}

	m := &Mapper{
		width:   float64(width),
		height:  float64(height),
		bands:   make(map[string]float64, len(l.Rows)),
		curves:  make(map[string]*interp.PiecewiseLinear),
		columns: l.Columns(),
	}

	spacing := m.height / float64(len(l.Rows)+1)
	for i, row := range l.Rows {
		m.bands[row] = float64(i+1) * spacing
	}

	scale := m.width / float64(ref.Width)
	for _, col := range m.columns {
		c, ok := l.Calibration[col]
		if !ok {
			return nil, &layout.ConfigurationError{Field: "calibration", Reason: "no curve for column " + col}
		}
		ts := make([]float64, 0, len(c.Knots)+2)
		xs := make([]float64, 0, len(c.Knots)+2)
		ts, xs = append(ts, 0), append(xs, c.TopX*scale)
		for _, k := range c.Knots {
			if k.T <= ts[len(ts)-1] || k.T >= 1 {
				return nil, &layout.ConfigurationError{Field: "calibration", Reason: fmt.Sprintf("column %s knots must increase inside (0, 1)", col)}
			}
			ts, xs = append(ts, k.T), append(xs, k.X*scale)
		}
		ts, xs = append(ts, 1), append(xs, c.BottomX*scale)

		var pl interp.PiecewiseLinear
		if err := pl.Fit(ts, xs); err != nil {
			return nil, &layout.ConfigurationError{Field: "calibration", Reason: fmt.Sprintf("column %s: %v", col, err)}
		}
		m.curves[col] = &pl
	}
	return m, nil
}

// Width and Height are the surface size the mapper was built for.
func (m *Mapper) Width() int  { return int(m.width) }
func (m *Mapper) Height() int { return int(m.height) }

// RowY returns the band centre of row.
func (m *Mapper) RowY(row string) (float64, error) {
	y, ok := m.bands[row]
	if !ok {
		return 0, &layout.LookupError{Kind: layout.KindRow, Label: row}
	}
	return y, nil
}

// ColumnX evaluates the column curve at surface height y. Heights outside the
// surface clamp to the nearest edge.
func (m *Mapper) ColumnX(column string, y float64) (float64, error) {
	c, ok := m.curves[column]
	if !ok {
		return 0, &layout.LookupError{Kind: layout.KindColumn, Label: column}
	}
	return c.Predict(y / m.height), nil
}

// MapToPixel places (row, column) on the surface.
func (m *Mapper) MapToPixel(row, column string) (Placement, error) {
	y, err := m.RowY(row)
	if err != nil {
		return Placement{}, err
	}
	x, err := m.ColumnX(column, y)
	if err != nil {
		return Placement{}, err
	}
	return Placement{Row: row, Column: column, X: x, Y: y}, nil
}

// SampleColumn returns steps+1 points along column from the top edge to the
// bottom edge.
func (m *Mapper) SampleColumn(column string, steps int) ([]Point, error) {
	if steps < 1 {
		return nil, fmt.Errorf("steps must be positive, got %d", steps)
	}
	c, ok := m.curves[column]
	if !ok {
		return nil, &layout.LookupError{Kind: layout.KindColumn, Label: column}
	}
	pts := make([]Point, steps+1)
	for i := range pts {
		t := float64(i) / float64(steps)
		pts[i] = Point{X: c.Predict(t), Y: t * m.height}
	}
	return pts, nil
}

// Columns lists the mapped columns left to right.
func (m *Mapper) Columns() []string { return m.columns }
