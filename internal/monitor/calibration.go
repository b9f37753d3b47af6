// Package monitor renders debugging views of the wall layout: the column
// calibration as a static chart and the hold distribution as an interactive
// page.
package monitor

import (
	"fmt"
	"image/color"
	"io"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/banshee-data/holdmap/internal/layout"
	"github.com/banshee-data/holdmap/internal/pixel"
)

// Calibration chart size.
const (
	plotWidth  = 8 * vg.Inch
	plotHeight = 10 * vg.Inch
	curveSteps = 50
)

var familyColors = map[layout.Family]color.Color{
	layout.Main: color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
	layout.Aux:  color.RGBA{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff},
}

// CalibrationPlot draws every column curve of l at the reference image size
// with the measured points marked. The Y axis grows downwards to match image
// coordinates.
func CalibrationPlot(l *layout.Layout) (*plot.Plot, error) {
	ref := l.Image
	m, err := pixel.NewMapper(l, ref.Width, ref.Height)
	if err != nil {
		return nil, err
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s column calibration", l.Name)
	p.X.Label.Text = "x (px)"
	p.Y.Label.Text = "y (px)"
	p.Add(plotter.NewGrid())

	legend := map[layout.Family]bool{}
	var knots plotter.XYs
	for _, col := range m.Columns() {
		pts, err := m.SampleColumn(col, curveSteps)
		if err != nil {
			return nil, err
		}
		xys := make(plotter.XYs, len(pts))
		for j, pt := range pts {
			xys[j] = plotter.XY{X: pt.X, Y: pt.Y}
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return nil, err
		}
		family, _, _ := l.ColumnPosition(col)
		line.Color = familyColors[family]
		line.Width = vg.Points(1)
		p.Add(line)
		if !legend[family] {
			p.Legend.Add(family.DisplayName(), line)
			legend[family] = true
		}

		knots = append(knots, measuredPoints(l.Calibration[col], float64(ref.Height))...)
	}

	if len(knots) > 0 {
		sc, err := plotter.NewScatter(knots)
		if err != nil {
			return nil, err
		}
		sc.GlyphStyle.Shape = draw.CircleGlyph{}
		sc.GlyphStyle.Radius = vg.Points(2.5)
		sc.GlyphStyle.Color = color.Black
		p.Add(sc)
		p.Legend.Add("measured", sc)
	}

	p.X.Min, p.X.Max = 0, float64(ref.Width)
	p.Y.Min, p.Y.Max = 0, float64(ref.Height)
	p.Y.Scale = plot.InvertedScale{Normalizer: p.Y.Scale}
	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10
	return p, nil
}

// measuredPoints returns the top and bottom crossings and any intermediate
// knots of one curve, ordered top to bottom.
func measuredPoints(c layout.CalibrationCurve, height float64) plotter.XYs {
	pts := plotter.XYs{{X: c.TopX, Y: 0}, {X: c.BottomX, Y: height}}
	for _, k := range c.Knots {
		pts = append(pts, plotter.XY{X: k.X, Y: k.T * height})
	}
	sort.Slice(pts, func(i, j int) bool { return pts[i].Y < pts[j].Y })
	return pts
}

// WriteCalibration renders the calibration chart to w. format is any
// extension gonum/plot understands: png, svg, pdf.
func WriteCalibration(w io.Writer, l *layout.Layout, format string) error {
	p, err := CalibrationPlot(l)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(plotWidth, plotHeight, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

// SaveCalibration writes the calibration chart to path; the extension picks
// the format.
func SaveCalibration(path string, l *layout.Layout) error {
	p, err := CalibrationPlot(l)
	if err != nil {
		return err
	}
	return p.Save(plotWidth, plotHeight, path)
}
