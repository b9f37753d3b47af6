package highlight

import (
	"fmt"
	"image/color"

	"github.com/banshee-data/holdmap/internal/layout"
	"github.com/banshee-data/holdmap/internal/pixel"
)

// Presentation selects how a hold is marked.
type Presentation string

const (
	// Crosshair traces the column curve and the row line, both cut away
	// around the hold, and closes them with a ring.
	Crosshair Presentation = "crosshair"
	// Marker draws dashed straight guide lines and a glowing two-tone dot.
	Marker Presentation = "marker"
)

// Style holds the drawing parameters. A compositor uses one style for its
// lifetime, so presentations are never mixed.
type Style struct {
	Presentation Presentation

	ColumnColor  color.NRGBA
	RowColor     color.NRGBA
	RingColor    color.NRGBA
	LineWidth    float64
	CutoutRadius float64
	RingRadius   float64
	Steps        int // column curve samples

	GuideWidth   float64
	GuideDash    []float64
	MarkerColor  color.NRGBA
	GlowColor    color.NRGBA
	CoreColor    color.NRGBA
	MarkerRadius float64
	GlowRadius   float64
	CoreRadius   float64
	Labels       bool
	LabelColor   color.NRGBA
}

// DefaultStyle returns the crosshair or marker style used by the web UI.
func DefaultStyle(p Presentation) Style {
	return Style{
		Presentation: p,
		ColumnColor:  color.NRGBA{R: 255, G: 235, B: 59, A: 128},
		RowColor:     color.NRGBA{R: 33, G: 150, B: 243, A: 128},
		RingColor:    color.NRGBA{R: 33, G: 150, B: 243, A: 128},
		LineWidth:    30,
		CutoutRadius: 35,
		RingRadius:   65,
		Steps:        50,

		GuideWidth:   4,
		GuideDash:    []float64{12, 8},
		MarkerColor:  color.NRGBA{R: 244, G: 67, B: 54, A: 179},
		GlowColor:    color.NRGBA{R: 244, G: 67, B: 54, A: 60},
		CoreColor:    color.NRGBA{R: 255, G: 255, B: 255, A: 230},
		MarkerRadius: 25,
		GlowRadius:   45,
		CoreRadius:   8,
		Labels:       true,
		LabelColor:   color.NRGBA{R: 255, G: 255, B: 255, A: 255},
	}
}

// Validate checks that the style describes a drawable highlight.
func (s Style) Validate() error {
	switch s.Presentation {
	case Crosshair:
		if s.LineWidth <= 0 || s.CutoutRadius <= 0 {
			return styleErrorf("line width and cutout radius must be positive")
		}
		if s.RingRadius <= s.CutoutRadius+s.LineWidth/2 {
			return styleErrorf("ring radius %g must exceed cutout %g plus half the line width %g",
				s.RingRadius, s.CutoutRadius, s.LineWidth/2)
		}
		if s.Steps < 1 {
			return styleErrorf("column curve needs at least one step, got %d", s.Steps)
		}
	case Marker:
		if s.MarkerRadius <= 0 || s.CoreRadius <= 0 || s.CoreRadius >= s.MarkerRadius {
			return styleErrorf("core radius %g must be positive and inside marker radius %g", s.CoreRadius, s.MarkerRadius)
		}
		if s.GuideWidth <= 0 {
			return styleErrorf("guide width must be positive")
		}
	default:
		return styleErrorf("unknown presentation %q", s.Presentation)
	}
	return nil
}

func styleErrorf(format string, args ...interface{}) error {
	return &layout.ConfigurationError{Field: "style", Reason: fmt.Sprintf(format, args...)}
}

// Compositor renders placements produced by one Mapper.
type Compositor struct {
	mapper *pixel.Mapper
	style  Style
}

// NewCompositor validates style and binds it to m.
func NewCompositor(m *pixel.Mapper, style Style) (*Compositor, error) {
	if err := style.Validate(); err != nil {
		return nil, err
	}
	return &Compositor{mapper: m, style: style}, nil
}

// Render redraws s: the background, then the highlight for p when p is non
// nil. The drawing plan is built first, so on error s is left untouched.
func (c *Compositor) Render(s Surface, p *pixel.Placement) error {
	if p == nil {
		s.DrawBackground()
		return nil
	}
	w, h := s.Size()
	if w != c.mapper.Width() || h != c.mapper.Height() {
		return &layout.ConfigurationError{
			Field:  "surface",
			Reason: fmt.Sprintf("surface is %dx%d, mapper expects %dx%d", w, h, c.mapper.Width(), c.mapper.Height()),
		}
	}

	var ops []func(Surface)
	var err error
	switch c.style.Presentation {
	case Marker:
		ops, err = c.planMarker(p, float64(w), float64(h))
	default:
		ops, err = c.planCrosshair(p, float64(w))
	}
	if err != nil {
		return err
	}

	s.DrawBackground()
	for _, op := range ops {
		op(s)
	}
	s.ResetClip()
	return nil
}

func (c *Compositor) planCrosshair(p *pixel.Placement, width float64) ([]func(Surface), error) {
	st := c.style
	curve, err := c.mapper.SampleColumn(p.Column, st.Steps)
	if err != nil {
		return nil, err
	}
	row := []pixel.Point{{X: 0, Y: p.Y}, {X: width, Y: p.Y}}

	return []func(Surface){
		func(s Surface) { s.ClipOutsideDisk(p.X, p.Y, st.CutoutRadius) },
		func(s Surface) { s.StrokePolyline(curve, Stroke{Color: st.ColumnColor, Width: st.LineWidth}) },
		func(s Surface) { s.StrokePolyline(row, Stroke{Color: st.RowColor, Width: st.LineWidth}) },
		func(s Surface) { s.ResetClip() },
		func(s Surface) { s.StrokeCircle(p.X, p.Y, st.RingRadius, Stroke{Color: st.RingColor, Width: st.LineWidth}) },
	}, nil
}

func (c *Compositor) planMarker(p *pixel.Placement, width, height float64) ([]func(Surface), error) {
	st := c.style
	top, err := c.mapper.ColumnX(p.Column, 0)
	if err != nil {
		return nil, err
	}
	bottom, err := c.mapper.ColumnX(p.Column, height)
	if err != nil {
		return nil, err
	}
	column := []pixel.Point{{X: top, Y: 0}, {X: bottom, Y: height}}
	row := []pixel.Point{{X: 0, Y: p.Y}, {X: width, Y: p.Y}}

	ops := []func(Surface){
		func(s Surface) {
			s.StrokePolyline(column, Stroke{Color: st.ColumnColor, Width: st.GuideWidth, Dash: st.GuideDash})
		},
		func(s Surface) {
			s.StrokePolyline(row, Stroke{Color: st.RowColor, Width: st.GuideWidth, Dash: st.GuideDash})
		},
	}
	// Glow: concentric translucent disks fading outwards.
	if st.GlowRadius > st.MarkerRadius {
		const rings = 3
		for i := rings; i >= 1; i-- {
			r := st.MarkerRadius + (st.GlowRadius-st.MarkerRadius)*float64(i)/rings
			ops = append(ops, func(s Surface) { s.FillCircle(p.X, p.Y, r, st.GlowColor) })
		}
	}
	ops = append(ops,
		func(s Surface) { s.FillCircle(p.X, p.Y, st.MarkerRadius, st.MarkerColor) },
		func(s Surface) { s.FillCircle(p.X, p.Y, st.CoreRadius, st.CoreColor) },
	)
	if st.Labels {
		ops = append(ops,
			func(s Surface) { s.DrawText(p.Row, 6, p.Y-8, st.LabelColor) },
			func(s Surface) { s.DrawText(p.Column, top+6, 18, st.LabelColor) },
		)
	}
	return ops, nil
}
