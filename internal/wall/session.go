// Package wall owns the lookup session: one layout, one dataset and the
// single shared wall surface showing the current highlight.
package wall

import (
	"errors"
	"image"
	"image/png"
	"io"
	"sync"

	"go.uber.org/zap"

	"github.com/banshee-data/holdmap/internal/highlight"
	"github.com/banshee-data/holdmap/internal/holds"
	"github.com/banshee-data/holdmap/internal/layout"
	"github.com/banshee-data/holdmap/internal/monitoring"
	"github.com/banshee-data/holdmap/internal/pixel"
	"github.com/banshee-data/holdmap/internal/position"
)

// Result is everything known about one looked-up hold.
type Result struct {
	Hold      holds.HoldRecord  `json:"hold"`
	Position  position.Position `json:"position"`
	Placement pixel.Placement   `json:"placement"`
}

// Description is the text shown to climbers and read aloud.
type Description struct {
	ID     string `json:"id"`
	Panel  string `json:"panel"`
	Grid   string `json:"grid"`
	Column string `json:"column"`
	Row    string `json:"row"`
	Angle  string `json:"angle"`
}

// Describe renders the display fields of r.
func (r Result) Describe() Description {
	return Description{
		ID:     r.Hold.ID,
		Panel:  string(r.Position.Panel),
		Grid:   r.Position.GridName(),
		Column: r.Position.ColumnText(),
		Row:    r.Position.RowText(),
		Angle:  r.Hold.Angle,
	}
}

// Session serialises access to the shared surface. Lookups are read-only and
// may run concurrently; Show and Clear take the surface lock.
type Session struct {
	layout     *layout.Layout
	dataset    *holds.Dataset
	resolver   *position.Resolver
	mapper     *pixel.Mapper
	compositor *highlight.Compositor
	background image.Image

	mu      sync.Mutex
	surface *highlight.RasterSurface
	current *Result
}

// Options configures NewSession. A nil Background synthesises a blank wall
// at the layout's reference size.
type Options struct {
	Layout     *layout.Layout
	Dataset    *holds.Dataset
	Background image.Image
	Style      highlight.Style
}

// NewSession builds the resolver, mapper and compositor for opts and shows
// the bare background.
func NewSession(opts Options) (*Session, error) {
	if opts.Layout == nil || opts.Dataset == nil {
		return nil, errors.New("wall session needs a layout and a dataset")
	}
	w, h := opts.Layout.Image.Width, opts.Layout.Image.Height
	if opts.Background != nil {
		b := opts.Background.Bounds()
		w, h = b.Dx(), b.Dy()
	}
	m, err := pixel.NewMapper(opts.Layout, w, h)
	if err != nil {
		return nil, err
	}
	c, err := highlight.NewCompositor(m, opts.Style)
	if err != nil {
		return nil, err
	}
	bg := opts.Background
	if bg == nil {
		bg = highlight.BlankWall(opts.Layout, m)
	}
	return &Session{
		layout:     opts.Layout,
		dataset:    opts.Dataset,
		resolver:   position.NewResolver(opts.Layout),
		mapper:     m,
		compositor: c,
		background: bg,
		surface:    highlight.NewRasterSurface(bg),
	}, nil
}

func (s *Session) Layout() *layout.Layout  { return s.layout }
func (s *Session) Dataset() *holds.Dataset { return s.dataset }
func (s *Session) Mapper() *pixel.Mapper   { return s.mapper }

// Lookup resolves id to its record, relative position and pixel placement.
// It does not touch the surface.
func (s *Session) Lookup(id string) (Result, error) {
	rec, err := s.dataset.Find(id)
	if err != nil {
		return Result{}, err
	}
	pos, err := s.resolver.Resolve(rec.Row, rec.Column)
	if err != nil {
		return Result{}, err
	}
	pl, err := s.mapper.MapToPixel(rec.Row, rec.Column)
	if err != nil {
		return Result{}, err
	}
	return Result{Hold: rec, Position: pos, Placement: pl}, nil
}

// Show makes id the current highlight; an empty id clears it. An unknown id
// clears the highlight and returns the *layout.LookupError. Any other
// failure leaves the surface as it was.
func (s *Session) Show(id string) (Result, error) {
	if holds.NormalizeID(id) == "" {
		s.Clear()
		return Result{}, nil
	}

	res, err := s.Lookup(id)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		if layout.IsLookup(err) {
			s.clearLocked()
		} else {
			monitoring.L().Error("lookup failed", zap.String("hold", id), zap.Error(err))
		}
		return Result{}, err
	}

	if err := s.compositor.Render(s.surface, &res.Placement); err != nil {
		monitoring.L().Error("render failed, keeping previous highlight",
			zap.String("hold", res.Hold.ID), zap.Error(err))
		return Result{}, err
	}
	s.current = &res
	return res, nil
}

// Clear removes any highlight.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
}

func (s *Session) clearLocked() {
	// Rendering nil cannot fail.
	_ = s.compositor.Render(s.surface, nil)
	s.current = nil
}

// Current returns the highlighted result, if any.
func (s *Session) Current() (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return Result{}, false
	}
	return *s.current, true
}

// Snapshot returns a copy of the shared surface.
func (s *Session) Snapshot() image.Image {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.surface.Snapshot()
}

// RenderImage draws id on a private surface, leaving the shared surface
// alone. An empty id gives the bare background.
func (s *Session) RenderImage(id string) (image.Image, Result, error) {
	var res Result
	var pl *pixel.Placement
	if holds.NormalizeID(id) != "" {
		var err error
		res, err = s.Lookup(id)
		if err != nil {
			return nil, Result{}, err
		}
		pl = &res.Placement
	}
	surface := highlight.NewRasterSurface(s.background)
	if err := s.compositor.Render(surface, pl); err != nil {
		return nil, Result{}, err
	}
	return surface.Image(), res, nil
}

// RenderPNG writes RenderImage(id) as PNG.
func (s *Session) RenderPNG(w io.Writer, id string) (Result, error) {
	img, res, err := s.RenderImage(id)
	if err != nil {
		return Result{}, err
	}
	return res, png.Encode(w, img)
}
