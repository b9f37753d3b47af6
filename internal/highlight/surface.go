// Package highlight draws the current hold onto the wall image.
//
// The Compositor only issues coordinates and shapes to a Surface. RasterSurface
// is the production surface, an RGBA image painted with gg on top of a fixed
// background photo.
package highlight

import (
	"image"
	"image/color"
	"image/draw"

	"git.sr.ht/~sbinet/gg"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/banshee-data/holdmap/internal/monitoring"
	"github.com/banshee-data/holdmap/internal/pixel"
)

// Stroke describes how a path is outlined. A nil Dash draws a solid line.
type Stroke struct {
	Color color.Color
	Width float64
	Dash  []float64
}

// Surface is a rectangular canvas with a persistent background.
type Surface interface {
	Size() (width, height int)
	// DrawBackground replaces every pixel with the background image.
	DrawBackground()
	// ClipOutsideDisk restricts later drawing to the surface minus the disk
	// of radius r centred on (x, y).
	ClipOutsideDisk(x, y, r float64)
	ResetClip()
	StrokePolyline(pts []pixel.Point, s Stroke)
	StrokeCircle(x, y, r float64, s Stroke)
	FillCircle(x, y, r float64, c color.Color)
	FillRect(x, y, w, h float64, c color.Color)
	DrawText(text string, x, y float64, c color.Color)
}

// labelPoints is the font size of marker labels.
const labelPoints = 14

// RasterSurface is a Surface backed by an *image.RGBA.
type RasterSurface struct {
	bg *image.RGBA
	im *image.RGBA
	dc *gg.Context
}

// NewRasterSurface copies background and returns a surface showing it.
func NewRasterSurface(background image.Image) *RasterSurface {
	b := background.Bounds()
	bg := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(bg, bg.Bounds(), background, b.Min, draw.Src)

	s := &RasterSurface{
		bg: bg,
		im: image.NewRGBA(bg.Bounds()),
	}
	s.dc = gg.NewContextForRGBA(s.im)
	s.dc.SetLineCapButt()
	if err := s.dc.LoadFontFaceFromBytes(goregular.TTF, labelPoints); err != nil {
		monitoring.Logf("label font unavailable, using built-in face: %v", err)
	}
	s.DrawBackground()
	return s
}

// Size returns the surface dimensions in pixels.
func (s *RasterSurface) Size() (int, int) {
	b := s.im.Bounds()
	return b.Dx(), b.Dy()
}

// DrawBackground restores the background and drops any clip.
func (s *RasterSurface) DrawBackground() {
	s.dc.ResetClip()
	draw.Draw(s.im, s.im.Bounds(), s.bg, image.Point{}, draw.Src)
}

// ClipOutsideDisk clips with an even-odd path of the full frame and the disk.
func (s *RasterSurface) ClipOutsideDisk(x, y, r float64) {
	w, h := s.Size()
	s.dc.ResetClip()
	s.dc.ClearPath()
	s.dc.SetFillRuleEvenOdd()
	s.dc.DrawRectangle(0, 0, float64(w), float64(h))
	s.dc.DrawCircle(x, y, r)
	s.dc.Clip()
	s.dc.SetFillRuleWinding()
}

// ResetClip allows drawing anywhere again.
func (s *RasterSurface) ResetClip() { s.dc.ResetClip() }

// StrokePolyline joins pts with straight segments. Fewer than two points draw nothing.
func (s *RasterSurface) StrokePolyline(pts []pixel.Point, st Stroke) {
	if len(pts) < 2 {
		return
	}
	s.dc.ClearPath()
	s.dc.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		s.dc.LineTo(p.X, p.Y)
	}
	s.applyStroke(st)
	s.dc.Stroke()
}

// StrokeCircle outlines the circle of radius r centred on (x, y).
func (s *RasterSurface) StrokeCircle(x, y, r float64, st Stroke) {
	s.dc.ClearPath()
	s.dc.DrawCircle(x, y, r)
	s.applyStroke(st)
	s.dc.Stroke()
}

func (s *RasterSurface) applyStroke(st Stroke) {
	s.dc.SetColor(st.Color)
	s.dc.SetLineWidth(st.Width)
	s.dc.SetDash(st.Dash...)
}

// FillCircle paints a solid disk.
func (s *RasterSurface) FillCircle(x, y, r float64, c color.Color) {
	s.dc.ClearPath()
	s.dc.DrawCircle(x, y, r)
	s.dc.SetColor(c)
	s.dc.Fill()
}

// FillRect paints a solid rectangle with its top-left corner at (x, y).
func (s *RasterSurface) FillRect(x, y, w, h float64, c color.Color) {
	s.dc.ClearPath()
	s.dc.DrawRectangle(x, y, w, h)
	s.dc.SetColor(c)
	s.dc.Fill()
}

// DrawText draws text with its baseline starting at (x, y).
func (s *RasterSurface) DrawText(text string, x, y float64, c color.Color) {
	s.dc.SetColor(c)
	s.dc.DrawString(text, x, y)
}

// Image returns the live surface image. Callers must not modify it.
func (s *RasterSurface) Image() *image.RGBA { return s.im }

// Snapshot returns a copy of the current surface.
func (s *RasterSurface) Snapshot() *image.RGBA {
	out := image.NewRGBA(s.im.Bounds())
	copy(out.Pix, s.im.Pix)
	return out
}
