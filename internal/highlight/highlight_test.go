package highlight

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/holdmap/internal/fsutil"
	"github.com/banshee-data/holdmap/internal/layout"
	"github.com/banshee-data/holdmap/internal/pixel"
)

// recorder is a Surface that logs the calls it receives.
type recorder struct {
	w, h int
	ops  []string
}

func (r *recorder) Size() (int, int)  { return r.w, r.h }
func (r *recorder) DrawBackground()   { r.ops = append(r.ops, "background") }
func (r *recorder) ResetClip()        { r.ops = append(r.ops, "reset-clip") }
func (r *recorder) ClipOutsideDisk(x, y, rad float64) {
	r.ops = append(r.ops, fmt.Sprintf("clip %.0f,%.0f r%.0f", x, y, rad))
}
func (r *recorder) StrokePolyline(pts []pixel.Point, s Stroke) {
	r.ops = append(r.ops, fmt.Sprintf("polyline n%d w%.0f dash%v", len(pts), s.Width, s.Dash != nil))
}
func (r *recorder) StrokeCircle(x, y, rad float64, s Stroke) {
	r.ops = append(r.ops, fmt.Sprintf("ring r%.0f w%.0f", rad, s.Width))
}
func (r *recorder) FillCircle(x, y, rad float64, c color.Color) {
	r.ops = append(r.ops, fmt.Sprintf("disk r%.0f", rad))
}
func (r *recorder) FillRect(x, y, w, h float64, c color.Color) {
	r.ops = append(r.ops, "rect")
}
func (r *recorder) DrawText(text string, x, y float64, c color.Color) {
	r.ops = append(r.ops, "text "+text)
}

func setup(t *testing.T, p Presentation) (*layout.Layout, *pixel.Mapper, *Compositor) {
	t.Helper()
	l := layout.Default()
	m, err := pixel.NewMapper(l, l.Image.Width, l.Image.Height)
	require.NoError(t, err)
	c, err := NewCompositor(m, DefaultStyle(p))
	require.NoError(t, err)
	return l, m, c
}

func TestCrosshairPlan(t *testing.T) {
	_, m, c := setup(t, Crosshair)
	p, err := m.MapToPixel("R-24", "C-2")
	require.NoError(t, err)

	rec := &recorder{w: 870, h: 1100}
	require.NoError(t, c.Render(rec, &p))

	clip := fmt.Sprintf("clip %.0f,%.0f r35", p.X, p.Y)
	assert.Equal(t, []string{
		"background",
		clip,
		"polyline n51 w30 dashfalse",
		"polyline n2 w30 dashfalse",
		"reset-clip",
		"ring r65 w30",
		"reset-clip",
	}, rec.ops)
}

func TestMarkerPlan(t *testing.T) {
	_, m, c := setup(t, Marker)
	p, err := m.MapToPixel("R-35", "C-1")
	require.NoError(t, err)

	rec := &recorder{w: 870, h: 1100}
	require.NoError(t, c.Render(rec, &p))

	assert.Equal(t, []string{
		"background",
		"polyline n2 w4 dashtrue",
		"polyline n2 w4 dashtrue",
		"disk r45",
		"disk r38",
		"disk r32",
		"disk r25",
		"disk r8",
		"text R-35",
		"text C-1",
		"reset-clip",
	}, rec.ops)
}

func TestRenderNilOnlyRedrawsBackground(t *testing.T) {
	_, _, c := setup(t, Crosshair)
	rec := &recorder{w: 870, h: 1100}
	require.NoError(t, c.Render(rec, nil))
	assert.Equal(t, []string{"background"}, rec.ops)
}

func TestRenderFailureLeavesSurfaceUntouched(t *testing.T) {
	_, _, c := setup(t, Crosshair)
	rec := &recorder{w: 870, h: 1100}

	err := c.Render(rec, &pixel.Placement{Row: "R-35", Column: "C-40", X: 1, Y: 1})
	assert.True(t, layout.IsLookup(err))
	assert.Empty(t, rec.ops)

	small := &recorder{w: 100, h: 100}
	err = c.Render(small, &pixel.Placement{Row: "R-35", Column: "C-1"})
	assert.True(t, layout.IsConfiguration(err))
	assert.Empty(t, small.ops)
}

func TestStyleValidate(t *testing.T) {
	assert.NoError(t, DefaultStyle(Crosshair).Validate())
	assert.NoError(t, DefaultStyle(Marker).Validate())

	tight := DefaultStyle(Crosshair)
	tight.RingRadius = 50 // equals cutout 35 + 30/2
	assert.True(t, layout.IsConfiguration(tight.Validate()))

	noSteps := DefaultStyle(Crosshair)
	noSteps.Steps = 0
	assert.Error(t, noSteps.Validate())

	core := DefaultStyle(Marker)
	core.CoreRadius = 30
	assert.Error(t, core.Validate())

	unknown := DefaultStyle("spotlight")
	assert.Error(t, unknown.Validate())

	_, err := NewCompositor(nil, tight)
	assert.Error(t, err)
}

func uniform(w, h int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestRasterClearRestoresBackground(t *testing.T) {
	l, m, c := setup(t, Crosshair)
	bg := BlankWall(l, m)

	fresh := NewRasterSurface(bg).Snapshot()

	s := NewRasterSurface(bg)
	p, err := m.MapToPixel("R-24", "C-2")
	require.NoError(t, err)
	require.NoError(t, c.Render(s, &p))
	assert.NotEqual(t, fresh.Pix, s.Image().Pix, "highlight should change the surface")

	require.NoError(t, c.Render(s, nil))
	assert.Equal(t, fresh.Pix, s.Image().Pix)
}

func TestRasterCutoutKeepsHoldVisible(t *testing.T) {
	l := layout.Default()
	m, err := pixel.NewMapper(l, l.Image.Width, l.Image.Height)
	require.NoError(t, err)
	c, err := NewCompositor(m, DefaultStyle(Crosshair))
	require.NoError(t, err)

	grey := color.RGBA{R: 100, G: 100, B: 100, A: 255}
	s := NewRasterSurface(uniform(870, 1100, grey))
	p, err := m.MapToPixel("R-21", "C-11")
	require.NoError(t, err)
	require.NoError(t, c.Render(s, &p))

	img := s.Image()
	cx, cy := int(p.X), int(p.Y)
	assert.Equal(t, grey, img.RGBAAt(cx, cy), "hold centre is inside the cutout")
	assert.Equal(t, grey, img.RGBAAt(cx+20, cy), "row line is cut away near the hold")
	assert.NotEqual(t, grey, img.RGBAAt(10, cy), "row line reaches the left edge")
	assert.NotEqual(t, grey, img.RGBAAt(cx+65, cy), "ring crosses the row")
	assert.Equal(t, grey, img.RGBAAt(10, 10), "far corner untouched")
}

func TestRasterSnapshot(t *testing.T) {
	s := NewRasterSurface(uniform(40, 30, color.White))
	s.FillRect(0, 0, 10, 10, color.Black)
	s.DrawText("C-1", 12, 20, color.Black)

	snap := s.Snapshot()
	assert.Equal(t, image.Rect(0, 0, 40, 30), snap.Bounds())
	r, g, b, _ := snap.At(5, 5).RGBA()
	assert.Zero(t, r+g+b)

	// Later drawing does not reach the copy.
	s.DrawBackground()
	assert.Equal(t, color.RGBA{A: 0xff}, snap.RGBAAt(5, 5))
}

func TestLoadBackground(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, uniform(8, 6, color.White)))

	mfs := fsutil.NewMemoryFileSystem()
	mfs.AddFile("/wall.png", buf.String())
	mfs.AddFile("/wall.jpg", "not an image")

	img, err := LoadBackground(mfs, "/wall.png")
	require.NoError(t, err)
	assert.Equal(t, 8, img.Bounds().Dx())

	_, err = LoadBackground(mfs, "/wall.jpg")
	assert.Error(t, err)
	_, err = LoadBackground(mfs, "/missing.png")
	assert.Error(t, err)
}

func TestBlankWallSize(t *testing.T) {
	l, m, _ := setup(t, Crosshair)
	img := BlankWall(l, m)
	assert.Equal(t, image.Rect(0, 0, 870, 1100), img.Bounds())
}
