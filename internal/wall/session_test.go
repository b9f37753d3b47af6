package wall

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/holdmap/internal/highlight"
	"github.com/banshee-data/holdmap/internal/holds"
	"github.com/banshee-data/holdmap/internal/layout"
	"github.com/banshee-data/holdmap/internal/monitoring"
)

func newTestSession(t *testing.T, style highlight.Style) *Session {
	t.Helper()
	monitoring.SetLogger(nil)
	l := layout.Default()
	d, err := holds.Sample(l)
	require.NoError(t, err)
	s, err := NewSession(Options{Layout: l, Dataset: d, Style: style})
	require.NoError(t, err)
	return s
}

func snapshot(t *testing.T, s *Session) []byte {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]byte(nil), s.surface.Image().Pix...)
}

func TestLookup1350(t *testing.T) {
	s := newTestSession(t, highlight.DefaultStyle(highlight.Crosshair))

	res, err := s.Lookup("1350")
	require.NoError(t, err)
	assert.Equal(t, Description{
		ID:     "1350",
		Panel:  "MIDDLE",
		Grid:   "Aux",
		Column: "1 from the LEFT",
		Row:    "2 from the TOP",
		Angle:  "150",
	}, res.Describe())
	assert.Equal(t, "R-24", res.Placement.Row)
	assert.Equal(t, "C-2", res.Placement.Column)
}

func TestShowAndClear(t *testing.T) {
	s := newTestSession(t, highlight.DefaultStyle(highlight.Crosshair))
	blank := snapshot(t, s)

	res, err := s.Show("1350")
	require.NoError(t, err)
	assert.Equal(t, "1350", res.Hold.ID)
	cur, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, res, cur)
	assert.NotEqual(t, blank, snapshot(t, s))

	s.Clear()
	_, ok = s.Current()
	assert.False(t, ok)
	assert.Equal(t, blank, snapshot(t, s))
}

func TestShowUnknownClears(t *testing.T) {
	s := newTestSession(t, highlight.DefaultStyle(highlight.Crosshair))
	blank := snapshot(t, s)

	_, err := s.Show("D1100")
	require.NoError(t, err)

	res, err := s.Show("99999")
	require.Error(t, err)
	assert.True(t, layout.IsLookup(err))
	assert.Equal(t, Result{}, res)
	_, ok := s.Current()
	assert.False(t, ok)
	assert.Equal(t, blank, snapshot(t, s))
}

func TestShowEmptyClears(t *testing.T) {
	s := newTestSession(t, highlight.DefaultStyle(highlight.Marker))
	blank := snapshot(t, s)

	_, err := s.Show("1350")
	require.NoError(t, err)
	_, err = s.Show("   ")
	require.NoError(t, err)
	assert.Equal(t, blank, snapshot(t, s))
}

func TestLastShowWins(t *testing.T) {
	s := newTestSession(t, highlight.DefaultStyle(highlight.Crosshair))

	_, err := s.Show("1350")
	require.NoError(t, err)
	only1100 := newTestSession(t, highlight.DefaultStyle(highlight.Crosshair))
	_, err = only1100.Show("D1100")
	require.NoError(t, err)

	_, err = s.Show("D1100")
	require.NoError(t, err)
	assert.Equal(t, snapshot(t, only1100), snapshot(t, s))
}

func TestRenderPNGLeavesSharedSurface(t *testing.T) {
	s := newTestSession(t, highlight.DefaultStyle(highlight.Crosshair))
	blank := snapshot(t, s)

	var buf bytes.Buffer
	res, err := s.RenderPNG(&buf, "1350")
	require.NoError(t, err)
	assert.Equal(t, "1350", res.Hold.ID)
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 870, 1100), img.Bounds())
	assert.Equal(t, blank, snapshot(t, s))

	_, err = s.RenderPNG(&bytes.Buffer{}, "99999")
	assert.True(t, layout.IsLookup(err))
}

func TestSnapshot(t *testing.T) {
	s := newTestSession(t, highlight.DefaultStyle(highlight.Crosshair))
	_, err := s.Show("1350")
	require.NoError(t, err)

	snap := s.Snapshot().(*image.RGBA)
	assert.Equal(t, snapshot(t, s), snap.Pix)

	s.Clear()
	assert.NotEqual(t, snapshot(t, s), snap.Pix, "snapshot is a copy")
}

func TestRenderImageBlank(t *testing.T) {
	s := newTestSession(t, highlight.DefaultStyle(highlight.Marker))
	img, res, err := s.RenderImage("")
	require.NoError(t, err)
	assert.Empty(t, res.Hold.ID)
	assert.Equal(t, snapshot(t, s), img.(*image.RGBA).Pix)
}

func TestNewSessionErrors(t *testing.T) {
	l := layout.Default()
	d, err := holds.Sample(l)
	require.NoError(t, err)

	_, err = NewSession(Options{Layout: l})
	assert.Error(t, err)

	bad := highlight.DefaultStyle(highlight.Crosshair)
	bad.RingRadius = 10
	_, err = NewSession(Options{Layout: l, Dataset: d, Style: bad})
	assert.True(t, layout.IsConfiguration(err))
}

func TestBackgroundSizeDrivesMapper(t *testing.T) {
	l := layout.Default()
	d, err := holds.Sample(l)
	require.NoError(t, err)
	bg := image.NewRGBA(image.Rect(0, 0, 435, 550))

	s, err := NewSession(Options{Layout: l, Dataset: d, Background: bg, Style: highlight.DefaultStyle(highlight.Marker)})
	require.NoError(t, err)
	assert.Equal(t, 435, s.Mapper().Width())

	res, err := s.Show("1350")
	require.NoError(t, err)
	assert.Less(t, res.Placement.X, 77.0)
}
