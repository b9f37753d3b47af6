package highlight

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"

	"git.sr.ht/~sbinet/gg"
	_ "golang.org/x/image/webp"

	"github.com/banshee-data/holdmap/internal/fsutil"
	"github.com/banshee-data/holdmap/internal/layout"
	"github.com/banshee-data/holdmap/internal/pixel"
)

// maxImageFileSize bounds wall photos read from disk.
const maxImageFileSize = 32 * 1024 * 1024

var (
	wallColor   = color.NRGBA{R: 62, G: 58, B: 54, A: 255}
	panelColor  = color.NRGBA{R: 74, G: 69, B: 64, A: 255}
	guideColor  = color.NRGBA{R: 120, G: 114, B: 106, A: 255}
	holdDotFill = color.NRGBA{R: 150, G: 143, B: 133, A: 255}
)

// LoadBackground decodes a PNG, JPEG or WebP wall photo.
func LoadBackground(fsys fsutil.FileSystem, path string) (image.Image, error) {
	info, err := fsys.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat wall image: %w", err)
	}
	if info.Size() > maxImageFileSize {
		return nil, fmt.Errorf("wall image too large: %d bytes (max %d)", info.Size(), maxImageFileSize)
	}
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read wall image: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode wall image %s: %w", path, err)
	}
	return img, nil
}

// BlankWall synthesises a neutral wall at the mapper's size, with the middle
// panel shaded, the column curves traced and every hold position dotted. It
// stands in for the photo when none is configured.
func BlankWall(l *layout.Layout, m *pixel.Mapper) image.Image {
	w, h := m.Width(), m.Height()
	dc := gg.NewContext(w, h)
	dc.SetColor(wallColor)
	dc.Clear()

	if rows := middleRows(l); len(rows) > 0 {
		top, errTop := m.RowY(rows[0])
		bottom, errBottom := m.RowY(rows[len(rows)-1])
		if errTop == nil && errBottom == nil {
			pad := float64(h) / float64(len(l.Rows)+1)
			dc.SetColor(panelColor)
			dc.DrawRectangle(0, top-pad, float64(w), bottom-top+2*pad)
			dc.Fill()
		}
	}

	dc.SetColor(guideColor)
	dc.SetLineWidth(1)
	for _, col := range m.Columns() {
		pts, err := m.SampleColumn(col, 20)
		if err != nil {
			continue
		}
		dc.MoveTo(pts[0].X, pts[0].Y)
		for _, p := range pts[1:] {
			dc.LineTo(p.X, p.Y)
		}
		dc.Stroke()
	}

	dc.SetColor(holdDotFill)
	for _, f := range []layout.Family{layout.Main, layout.Aux} {
		g := l.Grid(f)
		for _, row := range g.Rows() {
			for _, col := range g.Columns {
				p, err := m.MapToPixel(row, col)
				if err != nil {
					continue
				}
				dc.DrawCircle(p.X, p.Y, 3)
				dc.Fill()
			}
		}
	}
	return dc.Image()
}

func middleRows(l *layout.Layout) []string {
	for _, p := range l.Main.Panels {
		if p.Name == layout.Middle {
			return p.Rows
		}
	}
	return nil
}
