package layout

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/banshee-data/holdmap/internal/fsutil"
)

//go:embed defaults/hw7x10.json
var defaultLayoutJSON []byte

// maxLayoutFileSize bounds layout files read from disk.
const maxLayoutFileSize = 1 * 1024 * 1024

// Default returns the built-in HW7x10 layout. It panics if the embedded
// definition is invalid, which can only happen through a bad build.
func Default() *Layout {
	l, err := Parse(defaultLayoutJSON, ".json")
	if err != nil {
		panic(fmt.Sprintf("embedded default layout: %v", err))
	}
	return l
}

// Load reads and validates a layout file. The extension selects the decoder:
// .json, .yaml or .yml.
func Load(fsys fsutil.FileSystem, path string) (*Layout, error) {
	cleanPath := filepath.Clean(path)
	ext := strings.ToLower(filepath.Ext(cleanPath))
	if ext != ".json" && ext != ".yaml" && ext != ".yml" {
		return nil, fmt.Errorf("layout file must be .json, .yaml or .yml, got %q", ext)
	}

	info, err := fsys.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat layout file: %w", err)
	}
	if info.Size() > maxLayoutFileSize {
		return nil, fmt.Errorf("layout file too large: %d bytes (max %d)", info.Size(), maxLayoutFileSize)
	}

	data, err := fsys.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout file: %w", err)
	}
	return Parse(data, ext)
}

// Parse decodes a layout definition and validates it.
func Parse(data []byte, ext string) (*Layout, error) {
	l := &Layout{}
	switch strings.ToLower(ext) {
	case ".json":
		if err := json.Unmarshal(data, l); err != nil {
			return nil, fmt.Errorf("failed to parse layout JSON: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, l); err != nil {
			return nil, fmt.Errorf("failed to parse layout YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported layout format %q", ext)
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return l, nil
}

// Validate checks the layout invariants and builds the lookup indices. All
// failures are *ConfigurationError. Validate is idempotent but not safe to
// call while other goroutines read the layout.
func (l *Layout) Validate() error {
	if l.Image.Width <= 0 || l.Image.Height <= 0 {
		return configErrorf("image", "size must be positive, got %dx%d", l.Image.Width, l.Image.Height)
	}
	if len(l.Rows) == 0 {
		return configErrorf("rows", "no rows defined")
	}

	rowIndex := make(map[string]int, len(l.Rows))
	for i, r := range l.Rows {
		if _, ok := parseLabel(r, "R-"); !ok {
			return configErrorf("rows", "malformed row label %q", r)
		}
		if _, dup := rowIndex[r]; dup {
			return configErrorf("rows", "row %q listed twice", r)
		}
		rowIndex[r] = i
	}

	columnIndex := make(map[string]int)
	columnGrid := make(map[string]Family)
	for _, f := range []Family{Main, Aux} {
		g := l.Grid(f)
		if err := validateColumns(f, g.Columns, columnIndex, columnGrid); err != nil {
			return err
		}
		if err := validatePanels(f, g.Panels, rowIndex); err != nil {
			return err
		}
	}

	for col := range columnGrid {
		curve, ok := l.Calibration[col]
		if !ok {
			return configErrorf("calibration", "no curve for column %s", col)
		}
		if err := validateKnots(col, curve.Knots); err != nil {
			return err
		}
	}

	l.rowIndex = rowIndex
	l.columnIndex = columnIndex
	l.columnGrid = columnGrid
	return nil
}

func validateColumns(f Family, cols []string, index map[string]int, grid map[string]Family) error {
	field := strings.ToLower(string(f)) + ".columns"
	if len(cols) == 0 {
		return configErrorf(field, "no columns defined")
	}
	prev := 0
	for i, c := range cols {
		got, err := FamilyForColumn(c)
		if err != nil {
			return configErrorf(field, "malformed column label %q", c)
		}
		if got != f {
			return configErrorf(field, "column %s has %s parity", c, got)
		}
		if _, dup := grid[c]; dup {
			return configErrorf(field, "column %s listed twice", c)
		}
		n, _ := parseLabel(c, "C-")
		if n <= prev {
			return configErrorf(field, "columns must be ordered left to right, %s follows C-%d", c, prev)
		}
		prev = n
		index[c] = i
		grid[c] = f
	}
	return nil
}

func validatePanels(f Family, panels []PanelRows, rowIndex map[string]int) error {
	field := strings.ToLower(string(f)) + ".panels"
	if len(panels) == 0 {
		return configErrorf(field, "no panels defined")
	}

	order := 0
	lastRow := -1
	seen := make(map[string]Panel)
	for _, p := range panels {
		// Panels must follow PanelOrder so that first-match lookup is well defined.
		for order < len(PanelOrder) && PanelOrder[order] != p.Name {
			order++
		}
		if order == len(PanelOrder) {
			return configErrorf(field, "panel %q is unknown or out of order", p.Name)
		}
		order++

		if len(p.Rows) == 0 {
			return configErrorf(field, "panel %s has no rows", p.Name)
		}
		for _, r := range p.Rows {
			idx, ok := rowIndex[r]
			if !ok {
				return configErrorf(field, "panel %s row %s is not in the physical row order", p.Name, r)
			}
			if other, dup := seen[r]; dup {
				return configErrorf(field, "row %s appears in panels %s and %s", r, other, p.Name)
			}
			if idx <= lastRow {
				return configErrorf(field, "panel %s row %s breaks top-to-bottom order", p.Name, r)
			}
			seen[r] = p.Name
			lastRow = idx
		}
	}
	return nil
}

func validateKnots(col string, knots []Knot) error {
	prev := 0.0
	for _, k := range knots {
		if k.T <= prev || k.T >= 1 {
			return configErrorf("calibration", "column %s knot t=%g must be strictly increasing inside (0, 1)", col, k.T)
		}
		prev = k.T
	}
	return nil
}
