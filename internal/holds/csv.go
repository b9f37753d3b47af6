package holds

import (
	"embed"
	"encoding/csv"
	"fmt"
	"io"
	"io/fs"
	"regexp"
	"strings"

	"github.com/banshee-data/holdmap/internal/fsutil"
	"github.com/banshee-data/holdmap/internal/layout"
	"github.com/banshee-data/holdmap/internal/monitoring"
)

//go:embed sample/*.csv
var sampleFiles embed.FS

const (
	sampleMainCSV = "sample/HW7x10_Main_Line_Grid.csv"
	sampleAuxCSV  = "sample/HW7x10_Aux_Grid.csv"
)

// holdRowMarker identifies the hold-number line of a row pair.
const holdRowMarker = "Hold #"

// Spreadsheet exports sometimes carry "12→" line-number prefixes.
var linePrefix = regexp.MustCompile(`^\d+→`)

// ParseStats summarises one grid table.
type ParseStats struct {
	Rows    int // hold rows accepted
	Holds   int
	Skipped int // hold rows dropped as malformed
}

// ParseGrid reads one family's table. Each hold row contains "Hold #" and is
// followed by its angle row. Cells 1..n map to the family's columns left to
// right and cell n+1 carries the row label. Malformed rows and empty cells are
// skipped.
func ParseGrid(r io.Reader, l *layout.Layout, family layout.Family) ([]HoldRecord, ParseStats, error) {
	var stats ParseStats
	g := l.Grid(family)
	if g == nil {
		return nil, stats, fmt.Errorf("unknown grid family %q", family)
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	lines, err := reader.ReadAll()
	if err != nil {
		return nil, stats, fmt.Errorf("failed to read %s grid CSV: %w", family, err)
	}

	rows := make(map[string]bool)
	for _, row := range g.Rows() {
		rows[row] = true
	}

	var records []HoldRecord
	n := len(g.Columns)
	for i := 0; i < len(lines); i++ {
		holdRow := cleanCells(lines[i])
		if !isHoldRow(holdRow) {
			continue
		}
		var angleRow []string
		if i+1 < len(lines) {
			angleRow = cleanCells(lines[i+1])
			i++
		}

		if len(holdRow) < n+2 || !rows[holdRow[n+1]] {
			monitoring.Logf("skipping malformed %s grid row at line %d", family, i+1)
			stats.Skipped++
			continue
		}
		rowLabel := holdRow[n+1]
		stats.Rows++

		for c, column := range g.Columns {
			id := holdRow[c+1]
			if id == "" || id == holdRowMarker {
				continue
			}
			angle := ""
			if c+1 < len(angleRow) {
				angle = angleRow[c+1]
			}
			records = append(records, HoldRecord{
				ID:     NormalizeID(id),
				Row:    rowLabel,
				Column: column,
				Angle:  angle,
				Family: family,
			})
			stats.Holds++
		}
	}
	return records, stats, nil
}

func isHoldRow(cells []string) bool {
	for _, c := range cells {
		if strings.Contains(c, holdRowMarker) {
			return true
		}
	}
	return false
}

func cleanCells(record []string) []string {
	out := make([]string, len(record))
	for i, cell := range record {
		out[i] = strings.TrimSpace(linePrefix.ReplaceAllString(cell, ""))
	}
	return out
}

// LoadCSVFiles parses the MAIN and AUX tables and builds a dataset. AUX is read
// second, so it wins on duplicate IDs.
func LoadCSVFiles(fsys fsutil.FileSystem, mainPath, auxPath string, l *layout.Layout) (*Dataset, error) {
	return loadTables(fsys.Open, mainPath, auxPath, l)
}

func loadTables(open func(string) (fs.File, error), mainPath, auxPath string, l *layout.Layout) (*Dataset, error) {
	var all []HoldRecord
	for _, src := range []struct {
		path   string
		family layout.Family
	}{{mainPath, layout.Main}, {auxPath, layout.Aux}} {
		f, err := open(src.path)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s grid: %w", src.family, err)
		}
		records, stats, err := ParseGrid(f, l, src.family)
		f.Close()
		if err != nil {
			return nil, err
		}
		monitoring.Logf("loaded %d holds from %d %s rows (%d skipped) in %s",
			stats.Holds, stats.Rows, src.family, stats.Skipped, src.path)
		all = append(all, records...)
	}
	return NewDataset(l, all)
}

// Sample returns the bundled demonstration dataset for the default layout.
func Sample(l *layout.Layout) (*Dataset, error) {
	return loadTables(sampleFiles.Open, sampleMainCSV, sampleAuxCSV, l)
}

// SampleRecords parses the bundled tables without building a dataset, for
// seeding the hold store.
func SampleRecords(l *layout.Layout) ([]HoldRecord, error) {
	d, err := Sample(l)
	if err != nil {
		return nil, err
	}
	return d.Records(), nil
}
