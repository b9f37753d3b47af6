package holds

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/holdmap/internal/fsutil"
	"github.com/banshee-data/holdmap/internal/layout"
)

func TestSampleDataset(t *testing.T) {
	l := layout.Default()
	d, err := Sample(l)
	require.NoError(t, err)

	// 15x11 MAIN plus 14x10 AUX.
	assert.Equal(t, 165+140, d.Len())
	assert.Len(t, d.IDs(), d.Len())

	rec, err := d.Find("1350")
	require.NoError(t, err)
	want := HoldRecord{ID: "1350", Row: "R-24", Column: "C-2", Angle: "150", Family: layout.Aux}
	if diff := cmp.Diff(want, rec); diff != "" {
		t.Errorf("Find(1350) mismatch (-want +got):\n%s", diff)
	}
}

func TestSampleFamilyMatchesParity(t *testing.T) {
	l := layout.Default()
	d, err := Sample(l)
	require.NoError(t, err)

	for _, rec := range d.Records() {
		f, err := layout.FamilyForColumn(rec.Column)
		require.NoError(t, err)
		assert.Equal(t, f, rec.Family, "hold %s at %s", rec.ID, rec.Column)
	}
}

func TestFindNormalizes(t *testing.T) {
	d, err := Sample(layout.Default())
	require.NoError(t, err)

	for _, q := range []string{"d1100", " D1100 ", "Ｄ１１００"} {
		rec, err := d.Find(q)
		require.NoError(t, err, "query %q", q)
		assert.Equal(t, "D1100", rec.ID)
		assert.Equal(t, "R-35", rec.Row)
		assert.Equal(t, "C-1", rec.Column)
	}

	rec, err := d.Find("1439b")
	require.NoError(t, err)
	assert.Equal(t, "R-8", rec.Row)
	assert.Equal(t, "C-20", rec.Column)

	// The prefix is significant.
	_, err = d.Find("1100")
	assert.True(t, layout.IsLookup(err))
}

func TestFindUnknown(t *testing.T) {
	d, err := Sample(layout.Default())
	require.NoError(t, err)

	_, err = d.Find("99999")
	require.Error(t, err)
	assert.True(t, layout.IsLookup(err))
	assert.Equal(t, `unknown hold "99999"`, err.Error())
}

const auxTable = `Aux export,,,,,,,,,,,
Hold #,1,2,3,4,5,6,7,8,9,10,R-34
Angle,10,20,30,40,50,60,70,80,90,100,
3→Hold #,,x12,,,,,,,,,R-99
4→Angle,,,,,,,,,,,
Hold #,a1,,,,,,,,,b10,R-32
Angle,5,,,,,,,,,
Hold #,short,R-30
Angle,1
`

func TestParseGrid(t *testing.T) {
	l := layout.Default()
	records, stats, err := ParseGrid(strings.NewReader(auxTable), l, layout.Aux)
	require.NoError(t, err)

	assert.Equal(t, ParseStats{Rows: 2, Holds: 12, Skipped: 2}, stats)

	byID := make(map[string]HoldRecord)
	for _, r := range records {
		byID[r.ID] = r
	}
	assert.Equal(t, HoldRecord{ID: "1", Row: "R-34", Column: "C-2", Angle: "10", Family: layout.Aux}, byID["1"])
	assert.Equal(t, HoldRecord{ID: "10", Row: "R-34", Column: "C-20", Angle: "100", Family: layout.Aux}, byID["10"])
	assert.Equal(t, "A1", byID["A1"].ID)
	assert.Equal(t, "5", byID["A1"].Angle)
	// A short angle row leaves the angle blank.
	assert.Equal(t, "", byID["B10"].Angle)
	assert.NotContains(t, byID, "X12")
}

func TestParseGridUnknownFamily(t *testing.T) {
	_, _, err := ParseGrid(strings.NewReader(""), layout.Default(), layout.Family("SIDE"))
	assert.Error(t, err)
}

func TestLoadCSVFiles(t *testing.T) {
	l := layout.Default()
	mfs := fsutil.NewMemoryFileSystem()
	mfs.AddFile("/data/main.csv", "Hold #,D7,,,,,,,,,,,R-7\nAngle,45,,,,,,,,,,,\n")
	mfs.AddFile("/data/aux.csv", auxTable)

	d, err := LoadCSVFiles(mfs, "/data/main.csv", "/data/aux.csv", l)
	require.NoError(t, err)
	assert.Equal(t, 13, d.Len())

	rec, err := d.Find("d7")
	require.NoError(t, err)
	assert.Equal(t, layout.Main, rec.Family)
	assert.Equal(t, "R-7", rec.Row)

	_, err = LoadCSVFiles(mfs, "/data/missing.csv", "/data/aux.csv", l)
	assert.Error(t, err)
}

func TestLoadCSVFilesAuxWinsDuplicate(t *testing.T) {
	l := layout.Default()
	mfs := fsutil.NewMemoryFileSystem()
	// "7" is also in the AUX table, on row R-34.
	mfs.AddFile("/data/main.csv", "Hold #,7,,,,,,,,,,,R-7\nAngle,45,,,,,,,,,,,\n")
	mfs.AddFile("/data/aux.csv", auxTable)

	d, err := LoadCSVFiles(mfs, "/data/main.csv", "/data/aux.csv", l)
	require.NoError(t, err)
	assert.Equal(t, 12, d.Len())

	rec, err := d.Find("7")
	require.NoError(t, err)
	assert.Equal(t, layout.Aux, rec.Family)
	assert.Equal(t, "R-34", rec.Row)
}

func TestNewDatasetRejectsInconsistentRecords(t *testing.T) {
	l := layout.Default()
	tests := []struct {
		name string
		rec  HoldRecord
	}{
		{"empty id", HoldRecord{ID: "  ", Row: "R-35", Column: "C-1", Family: layout.Main}},
		{"wrong family", HoldRecord{ID: "1", Row: "R-35", Column: "C-1", Family: layout.Aux}},
		{"aux row on main column", HoldRecord{ID: "1", Row: "R-34", Column: "C-1", Family: layout.Main}},
		{"column outside layout", HoldRecord{ID: "1", Row: "R-35", Column: "C-23", Family: layout.Main}},
		{"bad column", HoldRecord{ID: "1", Row: "R-35", Column: "X", Family: layout.Main}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDataset(l, []HoldRecord{tt.rec})
			assert.Error(t, err)
		})
	}
}

func TestNewDatasetLaterRecordWins(t *testing.T) {
	d, err := NewDataset(layout.Default(), []HoldRecord{
		{ID: "42", Row: "R-35", Column: "C-1", Family: layout.Main},
		{ID: "42", Row: "R-34", Column: "C-2", Family: layout.Aux},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, d.Len())
	rec, _ := d.Find("42")
	assert.Equal(t, "C-2", rec.Column)
}

func TestNormalizeID(t *testing.T) {
	tests := map[string]string{
		"1350":    "1350",
		" 1350\t": "1350",
		"d1350b":  "D1350B",
		"Ｄ１３５０":   "D1350",
		"":        "",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeID(in), "NormalizeID(%q)", in)
	}
}

func TestNormalizeSpoken(t *testing.T) {
	tests := map[string]string{
		"1350":                "1350",
		"hold 1350":           "1350",
		"Hold number 13 50.":  "1350",
		"one three five zero": "1350",
		"one three five oh":   "1350",
		"hold d 13 50 b":      "D1350B",
		"show me hold D1350":  "D1350",
		"o 12":                "O12",
		"twelve":              "TWELVE",
		"":                    "",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeSpoken(in), "NormalizeSpoken(%q)", in)
	}
}
