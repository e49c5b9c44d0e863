package report

import (
	"bytes"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/oszuidwest/zwfm-volumecheck/internal/types"
)

func TestWriteTo(t *testing.T) {
	r := Aggregate(fixtureResults())

	var buf bytes.Buffer
	n, err := r.WriteTo(&buf)
	require.NoError(t, err)
	assert.Positive(t, n)

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{SummarySheet, DetailSheet}, f.GetSheetList())

	// Summary sheet header and first row
	cell := func(sheet, ref string) string {
		v, err := f.GetCellValue(sheet, ref)
		require.NoError(t, err)
		return v
	}
	assert.Equal(t, "Folder", cell(SummarySheet, "A1"))
	assert.Equal(t, "Success Rate", cell(SummarySheet, "E1"))
	assert.Equal(t, "session1", cell(SummarySheet, "A2"))
	assert.Equal(t, "3", cell(SummarySheet, "B2"))
	assert.Equal(t, "66.7%", cell(SummarySheet, "E2"))

	// Detail sheet header and selected cells
	assert.Equal(t, "Sl.no", cell(DetailSheet, "A1"))
	assert.Equal(t, "Current_File_Db", cell(DetailSheet, "F1"))
	assert.Equal(t, "1", cell(DetailSheet, "A2"))
	assert.Equal(t, "spk1", cell(DetailSheet, "C2"))
	assert.Equal(t, "spk1_soft_take1.wav", cell(DetailSheet, "D2"))
	assert.Equal(t, "soft", cell(DetailSheet, "E2"))
	assert.Equal(t, "-30", cell(DetailSheet, "F2"))
	assert.Equal(t, "-35dB to -25dB", cell(DetailSheet, "G2"))
	assert.Equal(t, "Good", cell(DetailSheet, "H2"))

	// The error record carries sentinels in the numeric columns
	assert.Equal(t, "Error", cell(DetailSheet, "F6"))
	assert.Equal(t, "Error", cell(DetailSheet, "G6"))
	assert.Equal(t, "Error", cell(DetailSheet, "H6"))
}

func TestSaveFile(t *testing.T) {
	r := Aggregate(fixtureResults())
	path := filepath.Join(t.TempDir(), "report.xlsx")

	require.NoError(t, r.SaveFile(path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(DetailSheet)
	require.NoError(t, err)
	// Header plus five detail rows
	assert.Len(t, rows, 6)
}

func TestDBCell(t *testing.T) {
	tests := []struct {
		name   string
		record types.FileRecord
		want   any
	}{
		{
			name:   "measured value",
			record: types.FileRecord{MeasuredDB: -30.0, Status: types.StatusGood},
			want:   -30.0,
		},
		{
			name:   "error sentinel",
			record: types.FileRecord{Status: types.StatusError},
			want:   types.ErrorCell,
		},
		{
			name:   "silence",
			record: types.FileRecord{MeasuredDB: math.Inf(-1), Status: types.StatusBad},
			want:   "-Inf",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := dbCell(tc.record); got != tc.want {
				t.Errorf("dbCell(%+v) = %v, want %v", tc.record, got, tc.want)
			}
		})
	}
}
