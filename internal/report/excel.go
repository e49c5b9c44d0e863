package report

import (
	"io"
	"math"

	"github.com/xuri/excelize/v2"

	"github.com/oszuidwest/zwfm-volumecheck/internal/types"
	"github.com/oszuidwest/zwfm-volumecheck/internal/util"
)

// Workbook sheet names.
const (
	SummarySheet = "Summary"
	DetailSheet  = "Detailed_Results"
)

// Column headers for the two sheets.
var (
	summaryHeader = []any{"Folder", "Total Files", "Good Files", "Bad Files", "Success Rate"}
	detailHeader  = []any{"Sl.no", "Folder", "speaker ID", "Filename", "category", "Current_File_Db", "Db_range", "Status"}
)

// WriteTo serializes the report as an Excel workbook to w.
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	f, err := r.workbook()
	if err != nil {
		return 0, err
	}
	defer util.SafeCloseFunc(f, "report workbook")()
	return f.WriteTo(w)
}

// SaveFile writes the report workbook to the given path.
func (r *Report) SaveFile(path string) error {
	f, err := r.workbook()
	if err != nil {
		return err
	}
	defer util.SafeCloseFunc(f, "report workbook")()
	return f.SaveAs(path)
}

// workbook builds the two-sheet workbook from the aggregated tables.
func (r *Report) workbook() (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return nil, util.WrapError("create summary sheet", err)
	}
	if _, err := f.NewSheet(DetailSheet); err != nil {
		return nil, util.WrapError("create detail sheet", err)
	}

	if err := f.SetSheetRow(SummarySheet, "A1", &summaryHeader); err != nil {
		return nil, util.WrapError("write summary header", err)
	}
	for i, row := range r.Summary {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		values := []any{row.Folder, row.TotalFiles, row.GoodFiles, row.BadFiles, row.SuccessRate}
		if err := f.SetSheetRow(SummarySheet, cell, &values); err != nil {
			return nil, util.WrapError("write summary row", err)
		}
	}

	if err := f.SetSheetRow(DetailSheet, "A1", &detailHeader); err != nil {
		return nil, util.WrapError("write detail header", err)
	}
	for i, row := range r.Detail {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		values := []any{
			row.Seq,
			row.Folder,
			row.Record.SpeakerID,
			row.Record.Filename,
			row.Record.Category,
			dbCell(row.Record),
			row.Record.ExpectedRange,
			string(row.Record.Status),
		}
		if err := f.SetSheetRow(DetailSheet, cell, &values); err != nil {
			return nil, util.WrapError("write detail row", err)
		}
	}

	return f, nil
}

// dbCell returns the measured level cell value: a number for measured files,
// the error sentinel for failed ones. Negative infinity is written as text
// since spreadsheet cells cannot hold it numerically.
func dbCell(record types.FileRecord) any {
	if record.Status == types.StatusError {
		return types.ErrorCell
	}
	if math.IsInf(record.MeasuredDB, -1) {
		return "-Inf"
	}
	return record.MeasuredDB
}
