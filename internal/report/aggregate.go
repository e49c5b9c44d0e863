// Package report folds scan results into summary and detail tables and
// serializes them as a two-sheet Excel workbook.
package report

import (
	"fmt"

	"github.com/oszuidwest/zwfm-volumecheck/internal/types"
)

// SummaryRow is the per-folder tally of evaluation outcomes.
// BadFiles is derived by subtraction, so Error records count against the
// success rate the same way Bad records do.
type SummaryRow struct {
	Folder      string
	TotalFiles  int
	GoodFiles   int
	BadFiles    int
	SuccessRate string
}

// DetailRow is one file's outcome in the flattened detail table, tagged with a
// running 1-based sequence number and its source folder.
type DetailRow struct {
	Seq    int
	Folder string
	Record types.FileRecord
}

// Overall is the corpus-wide tally across all folders.
type Overall struct {
	TotalFiles  int
	GoodFiles   int
	BadFiles    int
	SuccessRate string
}

// Report holds the aggregated tables for one scan run.
type Report struct {
	Summary []SummaryRow
	Detail  []DetailRow
	Overall Overall
}

// Aggregate builds the summary and detail tables from scan results. It is a
// pure function of its input: aggregating the same results twice yields
// identical tables.
func Aggregate(results types.CorpusResults) *Report {
	r := &Report{
		Summary: make([]SummaryRow, 0, len(results)),
		Detail:  make([]DetailRow, 0, results.TotalFiles()),
	}

	seq := 0
	for _, folder := range results {
		good := 0
		for _, record := range folder.Records {
			if record.Status == types.StatusGood {
				good++
			}
			seq++
			r.Detail = append(r.Detail, DetailRow{Seq: seq, Folder: folder.Folder, Record: record})
		}

		total := len(folder.Records)
		r.Summary = append(r.Summary, SummaryRow{
			Folder:      folder.Folder,
			TotalFiles:  total,
			GoodFiles:   good,
			BadFiles:    total - good,
			SuccessRate: formatSuccessRate(good, total),
		})

		r.Overall.TotalFiles += total
		r.Overall.GoodFiles += good
	}

	r.Overall.BadFiles = r.Overall.TotalFiles - r.Overall.GoodFiles
	r.Overall.SuccessRate = formatSuccessRate(r.Overall.GoodFiles, r.Overall.TotalFiles)
	return r
}

// formatSuccessRate renders good/total as a percentage with one decimal.
func formatSuccessRate(good, total int) string {
	if total == 0 {
		return "0%"
	}
	return fmt.Sprintf("%.1f%%", float64(good)/float64(total)*100)
}
