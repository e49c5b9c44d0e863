// Package scan evaluates audio recordings against their declared volume
// category and walks recording corpora on disk.
package scan

import (
	"math"

	"github.com/oszuidwest/zwfm-volumecheck/internal/audio"
	"github.com/oszuidwest/zwfm-volumecheck/internal/classify"
	"github.com/oszuidwest/zwfm-volumecheck/internal/types"
)

// RangeNA is the expected-range value for files without a recognized category.
const RangeNA = "N/A"

// roundDB rounds a dB value to one decimal place. Infinities pass through.
func roundDB(db float64) float64 {
	if math.IsInf(db, 0) {
		return db
	}
	return math.Round(db*10) / 10
}

// Evaluate measures one audio file and classifies it against its declared
// volume category. Classification always runs first so that decode failures
// still produce a record with identifying metadata. A file with an unknown
// category is never Good, regardless of its measured level.
func Evaluate(path, filename string, categories classify.Categories) types.FileRecord {
	speakerID, category := classify.Classify(filename, categories)

	record := types.FileRecord{
		SpeakerID:     speakerID,
		Filename:      filename,
		Category:      category,
		ExpectedRange: RangeNA,
		Status:        types.StatusBad,
	}

	db, err := audio.ExtractLoudnessDB(path)
	if err != nil {
		record.Status = types.StatusError
		record.ExpectedRange = types.ErrorCell
		record.Error = err.Error()
		return record
	}

	record.MeasuredDB = roundDB(db)
	if cat, ok := categories[category]; ok {
		record.ExpectedRange = cat.DisplayRange
		if cat.Contains(record.MeasuredDB) {
			record.Status = types.StatusGood
		}
	}
	return record
}
