// Package types provides shared type definitions used across the volume checker.
package types

// Status classifies the outcome of evaluating a single audio file.
type Status string

const (
	// StatusGood indicates the measured level falls inside the category's band.
	StatusGood Status = "Good"
	// StatusBad indicates the measured level falls outside the band, or the
	// category could not be determined from the filename.
	StatusBad Status = "Bad"
	// StatusError indicates the file could not be decoded or measured.
	StatusError Status = "Error"
)

// ErrorCell is the sentinel written to numeric report columns when a file
// could not be measured.
const ErrorCell = "Error"

// FileRecord is the evaluation outcome for one audio file.
type FileRecord struct {
	// SpeakerID is the speaker identifier parsed from the filename ("Unknown" if absent).
	SpeakerID string `json:"speaker_id"`
	// Filename is the base name of the evaluated file.
	Filename string `json:"filename"`
	// Category is the declared volume category parsed from the filename ("unknown" if absent).
	Category string `json:"category"`
	// MeasuredDB is the mean frame RMS level in dB, rounded to one decimal.
	// Only meaningful when Status is not StatusError. Negative infinity for silence.
	MeasuredDB float64 `json:"measured_db"`
	// ExpectedRange is the category's display range, or "N/A" for unknown categories.
	ExpectedRange string `json:"expected_range"`
	// Status is the classification outcome.
	Status Status `json:"status"`
	// Error holds the decode failure message when Status is StatusError.
	Error string `json:"error,omitempty"`
}

// FolderResult is the ordered result set for one scanned subfolder.
// Record order is discovery order within the folder.
type FolderResult struct {
	// Folder is the subfolder name relative to the scan root.
	Folder string `json:"folder"`
	// Records are the per-file outcomes in discovery order.
	Records []FileRecord `json:"records"`
}

// CorpusResults is the ordered collection of folder results for one scan run.
// Folder order is processing order; it is fixed once the scan completes and is
// what the report aggregator iterates over.
type CorpusResults []FolderResult

// TotalFiles returns the number of evaluated files across all folders.
func (c CorpusResults) TotalFiles() int {
	total := 0
	for _, folder := range c {
		total += len(folder.Records)
	}
	return total
}

// VersionInfo describes the running binary and the latest known release.
type VersionInfo struct {
	Current     string `json:"current"`              // Current version
	Latest      string `json:"latest,omitempty"`     // Latest release version
	UpdateAvail bool   `json:"update_available"`     // True if a newer release exists
	Commit      string `json:"commit,omitempty"`     // Git commit hash
	BuildTime   string `json:"build_time,omitempty"` // Build timestamp
}
