package scan

import "github.com/oszuidwest/zwfm-volumecheck/internal/types"

// Observer receives scan progress events. Observers are strictly
// observational: they must not influence evaluation order or results.
type Observer interface {
	// ScanStarted is called once before any folder is processed.
	ScanStarted(root string, folders []string)
	// FolderStarted is called before a folder's files are evaluated.
	FolderStarted(folder string, total int)
	// FileEvaluated is called after each file, with 1-based index within the folder.
	FileEvaluated(folder string, index, total int, record types.FileRecord)
	// FolderEmpty is called for a selected folder with no matching files.
	FolderEmpty(folder string)
	// ScanCompleted is called once after all folders are processed.
	ScanCompleted(results types.CorpusResults)
}

// NopObserver is an Observer that ignores all events.
type NopObserver struct{}

func (NopObserver) ScanStarted(string, []string) {}

func (NopObserver) FolderStarted(string, int) {}

func (NopObserver) FileEvaluated(string, int, int, types.FileRecord) {}

func (NopObserver) FolderEmpty(string) {}

func (NopObserver) ScanCompleted(types.CorpusResults) {}
