package scan

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/oszuidwest/zwfm-volumecheck/internal/classify"
	"github.com/oszuidwest/zwfm-volumecheck/internal/types"
	"github.com/oszuidwest/zwfm-volumecheck/internal/util"
)

// Sentinel errors for scan operations. Both are terminal: no partial results
// are returned when they occur.
var (
	// ErrPathNotFound is returned when the scan root does not exist.
	ErrPathNotFound = errors.New("path does not exist")

	// ErrNoFoldersFound is returned when the scan root has no subdirectories.
	ErrNoFoldersFound = errors.New("no folders found")
)

// ListFolders returns the names of the immediate subdirectories of root, in
// directory listing order. It fails with ErrPathNotFound or ErrNoFoldersFound.
func ListFolders(root string) ([]string, error) {
	if _, err := os.Stat(root); os.IsNotExist(err) {
		return nil, util.WrapError("access "+root, ErrPathNotFound)
	} else if err != nil {
		return nil, util.WrapError("access root path", err)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, util.WrapError("read root path", err)
	}

	var folders []string
	for _, entry := range entries {
		if entry.IsDir() {
			folders = append(folders, entry.Name())
		}
	}
	if len(folders) == 0 {
		return nil, util.WrapError("scan "+root, ErrNoFoldersFound)
	}
	return folders, nil
}

// Scan walks the selected subfolders of root, evaluates every WAV file found
// beneath them, and returns the per-folder results in processing order.
//
// A non-empty selected list restricts the scan to those folder names;
// otherwise every subfolder is processed. Folders without WAV files are
// reported to the observer and omitted from the results. Per-file decode
// failures become Error records; only ErrPathNotFound and ErrNoFoldersFound
// abort the scan.
func Scan(root string, selected []string, categories classify.Categories, obs Observer) (types.CorpusResults, error) {
	if obs == nil {
		obs = NopObserver{}
	}

	folders, err := ListFolders(root)
	if err != nil {
		return nil, err
	}

	if len(selected) > 0 {
		available := folders
		folders = slices.DeleteFunc(slices.Clone(folders), func(name string) bool {
			return !slices.Contains(selected, name)
		})
		for _, name := range selected {
			if !slices.Contains(available, name) {
				slog.Warn("selected folder not found", "folder", name, "root", root)
			}
		}
	}

	obs.ScanStarted(root, folders)

	var results types.CorpusResults
	for _, folder := range folders {
		files, err := collectWAVFiles(filepath.Join(root, folder))
		if err != nil {
			return nil, util.WrapError("walk folder "+folder, err)
		}
		if len(files) == 0 {
			slog.Warn("no WAV files found in folder", "folder", folder)
			obs.FolderEmpty(folder)
			continue
		}

		obs.FolderStarted(folder, len(files))
		records := make([]types.FileRecord, 0, len(files))
		for i, path := range files {
			record := Evaluate(path, filepath.Base(path), categories)
			if record.Status == types.StatusError {
				slog.Warn("file could not be processed", "folder", folder, "file", record.Filename, "error", record.Error)
			}
			records = append(records, record)
			obs.FileEvaluated(folder, i+1, len(files), record)
		}
		results = append(results, types.FolderResult{Folder: folder, Records: records})
	}

	obs.ScanCompleted(results)
	return results, nil
}

// collectWAVFiles recursively gathers files beneath dir whose extension
// case-insensitively matches .wav, in walk order.
func collectWAVFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entries are skipped, not fatal
			slog.Warn("skipping unreadable entry", "path", path, "error", err)
			return nil
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(d.Name()), ".wav") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
