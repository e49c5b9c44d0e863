package scan

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oszuidwest/zwfm-volumecheck/internal/classify"
	"github.com/oszuidwest/zwfm-volumecheck/internal/types"
)

// recordingObserver captures observer callbacks for assertions.
type recordingObserver struct {
	started      bool
	completed    bool
	folders      []string
	emptyFolders []string
	files        []string
}

func (o *recordingObserver) ScanStarted(_ string, folders []string) {
	o.started = true
	o.folders = folders
}
func (o *recordingObserver) FolderStarted(string, int) {}
func (o *recordingObserver) FileEvaluated(_ string, _, _ int, record types.FileRecord) {
	o.files = append(o.files, record.Filename)
}
func (o *recordingObserver) FolderEmpty(folder string) {
	o.emptyFolders = append(o.emptyFolders, folder)
}
func (o *recordingObserver) ScanCompleted(types.CorpusResults) {
	o.completed = true
}

func TestScanTerminalErrors(t *testing.T) {
	categories := classify.DefaultCategories()

	t.Run("missing root", func(t *testing.T) {
		results, err := Scan(filepath.Join(t.TempDir(), "nope"), nil, categories, nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrPathNotFound), "expected ErrPathNotFound, got %v", err)
		assert.Nil(t, results)
	})

	t.Run("no subfolders", func(t *testing.T) {
		root := t.TempDir()
		// A plain file does not count as a folder
		require.NoError(t, os.WriteFile(filepath.Join(root, "stray.wav"), []byte("x"), 0o644))

		results, err := Scan(root, nil, categories, nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNoFoldersFound), "expected ErrNoFoldersFound, got %v", err)
		assert.Nil(t, results)
	})
}

func TestScanSingleFolder(t *testing.T) {
	root := t.TempDir()
	folder := filepath.Join(root, "session1")
	require.NoError(t, os.MkdirAll(folder, 0o755))

	// 2 good files, 1 bad file (soft category but comfortable level)
	writeTestWAV(t, filepath.Join(folder, "spk1_soft_take1.wav"), sampleSoft, 4096)
	writeTestWAV(t, filepath.Join(folder, "spk2_soft_take1.wav"), sampleSoft, 4096)
	writeTestWAV(t, filepath.Join(folder, "spk3_soft_take1.wav"), sampleComfort, 4096)

	obs := &recordingObserver{}
	results, err := Scan(root, nil, classify.DefaultCategories(), obs)
	require.NoError(t, err)
	require.Len(t, results, 1)

	records := results[0].Records
	require.Len(t, records, 3)
	assert.Equal(t, "session1", results[0].Folder)

	good := 0
	for _, r := range records {
		if r.Status == types.StatusGood {
			good++
		}
	}
	assert.Equal(t, 2, good)

	assert.True(t, obs.started)
	assert.True(t, obs.completed)
	assert.Len(t, obs.files, 3)
}

func TestScanRecursesIntoNestedFolders(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "session1", "day2", "morning")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	writeTestWAV(t, filepath.Join(nested, "spk1_soft_take1.wav"), sampleSoft, 4096)

	results, err := Scan(root, nil, classify.DefaultCategories(), nil)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "session1", results[0].Folder)
	require.Len(t, results[0].Records, 1)
	assert.Equal(t, "spk1_soft_take1.wav", results[0].Records[0].Filename)
}

func TestScanExtensionMatchIsCaseInsensitive(t *testing.T) {
	root := t.TempDir()
	folder := filepath.Join(root, "session1")
	require.NoError(t, os.MkdirAll(folder, 0o755))
	writeTestWAV(t, filepath.Join(folder, "spk1_soft_take1.WAV"), sampleSoft, 4096)
	// Non-WAV files are ignored
	require.NoError(t, os.WriteFile(filepath.Join(folder, "notes.txt"), []byte("x"), 0o644))

	results, err := Scan(root, nil, classify.DefaultCategories(), nil)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Len(t, results[0].Records, 1)
	assert.Equal(t, "spk1_soft_take1.WAV", results[0].Records[0].Filename)
}

func TestScanOmitsEmptyFolders(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "empty"), 0o755))
	full := filepath.Join(root, "full")
	require.NoError(t, os.MkdirAll(full, 0o755))
	writeTestWAV(t, filepath.Join(full, "spk1_soft_take1.wav"), sampleSoft, 4096)

	obs := &recordingObserver{}
	results, err := Scan(root, nil, classify.DefaultCategories(), obs)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "full", results[0].Folder)
	assert.Equal(t, []string{"empty"}, obs.emptyFolders)
}

func TestScanFolderSelection(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"alpha", "beta", "gamma"} {
		dir := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(dir, 0o755))
		writeTestWAV(t, filepath.Join(dir, "spk1_soft_take1.wav"), sampleSoft, 4096)
	}

	results, err := Scan(root, []string{"gamma", "alpha"}, classify.DefaultCategories(), nil)
	require.NoError(t, err)
	require.Len(t, results, 2)

	// Directory listing order is preserved regardless of selection order
	assert.Equal(t, "alpha", results[0].Folder)
	assert.Equal(t, "gamma", results[1].Folder)
}

func TestScanContinuesPastBrokenFiles(t *testing.T) {
	root := t.TempDir()
	folder := filepath.Join(root, "session1")
	require.NoError(t, os.MkdirAll(folder, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(folder, "spk1_soft_broken.wav"), []byte("junk"), 0o644))
	writeTestWAV(t, filepath.Join(folder, "spk2_soft_take1.wav"), sampleSoft, 4096)

	results, err := Scan(root, nil, classify.DefaultCategories(), nil)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Len(t, results[0].Records, 2, "broken file must still appear as a record")

	statuses := map[types.Status]int{}
	for _, r := range results[0].Records {
		statuses[r.Status]++
	}
	assert.Equal(t, 1, statuses[types.StatusError])
	assert.Equal(t, 1, statuses[types.StatusGood])
}

func TestListFolders(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "b"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "a"), 0o755))

	folders, err := ListFolders(root)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, folders)
}
