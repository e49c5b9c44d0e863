// Package eventlog provides unified event logging for scan runs.
// It captures scan lifecycle events (started, per-file progress, completed)
// and report events (written, uploaded) in a single JSON lines file, and
// doubles as the scan progress observer.
package eventlog

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/oszuidwest/zwfm-volumecheck/internal/types"
)

// EventType represents the type of event.
type EventType string

// Scan event types.
const (
	ScanStarted   EventType = "scan_started"
	FolderStarted EventType = "folder_started"
	FolderEmpty   EventType = "folder_empty"
	FileEvaluated EventType = "file_evaluated"
	FileError     EventType = "file_error"
	ScanCompleted EventType = "scan_completed"
)

// Report event types.
const (
	ReportWritten   EventType = "report_written"
	UploadCompleted EventType = "upload_completed"
	UploadFailed    EventType = "upload_failed"
)

// Event represents a single log entry with type-specific details.
type Event struct {
	Timestamp time.Time `json:"ts"`
	Type      EventType `json:"type"`
	Folder    string    `json:"folder,omitempty"`
	Message   string    `json:"msg,omitempty"`
	Details   any       `json:"details,omitempty"`
}

// ScanDetails contains scan lifecycle event details.
type ScanDetails struct {
	Root        string   `json:"root,omitempty"`
	Folders     []string `json:"folders,omitempty"`
	FolderCount int      `json:"folder_count,omitempty"`
	FileCount   int      `json:"file_count,omitempty"`
}

// FileDetails contains per-file progress event details.
type FileDetails struct {
	Filename  string `json:"filename"`
	Index     int    `json:"index"`
	Total     int    `json:"total"`
	SpeakerID string `json:"speaker_id,omitempty"`
	Category  string `json:"category,omitempty"`
	// MeasuredDB is formatted as text so that silent files (-Inf) stay encodable.
	MeasuredDB string `json:"measured_db,omitempty"`
	Status     string `json:"status"`
	Error      string `json:"error,omitempty"`
}

// ReportDetails contains report artifact event details.
type ReportDetails struct {
	Path      string `json:"path,omitempty"`
	S3Key     string `json:"s3_key,omitempty"`
	SizeBytes int64  `json:"size_bytes,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Logger writes events to a JSON lines file. It implements scan.Observer.
type Logger struct {
	mu      sync.Mutex
	file    *os.File
	encoder *json.Encoder
}

// NewLogger creates a new event logger at the specified path.
func NewLogger(filePath string) (*Logger, error) {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	return &Logger{
		file:    file,
		encoder: json.NewEncoder(file),
	}, nil
}

// Log writes an event to the log file.
func (l *Logger) Log(event *Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	return l.encoder.Encode(event)
}

// log writes an event and discards the write error; progress logging must
// never interfere with the scan itself.
func (l *Logger) log(event *Event) {
	_ = l.Log(event)
}

// ScanStarted records the start of a scan run.
func (l *Logger) ScanStarted(root string, folders []string) {
	l.log(&Event{
		Type: ScanStarted,
		Details: &ScanDetails{
			Root:        root,
			Folders:     folders,
			FolderCount: len(folders),
		},
	})
}

// FolderStarted records the start of one folder's evaluation.
func (l *Logger) FolderStarted(folder string, total int) {
	l.log(&Event{
		Type:    FolderStarted,
		Folder:  folder,
		Details: &ScanDetails{FileCount: total},
	})
}

// FolderEmpty records a selected folder that contained no WAV files.
func (l *Logger) FolderEmpty(folder string) {
	l.log(&Event{
		Type:    FolderEmpty,
		Folder:  folder,
		Message: "no WAV files found",
	})
}

// FileEvaluated records one file's evaluation outcome.
func (l *Logger) FileEvaluated(folder string, index, total int, record types.FileRecord) {
	eventType := FileEvaluated
	details := &FileDetails{
		Filename:  record.Filename,
		Index:     index,
		Total:     total,
		SpeakerID: record.SpeakerID,
		Category:  record.Category,
		Status:    string(record.Status),
		Error:     record.Error,
	}
	switch {
	case record.Status == types.StatusError:
		eventType = FileError
	case math.IsInf(record.MeasuredDB, -1):
		details.MeasuredDB = "-Inf"
	default:
		details.MeasuredDB = strconv.FormatFloat(record.MeasuredDB, 'f', 1, 64)
	}
	l.log(&Event{
		Type:    eventType,
		Folder:  folder,
		Details: details,
	})
}

// ScanCompleted records the end of a scan run.
func (l *Logger) ScanCompleted(results types.CorpusResults) {
	l.log(&Event{
		Type: ScanCompleted,
		Details: &ScanDetails{
			FolderCount: len(results),
			FileCount:   results.TotalFiles(),
		},
	})
}

// LogReportWritten records a report artifact written to disk.
func (l *Logger) LogReportWritten(path string, sizeBytes int64) {
	l.log(&Event{
		Type:    ReportWritten,
		Details: &ReportDetails{Path: path, SizeBytes: sizeBytes},
	})
}

// LogUpload records the outcome of a report upload.
func (l *Logger) LogUpload(s3Key string, sizeBytes int64, uploadErr error) {
	eventType := UploadCompleted
	details := &ReportDetails{S3Key: s3Key, SizeBytes: sizeBytes}
	if uploadErr != nil {
		eventType = UploadFailed
		details.Error = uploadErr.Error()
	}
	l.log(&Event{Type: eventType, Details: details})
}

// Close closes the log file.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		return l.file.Close()
	}
	return nil
}
