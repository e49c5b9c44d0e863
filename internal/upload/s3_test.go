package upload

import (
	"context"
	"testing"
	"time"

	"github.com/oszuidwest/zwfm-volumecheck/internal/config"
)

func TestReportKey(t *testing.T) {
	at := time.Date(2026, 8, 30, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		prefix   string
		filename string
		want     string
	}{
		{
			name:     "no prefix",
			prefix:   "",
			filename: "report.xlsx",
			want:     "2026-08-30/report.xlsx",
		},
		{
			name:     "with prefix",
			prefix:   "volumecheck",
			filename: "report.xlsx",
			want:     "volumecheck/2026-08-30/report.xlsx",
		},
		{
			name:     "prefix with trailing slash",
			prefix:   "volumecheck/",
			filename: "report.xlsx",
			want:     "volumecheck/2026-08-30/report.xlsx",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ReportKey(tc.prefix, tc.filename, at); got != tc.want {
				t.Errorf("ReportKey(%q, %q) = %q, want %q", tc.prefix, tc.filename, got, tc.want)
			}
		})
	}
}

func TestUploadReportRequiresConfiguration(t *testing.T) {
	_, err := UploadReport(context.Background(), &config.S3Config{}, "report.xlsx", "key")
	if err == nil {
		t.Error("expected error for unconfigured S3")
	}
}

func TestUploadReportRequiresExistingFile(t *testing.T) {
	cfg := &config.S3Config{Bucket: "b", AccessKeyID: "k", SecretAccessKey: "s"}
	_, err := UploadReport(context.Background(), cfg, "/nonexistent/report.xlsx", "key")
	if err == nil {
		t.Error("expected error for missing report file")
	}
}
