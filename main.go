// Package main provides a batch auditing tool that scans folders of WAV
// recordings, measures each file's RMS loudness in dB, classifies it against
// its declared volume category, and writes a two-sheet Excel report.
//
// Usage:
//
//	volumecheck -root /path/to/recordings [-folders a,b,c] [-output report.xlsx]
//	volumecheck -root /path/to/recordings -list
//
// If -config is not specified, the tool looks for config.json in the same
// directory as the binary.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/oszuidwest/zwfm-volumecheck/internal/classify"
	"github.com/oszuidwest/zwfm-volumecheck/internal/config"
	"github.com/oszuidwest/zwfm-volumecheck/internal/eventlog"
	"github.com/oszuidwest/zwfm-volumecheck/internal/notify"
	"github.com/oszuidwest/zwfm-volumecheck/internal/report"
	"github.com/oszuidwest/zwfm-volumecheck/internal/scan"
	"github.com/oszuidwest/zwfm-volumecheck/internal/upload"
	"github.com/oszuidwest/zwfm-volumecheck/internal/util"
)

func main() {
	configPath := flag.String("config", "", "Path to config file (default: config.json next to binary)")
	rootPath := flag.String("root", "", "Root path containing recording subfolders")
	folderList := flag.String("folders", "", "Comma-separated subfolder names to scan (default: all)")
	outputPath := flag.String("output", "", "Path for the generated Excel report")
	listOnly := flag.Bool("list", false, "List available subfolders and exit")
	showVersion := flag.Bool("version", false, "Print version information and exit")
	flag.Parse()

	// Best-effort .env loading so S3 credentials can live outside the config file
	_ = godotenv.Load()

	if *showVersion {
		info := versionInfo(context.Background())
		slog.Info("version info", "version", info.Current, "commit", info.Commit, "build_time", info.BuildTime)
		if info.Latest != "" {
			slog.Info("latest release", "version", info.Latest, "update_available", info.UpdateAvail)
		}
		return
	}

	if *configPath == "" {
		execPath, err := os.Executable()
		if err != nil {
			slog.Error("failed to get executable path", "error", err)
			os.Exit(1)
		}
		*configPath = filepath.Join(filepath.Dir(execPath), "config.json")
	}

	cfg := config.New(*configPath)
	if err := cfg.Load(); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// CLI flags override config values
	if *rootPath != "" {
		cfg.Scan.Root = *rootPath
	}
	if *folderList != "" {
		cfg.Scan.Folders = splitFolders(*folderList)
	}
	if *outputPath != "" {
		cfg.Report.OutputPath = *outputPath
	}

	if cfg.Scan.Root == "" {
		slog.Error("no root path configured, use -root or set scan.root in the config file")
		os.Exit(1)
	}

	if *listOnly {
		folders, err := scan.ListFolders(cfg.Scan.Root)
		if err != nil {
			slog.Error("failed to list folders", "error", err)
			os.Exit(1)
		}
		slog.Info("found folders", "root", cfg.Scan.Root, "count", len(folders))
		for _, folder := range folders {
			fmt.Println(folder)
		}
		return
	}

	os.Exit(run(cfg))
}

// run executes one scan, writes the report, and delivers notifications.
// It returns the process exit code.
func run(cfg *config.Config) int {
	started := time.Now()

	var observer scan.Observer = scan.NopObserver{}
	var logger *eventlog.Logger
	if cfg.EventLog.Path != "" {
		var err error
		logger, err = eventlog.NewLogger(cfg.EventLog.Path)
		if err != nil {
			slog.Warn("event log disabled", "path", cfg.EventLog.Path, "error", err)
		} else {
			defer util.SafeCloseFunc(logger, "event log")()
			observer = logger
		}
	}

	slog.Info("starting scan", "root", cfg.Scan.Root, "folders", cfg.Scan.Folders)
	results, err := scan.Scan(cfg.Scan.Root, cfg.Scan.Folders, classify.DefaultCategories(), observer)
	if err != nil {
		slog.Error("scan failed", "error", err)
		return 1
	}

	if len(results) == 0 {
		slog.Warn("no processable WAV files found, skipping report", "root", cfg.Scan.Root)
		return 0
	}

	rep := report.Aggregate(results)
	for _, row := range rep.Summary {
		slog.Info("folder summary",
			"folder", row.Folder,
			"total", row.TotalFiles,
			"good", row.GoodFiles,
			"bad", row.BadFiles,
			"success_rate", row.SuccessRate)
	}
	slog.Info("scan completed",
		"total", rep.Overall.TotalFiles,
		"good", rep.Overall.GoodFiles,
		"bad", rep.Overall.BadFiles,
		"success_rate", rep.Overall.SuccessRate,
		"duration", util.FormatDuration(time.Since(started).Milliseconds()))

	if err := rep.SaveFile(cfg.Report.OutputPath); err != nil {
		slog.Error("failed to write report", "path", cfg.Report.OutputPath, "error", err)
		return 1
	}
	var reportSize int64
	if info, err := os.Stat(cfg.Report.OutputPath); err == nil {
		reportSize = info.Size()
	}
	slog.Info("report written", "path", cfg.Report.OutputPath, "size_bytes", reportSize)
	if logger != nil {
		logger.LogReportWritten(cfg.Report.OutputPath, reportSize)
	}

	if cfg.Upload.IsConfigured() {
		key := upload.ReportKey(cfg.Upload.Prefix, filepath.Base(cfg.Report.OutputPath), time.Now())
		size, err := upload.UploadReport(context.Background(), &cfg.Upload, cfg.Report.OutputPath, key)
		if logger != nil {
			logger.LogUpload(key, size, err)
		}
		if err != nil {
			slog.Error("report upload failed", "key", key, "error", err)
		} else {
			slog.Info("report uploaded", "bucket", cfg.Upload.Bucket, "key", key, "size_bytes", size)
		}
	}

	if err := notify.SendScanCompletedWebhook(cfg.Webhook.URL, rep.Overall, cfg.Report.OutputPath); err != nil {
		slog.Error("webhook notification failed", "error", err)
	}

	return 0
}

// splitFolders parses a comma-separated folder list, trimming whitespace and
// dropping empty entries.
func splitFolders(list string) []string {
	var folders []string
	for _, name := range strings.Split(list, ",") {
		if name = strings.TrimSpace(name); name != "" {
			folders = append(folders, name)
		}
	}
	return folders
}
