// Package config provides application configuration management.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/oszuidwest/zwfm-volumecheck/internal/util"
)

// Configuration defaults are used when values are not specified.
const (
	DefaultOutputPath   = "wav_volume_analysis_report.xlsx"
	DefaultEventLogPath = "volumecheck.jsonl"
)

// Environment variable names for S3 credential overrides. Values from the
// environment (or a .env file loaded by the caller) take precedence over the
// config file so credentials can stay out of it.
const (
	EnvS3AccessKeyID     = "VOLUMECHECK_S3_ACCESS_KEY_ID"
	EnvS3SecretAccessKey = "VOLUMECHECK_S3_SECRET_ACCESS_KEY"
)

// validate is the shared validator instance for configuration validation.
var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Use JSON tag names in error messages instead of struct field names
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return fld.Name
		}
		return name
	})
}

// ScanConfig holds corpus location and folder selection settings.
type ScanConfig struct {
	Root    string   `json:"root"`    // Root path containing recording subfolders
	Folders []string `json:"folders"` // Subfolder names to scan (empty = all)
}

// ReportConfig holds report artifact settings.
type ReportConfig struct {
	OutputPath string `json:"output_path"` // Path for the generated Excel workbook
}

// EventLogConfig holds event log file settings.
type EventLogConfig struct {
	Path string `json:"path"` // JSON lines event log path (empty = disabled)
}

// WebhookConfig holds webhook notification settings.
type WebhookConfig struct {
	URL string `json:"url" validate:"omitempty,http_url"` // Webhook URL for scan completion
}

// S3Config holds S3-compatible storage settings for report uploads.
type S3Config struct {
	Endpoint        string `json:"endpoint,omitempty" validate:"omitempty,url"` // Custom S3 endpoint (empty for AWS)
	Bucket          string `json:"bucket,omitempty"`                            // S3 bucket name
	Prefix          string `json:"prefix,omitempty"`                            // Key prefix for uploaded reports
	AccessKeyID     string `json:"access_key_id,omitempty"`                     // AWS access key ID
	SecretAccessKey string `json:"secret_access_key,omitempty"`                 // AWS secret access key
}

// IsConfigured returns true if S3 settings are configured.
func (c *S3Config) IsConfigured() bool {
	return util.IsConfigured(c.Bucket, c.AccessKeyID, c.SecretAccessKey)
}

// Config holds all application configuration.
type Config struct {
	Scan     ScanConfig     `json:"scan"`
	Report   ReportConfig   `json:"report"`
	EventLog EventLogConfig `json:"event_log"`
	Webhook  WebhookConfig  `json:"webhook"`
	Upload   S3Config       `json:"upload"`

	filePath string
}

// New creates a new Config with default values.
func New(filePath string) *Config {
	return &Config{
		Report:   ReportConfig{OutputPath: DefaultOutputPath},
		EventLog: EventLogConfig{Path: DefaultEventLogPath},
		filePath: filePath,
	}
}

// Load reads config from file, creating a default if none exists.
func (c *Config) Load() error {
	data, err := os.ReadFile(c.filePath)
	if os.IsNotExist(err) {
		return c.save()
	}
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	if err := json.Unmarshal(data, c); err != nil {
		return util.WrapError("parse config", err)
	}

	c.applyDefaults()
	c.applyEnvOverrides()

	return c.Validate()
}

// Validate checks all configuration fields for correctness.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var fields []string
		if errs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range errs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(fields, ", "))
		}
		return util.WrapError("validate config", err)
	}

	if c.Report.OutputPath != "" {
		if err := util.ValidatePath("report.output_path", c.Report.OutputPath); err != nil {
			return err
		}
		if err := util.CheckPathWritable(filepath.Dir(c.Report.OutputPath)); err != nil {
			return fmt.Errorf("report.output_path: %w", err)
		}
	}
	if c.EventLog.Path != "" {
		if err := util.ValidatePath("event_log.path", c.EventLog.Path); err != nil {
			return err
		}
		if err := util.CheckPathWritable(filepath.Dir(c.EventLog.Path)); err != nil {
			return fmt.Errorf("event_log.path: %w", err)
		}
	}
	return nil
}

// applyDefaults sets default values for zero-value fields.
func (c *Config) applyDefaults() {
	if c.Report.OutputPath == "" {
		c.Report.OutputPath = DefaultOutputPath
	}
	if c.EventLog.Path == "" {
		c.EventLog.Path = DefaultEventLogPath
	}
}

// applyEnvOverrides replaces S3 credentials with environment values when set.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(EnvS3AccessKeyID); v != "" {
		c.Upload.AccessKeyID = v
	}
	if v := os.Getenv(EnvS3SecretAccessKey); v != "" {
		c.Upload.SecretAccessKey = v
	}
}

// save persists configuration to disk.
func (c *Config) save() error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return util.WrapError("marshal config", err)
	}

	dir := filepath.Dir(c.filePath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return util.WrapError("create config directory", err)
	}

	if err := os.WriteFile(c.filePath, data, 0o600); err != nil {
		return util.WrapError("write config", err)
	}

	return nil
}
