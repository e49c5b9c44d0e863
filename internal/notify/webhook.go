// Package notify delivers scan completion notifications to external endpoints.
package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/oszuidwest/zwfm-volumecheck/internal/report"
	"github.com/oszuidwest/zwfm-volumecheck/internal/util"
)

// webhookTimeout bounds a single webhook delivery attempt.
const webhookTimeout = 10 * time.Second

// WebhookPayload represents the data sent to webhook endpoints.
type WebhookPayload struct {
	Event       string `json:"event"`
	TotalFiles  int    `json:"total_files"`
	GoodFiles   int    `json:"good_files"`
	BadFiles    int    `json:"bad_files"`
	SuccessRate string `json:"success_rate"`
	ReportPath  string `json:"report_path,omitempty"`
	Message     string `json:"message,omitempty"`
	Timestamp   string `json:"timestamp"`
}

// SendScanCompletedWebhook notifies the configured webhook that a scan run
// finished, with corpus-wide totals and the report location.
func SendScanCompletedWebhook(webhookURL string, overall report.Overall, reportPath string) error {
	return sendWebhook(webhookURL, &WebhookPayload{
		Event:       "scan_completed",
		TotalFiles:  overall.TotalFiles,
		GoodFiles:   overall.GoodFiles,
		BadFiles:    overall.BadFiles,
		SuccessRate: overall.SuccessRate,
		ReportPath:  reportPath,
		Timestamp:   timestampUTC(),
	})
}

// sendWebhook delivers a notification to the configured webhook endpoint.
func sendWebhook(webhookURL string, payload *WebhookPayload) error {
	if !util.IsConfigured(webhookURL) {
		return nil // Silently skip if not configured
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return util.WrapError("marshal payload", err)
	}

	client := &http.Client{Timeout: webhookTimeout}
	resp, err := client.Post(webhookURL, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		return util.WrapError("send webhook request", err)
	}
	defer util.SafeCloseFunc(resp.Body, "webhook response body")()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	return nil
}

// timestampUTC returns the current time as an RFC3339 UTC string.
func timestampUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}
