// Package upload stores generated report artifacts in S3-compatible storage.
package upload

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/oszuidwest/zwfm-volumecheck/internal/config"
	"github.com/oszuidwest/zwfm-volumecheck/internal/util"
)

const (
	uploadTimeout    = 5 * time.Minute
	uploadMaxRetries = 3
	retryInitialWait = 2 * time.Second
	retryMaxWait     = 30 * time.Second
)

// createS3Client creates an S3 client with the given configuration.
func createS3Client(cfg *config.S3Config) *s3.Client {
	creds := credentials.NewStaticCredentialsProvider(
		cfg.AccessKeyID,
		cfg.SecretAccessKey,
		"",
	)

	options := []func(*s3.Options){
		func(o *s3.Options) {
			o.Credentials = creds
			o.Region = "auto"
		},
	}

	if cfg.Endpoint != "" {
		options = append(options, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		})
	}

	return s3.New(s3.Options{}, options...)
}

// ReportKey builds the object key for a report uploaded at the given time.
// Keys are grouped by date so repeated runs do not overwrite each other.
func ReportKey(prefix, filename string, t time.Time) string {
	dated := fmt.Sprintf("%s/%s", t.Format("2006-01-02"), filename)
	if prefix == "" {
		return dated
	}
	return path.Join(prefix, dated)
}

// UploadReport uploads the report file at localPath to the configured bucket
// under key, retrying transient failures with exponential backoff. It returns
// the uploaded size in bytes.
func UploadReport(ctx context.Context, cfg *config.S3Config, localPath, key string) (int64, error) {
	if !cfg.IsConfigured() {
		return 0, fmt.Errorf("S3 upload is not configured")
	}

	info, err := os.Stat(localPath)
	if err != nil {
		return 0, util.WrapError("stat report file", err)
	}

	client := createS3Client(cfg)
	backoff := util.NewBackoff(retryInitialWait, retryMaxWait)

	var lastErr error
	for attempt := 1; attempt <= uploadMaxRetries; attempt++ {
		lastErr = putObject(ctx, client, cfg.Bucket, key, localPath, info.Size())
		if lastErr == nil {
			return info.Size(), nil
		}

		slog.Warn("report upload failed", "attempt", attempt, "max_attempts", uploadMaxRetries, "key", key, "error", lastErr)
		if attempt < uploadMaxRetries {
			select {
			case <-time.After(backoff.Next()):
			case <-ctx.Done():
				return 0, ctx.Err()
			}
		}
	}

	return 0, util.WrapError("upload report", lastErr)
}

// putObject performs a single PutObject attempt with its own timeout.
func putObject(ctx context.Context, client *s3.Client, bucket, key, localPath string, size int64) error {
	ctx, cancel := context.WithTimeoutCause(ctx, uploadTimeout, errors.New("s3 upload timeout"))
	defer cancel()

	file, err := os.Open(localPath)
	if err != nil {
		return util.WrapError("open report file", err)
	}
	defer util.SafeCloseFunc(file, "report file")()

	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          file,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"),
	})
	return err
}
