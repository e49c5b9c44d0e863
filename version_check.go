package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"golang.org/x/mod/semver"

	"github.com/oszuidwest/zwfm-volumecheck/internal/types"
	"github.com/oszuidwest/zwfm-volumecheck/internal/util"
)

// Build-time variables, set via -ldflags.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

const (
	githubRepo          = "oszuidwest/zwfm-volumecheck"
	versionCheckTimeout = 10 * time.Second
)

// githubRelease represents a release with version and status information.
type githubRelease struct {
	TagName    string `json:"tag_name"`
	Draft      bool   `json:"draft"`
	Prerelease bool   `json:"prerelease"`
}

// versionInfo returns version info for the running binary, with a best-effort
// check against the latest published release. Network failures leave the
// latest-release fields empty rather than erroring.
func versionInfo(ctx context.Context) types.VersionInfo {
	current := normalizeVersion(Version)
	info := types.VersionInfo{
		Current:   current,
		Commit:    Commit,
		BuildTime: util.FormatHumanTime(BuildTime),
	}

	latest, err := checkLatestRelease(ctx)
	if err != nil || latest == "" {
		return info
	}

	info.Latest = latest
	if current != "dev" && current != "unknown" {
		info.UpdateAvail = isNewerVersion(latest, current)
	}
	return info
}

// checkLatestRelease retrieves the latest non-draft release tag from GitHub.
func checkLatestRelease(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeoutCause(ctx, versionCheckTimeout, errors.New("github API request timeout"))
	defer cancel()

	url := "https://api.github.com/repos/" + githubRepo + "/releases/latest"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return "", err
	}

	// Set required GitHub API headers.
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", "zwfm-volumecheck/"+Version)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer util.SafeCloseFunc(resp.Body, "github response body")()

	if resp.StatusCode != http.StatusOK {
		return "", errors.New("github API returned " + resp.Status)
	}

	var release githubRelease
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", err
	}
	if release.Draft || release.Prerelease {
		return "", nil
	}
	return normalizeVersion(release.TagName), nil
}

// normalizeVersion returns a normalized version string.
func normalizeVersion(v string) string {
	return strings.TrimPrefix(strings.TrimSpace(v), "v")
}

// canonicalVersion returns the version in canonical semver format.
func canonicalVersion(v string) string {
	v = strings.TrimSpace(v)
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}

// isNewerVersion reports whether latest is newer than current.
func isNewerVersion(latest, current string) bool {
	return semver.Compare(canonicalVersion(latest), canonicalVersion(current)) > 0
}
