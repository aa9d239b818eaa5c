package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/mod/semver"
)

const (
	defaultUpdateCheckInterval  = 12 * time.Hour
	defaultUpdateRequestTimeout = 15 * time.Second
)

// ReleaseInfo contains release metadata surfaced to the user.
type ReleaseInfo struct {
	Version     string
	HTMLURL     string
	PublishedAt time.Time
}

// UpdateSnapshot stores one successful update check result.
type UpdateSnapshot struct {
	CurrentVersion  string
	Latest          ReleaseInfo
	UpdateAvailable bool
	CheckedAt       time.Time
}

// UpdateCheckerConfig customizes update checker behavior.
type UpdateCheckerConfig struct {
	CurrentVersion string
	Endpoint       string
	HTTPClient     *http.Client
	Interval       time.Duration
	Logger         *slog.Logger
}

// UpdateChecker periodically fetches releases from a JSON endpoint and
// publishes update snapshots. Check failures are logged and skipped.
type UpdateChecker struct {
	currentVersion string
	endpoint       string
	client         *http.Client
	interval       time.Duration
	logger         *slog.Logger

	snapshots chan UpdateSnapshot

	mu          sync.RWMutex
	latest      UpdateSnapshot
	latestKnown bool

	startOnce sync.Once
}

type releasePayload struct {
	TagName     string    `json:"tag_name"`
	HTMLURL     string    `json:"html_url"`
	PublishedAt time.Time `json:"published_at"`
}

func NewUpdateChecker(cfg UpdateCheckerConfig) *UpdateChecker {
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultUpdateRequestTimeout}
	}
	interval := cfg.Interval
	if interval <= 0 {
		interval = defaultUpdateCheckInterval
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &UpdateChecker{
		currentVersion: strings.TrimSpace(cfg.CurrentVersion),
		endpoint:       strings.TrimSpace(cfg.Endpoint),
		client:         client,
		interval:       interval,
		logger:         logger,
		snapshots:      make(chan UpdateSnapshot, 1),
	}
}

func (c *UpdateChecker) Start(ctx context.Context) {
	if c == nil || c.endpoint == "" {
		return
	}

	c.startOnce.Do(func() {
		go c.run(ctx)
	})
}

func (c *UpdateChecker) Snapshots() <-chan UpdateSnapshot {
	if c == nil {
		return nil
	}

	return c.snapshots
}

func (c *UpdateChecker) CurrentSnapshot() (UpdateSnapshot, bool) {
	if c == nil {
		return UpdateSnapshot{}, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.latest, c.latestKnown
}

func (c *UpdateChecker) run(ctx context.Context) {
	c.logger.Info("update checker started", "endpoint", c.endpoint, "interval", c.interval.String())

	if err := c.checkAndPublish(ctx); err != nil {
		c.logger.Warn("check for updates", "error", err)
	}

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("update checker stopped")

			return
		case <-ticker.C:
			if err := c.checkAndPublish(ctx); err != nil {
				c.logger.Warn("check for updates", "error", err)
			}
		}
	}
}

func (c *UpdateChecker) checkAndPublish(ctx context.Context) error {
	latest, err := c.fetchLatestRelease(ctx)
	if err != nil {
		return err
	}

	snapshot := UpdateSnapshot{
		CurrentVersion:  c.currentVersion,
		Latest:          latest,
		UpdateAvailable: isReleaseNewer(c.currentVersion, latest.Version),
		CheckedAt:       time.Now().UTC(),
	}

	c.mu.Lock()
	c.latest = snapshot
	c.latestKnown = true
	c.mu.Unlock()

	c.publish(snapshot)
	c.logger.Info(
		"update check completed",
		"current_version", snapshot.CurrentVersion,
		"latest_version", snapshot.Latest.Version,
		"update_available", snapshot.UpdateAvailable,
	)

	return nil
}

// publish keeps the channel holding only the newest snapshot.
func (c *UpdateChecker) publish(snapshot UpdateSnapshot) {
	select {
	case c.snapshots <- snapshot:
		return
	default:
	}

	select {
	case <-c.snapshots:
	default:
	}

	select {
	case c.snapshots <- snapshot:
	default:
	}
}

func (c *UpdateChecker) fetchLatestRelease(ctx context.Context) (ReleaseInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return ReleaseInfo{}, fmt.Errorf("create releases request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return ReleaseInfo{}, fmt.Errorf("request releases: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))

		return ReleaseInfo{}, fmt.Errorf("request releases: unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload []releasePayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return ReleaseInfo{}, fmt.Errorf("decode releases response: %w", err)
	}

	for _, item := range payload {
		version := strings.TrimSpace(item.TagName)
		if version == "" {
			continue
		}

		return ReleaseInfo{
			Version:     version,
			HTMLURL:     strings.TrimSpace(item.HTMLURL),
			PublishedAt: item.PublishedAt,
		}, nil
	}

	return ReleaseInfo{}, fmt.Errorf("release API response contains no usable release")
}

func isReleaseNewer(currentVersion, latestVersion string) bool {
	latest := normalizeSemver(latestVersion)
	if !semver.IsValid(latest) {
		return false
	}

	current := normalizeSemver(currentVersion)
	if !semver.IsValid(current) {
		return true
	}

	return semver.Compare(current, latest) < 0
}

func normalizeSemver(version string) string {
	trimmed := strings.TrimSpace(version)
	if trimmed == "" {
		return ""
	}
	if !strings.HasPrefix(trimmed, "v") {
		return "v" + trimmed
	}

	return trimmed
}
