package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"
)

// MaxPageSizeProperty is the configuration property capping the page size
// of push notification config listings. The env var spelling maps dots
// and dashes to underscores.
const MaxPageSizeProperty = "a2a.push-notification-config.max-page-size"

// maxPageSizeEnv is the environment spelling of MaxPageSizeProperty.
const maxPageSizeEnv = "A2A_PUSH_NOTIFICATION_CONFIG_MAX_PAGE_SIZE"

// DefaultMaxPageSize is used when the property is absent or unparsable.
const DefaultMaxPageSize = 100

type Config struct {
	DatabaseURL string // PUSHCONFIG_DATABASE_URL (required)
	HTTPAddr    string // PUSHCONFIG_HTTP_ADDR (default ":8080")
	NATSURL     string // PUSHCONFIG_NATS_URL (optional, empty = no events)
	AuthToken   string // PUSHCONFIG_AUTH_TOKEN (optional, empty = auth disabled)

	// MaxPageSize caps ListInfo page sizes; see MaxPageSizeProperty.
	MaxPageSize int

	// Backup sync settings
	SyncInterval   time.Duration // PUSHCONFIG_SYNC_INTERVAL (default 3m; 0 = disabled)
	SyncS3Bucket   string        // PUSHCONFIG_SYNC_S3_BUCKET (enables S3 when set)
	SyncS3Endpoint string        // PUSHCONFIG_SYNC_S3_ENDPOINT (custom endpoint for MinIO)
	SyncS3Region   string        // PUSHCONFIG_SYNC_S3_REGION (default "us-east-1")
	SyncS3Key      string        // PUSHCONFIG_SYNC_S3_KEY (default "pushconfig/backup.jsonl")
	SyncGitRepo    string        // PUSHCONFIG_SYNC_GIT_REPO (path to a local clone; enables git when set)
	SyncGitFile    string        // PUSHCONFIG_SYNC_GIT_FILE (default "pushconfigs.jsonl")
	SyncGitBranch  string        // PUSHCONFIG_SYNC_GIT_BRANCH (default "main")
}

func Load() (*Config, error) {
	c := &Config{
		DatabaseURL:    os.Getenv("PUSHCONFIG_DATABASE_URL"),
		HTTPAddr:       envOrDefault("PUSHCONFIG_HTTP_ADDR", ":8080"),
		NATSURL:        os.Getenv("PUSHCONFIG_NATS_URL"),
		AuthToken:      os.Getenv("PUSHCONFIG_AUTH_TOKEN"),
		MaxPageSize:    loadMaxPageSize(),
		SyncS3Bucket:   os.Getenv("PUSHCONFIG_SYNC_S3_BUCKET"),
		SyncS3Endpoint: os.Getenv("PUSHCONFIG_SYNC_S3_ENDPOINT"),
		SyncS3Region:   envOrDefault("PUSHCONFIG_SYNC_S3_REGION", "us-east-1"),
		SyncS3Key:      envOrDefault("PUSHCONFIG_SYNC_S3_KEY", "pushconfig/backup.jsonl"),
		SyncGitRepo:    os.Getenv("PUSHCONFIG_SYNC_GIT_REPO"),
		SyncGitFile:    envOrDefault("PUSHCONFIG_SYNC_GIT_FILE", "pushconfigs.jsonl"),
		SyncGitBranch:  envOrDefault("PUSHCONFIG_SYNC_GIT_BRANCH", "main"),
	}
	if c.DatabaseURL == "" {
		return nil, fmt.Errorf("PUSHCONFIG_DATABASE_URL is required")
	}

	intervalStr := envOrDefault("PUSHCONFIG_SYNC_INTERVAL", "3m")
	if intervalStr != "" {
		d, err := time.ParseDuration(intervalStr)
		if err != nil {
			return nil, fmt.Errorf("PUSHCONFIG_SYNC_INTERVAL: %w", err)
		}
		c.SyncInterval = d
	}

	return c, nil
}

// loadMaxPageSize reads the max-page-size property once. A missing or
// invalid value is not fatal: it logs a warning and falls back to the
// default.
func loadMaxPageSize() int {
	raw := os.Getenv(maxPageSizeEnv)
	if raw == "" {
		return DefaultMaxPageSize
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		slog.Warn("failed to read or parse max page size configuration, falling back to default",
			"property", MaxPageSizeProperty, "value", raw, "default", DefaultMaxPageSize)
		return DefaultMaxPageSize
	}
	return n
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
