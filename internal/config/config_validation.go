package config

import (
	"fmt"
	"time"
)

// Defaults applied by validate for optional settings.
const (
	defaultSyncInterval      = 5 * time.Minute
	defaultRetentionInterval = time.Hour
	defaultAutosaveDelay     = 2 * time.Second
	defaultRequestTimeout    = 15 * time.Second
	defaultDatabasePath      = "notes.db"
	defaultMediaDir          = "media"
)

// validate fills in defaults for optional settings and rejects combinations
// that cannot work. Called by the builder after all sources are merged.
func (c *StructuredConfig) validate() error {
	if c.Storage.DB.DSN == "" {
		c.Storage.DB.DSN = defaultDatabasePath
	}
	if c.Storage.Media.Dir == "" {
		c.Storage.Media.Dir = defaultMediaDir
	}

	if c.Sync.BaseURL == "" && c.Sync.Token != "" {
		return fmt.Errorf("%w: sync token supplied without a base URL", ErrInvalidSyncConfigs)
	}
	if c.Sync.RequestTimeout <= 0 {
		c.Sync.RequestTimeout = defaultRequestTimeout
	}

	if c.Workers.SyncInterval <= 0 {
		c.Workers.SyncInterval = defaultSyncInterval
	}
	if c.Workers.RetentionInterval <= 0 {
		c.Workers.RetentionInterval = defaultRetentionInterval
	}
	if c.Workers.AutosaveDelay <= 0 {
		c.Workers.AutosaveDelay = defaultAutosaveDelay
	}

	return nil
}

// SyncEnabled reports whether a backup endpoint is configured.
func (c *StructuredConfig) SyncEnabled() bool {
	return c.Sync.BaseURL != ""
}
