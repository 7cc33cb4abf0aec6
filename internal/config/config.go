// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Artyom Voskresensky

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// note-locker application. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line
// flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the version string.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the local persistence backends: the
	// SQLite database and the media file directory.
	Storage Storage `envPrefix:"STORAGE_"`

	// Sync holds configuration for the optional cloud-backup transport.
	Sync Sync `envPrefix:"SYNC_"`

	// Workers holds configuration for background jobs: periodic sync, the
	// trash retention sweep, and the auto-save debounce.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Version is the semantic version string of the running application
	// (e.g. "1.2.3").
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage groups the configuration for the local persistence backends.
type Storage struct {
	// DB holds the local database connection settings.
	DB DB `envPrefix:"DB_"`

	// Media holds the file-system settings for note media attachments.
	Media Media `envPrefix:"MEDIA_"`
}

// DB holds connection settings for the local SQLite database.
type DB struct {
	// DSN is the SQLite file path (e.g. "notes.db").
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Media holds file-system settings for note media attachments.
type Media struct {
	// Dir is the directory where media files referenced by notes are
	// stored. Purging a note removes its referenced files from here.
	// Env: STORAGE_MEDIA_DIR
	Dir string `env:"DIR"`
}

// Sync holds settings for the optional cloud-backup transport. Local data
// is authoritative; an empty BaseURL disables sync entirely.
type Sync struct {
	// BaseURL is the backup service endpoint (e.g. "https://backup.example.com").
	// Env: SYNC_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// Token is the bearer token presented to the backup service.
	// Env: SYNC_TOKEN
	Token string `env:"TOKEN"`

	// RequestTimeout is the per-request timeout for backup calls
	// (e.g. "15s").
	// Env: SYNC_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds configuration for background jobs.
type Workers struct {
	// SyncInterval is how often the opportunistic full sync runs.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`

	// RetentionInterval is how often the trash retention sweep runs.
	// Env: WORKERS_RETENTION_INTERVAL
	RetentionInterval time.Duration `env:"RETENTION_INTERVAL"`

	// AutosaveDelay is the debounce delay between the last edit and the
	// automatic save it triggers.
	// Env: WORKERS_AUTOSAVE_DELAY
	AutosaveDelay time.Duration `env:"AUTOSAVE_DELAY"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
