package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-d database file path (SQLite)
//	-media-dir media attachments directory
//	-sync-url backup service base URL
//	-sync-token backup service bearer token
//	-sync-interval background sync interval (e.g., "5m")
//	-retention-interval trash sweep interval (e.g., "1h")
//	-autosave-delay auto-save debounce delay (e.g., "2s")
//	-request-timeout backup request timeout (e.g., "15s")
//	-c/-config json file path with configs
func ParseFlags() *StructuredConfig {
	var databaseDSN string
	var mediaDir string
	var syncBaseURL string
	var syncToken string
	var syncInterval time.Duration
	var retentionInterval time.Duration
	var autosaveDelay time.Duration
	var requestTimeout time.Duration
	var jsonConfigPath string

	flag.StringVar(&databaseDSN, "d", "", "Database file path")
	flag.StringVar(&mediaDir, "media-dir", "", "Media attachments directory")
	flag.StringVar(&syncBaseURL, "sync-url", "", "Backup service base URL")
	flag.StringVar(&syncToken, "sync-token", "", "Backup service bearer token")
	flag.DurationVar(&syncInterval, "sync-interval", 0, "Background sync interval (e.g., 5m)")
	flag.DurationVar(&retentionInterval, "retention-interval", 0, "Trash sweep interval (e.g., 1h)")
	flag.DurationVar(&autosaveDelay, "autosave-delay", 0, "Auto-save debounce delay (e.g., 2s)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Backup request timeout (e.g., 15s)")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	flag.Parse()

	return &StructuredConfig{
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
			Media: Media{
				Dir: mediaDir,
			},
		},
		Sync: Sync{
			BaseURL:        syncBaseURL,
			Token:          syncToken,
			RequestTimeout: requestTimeout,
		},
		Workers: Workers{
			SyncInterval:      syncInterval,
			RetentionInterval: retentionInterval,
			AutosaveDelay:     autosaveDelay,
		},
		JSONFilePath: jsonConfigPath,
	}
}
