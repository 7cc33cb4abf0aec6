package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON_Success(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	p := filepath.Join(dir, "config.json")

	jsonBody := `{
		"app": { "version": "2.0.0" },
		"storage": {
			"db": { "dsn": "notes.db" },
			"media": { "dir": "/var/media" }
		},
		"sync": {
			"base_url": "https://backup.example.com",
			"token": "tok",
			"request_timeout": "30s"
		},
		"workers": {
			"sync_interval": "5m",
			"retention_interval": "1h",
			"autosave_delay": "2s"
		}
	}`

	require.NoError(t, os.WriteFile(p, []byte(jsonBody), 0o600))

	// Act
	cfg, err := parseJSON(p)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "2.0.0", cfg.App.Version)
	assert.Equal(t, "notes.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "/var/media", cfg.Storage.Media.Dir)
	assert.Equal(t, "https://backup.example.com", cfg.Sync.BaseURL)
	assert.Equal(t, "tok", cfg.Sync.Token)
	assert.Equal(t, 30*time.Second, cfg.Sync.RequestTimeout)
	assert.Equal(t, 5*time.Minute, cfg.Workers.SyncInterval)
	assert.Equal(t, time.Hour, cfg.Workers.RetentionInterval)
	assert.Equal(t, 2*time.Second, cfg.Workers.AutosaveDelay)
}

func TestParseJSON_NumericDuration(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "config.json")

	// Durations may also arrive as raw nanosecond numbers.
	jsonBody := `{"workers": {"sync_interval": 60000000000}}`
	require.NoError(t, os.WriteFile(p, []byte(jsonBody), 0o600))

	cfg, err := parseJSON(p)
	require.NoError(t, err)
	assert.Equal(t, time.Minute, cfg.Workers.SyncInterval)
}

func TestParseJSON_FileNotFound(t *testing.T) {
	_, err := parseJSON("/no/such/config.json")
	require.Error(t, err)
}

func TestParseJSON_MalformedJSON(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"storage": `), 0o600))

	_, err := parseJSON(p)
	require.Error(t, err)
}
