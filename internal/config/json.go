package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type StructuredJSONConfig struct {
	App struct {
		Version string `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		Media struct {
			Dir string `json:"dir"`
		} `json:"media,omitempty"`
	} `json:"storage,omitempty"`

	Sync struct {
		BaseURL        string   `json:"base_url"`
		Token          string   `json:"token"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"sync,omitempty"`

	Workers struct {
		SyncInterval      Duration `json:"sync_interval"`
		RetentionInterval Duration `json:"retention_interval"`
		AutosaveDelay     Duration `json:"autosave_delay"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Version: jsonCfg.App.Version,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
			Media: Media{
				Dir: jsonCfg.Storage.Media.Dir,
			},
		},
		Sync: Sync{
			BaseURL:        jsonCfg.Sync.BaseURL,
			Token:          jsonCfg.Sync.Token,
			RequestTimeout: time.Duration(jsonCfg.Sync.RequestTimeout),
		},
		Workers: Workers{
			SyncInterval:      time.Duration(jsonCfg.Workers.SyncInterval),
			RetentionInterval: time.Duration(jsonCfg.Workers.RetentionInterval),
			AutosaveDelay:     time.Duration(jsonCfg.Workers.AutosaveDelay),
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
