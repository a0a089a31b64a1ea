package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/inmobix/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify the timeout either as
// a string like "10s" or as integer nanoseconds. Pointer fields tell an
// absent key apart from a zero value.
type JsonConfig struct {
	APIBaseURL     string          `json:"api_base_url"`
	DatabasePath   string          `json:"database_path"`
	ReportsDir     string          `json:"reports_dir"`
	LogLevel       string          `json:"log_level"`
	LogPretty      *bool           `json:"log_pretty"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
}

// parseJson overlays cfg with the keys present in the JSON file at path.
// An empty path is a no-op.
func parseJson(cfg *Config, path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&cfg.APIBaseURL, jc.APIBaseURL)
	setString(&cfg.DatabasePath, jc.DatabasePath)
	setString(&cfg.ReportsDir, jc.ReportsDir)
	setString(&cfg.LogLevel, jc.LogLevel)
	if jc.LogPretty != nil {
		cfg.LogPretty = *jc.LogPretty
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
