package config

import (
	"context"
	"os"
	"time"

	"github.com/dmitrijs2005/inmobix/internal/flagx"
)

// Config holds runtime settings for the inmobix client.
//
// Fields:
//   - APIBaseURL: backend origin; the client appends "/api" itself.
//   - DatabasePath: SQLite file holding the durable session.
//   - ReportsDir: directory downloaded reports are written to.
//   - LogLevel, LogPretty: zerolog level and console output switch.
//   - RequestTimeout: per-request HTTP timeout; zero leaves requests unbounded.
type Config struct {
	APIBaseURL     string
	DatabasePath   string
	ReportsDir     string
	LogLevel       string
	LogPretty      bool
	RequestTimeout time.Duration
}

// DotEnvFile is read when present in the working directory.
const DotEnvFile = ".env"

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8080"
	c.DatabasePath = "inmobix.db"
	c.ReportsDir = "reports"
	c.LogLevel = "warn"
	c.LogPretty = true
	c.RequestTimeout = 0
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if -c is given), the environment (INMOBIX_* variables, with .env as
// a fallback) and command-line flags. Later sources take precedence over
// earlier ones.
func LoadConfig(ctx context.Context) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, flagx.ConfigFile()); err != nil {
		return nil, err
	}

	lookuper, err := envLookuper(DotEnvFile)
	if err != nil {
		return nil, err
	}
	if err := parseEnv(ctx, cfg, lookuper); err != nil {
		return nil, err
	}

	if err := parseFlags(cfg, os.Args[1:]); err != nil {
		return nil, err
	}
	return cfg, nil
}
