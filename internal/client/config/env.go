package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

const envPrefix = "INMOBIX_"

// EnvConfig is the DTO for environment variables. Names are given without
// the INMOBIX_ prefix. Empty values leave Config untouched.
type EnvConfig struct {
	APIBaseURL     string        `env:"API_URL"`
	DatabasePath   string        `env:"DB_PATH"`
	ReportsDir     string        `env:"REPORTS_DIR"`
	LogLevel       string        `env:"LOG_LEVEL"`
	LogPretty      string        `env:"LOG_PRETTY"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// envLookuper resolves variables from the process environment first and
// from the dotenv file second. A missing dotenv file is not an error.
func envLookuper(dotenvPath string) (envconfig.Lookuper, error) {
	values, err := godotenv.Read(dotenvPath)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read %s: %w", dotenvPath, err)
	}
	return envconfig.MultiLookuper(envconfig.OsLookuper(), envconfig.MapLookuper(values)), nil
}

func parseEnv(ctx context.Context, cfg *Config, lookuper envconfig.Lookuper) error {
	var ec EnvConfig
	err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &ec,
		Lookuper: envconfig.PrefixLookuper(envPrefix, lookuper),
	})
	if err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}

	setString(&cfg.APIBaseURL, ec.APIBaseURL)
	setString(&cfg.DatabasePath, ec.DatabasePath)
	setString(&cfg.ReportsDir, ec.ReportsDir)
	setString(&cfg.LogLevel, ec.LogLevel)
	if ec.LogPretty != "" {
		pretty, err := strconv.ParseBool(ec.LogPretty)
		if err != nil {
			return fmt.Errorf("parse %sLOG_PRETTY: %w", envPrefix, err)
		}
		cfg.LogPretty = pretty
	}
	if ec.RequestTimeout > 0 {
		cfg.RequestTimeout = ec.RequestTimeout
	}
	return nil
}
