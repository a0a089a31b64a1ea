package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/inmobix/internal/flagx"
)

var configFlags = flagx.WithLongForms("a", "api", "d", "db", "r", "reports", "l", "log-level")

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a, --api string         backend base URL
//	-d, --db string          local database file
//	-r, --reports string     reports directory
//	-l, --log-level string   debug, info, warn or error
//
// args are filtered with flagx.FilterArgs first, so subcommands and cobra
// flags pass through untouched.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "backend base URL")
	fs.StringVar(&cfg.APIBaseURL, "api", cfg.APIBaseURL, "backend base URL")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "local database file")
	fs.StringVar(&cfg.DatabasePath, "db", cfg.DatabasePath, "local database file")
	fs.StringVar(&cfg.ReportsDir, "r", cfg.ReportsDir, "reports directory")
	fs.StringVar(&cfg.ReportsDir, "reports", cfg.ReportsDir, "reports directory")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")

	return fs.Parse(flagx.FilterArgs(args, configFlags))
}
