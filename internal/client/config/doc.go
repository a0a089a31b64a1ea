// Package config loads runtime configuration for the inmobix client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or --config.
//  3. Environment variables prefixed INMOBIX_, falling back to a .env file
//     in the working directory.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a, --api string         backend base URL
//	-d, --db string          local database file
//	-r, --reports string     reports directory
//	-l, --log-level string   log level
//
// # JSON schema
//
//	{
//	  "api_base_url": "http://localhost:8080",
//	  "database_path": "inmobix.db",
//	  "reports_dir": "reports",
//	  "log_level": "info",
//	  "log_pretty": true,
//	  "request_timeout": "15s"
//	}
//
// # Environment
//
//	INMOBIX_API_URL, INMOBIX_DB_PATH, INMOBIX_REPORTS_DIR,
//	INMOBIX_LOG_LEVEL, INMOBIX_LOG_PRETTY, INMOBIX_REQUEST_TIMEOUT
package config
