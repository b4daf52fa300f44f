// Package config loads runtime configuration for the folio CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables with the FOLIO_ prefix (see parseEnv). A dotenv
//     file named by -e/-env, or ./.env when present, supplies variables the
//     process environment leaves unset.
//  3. Optional JSON file (see parseJSON) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string     backend API base URL
//	-s string     public site URL
//	-d string     session database path
//	-t duration   per-request timeout
//	-l string     log level
//
// # JSON schema
//
// Durations can be strings like "24h" or integer nanoseconds:
//
//	{
//	  "api_base_url": "http://127.0.0.1:9090",
//	  "site_url": "https://folio.example",
//	  "store_path": "/home/me/.config/folio/session.db",
//	  "store_secret": "",
//	  "session_ttl": "24h",
//	  "request_timeout": "15s",
//	  "portfolio_path": "/api/portfolio/profiles/me/",
//	  "log_level": "info",
//	  "log_backend": "slog"
//	}
//
// Environment variables use the same names, upper-cased and prefixed:
// FOLIO_API_BASE_URL, FOLIO_STORE_SECRET and so on.
package config
