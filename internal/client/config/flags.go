package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/folio/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string     backend API base URL
//	-s string     public site URL
//	-d string     session database path
//	-t duration   per-request timeout (e.g. 10s; 0 = transport default)
//	-l string     log level
//	-b string     log backend (slog or zap)
//	-p string     portfolio endpoint path
//	-ttl duration lifetime of a persisted session
//
// args are filtered with flagx.FilterArgs first so that flags owned by other
// loaders (-c, -e) do not trip the parser.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-s", "-d", "-t", "-l", "-b", "-p", "-ttl"})

	fs := flag.NewFlagSet("folio", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "backend API base URL")
	fs.StringVar(&cfg.SiteURL, "s", cfg.SiteURL, "public site URL for profile links")
	fs.StringVar(&cfg.StorePath, "d", cfg.StorePath, "session database path")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "per-request timeout")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogBackend, "b", cfg.LogBackend, "log backend (slog, zap)")
	fs.StringVar(&cfg.PortfolioPath, "p", cfg.PortfolioPath, "portfolio endpoint path")
	fs.DurationVar(&cfg.SessionTTL, "ttl", cfg.SessionTTL, "lifetime of a persisted session")

	return fs.Parse(args)
}
