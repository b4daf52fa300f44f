package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/folio/internal/client/client"
	"github.com/dmitrijs2005/folio/internal/filex"
	"github.com/dmitrijs2005/folio/internal/logging"
)

// Config holds runtime settings for the folio CLI.
//
// Fields:
//   - APIBaseURL: scheme://host[:port] of the backend API.
//   - SiteURL: public site used to build shareable profile links.
//   - StorePath: SQLite file holding the persisted session.
//   - StoreSecret: when set, session blobs are sealed with a key derived from it.
//   - SessionTTL: lifetime of a persisted session.
//   - RequestTimeout: per-request bound; 0 leaves it to the transport.
//   - PortfolioPath: endpoint serving the signed-in user's portfolio.
//   - LogLevel, LogBackend: see package logging.
type Config struct {
	APIBaseURL     string        `env:"API_BASE_URL"`
	SiteURL        string        `env:"SITE_URL"`
	StorePath      string        `env:"STORE_PATH"`
	StoreSecret    string        `env:"STORE_SECRET"`
	SessionTTL     time.Duration `env:"SESSION_TTL"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
	PortfolioPath  string        `env:"PORTFOLIO_PATH"`
	LogLevel       string        `env:"LOG_LEVEL"`
	LogBackend     string        `env:"LOG_BACKEND"`
}

const appName = "folio"

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = client.DefaultBaseURL
	c.SiteURL = "http://localhost:3000"
	c.StorePath = filepath.Join(filex.DataDir(appName), "session.db")
	c.StoreSecret = ""
	c.SessionTTL = 24 * time.Hour
	c.RequestTimeout = 0
	c.PortfolioPath = client.DefaultPortfolioPath
	c.LogLevel = string(logging.LevelInfo)
	c.LogBackend = "slog"
}

// Validate reports the first setting that cannot work.
func (c *Config) Validate() error {
	for name, raw := range map[string]string{"api_base_url": c.APIBaseURL, "site_url": c.SiteURL} {
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%s: %q is not an http(s) URL", name, raw)
		}
	}
	if c.StorePath == "" {
		return fmt.Errorf("store_path is empty")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("session_ttl must be positive, got %s", c.SessionTTL)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request_timeout must not be negative, got %s", c.RequestTimeout)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogBackend {
	case "slog", "zap":
	default:
		return fmt.Errorf("log_backend: unknown backend %q", c.LogBackend)
	}
	return nil
}

// Load builds a Config from args (without the program name). Sources are
// applied in order, later ones winning: defaults, environment (with an
// optional dotenv file), JSON file, flags.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseEnv(cfg, args, os.Environ()); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}
	if err := parseJSON(cfg, args); err != nil {
		return nil, fmt.Errorf("json config: %w", err)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig is Load over os.Args.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}
