package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/folio/internal/flagx"
	"github.com/dmitrijs2005/folio/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify intervals either as
// strings like "30s" or as integer nanoseconds.
type JsonConfig struct {
	APIBaseURL     string          `json:"api_base_url"`
	SiteURL        string          `json:"site_url"`
	StorePath      string          `json:"store_path"`
	StoreSecret    string          `json:"store_secret"`
	SessionTTL     *timex.Duration `json:"session_ttl"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	PortfolioPath  string          `json:"portfolio_path"`
	LogLevel       string          `json:"log_level"`
	LogBackend     string          `json:"log_backend"`
}

// parseJSON overlays cfg with the keys present in the file named by -c or
// -config. Keys missing from the file leave cfg untouched.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.JSONConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return err
	}

	setIf(&cfg.APIBaseURL, jc.APIBaseURL)
	setIf(&cfg.SiteURL, jc.SiteURL)
	setIf(&cfg.StorePath, jc.StorePath)
	setIf(&cfg.StoreSecret, jc.StoreSecret)
	setIf(&cfg.PortfolioPath, jc.PortfolioPath)
	setIf(&cfg.LogLevel, jc.LogLevel)
	setIf(&cfg.LogBackend, jc.LogBackend)
	if jc.SessionTTL != nil {
		cfg.SessionTTL = jc.SessionTTL.Duration
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	return nil
}

func setIf(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
