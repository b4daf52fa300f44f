package config

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/caarlos0/env/v10"
	"github.com/dmitrijs2005/folio/internal/flagx"
	"github.com/joho/godotenv"
)

const (
	envPrefix      = "FOLIO_"
	defaultEnvFile = ".env"
)

// parseEnv overlays cfg with FOLIO_* variables. Values from a dotenv file
// (-e/-env, else ./.env when present) fill in variables the process
// environment does not set. An explicitly named file must exist.
func parseEnv(cfg *Config, args []string, environ []string) error {
	vars := toMap(environ)

	path := flagx.EnvFilePath(args)
	explicit := path != ""
	if !explicit {
		path = defaultEnvFile
	}
	fileVars, err := godotenv.Read(path)
	switch {
	case err == nil:
		for k, v := range fileVars {
			if _, set := vars[k]; !set {
				vars[k] = v
			}
		}
	case explicit || !errors.Is(err, fs.ErrNotExist):
		return err
	}

	return env.ParseWithOptions(cfg, env.Options{Prefix: envPrefix, Environment: vars})
}

func toMap(environ []string) map[string]string {
	m := make(map[string]string, len(environ))
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok {
			m[k] = v
		}
	}
	return m
}
