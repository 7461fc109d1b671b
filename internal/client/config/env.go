package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type envConfig struct {
	ServerURL      string        `env:"GOPHPROFILE_SERVER_URL"`
	TokenFile      string        `env:"GOPHPROFILE_TOKEN_FILE"`
	RequestTimeout time.Duration `env:"GOPHPROFILE_TIMEOUT"`
}

// parseEnv overlays cfg with the GOPHPROFILE_* environment variables.
func parseEnv(cfg *Config) error {
	c := envConfig{
		ServerURL:      cfg.ServerURL,
		TokenFile:      cfg.TokenFile,
		RequestTimeout: cfg.RequestTimeout,
	}
	if err := env.Parse(&c); err != nil {
		return err
	}
	cfg.ServerURL = c.ServerURL
	cfg.TokenFile = c.TokenFile
	cfg.RequestTimeout = c.RequestTimeout
	return nil
}
