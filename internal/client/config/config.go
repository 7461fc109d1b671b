package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/gophprofile/internal/flagx"
)

const tokenFileName = ".gophprofile_token"

// Config holds runtime settings for the gophprofile CLI.
type Config struct {
	ServerURL      string
	TokenFile      string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080/graphql"
	c.TokenFile = defaultTokenFile()
	c.RequestTimeout = 10 * time.Second
}

func defaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return tokenFileName
	}
	return filepath.Join(home, tokenFileName)
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() (*Config, error) {
	args := os.Args[1:]
	src := flagx.ParseConfigSources(args)

	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, src.JSONPath); err != nil {
		return nil, fmt.Errorf("json config: %w", err)
	}
	if err := parseEnv(cfg); err != nil {
		return nil, fmt.Errorf("env config: %w", err)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	return cfg, nil
}
