package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/gophprofile/internal/timex"
)

// JsonConfig is the on-disk JSON shape of Config. Duration fields accept
// both "15m"-style strings and integer nanoseconds. Absent fields leave the
// corresponding Config value untouched.
type JsonConfig struct {
	EndpointAddrHTTP            string         `json:"endpoint_addr_http"`
	DatabaseDSN                 string         `json:"database_dsn"`
	SecretKey                   string         `json:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`
	HashWorkers                 int            `json:"hash_workers"`
	HashMemoryKiB               uint32         `json:"hash_memory_kib"`
	HashIterations              uint32         `json:"hash_iterations"`
	HashParallelism             uint8          `json:"hash_parallelism"`
	LogLevel                    string         `json:"log_level"`
	LogFormat                   string         `json:"log_format"`
	AllowedOrigins              []string       `json:"allowed_origins"`
	ShutdownTimeout             timex.Duration `json:"shutdown_timeout"`
}

// parseJson overlays values from the JSON file at path onto config.
// An empty path means no JSON file was requested.
func parseJson(config *Config, path string) error {
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return err
	}

	if c.EndpointAddrHTTP != "" {
		config.EndpointAddrHTTP = c.EndpointAddrHTTP
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.AccessTokenValidityDuration.Duration != 0 {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.HashWorkers != 0 {
		config.HashWorkers = c.HashWorkers
	}
	if c.HashMemoryKiB != 0 {
		config.HashMemoryKiB = c.HashMemoryKiB
	}
	if c.HashIterations != 0 {
		config.HashIterations = c.HashIterations
	}
	if c.HashParallelism != 0 {
		config.HashParallelism = c.HashParallelism
	}
	if c.LogLevel != "" {
		config.LogLevel = c.LogLevel
	}
	if c.LogFormat != "" {
		config.LogFormat = c.LogFormat
	}
	if len(c.AllowedOrigins) > 0 {
		config.AllowedOrigins = c.AllowedOrigins
	}
	if c.ShutdownTimeout.Duration != 0 {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
	return nil
}
