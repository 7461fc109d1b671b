package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// EnvConfig mirrors Config for environment variables. It is seeded from the
// current Config before parsing, so unset variables keep earlier values.
type EnvConfig struct {
	EndpointAddrHTTP            string        `env:"ADDRESS"`
	DatabaseDSN                 string        `env:"DATABASE_DSN"`
	SecretKey                   string        `env:"JWT_SECRET"`
	AccessTokenValidityDuration time.Duration `env:"ACCESS_TOKEN_TTL"`
	HashWorkers                 int           `env:"HASH_WORKERS"`
	HashMemoryKiB               uint32        `env:"HASH_MEMORY_KIB"`
	HashIterations              uint32        `env:"HASH_ITERATIONS"`
	HashParallelism             uint8         `env:"HASH_PARALLELISM"`
	LogLevel                    string        `env:"LOG_LEVEL"`
	LogFormat                   string        `env:"LOG_FORMAT"`
	AllowedOrigins              []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
	ShutdownTimeout             time.Duration `env:"SHUTDOWN_TIMEOUT"`
}

// parseEnv loads envFile into the process environment (variables that are
// already set win; a missing file is fine) and then overlays environment
// variables onto config.
func parseEnv(config *Config, envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	c := EnvConfig{
		EndpointAddrHTTP:            config.EndpointAddrHTTP,
		DatabaseDSN:                 config.DatabaseDSN,
		SecretKey:                   config.SecretKey,
		AccessTokenValidityDuration: config.AccessTokenValidityDuration,
		HashWorkers:                 config.HashWorkers,
		HashMemoryKiB:               config.HashMemoryKiB,
		HashIterations:              config.HashIterations,
		HashParallelism:             config.HashParallelism,
		LogLevel:                    config.LogLevel,
		LogFormat:                   config.LogFormat,
		AllowedOrigins:              config.AllowedOrigins,
		ShutdownTimeout:             config.ShutdownTimeout,
	}
	if err := env.Parse(&c); err != nil {
		return err
	}

	config.EndpointAddrHTTP = c.EndpointAddrHTTP
	config.DatabaseDSN = c.DatabaseDSN
	config.SecretKey = c.SecretKey
	config.AccessTokenValidityDuration = c.AccessTokenValidityDuration
	config.HashWorkers = c.HashWorkers
	config.HashMemoryKiB = c.HashMemoryKiB
	config.HashIterations = c.HashIterations
	config.HashParallelism = c.HashParallelism
	config.LogLevel = c.LogLevel
	config.LogFormat = c.LogFormat
	config.AllowedOrigins = c.AllowedOrigins
	config.ShutdownTimeout = c.ShutdownTimeout
	return nil
}
