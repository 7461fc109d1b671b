package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/gophprofile/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
type JsonConfig struct {
	ServerURL      string         `json:"server_url"`
	TokenFile      string         `json:"token_file"`
	RequestTimeout timex.Duration `json:"request_timeout"`
}

// parseJson overlays cfg with values loaded from the JSON file at path.
// Fields missing from the file keep their current values.
func parseJson(cfg *Config, path string) error {
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

	if jc.ServerURL != "" {
		cfg.ServerURL = jc.ServerURL
	}
	if jc.TokenFile != "" {
		cfg.TokenFile = jc.TokenFile
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	return nil
}
