// Package config loads runtime configuration for the gophprofile CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment variables (see parseEnv).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string            GraphQL endpoint URL
//	-token-file string   file holding the current access token
//	-t int               request timeout (seconds)
//
// Environment
//
//	GOPHPROFILE_SERVER_URL, GOPHPROFILE_TOKEN_FILE, GOPHPROFILE_TIMEOUT (e.g. "5s")
//
// # JSON schema
//
//	{
//	  "server_url": "http://127.0.0.1:8080/graphql",
//	  "token_file": "/home/me/.gophprofile_token",
//	  "request_timeout": "10s"
//	}
package config
