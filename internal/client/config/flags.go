package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/gophprofile/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
// args is filtered with flagx.FilterArgs to avoid interference with flags
// owned by other components.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-token-file", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "GraphQL endpoint URL")
	fs.StringVar(&cfg.TokenFile, "token-file", cfg.TokenFile, "file holding the access token")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
	return nil
}
