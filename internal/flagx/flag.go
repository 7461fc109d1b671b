// Package flagx parses the subset of command-line flags a component owns
// without tripping over flags registered elsewhere (e.g. by `go test`).
package flagx

import (
	"flag"
	"io"
	"strings"
)

// DefaultEnvFile is the dotenv file read when -env-file is not given.
const DefaultEnvFile = ".env"

// FilterArgs returns the arguments that belong to allowedFlags, together with
// their values. Both "-f value" and "-f=value" forms are recognized; a token
// starting with "-" is never consumed as a value.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name := strings.SplitN(arg, "=", 2)[0]
			if _, ok := allowed[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := allowed[arg]; ok {
			filtered = append(filtered, arg)
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				filtered = append(filtered, args[i+1])
				i++
			}
		}
	}

	return filtered
}

// ConfigSources are the configuration files named on the command line.
type ConfigSources struct {
	// JSONPath comes from -c / -config; empty means no JSON file.
	JSONPath string
	// EnvFile comes from -env-file; defaults to DefaultEnvFile.
	EnvFile string
}

// ParseConfigSources extracts -c, -config and -env-file from args
// (usually os.Args[1:]). Other arguments are ignored.
func ParseConfigSources(args []string) ConfigSources {
	src := ConfigSources{EnvFile: DefaultEnvFile}

	filtered := FilterArgs(args, []string{"-c", "-config", "-env-file"})

	fs := flag.NewFlagSet("sources", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&src.JSONPath, "config", "", "Path to JSON config file")
	fs.StringVar(&src.JSONPath, "c", "", "Path to JSON config file (short)")
	fs.StringVar(&src.EnvFile, "env-file", src.EnvFile, "Path to dotenv file")
	_ = fs.Parse(filtered)

	return src
}
