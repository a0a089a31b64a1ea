// Package flagx contains helpers for sharing os.Args between independent
// flag parsers (config loader, cobra command tree).
package flagx

import (
	"flag"
	"os"
	"strings"
)

// ConfigFileFlags lists the spellings accepted for the config file path.
var ConfigFileFlags = []string{"-c", "--c", "-config", "--config"}

// FilterArgs keeps only the flags named in allowed, together with their
// values. Both "-f value" and "-f=value" forms are recognised. Everything
// else (positional arguments, subcommand names, foreign flags) is dropped,
// so the result can be handed to a private flag.FlagSet without tripping
// over flags it does not define.
func FilterArgs(args []string, allowed []string) []string {
	known := make(map[string]struct{}, len(allowed))
	for _, f := range allowed {
		known[f] = struct{}{}
	}

	out := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if name, _, ok := strings.Cut(arg, "="); ok && strings.HasPrefix(arg, "-") {
			if _, hit := known[name]; hit {
				out = append(out, arg)
			}
			continue
		}

		if _, hit := known[arg]; !hit {
			continue
		}
		out = append(out, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			out = append(out, args[i+1])
			i++
		}
	}

	return out
}

// WithLongForms expands every short or long flag name into the single and
// double dash spellings understood by the standard flag package.
func WithLongForms(names ...string) []string {
	out := make([]string, 0, len(names)*2)
	for _, n := range names {
		n = strings.TrimLeft(n, "-")
		out = append(out, "-"+n, "--"+n)
	}
	return out
}

// ConfigFile returns the config file path passed with -c or -config
// (single or double dash), or an empty string.
func ConfigFile() string {
	return configFileFrom(os.Args[1:])
}

func configFileFrom(args []string) string {
	var path string

	fs := flag.NewFlagSet("config-file", flag.ContinueOnError)
	fs.StringVar(&path, "config", "", "path to config file")
	fs.StringVar(&path, "c", "", "path to config file (short)")
	_ = fs.Parse(FilterArgs(args, ConfigFileFlags))

	return path
}
