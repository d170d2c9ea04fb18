// Package flagx helps several independent loaders share one command line.
//
// Configuration is assembled in stages (JSON file, .env file, flags) and each
// stage only understands its own flags. FilterArgs trims an argument list down
// to the flags a stage knows so the standard flag package does not fail on
// the others.
package flagx

import (
	"flag"
	"io"
	"strings"
)

// FilterArgs returns the subset of args made of the allowed flags and their
// values. Both "-f value" and "-f=value" forms are recognised; a token that
// starts with '-' is never consumed as a value.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if name, _, found := strings.Cut(arg, "="); found && strings.HasPrefix(arg, "-") {
			if _, ok := allowed[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := allowed[arg]; !ok {
			continue
		}
		filtered = append(filtered, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}

	return filtered
}

// PathFlag extracts a string flag that may be spelled with a short and a long
// name. When both appear, the last one on the command line wins. An empty
// string means the flag was not given.
func PathFlag(args []string, short, long, usage string) string {
	var value string

	fs := flag.NewFlagSet(long, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&value, long, "", usage)
	fs.StringVar(&value, short, "", usage+" (short)")
	_ = fs.Parse(FilterArgs(args, []string{"-" + short, "-" + long}))

	return value
}

// ConfigFile returns the JSON config path given via -c or -config.
func ConfigFile(args []string) string {
	return PathFlag(args, "c", "config", "path to JSON config file")
}

// EnvFile returns the dotenv path given via -e or -env.
func EnvFile(args []string) string {
	return PathFlag(args, "e", "env", "path to .env file")
}
