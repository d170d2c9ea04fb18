package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/natman/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the NatMan API
//	-t int      login/registration timeout in seconds
//	-s string   session store path
//	-f string   recognition fallback (demo | report)
//	-l string   log level
//	-lf string  log format (text | json | zap)
//
// Note: args are first filtered with flagx.FilterArgs so that flags owned by
// other loaders (-c, -e) do not make parsing fail.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-t", "-s", "-f", "-l", "-lf"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "base URL of the NatMan API")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "login/registration timeout (in seconds)")
	fs.StringVar(&cfg.StorePath, "s", cfg.StorePath, "session store path")
	fs.StringVar(&cfg.RecognitionFallback, "f", cfg.RecognitionFallback, "recognition fallback: demo or report")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFormat, "lf", cfg.LogFormat, "log format: text, json or zap")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
		}
	})
}
