package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds runtime settings for the NatMan CLI.
//
// Fields:
//   - ServerBaseURL: scheme://host:port of the NatMan API. Fixed for the
//     lifetime of the process.
//   - RequestTimeout: bound on login and registration calls.
//   - StorePath: SQLite file holding the session; ":memory:" keeps it in
//     process memory only.
//   - RecognitionFallback: "demo" or "report", what to do when the
//     recognition server is unreachable.
//   - LogLevel, LogFormat: see logging.New.
type Config struct {
	ServerBaseURL       string
	RequestTimeout      time.Duration
	StorePath           string
	RecognitionFallback string
	LogLevel            string
	LogFormat           string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://217.114.14.77:8002"
	c.RequestTimeout = 10 * time.Second
	c.StorePath = "natman.db"
	c.RecognitionFallback = "demo"
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// Validate rejects values no later stage could use.
func (c *Config) Validate() error {
	if c.ServerBaseURL == "" {
		return fmt.Errorf("server base url is empty")
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request timeout %s is negative", c.RequestTimeout)
	}
	if c.StorePath == "" {
		return fmt.Errorf("store path is empty")
	}
	switch c.RecognitionFallback {
	case "demo", "report":
	default:
		return fmt.Errorf("recognition fallback %q: want demo or report", c.RecognitionFallback)
	}
	return nil
}

// LoadConfig constructs a Config from os.Args.
func LoadConfig() *Config {
	return Load(os.Args[1:])
}

// Load applies defaults, then overlays values from JSON (if present), a
// .env file (if present) and command-line flags. Later sources take
// precedence over earlier ones.
func Load(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseEnv(cfg, args)
	parseFlags(cfg, args)
	return cfg
}
