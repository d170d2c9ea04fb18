package config

import (
	"time"

	"github.com/joho/godotenv"

	"github.com/dmitrijs2005/natman/internal/flagx"
)

const envPrefix = "NATMAN_"

// parseEnv overlays cfg with the dotenv file named by -e/-env. It does
// nothing when the flag is absent and panics on read errors or a bad
// timeout value.
func parseEnv(cfg *Config, args []string) {
	envFile := flagx.EnvFile(args)
	if envFile == "" {
		return
	}

	values, err := godotenv.Read(envFile)
	if err != nil {
		panic(err)
	}

	setString(&cfg.ServerBaseURL, values[envPrefix+"SERVER_BASE_URL"])
	if v := values[envPrefix+"REQUEST_TIMEOUT"]; v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		cfg.RequestTimeout = d
	}
	setString(&cfg.StorePath, values[envPrefix+"STORE_PATH"])
	setString(&cfg.RecognitionFallback, values[envPrefix+"RECOGNITION_FALLBACK"])
	setString(&cfg.LogLevel, values[envPrefix+"LOG_LEVEL"])
	setString(&cfg.LogFormat, values[envPrefix+"LOG_FORMAT"])
}
