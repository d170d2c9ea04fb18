package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/natman/internal/flagx"
	"github.com/dmitrijs2005/natman/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Empty
// values mean "not set".
type JsonConfig struct {
	ServerBaseURL       string         `json:"server_base_url"`
	RequestTimeout      timex.Duration `json:"request_timeout"`
	StorePath           string         `json:"store_path"`
	RecognitionFallback string         `json:"recognition_fallback"`
	LogLevel            string         `json:"log_level"`
	LogFormat           string         `json:"log_format"`
}

// parseJson overlays cfg with the JSON file named by -c/-config. It does
// nothing when the flag is absent and panics on read or unmarshal errors.
func parseJson(cfg *Config, args []string) {
	jsonConfigFile := flagx.ConfigFile(args)
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.ServerBaseURL, jc.ServerBaseURL)
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	setString(&cfg.StorePath, jc.StorePath)
	setString(&cfg.RecognitionFallback, jc.RecognitionFallback)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogFormat, jc.LogFormat)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
