// Package config loads runtime configuration for the NatMan CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Optional .env file (see parseEnv) selected via flags: -e or -env.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the NatMan API
//	-t int      login/registration timeout (seconds)
//	-s string   session store file (":memory:" for no file)
//	-f string   recognition fallback: demo | report
//	-l string   log level: debug | info | warn | error
//	-lf string  log format: text | json | zap
//
// # JSON schema
//
// The JSON loader uses timex.Duration for timeouts, so values can be either
// strings like "10s" or integer nanoseconds. Absent keys keep their earlier
// value:
//
//	{
//	  "server_base_url": "http://217.114.14.77:8002",
//	  "request_timeout": "10s",
//	  "store_path": "natman.db",
//	  "recognition_fallback": "demo",
//	  "log_level": "info",
//	  "log_format": "text"
//	}
//
// # Environment file
//
// The .env file is read with godotenv and never exported into the process
// environment. Recognised keys are NATMAN_SERVER_BASE_URL,
// NATMAN_REQUEST_TIMEOUT ("10s"), NATMAN_STORE_PATH,
// NATMAN_RECOGNITION_FALLBACK, NATMAN_LOG_LEVEL and NATMAN_LOG_FORMAT.
//
// Malformed files or flag values panic; configuration errors are start-up
// errors.
package config
