package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/quizzer/internal/flagx"
	"github.com/dmitrijs2005/quizzer/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. The timeout is
// a timex.Duration so it can be written as "10s" or as integer nanoseconds.
type JsonConfig struct {
	BaseURL        string         `json:"base_url"`
	RegisterPath   string         `json:"register_path"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	LogLevel       string         `json:"log_level"`
	LogBackend     string         `json:"log_backend"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Without either flag nothing happens. Keys missing from the
// file keep their current value. Read or unmarshal errors panic.
func parseJson(cfg *Config, args []string) {
	jsonConfigFile := flagx.JsonConfigFlags(args)
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.BaseURL != "" {
		cfg.BaseURL = jc.BaseURL
	}
	if jc.RegisterPath != "" {
		cfg.RegisterPath = jc.RegisterPath
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	if jc.LogBackend != "" {
		cfg.LogBackend = jc.LogBackend
	}
}
