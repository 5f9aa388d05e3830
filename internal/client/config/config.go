package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the quizzer CLI.
//
// Fields:
//   - BaseURL: root of the remote quizzer API, e.g. http://host:port/quizzer/api.
//   - RegisterPath: registration endpoint relative to BaseURL.
//   - RequestTimeout: per-request timeout of the HTTP client.
//   - LogLevel: debug, info, warn or error.
//   - LogBackend: slog or zap.
type Config struct {
	BaseURL        string
	RegisterPath   string
	RequestTimeout time.Duration
	LogLevel       string
	LogBackend     string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://127.0.0.1:8081/quizzer/api"
	c.RegisterPath = "/auth/register"
	c.RequestTimeout = 10 * time.Second
	c.LogLevel = "info"
	c.LogBackend = "slog"
}

// LoadConfig builds a Config from the process arguments. See Load.
func LoadConfig() *Config {
	return Load(os.Args[1:])
}

// Load constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones. It panics on unreadable or malformed input.
func Load(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseFlags(cfg, args)
	return cfg
}
