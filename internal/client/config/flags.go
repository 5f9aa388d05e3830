package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/quizzer/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the remote API
//	-r string   registration path relative to the base URL
//	-t int      request timeout in seconds
//	-l string   log level
//	-b string   log backend (slog, zap)
//
// The args are filtered with flagx.FilterArgs first so flags owned by other
// parsers (-c, -config) do not interfere.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-r", "-t", "-l", "-b"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.BaseURL, "a", cfg.BaseURL, "base URL of the quizzer API")
	fs.StringVar(&cfg.RegisterPath, "r", cfg.RegisterPath, "registration path")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogBackend, "b", cfg.LogBackend, "log backend: slog or zap")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
}
