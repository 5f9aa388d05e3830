package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, "http://127.0.0.1:8081/quizzer/api", c.BaseURL)
	assert.Equal(t, "/auth/register", c.RegisterPath)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, "slog", c.LogBackend)
}

func TestLoad_NoArgsUsesDefaults(t *testing.T) {
	cfg := Load(nil)
	require.NotNil(t, cfg)
	assert.Empty(t, cmp.Diff(defaults(), cfg))
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		expected    *Config
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{"-a", "http://api.local/q", "-r", "/users", "-t", "3", "-l", "debug", "-b", "zap"},
			expected: &Config{
				BaseURL: "http://api.local/q", RegisterPath: "/users", RequestTimeout: 3 * time.Second,
				LogLevel: "debug", LogBackend: "zap",
			},
		},
		{
			name: "foreign flags ignored",
			args: []string{"-c", "cfg.json", "-a", "http://x/api", "-unknown"},
			expected: func() *Config {
				c := defaults()
				c.BaseURL = "http://x/api"
				return c
			}(),
		},
		{name: "bad timeout", args: []string{"-t", "abc"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(cfg, tt.args) })
				return
			}
			require.NotPanics(t, func() { parseFlags(cfg, tt.args) })
			assert.Empty(t, cmp.Diff(tt.expected, cfg))
		})
	}
}

func TestParseFlags_KeepsSubSecondTimeoutWhenUnset(t *testing.T) {
	cfg := defaults()
	cfg.RequestTimeout = 1500 * time.Millisecond
	parseFlags(cfg, []string{"-l", "warn"})
	assert.Equal(t, 1500*time.Millisecond, cfg.RequestTimeout)
	assert.Equal(t, "warn", cfg.LogLevel)
}
