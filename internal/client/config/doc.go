// Package config loads runtime configuration for the quizzer CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the remote API
//	-r string   registration path
//	-t int      request timeout (seconds)
//	-l string   log level
//	-b string   log backend
//
// # JSON schema
//
//	{
//	  "base_url": "http://127.0.0.1:8081/quizzer/api",
//	  "register_path": "/auth/register",
//	  "request_timeout": "10s",
//	  "log_level": "info",
//	  "log_backend": "slog"
//	}
//
// This package does not read environment variables.
package config
