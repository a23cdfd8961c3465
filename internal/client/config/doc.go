// Package config loads runtime configuration for the learnkit CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. LEARNKIT_* environment variables; a .env file in the working directory
//     supplies the ones not set in the process environment.
//  3. Optional config file selected via -c or --config. JSON files may carry
//     comments; .yaml and .yml files are read as YAML.
//  4. Command-line flags, which override earlier values.
//
// # File schema
//
// Durations are timex.Duration values, so they can be strings like "2s" or
// integer nanoseconds:
//
//	{
//	  // staging backend
//	  "base_url": "https://staging.learnkit.dev/v1",
//	  "api_key": "pk_test_123",
//	  "token_file": "~/.learnkit/token",
//	  "retries": 2,
//	  "retry_delay": "500ms",
//	  "timeout": "10s",
//	  "cache": "learnkit.db",
//	  "log_level": "debug",
//	  "tracing": false
//	}
//
// Primary API
//
//   - type Config                              holds every setting
//   - func LoadConfig(args) (*Config, rest, error)  applies all sources in order
//   - func (*Config) LoadDefaults()            sets defaults
//   - func (*Config) Validate() error          rejects unusable values
package config
