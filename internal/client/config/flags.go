package config

import (
	"github.com/spf13/pflag"
)

// parseFlags overlays cfg with command-line flags and returns the remaining
// positional arguments. Parsing stops at the first positional so that a
// one-shot command keeps its own arguments.
func parseFlags(cfg *Config, args []string) ([]string, error) {
	fs := pflag.NewFlagSet("learnkit", pflag.ContinueOnError)
	fs.SetInterspersed(false)

	fs.StringP("config", "c", "", "path to a .json or .yaml config file")
	fs.StringVarP(&cfg.BaseURL, "base-url", "u", cfg.BaseURL, "API root, e.g. https://api.learnkit.dev/v1")
	fs.StringVarP(&cfg.APIKey, "api-key", "k", cfg.APIKey, "application API key")
	fs.StringVar(&cfg.TokenFile, "token-file", cfg.TokenFile, "file holding the bearer token, re-read on refresh")
	fs.IntVarP(&cfg.Retries, "retries", "r", cfg.Retries, "extra attempts on 5xx, 429, network errors and timeouts")
	fs.DurationVar(&cfg.RetryDelay, "retry-delay", cfg.RetryDelay, "fixed delay between attempts")
	fs.DurationVarP(&cfg.Timeout, "timeout", "t", cfg.Timeout, "deadline of a single attempt")
	fs.StringVar(&cfg.CachePath, "cache", cfg.CachePath, "SQLite progress cache, empty to disable")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	fs.BoolVar(&cfg.Tracing, "trace", cfg.Tracing, "record OpenTelemetry spans for HTTP calls")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return fs.Args(), nil
}
