package config

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/learnkit/internal/client/transport"
	"github.com/dmitrijs2005/learnkit/internal/logging"
)

const (
	DefaultBaseURL   = "https://api.learnkit.dev/v1"
	DefaultCachePath = "learnkit.db"
	DefaultLogLevel  = "info"
	DotEnvFile       = ".env"
)

// Config holds runtime settings for the learnkit CLI.
type Config struct {
	BaseURL string
	APIKey  string

	// Token is a fixed bearer credential. TokenFile, when set, is re-read on
	// every refresh and takes precedence. With neither, the CLI prompts.
	Token     string
	TokenFile string

	Retries    int
	RetryDelay time.Duration
	Timeout    time.Duration

	// CachePath is the SQLite file for progress snapshots; "" disables it.
	CachePath string
	LogLevel  string
	Tracing   bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = DefaultBaseURL
	c.Retries = transport.DefaultRetries
	c.RetryDelay = transport.DefaultRetryDelay
	c.Timeout = transport.DefaultTimeout
	c.CachePath = DefaultCachePath
	c.LogLevel = DefaultLogLevel
}

func (c *Config) Validate() error {
	if c.Retries < 0 {
		return fmt.Errorf("retries must be >= 0, got %d", c.Retries)
	}
	if c.RetryDelay < 0 {
		return fmt.Errorf("retry delay must be >= 0, got %s", c.RetryDelay)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0, got %s", c.Timeout)
	}
	if c.BaseURL == "" {
		return fmt.Errorf("base url is required")
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// TransportOptions returns the retry and timeout settings.
func (c *Config) TransportOptions() transport.Options {
	return transport.Options{Retries: c.Retries, RetryDelay: c.RetryDelay, Timeout: c.Timeout}
}

// LoadConfig builds a Config from defaults, the environment (including a
// .env file in the working directory), the file named by -c/--config and
// finally the flags in args. Later sources take precedence. It returns the
// positional arguments left after the flags.
func LoadConfig(args []string) (*Config, []string, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	lookup, err := envLookup(DotEnvFile)
	if err != nil {
		return nil, nil, err
	}
	if err := parseEnv(cfg, lookup); err != nil {
		return nil, nil, err
	}
	if err := parseFile(cfg, args); err != nil {
		return nil, nil, err
	}
	rest, err := parseFlags(cfg, args)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	return cfg, rest, nil
}
