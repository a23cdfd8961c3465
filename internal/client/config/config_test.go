package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/learnkit/internal/client/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, DefaultBaseURL, c.BaseURL)
	assert.Equal(t, 1, c.Retries)
	assert.Equal(t, 2*time.Second, c.RetryDelay)
	assert.Equal(t, 30*time.Second, c.Timeout)
	assert.Equal(t, "learnkit.db", c.CachePath)
	assert.Equal(t, "info", c.LogLevel)
	assert.NoError(t, c.Validate())
	assert.Equal(t, transport.DefaultOptions(), c.TransportOptions())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative retries", func(c *Config) { c.Retries = -1 }},
		{"negative delay", func(c *Config) { c.RetryDelay = -time.Second }},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }},
		{"empty base url", func(c *Config) { c.BaseURL = "" }},
		{"bad log level", func(c *Config) { c.LogLevel = "chatty" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Config
			c.LoadDefaults()
			tt.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestLoadConfig_Precedence(t *testing.T) {
	t.Setenv("LEARNKIT_API_KEY", "from-env")
	t.Setenv("LEARNKIT_RETRIES", "4")
	t.Setenv("LEARNKIT_TIMEOUT", "7s")
	t.Setenv("LEARNKIT_TRACING", "true")

	path := writeFile(t, "cfg.json", `{
		// file beats env
		"retries": 2,
		"retry_delay": "250ms",
		"log_level": "debug",
	}`)

	cfg, rest, err := LoadConfig([]string{"-c", path, "--retries", "3", "-u", "http://localhost:8080/v1", "complete", "c1", "s1", "answer=2"})
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.APIKey)
	assert.Equal(t, 7*time.Second, cfg.Timeout)
	assert.True(t, cfg.Tracing)
	assert.Equal(t, 250*time.Millisecond, cfg.RetryDelay)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 3, cfg.Retries)
	assert.Equal(t, "http://localhost:8080/v1", cfg.BaseURL)
	assert.Equal(t, []string{"complete", "c1", "s1", "answer=2"}, rest)
}

func TestLoadConfig_NoSources(t *testing.T) {
	cfg, rest, err := LoadConfig(nil)
	require.NoError(t, err)
	assert.Empty(t, rest)
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Run("unknown flag", func(t *testing.T) {
		_, _, err := LoadConfig([]string{"--nope"})
		assert.Error(t, err)
	})

	t.Run("invalid value", func(t *testing.T) {
		_, _, err := LoadConfig([]string{"--timeout", "0s"})
		assert.Error(t, err)
	})

	t.Run("bad env", func(t *testing.T) {
		t.Setenv("LEARNKIT_RETRY_DELAY", "soon")
		_, _, err := LoadConfig(nil)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, _, err := LoadConfig([]string{"-c", filepath.Join(t.TempDir(), "absent.json")})
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestReadFile_YAML(t *testing.T) {
	path := writeFile(t, "cfg.yaml", "base_url: https://staging.learnkit.dev/v1\nretries: 0\nretry_delay: 1500000000\ntimeout: 5s\ntoken_file: /run/token\ncache: \"\"\n")

	fc, err := readFile(path)
	require.NoError(t, err)

	var cfg Config
	cfg.LoadDefaults()
	fc.apply(&cfg)

	assert.Equal(t, "https://staging.learnkit.dev/v1", cfg.BaseURL)
	assert.Equal(t, 0, cfg.Retries)
	assert.Equal(t, 1500*time.Millisecond, cfg.RetryDelay)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, "/run/token", cfg.TokenFile)
	assert.Empty(t, cfg.CachePath)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestReadFile_Errors(t *testing.T) {
	_, err := readFile(writeFile(t, "bad.json", `{ not json`))
	assert.Error(t, err)

	_, err = readFile(writeFile(t, "bad.yaml", "timeout: [1]\n"))
	assert.Error(t, err)

	_, err = readFile(writeFile(t, "cfg.toml", "x = 1"))
	assert.Error(t, err)
}

func TestEnvLookup_DotEnvBelowProcessEnv(t *testing.T) {
	path := writeFile(t, ".env", "LEARNKIT_API_KEY=dotenv-key\nLEARNKIT_LOG_LEVEL=warn\n")
	t.Setenv("LEARNKIT_LOG_LEVEL", "error")

	lookup, err := envLookup(path)
	require.NoError(t, err)

	var cfg Config
	cfg.LoadDefaults()
	require.NoError(t, parseEnv(&cfg, lookup))

	assert.Equal(t, "dotenv-key", cfg.APIKey)
	assert.Equal(t, "error", cfg.LogLevel)
}

func TestEnvLookup_MissingDotEnv(t *testing.T) {
	lookup, err := envLookup(filepath.Join(t.TempDir(), ".env"))
	require.NoError(t, err)

	_, ok := lookup("LEARNKIT_SURELY_UNSET")
	assert.False(t, ok)
}
