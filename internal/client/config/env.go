package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const envPrefix = "LEARNKIT_"

type lookupFunc func(key string) (string, bool)

// envLookup resolves variables from the process environment first and from
// the dotenv file second. A missing dotenv file is not an error.
func envLookup(dotenvPath string) (lookupFunc, error) {
	file, err := godotenv.Read(dotenvPath)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read %s: %w", dotenvPath, err)
	}
	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := file[key]
		return v, ok
	}, nil
}

// parseEnv overlays cfg with LEARNKIT_* variables.
func parseEnv(cfg *Config, lookup lookupFunc) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(envPrefix + name); ok && v != "" {
			*dst = v
		}
	}
	str("BASE_URL", &cfg.BaseURL)
	str("API_KEY", &cfg.APIKey)
	str("TOKEN", &cfg.Token)
	str("TOKEN_FILE", &cfg.TokenFile)
	str("CACHE", &cfg.CachePath)
	str("LOG_LEVEL", &cfg.LogLevel)

	if v, ok := lookup(envPrefix + "RETRIES"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sRETRIES: %w", envPrefix, err)
		}
		cfg.Retries = n
	}
	for name, dst := range map[string]*time.Duration{"RETRY_DELAY": &cfg.RetryDelay, "TIMEOUT": &cfg.Timeout} {
		if v, ok := lookup(envPrefix + name); ok && v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("%s%s: %w", envPrefix, name, err)
			}
			*dst = d
		}
	}
	if v, ok := lookup(envPrefix + "TRACING"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sTRACING: %w", envPrefix, err)
		}
		cfg.Tracing = b
	}
	return nil
}
