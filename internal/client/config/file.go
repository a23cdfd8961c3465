package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/learnkit/internal/flagx"
	"github.com/dmitrijs2005/learnkit/internal/timex"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk shape. Absent keys leave the current value.
type FileConfig struct {
	BaseURL    *string         `json:"base_url" yaml:"base_url"`
	APIKey     *string         `json:"api_key" yaml:"api_key"`
	Token      *string         `json:"token" yaml:"token"`
	TokenFile  *string         `json:"token_file" yaml:"token_file"`
	Retries    *int            `json:"retries" yaml:"retries"`
	RetryDelay *timex.Duration `json:"retry_delay" yaml:"retry_delay"`
	Timeout    *timex.Duration `json:"timeout" yaml:"timeout"`
	CachePath  *string         `json:"cache" yaml:"cache"`
	LogLevel   *string         `json:"log_level" yaml:"log_level"`
	Tracing    *bool           `json:"tracing" yaml:"tracing"`
}

// parseFile overlays cfg with the file named by -c/--config in args.
func parseFile(cfg *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	fc, err := readFile(path)
	if err != nil {
		return err
	}
	fc.apply(cfg)
	return nil
}

// readFile decodes a .json (comments and trailing commas allowed) or
// .yaml/.yml config file.
func readFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".json", "":
		if err := json.Unmarshal(jsonc.ToJSON(data), &fc); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("config %s: unsupported extension", path)
	}
	return &fc, nil
}

func (fc *FileConfig) apply(cfg *Config) {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&cfg.BaseURL, fc.BaseURL)
	set(&cfg.APIKey, fc.APIKey)
	set(&cfg.Token, fc.Token)
	set(&cfg.TokenFile, fc.TokenFile)
	set(&cfg.CachePath, fc.CachePath)
	set(&cfg.LogLevel, fc.LogLevel)

	if fc.Retries != nil {
		cfg.Retries = *fc.Retries
	}
	if fc.RetryDelay != nil {
		cfg.RetryDelay = fc.RetryDelay.Duration
	}
	if fc.Timeout != nil {
		cfg.Timeout = fc.Timeout.Duration
	}
	if fc.Tracing != nil {
		cfg.Tracing = *fc.Tracing
	}
}
