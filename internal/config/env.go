package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"codeberg.org/algorave/errhandler/variant"
	"dario.cat/mergo"
	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

// returns the values used for every field left empty by the file and environment
func Defaults() Config {
	return Config{
		Environment:     "production",
		Port:            "8080",
		LogLevel:        "info",
		StackTraceLimit: variant.DefaultStackTraceLimit,
		ResponseFormat:  FormatCanonical,
	}
}

// loads configuration from an optional file, then the environment, then defaults
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have .env file
	}

	cfg := &Config{}

	if path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := mergo.Merge(cfg, Defaults()); err != nil {
		return nil, fmt.Errorf("failed to apply config defaults: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	default:
		return fmt.Errorf("unsupported config file type %q", ext)
	}

	if err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return nil
}

// environment variables override file values when set
func applyEnv(cfg *Config) error {
	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	setString("ENV_NAME", &cfg.Environment)
	setString("PORT", &cfg.Port)
	setString("LOG_LEVEL", &cfg.LogLevel)
	setString("RESPONSE_FORMAT", &cfg.ResponseFormat)
	setString("PROBLEM_BASE_URL", &cfg.ProblemBaseURL)
	setString("RATE_LIMIT", &cfg.RateLimit)
	setString("REDIS_URL", &cfg.RedisURL)

	if v := os.Getenv("STACK_TRACE_LIMIT"); v != "" {
		n, err := cast.ToIntE(v)
		if err != nil {
			return fmt.Errorf("STACK_TRACE_LIMIT must be an integer: %w", err)
		}

		cfg.StackTraceLimit = n
	}

	return nil
}

// checks values that cannot be defaulted
func (c *Config) Validate() error {
	if c.StackTraceLimit < 0 || c.StackTraceLimit > variant.MaxStackTraceLimit {
		return fmt.Errorf("stack trace limit must be between 0 and %d, got %d", variant.MaxStackTraceLimit, c.StackTraceLimit)
	}

	if _, err := variant.ParseSeverity(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	switch c.ResponseFormat {
	case FormatCanonical, FormatProblem, FormatSimple, FormatJSONAPI, FormatCompact:
	default:
		return fmt.Errorf("unknown response format %q", c.ResponseFormat)
	}

	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == DevEnvironment
}

// reports whether ENV_NAME selects development mode, read on every call
func IsDevEnv() bool {
	return os.Getenv("ENV_NAME") == DevEnvironment
}
