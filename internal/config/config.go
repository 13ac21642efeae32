// Package config loads service configuration from an optional YAML file,
// an optional .env file and TRICKONE_* environment variables, in that
// order of precedence (later wins).
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/njchilds90/trickone/generator"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable Load reads.
const EnvPrefix = "TRICKONE_"

// Config holds the process configuration.
type Config struct {
	// Environment
	Environment string `yaml:"environment" env:"ENVIRONMENT"`

	// HTTP server
	HTTPAddr        string        `yaml:"http_addr" env:"HTTP_ADDR"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`

	// Logging
	LogLevel  string `yaml:"log_level" env:"LOG_LEVEL"`   // debug, info, warn, error
	LogFormat string `yaml:"log_format" env:"LOG_FORMAT"` // text or json

	// Tracing; an empty endpoint disables export.
	OTelEndpoint string `yaml:"otel_endpoint" env:"OTEL_ENDPOINT"`

	// Generation. The attempt bound is fixed at generator.MaxAttempts.
	CoefficientLow  int64 `yaml:"coefficient_low" env:"COEFFICIENT_LOW"`
	CoefficientHigh int64 `yaml:"coefficient_high" env:"COEFFICIENT_HIGH"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		Environment:     "development",
		HTTPAddr:        ":8080",
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    30 * time.Second,
		ShutdownTimeout: 5 * time.Second,
		LogLevel:        "info",
		LogFormat:       "text",
		CoefficientLow:  generator.DefaultRange.Low,
		CoefficientHigh: generator.DefaultRange.High,
	}
}

// Load builds a Config from defaults, then yamlPath, then dotenvPath, then
// the environment. An empty yamlPath skips the file; a missing dotenv file
// is ignored.
func Load(yamlPath, dotenvPath string) (Config, error) {
	cfg := Default()

	if yamlPath != "" {
		data, err := os.ReadFile(yamlPath)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", yamlPath, err)
		}
	}

	if dotenvPath != "" {
		if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", dotenvPath, err)
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field values that would otherwise fail later.
func (c Config) Validate() error {
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q (want text or json)", c.LogFormat)
	}
	if err := c.CoefficientRange().Validate(); err != nil {
		return fmt.Errorf("coefficient range: %w", err)
	}
	return nil
}

func (c Config) CoefficientRange() generator.Range {
	return generator.Range{Low: c.CoefficientLow, High: c.CoefficientHigh}
}

func (c Config) IsProduction() bool { return c.Environment == "production" }

// SlogLevel parses LogLevel.
func (c Config) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return lvl, nil
}

// NewLogger builds the process logger writing to w.
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	lvl, err := c.SlogLevel()
	if err != nil {
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}
	var h slog.Handler
	if strings.EqualFold(c.LogFormat, "json") {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(h).With(slog.String("env", c.Environment))
}
