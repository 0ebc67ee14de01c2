// Package config loads zoosim settings from the environment.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap/zapcore"

	"zoocore/internal/core"
)

// MetricsBackend selects the metrics recorder wired into the service.
type MetricsBackend string

// Supported metrics backends.
const (
	MetricsNone       MetricsBackend = "none"
	MetricsExpvar     MetricsBackend = "expvar"
	MetricsPrometheus MetricsBackend = "prometheus"
)

// Config holds zoosim configuration.
type Config struct {
	Locale        string             `env:"ZOOCORE_LOCALE"         envDefault:"en-US"`
	CapacityModel core.CapacityModel `env:"ZOOCORE_CAPACITY_MODEL" envDefault:"count"`
	LogLevel      zapcore.Level      `env:"ZOOCORE_LOG_LEVEL"      envDefault:"warn"`
	Metrics       MetricsBackend     `env:"ZOOCORE_METRICS"        envDefault:"none"`
	Scenario      string             `env:"ZOOCORE_SCENARIO"`
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate normalizes enumerated settings and rejects unknown values.
func (c *Config) Validate() error {
	model, err := core.ParseCapacityModel(string(c.CapacityModel))
	if err != nil {
		return fmt.Errorf("ZOOCORE_CAPACITY_MODEL: %w", err)
	}
	c.CapacityModel = model

	switch backend := MetricsBackend(strings.ToLower(strings.TrimSpace(string(c.Metrics)))); backend {
	case "", MetricsNone:
		c.Metrics = MetricsNone
	case MetricsExpvar, MetricsPrometheus:
		c.Metrics = backend
	default:
		return fmt.Errorf("ZOOCORE_METRICS: unknown backend %q", c.Metrics)
	}

	if strings.TrimSpace(c.Locale) == "" {
		c.Locale = "en-US"
	}
	return nil
}
