package loopq

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/viant/afs"
	"gopkg.in/yaml.v3"
)

// Config is a serialisable representation of the service configuration. It
// can be populated from YAML or JSON. The zero-value is useful – all nested
// fields inherit their package defaults.
type Config struct {
	Service ServiceConfig `json:"service" yaml:"service"`
	Logging LoggingConfig `json:"logging" yaml:"logging"`
	Tracing TracingConfig `json:"tracing" yaml:"tracing"`
}

// ServiceConfig identifies the service for observability back-ends.
type ServiceConfig struct {
	Name    string `json:"name" yaml:"name"`
	Version string `json:"version" yaml:"version"`
}

// LoggingConfig controls the zerolog level.
type LoggingConfig struct {
	Level string `json:"level" yaml:"level"`
}

// TracingConfig controls OpenTelemetry initialisation.
type TracingConfig struct {
	Enabled    bool   `json:"enabled" yaml:"enabled"`
	OutputFile string `json:"outputFile" yaml:"outputFile"`
}

// DefaultConfig returns a Config populated with package defaults. Callers may
// modify the returned struct before passing it to NewFromConfig.
func DefaultConfig() *Config {
	return &Config{
		Service: ServiceConfig{Name: "loopq", Version: "0.1.0"},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Validate returns an error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	if c.Service.Name == "" {
		return fmt.Errorf("service.name is required")
	}
	if c.Logging.Level != "" {
		if _, err := zerolog.ParseLevel(c.Logging.Level); err != nil {
			return fmt.Errorf("invalid logging.level %q: %w", c.Logging.Level, err)
		}
	}
	return nil
}

// LoadConfig reads a YAML configuration from the supplied URL. Any scheme
// supported by afs works (file, mem, s3, gs, ...); a plain path is treated as
// a local file.
func LoadConfig(ctx context.Context, URL string) (*Config, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %v: %w", URL, err)
	}
	config := DefaultConfig()
	if err = yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %v: %w", URL, err)
	}
	if err = config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}
