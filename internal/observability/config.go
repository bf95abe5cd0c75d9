package observability

import (
	"fmt"
	"net"
	"path/filepath"
	"slices"
	"strings"
)

// LoggingConfig contains structured logging configuration.
// Output is "stdout", "stderr", or an absolute file path rotated by size.
type LoggingConfig struct {
	Level      string `yaml:"level" mapstructure:"level" validate:"omitempty,oneof=debug info warn error"`
	Format     string `yaml:"format" mapstructure:"format" validate:"omitempty,oneof=text json"`
	Output     string `yaml:"output" mapstructure:"output"`
	MaxSizeMB  int    `yaml:"max_size_mb" mapstructure:"max_size_mb" validate:"min=0"`
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups" validate:"min=0"`
	MaxAgeDays int    `yaml:"max_age_days" mapstructure:"max_age_days" validate:"min=0"`
	Compress   bool   `yaml:"compress" mapstructure:"compress"`
}

// Validate validates the LoggingConfig fields.
func (c *LoggingConfig) Validate() error {
	if !slices.Contains([]string{"", "debug", "info", "warn", "error"}, strings.ToLower(c.Level)) {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.Level)
	}
	if !slices.Contains([]string{"", "json", "text"}, strings.ToLower(c.Format)) {
		return fmt.Errorf("invalid log format: %s (must be one of: json, text)", c.Format)
	}

	switch strings.ToLower(c.Output) {
	case "", "stdout", "stderr":
	default:
		if !filepath.IsAbs(c.Output) {
			return fmt.Errorf("invalid log output: %s (must be 'stdout', 'stderr', or an absolute file path)", c.Output)
		}
	}
	return nil
}

// TracingConfig contains distributed tracing configuration.
type TracingConfig struct {
	Enabled      bool    `yaml:"enabled" mapstructure:"enabled"`
	Provider     string  `yaml:"provider" mapstructure:"provider"`
	Endpoint     string  `yaml:"endpoint" mapstructure:"endpoint"`
	ServiceName  string  `yaml:"service_name" mapstructure:"service_name"`
	SampleRate   float64 `yaml:"sample_rate" mapstructure:"sample_rate" validate:"min=0,max=1"`
	TLSCertFile  string  `yaml:"tls_cert_file" mapstructure:"tls_cert_file"`
	InsecureMode bool    `yaml:"insecure_mode" mapstructure:"insecure_mode"`
}

// Validate validates the TracingConfig fields.
// Returns an error if Provider is not otlp or noop, or if SampleRate is out of range.
func (c *TracingConfig) Validate() error {
	if !c.Enabled {
		return nil
	}

	provider := strings.ToLower(c.Provider)
	if provider != "otlp" && provider != "noop" {
		return fmt.Errorf("invalid tracing provider: %s (must be one of: otlp, noop)", c.Provider)
	}
	if c.SampleRate < 0.0 || c.SampleRate > 1.0 {
		return fmt.Errorf("invalid sample rate: %f (must be between 0.0 and 1.0)", c.SampleRate)
	}
	if provider == "otlp" && c.Endpoint == "" {
		return fmt.Errorf("endpoint is required when tracing is enabled")
	}
	return nil
}

// MetricsConfig contains metrics export configuration.
// Address is the host:port the Prometheus scrape endpoint listens on.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Address string `yaml:"address" mapstructure:"address"`
	Path    string `yaml:"path" mapstructure:"path"`
}

// Validate validates the MetricsConfig fields.
func (c *MetricsConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if _, _, err := net.SplitHostPort(c.Address); err != nil {
		return fmt.Errorf("invalid metrics address: %s: %w", c.Address, err)
	}
	if c.Path != "" && !strings.HasPrefix(c.Path, "/") {
		return fmt.Errorf("invalid metrics path: %s (must start with '/')", c.Path)
	}
	return nil
}
