package config

import (
	"time"

	"github.com/spf13/viper"
	"github.com/uakotik/DB-lab5/internal/graph"
	"github.com/uakotik/DB-lab5/internal/observability"
	"github.com/uakotik/DB-lab5/pkg/version"
)

// DefaultTimeout bounds each CLI command.
const DefaultTimeout = 30 * time.Second

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	g := graph.DefaultConfig()

	return &Config{
		Neo4j: Neo4jConfig{
			URI:                     g.URI,
			Username:                g.Username,
			Password:                g.Password,
			Database:                g.Database,
			MaxConnections:          g.MaxConnectionPoolSize,
			ConnectionTimeout:       g.ConnectionTimeout,
			MaxTransactionRetryTime: g.MaxTransactionRetryTime,
		},
		Logging: observability.LoggingConfig{
			Level:      "info",
			Format:     "text",
			Output:     "stderr",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Tracing: observability.TracingConfig{
			Enabled:     false,
			Provider:    "otlp",
			Endpoint:    "localhost:4317",
			ServiceName: version.Name,
			SampleRate:  1.0,
		},
		Metrics: observability.MetricsConfig{
			Enabled: false,
			Address: "127.0.0.1:9464",
			Path:    "/metrics",
		},
		Timeout: DefaultTimeout,
	}
}

// setDefaults registers every default with v so env bindings resolve without a file.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("neo4j.uri", cfg.Neo4j.URI)
	v.SetDefault("neo4j.username", cfg.Neo4j.Username)
	v.SetDefault("neo4j.password", cfg.Neo4j.Password)
	v.SetDefault("neo4j.database", cfg.Neo4j.Database)
	v.SetDefault("neo4j.max_connections", cfg.Neo4j.MaxConnections)
	v.SetDefault("neo4j.connection_timeout", cfg.Neo4j.ConnectionTimeout)
	v.SetDefault("neo4j.max_transaction_retry_time", cfg.Neo4j.MaxTransactionRetryTime)
	v.SetDefault("neo4j.strict_relationships", cfg.Neo4j.StrictRelationships)

	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)
	v.SetDefault("logging.output", cfg.Logging.Output)
	v.SetDefault("logging.max_size_mb", cfg.Logging.MaxSizeMB)
	v.SetDefault("logging.max_backups", cfg.Logging.MaxBackups)
	v.SetDefault("logging.max_age_days", cfg.Logging.MaxAgeDays)
	v.SetDefault("logging.compress", cfg.Logging.Compress)

	v.SetDefault("tracing.enabled", cfg.Tracing.Enabled)
	v.SetDefault("tracing.provider", cfg.Tracing.Provider)
	v.SetDefault("tracing.endpoint", cfg.Tracing.Endpoint)
	v.SetDefault("tracing.service_name", cfg.Tracing.ServiceName)
	v.SetDefault("tracing.sample_rate", cfg.Tracing.SampleRate)
	v.SetDefault("tracing.tls_cert_file", cfg.Tracing.TLSCertFile)
	v.SetDefault("tracing.insecure_mode", cfg.Tracing.InsecureMode)

	v.SetDefault("metrics.enabled", cfg.Metrics.Enabled)
	v.SetDefault("metrics.address", cfg.Metrics.Address)
	v.SetDefault("metrics.path", cfg.Metrics.Path)

	v.SetDefault("timeout", cfg.Timeout)
}
