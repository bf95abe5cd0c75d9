package config

import (
	"time"

	"github.com/uakotik/DB-lab5/internal/graph"
	"github.com/uakotik/DB-lab5/internal/observability"
)

// Config is the root configuration for shopgraph.
type Config struct {
	Neo4j   Neo4jConfig                 `mapstructure:"neo4j" yaml:"neo4j" validate:"required"`
	Logging observability.LoggingConfig `mapstructure:"logging" yaml:"logging"`
	Tracing observability.TracingConfig `mapstructure:"tracing" yaml:"tracing"`
	Metrics observability.MetricsConfig `mapstructure:"metrics" yaml:"metrics"`
	Timeout time.Duration               `mapstructure:"timeout" yaml:"timeout" validate:"min=1s"`
}

// Neo4jConfig contains Neo4j connection settings.
type Neo4jConfig struct {
	URI                     string        `mapstructure:"uri" yaml:"uri" validate:"required,uri"`
	Username                string        `mapstructure:"username" yaml:"username" validate:"required"`
	Password                string        `mapstructure:"password" yaml:"password"`
	Database                string        `mapstructure:"database" yaml:"database,omitempty"`
	MaxConnections          int           `mapstructure:"max_connections" yaml:"max_connections" validate:"min=1,max=500"`
	ConnectionTimeout       time.Duration `mapstructure:"connection_timeout" yaml:"connection_timeout" validate:"min=1s"`
	MaxTransactionRetryTime time.Duration `mapstructure:"max_transaction_retry_time" yaml:"max_transaction_retry_time" validate:"min=0"`
	StrictRelationships     bool          `mapstructure:"strict_relationships" yaml:"strict_relationships"`
}

// ToGraphConfig converts the connection settings to a graph.Config.
func (c Neo4jConfig) ToGraphConfig() graph.Config {
	return graph.Config{
		URI:                     c.URI,
		Username:                c.Username,
		Password:                c.Password,
		Database:                c.Database,
		MaxConnectionPoolSize:   c.MaxConnections,
		ConnectionTimeout:       c.ConnectionTimeout,
		MaxTransactionRetryTime: c.MaxTransactionRetryTime,
	}
}

// MarshalYAML writes durations as strings so the file reads back through viper.
func (c Neo4jConfig) MarshalYAML() (any, error) {
	return struct {
		URI                     string `yaml:"uri"`
		Username                string `yaml:"username"`
		Password                string `yaml:"password"`
		Database                string `yaml:"database,omitempty"`
		MaxConnections          int    `yaml:"max_connections"`
		ConnectionTimeout       string `yaml:"connection_timeout"`
		MaxTransactionRetryTime string `yaml:"max_transaction_retry_time"`
		StrictRelationships     bool   `yaml:"strict_relationships"`
	}{
		URI:                     c.URI,
		Username:                c.Username,
		Password:                c.Password,
		Database:                c.Database,
		MaxConnections:          c.MaxConnections,
		ConnectionTimeout:       c.ConnectionTimeout.String(),
		MaxTransactionRetryTime: c.MaxTransactionRetryTime.String(),
		StrictRelationships:     c.StrictRelationships,
	}, nil
}

// MarshalYAML writes Timeout as a duration string.
func (c Config) MarshalYAML() (any, error) {
	return struct {
		Neo4j   Neo4jConfig                 `yaml:"neo4j"`
		Logging observability.LoggingConfig `yaml:"logging"`
		Tracing observability.TracingConfig `yaml:"tracing"`
		Metrics observability.MetricsConfig `yaml:"metrics"`
		Timeout string                      `yaml:"timeout"`
	}{
		Neo4j:   c.Neo4j,
		Logging: c.Logging,
		Tracing: c.Tracing,
		Metrics: c.Metrics,
		Timeout: c.Timeout.String(),
	}, nil
}
