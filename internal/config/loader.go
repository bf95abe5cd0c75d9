package config

import (
	"errors"
	"io/fs"
	"os"
	"regexp"

	"github.com/spf13/viper"
	"github.com/uakotik/DB-lab5/internal/types"
)

// Environment variables that override the file and the defaults.
const (
	EnvNeo4jURI      = "SHOPGRAPH_NEO4J_URI"
	EnvNeo4jUsername = "SHOPGRAPH_NEO4J_USERNAME"
	EnvNeo4jPassword = "SHOPGRAPH_NEO4J_PASSWORD"
	EnvNeo4jDatabase = "SHOPGRAPH_NEO4J_DATABASE"
)

var envBindings = map[string]string{
	"neo4j.uri":      EnvNeo4jURI,
	"neo4j.username": EnvNeo4jUsername,
	"neo4j.password": EnvNeo4jPassword,
	"neo4j.database": EnvNeo4jDatabase,
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// ConfigLoader handles loading configuration from files.
type ConfigLoader interface {
	Load(path string) (*Config, error)
	LoadWithDefaults(path string) (*Config, error)
}

// viperConfigLoader implements ConfigLoader using Viper.
type viperConfigLoader struct {
	validator ConfigValidator
}

// NewConfigLoader creates a new ConfigLoader instance.
func NewConfigLoader(validator ConfigValidator) ConfigLoader {
	return &viperConfigLoader{
		validator: validator,
	}
}

// Load loads configuration from the specified file path.
// Returns CONFIG_NOT_FOUND if the file doesn't exist.
func (l *viperConfigLoader) Load(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, types.WrapError(types.CONFIG_NOT_FOUND, "config file not found: "+path, err)
	}
	return l.load(path)
}

// LoadWithDefaults loads configuration from the specified file path.
// If the file doesn't exist, defaults plus environment overrides are used.
func (l *viperConfigLoader) LoadWithDefaults(path string) (*Config, error) {
	if path == "" {
		return l.load("")
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return l.load("")
	}
	return l.load(path)
}

func (l *viperConfigLoader) load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, types.WrapError(types.CONFIG_LOAD_FAILED, "failed to bind "+env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, types.WrapError(types.CONFIG_PARSE_FAILED, "failed to read config file", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, types.WrapError(types.CONFIG_PARSE_FAILED, "failed to unmarshal config", err)
	}
	interpolate(&cfg)

	if err := l.validator.Validate(&cfg); err != nil {
		return nil, types.WrapError(types.CONFIG_VALIDATION_FAILED, "configuration validation failed", err)
	}
	return &cfg, nil
}

// interpolate expands ${VAR_NAME} references in string settings.
func interpolate(cfg *Config) {
	for _, s := range []*string{
		&cfg.Neo4j.URI,
		&cfg.Neo4j.Username,
		&cfg.Neo4j.Password,
		&cfg.Neo4j.Database,
		&cfg.Logging.Output,
		&cfg.Tracing.Endpoint,
		&cfg.Tracing.ServiceName,
		&cfg.Tracing.TLSCertFile,
		&cfg.Metrics.Address,
	} {
		*s = interpolateString(*s)
	}
}

// interpolateString replaces ${VAR_NAME} with environment variable values.
// Unset variables are left as written.
func interpolateString(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		name := envVarPattern.FindStringSubmatch(match)[1]
		if value, ok := os.LookupEnv(name); ok && value != "" {
			return value
		}
		return match
	})
}
