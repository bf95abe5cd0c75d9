package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uakotik/DB-lab5/internal/types"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "bolt://localhost:7687", cfg.Neo4j.URI)
	assert.Equal(t, "neo4j", cfg.Neo4j.Username)
	assert.Empty(t, cfg.Neo4j.Database)
	assert.Equal(t, 50, cfg.Neo4j.MaxConnections)
	assert.Equal(t, 30*time.Second, cfg.Neo4j.ConnectionTimeout)
	assert.Zero(t, cfg.Neo4j.MaxTransactionRetryTime)
	assert.False(t, cfg.Neo4j.StrictRelationships)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, "stderr", cfg.Logging.Output)

	assert.False(t, cfg.Tracing.Enabled)
	assert.Equal(t, "shopgraph", cfg.Tracing.ServiceName)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)

	assert.NoError(t, NewValidator().Validate(cfg))
}

func TestToGraphConfig(t *testing.T) {
	c := Neo4jConfig{
		URI:                     "neo4j://db:7687",
		Username:                "shop",
		Password:                "pw",
		Database:                "shop",
		MaxConnections:          5,
		ConnectionTimeout:       3 * time.Second,
		MaxTransactionRetryTime: time.Second,
	}

	g := c.ToGraphConfig()
	assert.Equal(t, "neo4j://db:7687", g.URI)
	assert.Equal(t, "shop", g.Username)
	assert.Equal(t, "pw", g.Password)
	assert.Equal(t, "shop", g.Database)
	assert.Equal(t, 5, g.MaxConnectionPoolSize)
	assert.Equal(t, 3*time.Second, g.ConnectionTimeout)
	assert.Equal(t, time.Second, g.MaxTransactionRetryTime)
	assert.NoError(t, g.Validate())
}

func TestLoadValidConfig(t *testing.T) {
	path := writeFile(t, `
neo4j:
  uri: bolt://graph.internal:7687
  username: shop
  password: s3cret
  database: shop
  max_connections: 20
  connection_timeout: 5s
  strict_relationships: true

logging:
  level: debug
  format: json

tracing:
  enabled: true
  provider: otlp
  endpoint: collector:4317
  sample_rate: 0.5

metrics:
  enabled: true
  address: 0.0.0.0:9464

timeout: 1m
`)

	cfg, err := NewConfigLoader(NewValidator()).Load(path)
	require.NoError(t, err)

	assert.Equal(t, "bolt://graph.internal:7687", cfg.Neo4j.URI)
	assert.Equal(t, "shop", cfg.Neo4j.Username)
	assert.Equal(t, "s3cret", cfg.Neo4j.Password)
	assert.Equal(t, "shop", cfg.Neo4j.Database)
	assert.Equal(t, 20, cfg.Neo4j.MaxConnections)
	assert.Equal(t, 5*time.Second, cfg.Neo4j.ConnectionTimeout)
	assert.True(t, cfg.Neo4j.StrictRelationships)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "stderr", cfg.Logging.Output, "unset keys keep their default")

	assert.True(t, cfg.Tracing.Enabled)
	assert.Equal(t, "collector:4317", cfg.Tracing.Endpoint)
	assert.InDelta(t, 0.5, cfg.Tracing.SampleRate, 1e-9)
	assert.Equal(t, "0.0.0.0:9464", cfg.Metrics.Address)
	assert.Equal(t, time.Minute, cfg.Timeout)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := NewConfigLoader(NewValidator()).Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Equal(t, types.CONFIG_NOT_FOUND, types.CodeOf(err))
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeFile(t, "neo4j: [unterminated")

	_, err := NewConfigLoader(NewValidator()).Load(path)
	require.Error(t, err)
	assert.Equal(t, types.CONFIG_PARSE_FAILED, types.CodeOf(err))
}

func TestLoad_ValidationFailure(t *testing.T) {
	path := writeFile(t, `
neo4j:
  uri: bolt://localhost:7687
  max_connections: 0
timeout: 10ms
`)

	_, err := NewConfigLoader(NewValidator()).Load(path)
	require.Error(t, err)
	assert.Equal(t, types.CONFIG_VALIDATION_FAILED, types.CodeOf(err))
	assert.Contains(t, err.Error(), "neo4j.max_connections must be at least 1")
	assert.Contains(t, err.Error(), "timeout must be at least 1s")
}

func TestLoadWithDefaults_NoFile(t *testing.T) {
	cfg, err := NewConfigLoader(NewValidator()).LoadWithDefaults(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadWithDefaults_EnvOverrides(t *testing.T) {
	t.Setenv(EnvNeo4jURI, "neo4j://env-host:7687")
	t.Setenv(EnvNeo4jUsername, "env-user")
	t.Setenv(EnvNeo4jPassword, "env-pass")
	t.Setenv(EnvNeo4jDatabase, "env-db")

	path := writeFile(t, `
neo4j:
  uri: bolt://file-host:7687
  username: file-user
`)

	cfg, err := NewConfigLoader(NewValidator()).LoadWithDefaults(path)
	require.NoError(t, err)
	assert.Equal(t, "neo4j://env-host:7687", cfg.Neo4j.URI)
	assert.Equal(t, "env-user", cfg.Neo4j.Username)
	assert.Equal(t, "env-pass", cfg.Neo4j.Password)
	assert.Equal(t, "env-db", cfg.Neo4j.Database)
}

func TestLoad_Interpolation(t *testing.T) {
	t.Setenv("GRAPH_HOST", "graph.example.com")
	t.Setenv("GRAPH_PASSWORD", "from-env")

	path := writeFile(t, `
neo4j:
  uri: bolt://${GRAPH_HOST}:7687
  username: neo4j
  password: ${GRAPH_PASSWORD}
  database: ${SHOPGRAPH_TEST_UNSET_VAR}
`)

	cfg, err := NewConfigLoader(NewValidator()).Load(path)
	require.NoError(t, err)
	assert.Equal(t, "bolt://graph.example.com:7687", cfg.Neo4j.URI)
	assert.Equal(t, "from-env", cfg.Neo4j.Password)
	assert.Equal(t, "${SHOPGRAPH_TEST_UNSET_VAR}", cfg.Neo4j.Database)
}

func TestWriteConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	want := DefaultConfig()
	want.Neo4j.URI = "bolt://roundtrip:7687"
	want.Neo4j.ConnectionTimeout = 7 * time.Second
	want.Timeout = 2 * time.Minute

	require.NoError(t, WriteConfig(path, want))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "connection_timeout: 7s")
	assert.Contains(t, string(data), "timeout: 2m0s")

	got, err := NewConfigLoader(NewValidator()).Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("SHOPGRAPH_DOTENV_TEST=loaded\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("SHOPGRAPH_DOTENV_TEST") })

	require.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env"), envFile))
	assert.Equal(t, "loaded", os.Getenv("SHOPGRAPH_DOTENV_TEST"))
}

func TestDefaultPaths(t *testing.T) {
	home := DefaultHomeDir()
	assert.Contains(t, home, ".shopgraph")
	assert.Equal(t, filepath.Join(home, "config.yaml"), DefaultConfigPath(home))
}
