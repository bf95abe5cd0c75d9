package graph

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uakotik/DB-lab5/internal/types"
)

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		return Config{
			URI:               "bolt://localhost:7687",
			Username:          "neo4j",
			Password:          "password",
			ConnectionTimeout: 30 * time.Second,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid config", mutate: func(c *Config) {}},
		{name: "retry time zero is allowed", mutate: func(c *Config) { c.MaxTransactionRetryTime = 0 }},
		{name: "empty URI", mutate: func(c *Config) { c.URI = "" }, wantErr: true},
		{name: "empty username", mutate: func(c *Config) { c.Username = "" }, wantErr: true},
		{name: "empty password", mutate: func(c *Config) { c.Password = "" }, wantErr: true},
		{name: "invalid connection timeout", mutate: func(c *Config) { c.ConnectionTimeout = 0 }, wantErr: true},
		{name: "negative retry time", mutate: func(c *Config) { c.MaxTransactionRetryTime = -time.Second }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()

			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, ErrCodeGraphInvalidConfig, types.CodeOf(err))
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "bolt://localhost:7687", cfg.URI)
	assert.Equal(t, "neo4j", cfg.Username)
	assert.Equal(t, "", cfg.Database)
	assert.Equal(t, 50, cfg.MaxConnectionPoolSize)
	assert.Equal(t, 30*time.Second, cfg.ConnectionTimeout)
	assert.Zero(t, cfg.MaxTransactionRetryTime)
	require.NoError(t, cfg.Validate())
}

func TestNewNeo4jClient(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		cfg := DefaultConfig()
		client, err := NewNeo4jClient(cfg)

		require.NoError(t, err)
		require.NotNil(t, client)
		assert.Equal(t, cfg, client.config)
		assert.Nil(t, client.driver)
	})

	t.Run("invalid config", func(t *testing.T) {
		client, err := NewNeo4jClient(Config{Username: "neo4j", Password: "password"})

		require.Error(t, err)
		assert.Nil(t, client)
		assert.True(t, errors.Is(err, types.NewError(ErrCodeGraphInvalidConfig, "")))
	})
}

func TestNeo4jClient_NotConnected(t *testing.T) {
	client, err := NewNeo4jClient(DefaultConfig())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = client.Read(ctx, NewQuery("probe", "RETURN 1", nil))
	assert.Equal(t, ErrCodeGraphConnectionClosed, types.CodeOf(err))

	_, err = client.Write(ctx, NewQuery("probe", "RETURN 1", nil))
	assert.Equal(t, ErrCodeGraphConnectionClosed, types.CodeOf(err))

	status := client.Health(ctx)
	assert.True(t, status.IsUnhealthy())

	assert.NoError(t, client.Close(ctx), "closing an unconnected client is a no-op")
}

func TestNeo4jClient_ConnectFailure(t *testing.T) {
	cfg := DefaultConfig()
	// Nothing listens on port 1.
	cfg.URI = "bolt://127.0.0.1:1"
	cfg.ConnectionTimeout = time.Second

	client, err := NewNeo4jClient(cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = client.Connect(ctx)
	require.Error(t, err)
	assert.Equal(t, ErrCodeGraphConnectionFailed, types.CodeOf(err))
	assert.True(t, types.IsRetryable(err))
	assert.Nil(t, client.current(), "failed connect must not keep a driver")
}

func TestNewQuery(t *testing.T) {
	q := NewQuery("clear_database", "MATCH (n) DETACH DELETE n", nil)

	assert.Equal(t, "clear_database", q.Name)
	assert.NotNil(t, q.Params)
	assert.Empty(t, q.Params)
}

func TestQueryResult_Single(t *testing.T) {
	_, ok := QueryResult{}.Single()
	assert.False(t, ok)

	rec, ok := QueryResult{Records: []map[string]any{{"total": 1750.0}}}.Single()
	require.True(t, ok)
	assert.Equal(t, 1750.0, rec["total"])

	_, ok = QueryResult{Records: []map[string]any{{}, {}}}.Single()
	assert.False(t, ok)
}

func TestConvertNeo4jResult(t *testing.T) {
	records := []*neo4j.Record{
		{Keys: []string{"name", "count"}, Values: []any{"laptop", int64(2)}},
		{Keys: []string{"name", "count"}, Values: []any{"phone", int64(1)}},
	}

	result := convertNeo4jResult(records, nil)

	assert.Equal(t, []string{"name", "count"}, result.Columns)
	require.Len(t, result.Records, 2)
	assert.Equal(t, "laptop", result.Records[0]["name"])
	assert.Equal(t, int64(2), result.Records[0]["count"])
	assert.Equal(t, QuerySummary{}, result.Summary)
}

func TestConvertNeo4jResult_Empty(t *testing.T) {
	result := convertNeo4jResult(nil, nil)

	assert.NotNil(t, result.Records)
	assert.Empty(t, result.Records)
	assert.Empty(t, result.Columns)
}
