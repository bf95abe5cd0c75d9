package graph

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/uakotik/DB-lab5/internal/types"
)

const healthProbeTimeout = 5 * time.Second

// Neo4jClient implements Client on top of the official Neo4j Go driver.
// The driver owns connection pooling; this type only scopes sessions.
type Neo4jClient struct {
	config Config
	logger *slog.Logger

	mu     sync.RWMutex
	driver neo4j.DriverWithContext
}

// Neo4jOption configures a Neo4jClient.
type Neo4jOption func(*Neo4jClient)

// WithLogger sets the logger used for connection lifecycle events.
func WithLogger(logger *slog.Logger) Neo4jOption {
	return func(c *Neo4jClient) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewNeo4jClient creates a new Neo4j client with the given configuration.
// The client must be connected via Connect() before use.
func NewNeo4jClient(config Config, opts ...Neo4jOption) (*Neo4jClient, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	c := &Neo4jClient{
		config: config,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Connect creates the driver and verifies connectivity once.
// A failed verification closes the half-open driver before returning.
func (c *Neo4jClient) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.driver != nil {
		return nil
	}

	auth := neo4j.BasicAuth(c.config.Username, c.config.Password, "")
	driver, err := neo4j.NewDriverWithContext(c.config.URI, auth, func(cfg *neo4j.Config) {
		if c.config.MaxConnectionPoolSize > 0 {
			cfg.MaxConnectionPoolSize = c.config.MaxConnectionPoolSize
		}
		cfg.ConnectionAcquisitionTimeout = c.config.ConnectionTimeout
		cfg.MaxTransactionRetryTime = c.config.MaxTransactionRetryTime
	})
	if err != nil {
		return types.WrapError(ErrCodeGraphConnectionFailed, "failed to create driver", err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return &types.Error{
			Code:      ErrCodeGraphConnectionFailed,
			Message:   fmt.Sprintf("failed to verify connectivity to %s", c.config.URI),
			Retryable: true,
			Cause:     err,
		}
	}

	c.driver = driver
	c.logger.Info("connected to graph database",
		"uri", c.config.URI,
		"database", c.config.Database,
	)
	return nil
}

// Close releases all resources and closes the database connection.
func (c *Neo4jClient) Close(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.driver == nil {
		return nil
	}

	err := c.driver.Close(ctx)
	c.driver = nil
	if err != nil {
		return types.WrapError(ErrCodeGraphConnectionClosed, "failed to close driver", err)
	}
	return nil
}

// Health returns the current health status of the Neo4j connection.
func (c *Neo4jClient) Health(ctx context.Context) types.HealthStatus {
	driver := c.current()
	if driver == nil {
		return types.Unhealthy("driver not initialized")
	}

	healthCtx, cancel := context.WithTimeout(ctx, healthProbeTimeout)
	defer cancel()

	start := time.Now()
	info, err := driver.GetServerInfo(healthCtx)
	if err != nil {
		return types.Unhealthy(fmt.Sprintf("connectivity check failed: %v", err)).
			WithLatency(time.Since(start))
	}

	return types.Healthy(fmt.Sprintf("connected to %s at %s", info.Agent(), info.Address())).
		WithLatency(time.Since(start))
}

// Read executes q inside a managed read transaction.
func (c *Neo4jClient) Read(ctx context.Context, q Query) (QueryResult, error) {
	return c.run(ctx, q, neo4j.AccessModeRead)
}

// Write executes q inside a managed write transaction.
func (c *Neo4jClient) Write(ctx context.Context, q Query) (QueryResult, error) {
	return c.run(ctx, q, neo4j.AccessModeWrite)
}

func (c *Neo4jClient) current() neo4j.DriverWithContext {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.driver
}

func (c *Neo4jClient) run(ctx context.Context, q Query, mode neo4j.AccessMode) (QueryResult, error) {
	driver := c.current()
	if driver == nil {
		return QueryResult{}, types.NewError(ErrCodeGraphConnectionClosed, "driver not connected")
	}

	startTime := time.Now()

	session := driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   mode,
		DatabaseName: c.config.Database,
	})
	defer session.Close(ctx)

	work := func(tx neo4j.ManagedTransaction) (any, error) {
		neoResult, err := tx.Run(ctx, q.Cypher, q.Params)
		if err != nil {
			return nil, err
		}

		records, err := neoResult.Collect(ctx)
		if err != nil {
			return nil, err
		}

		summary, err := neoResult.Consume(ctx)
		if err != nil {
			return nil, err
		}

		return convertNeo4jResult(records, summary), nil
	}

	var (
		out any
		err error
	)
	if mode == neo4j.AccessModeRead {
		out, err = session.ExecuteRead(ctx, work)
	} else {
		out, err = session.ExecuteWrite(ctx, work)
	}
	if err != nil {
		return QueryResult{}, &types.Error{
			Code:      ErrCodeGraphQueryFailed,
			Message:   fmt.Sprintf("query %q failed", q.Name),
			Retryable: neo4j.IsRetryable(err),
			Cause:     err,
		}
	}

	result, ok := out.(QueryResult)
	if !ok {
		return QueryResult{}, types.NewError(ErrCodeGraphResultParsing,
			fmt.Sprintf("unexpected transaction result %T", out))
	}
	result.Summary.ExecutionTime = time.Since(startTime)
	return result, nil
}

// convertNeo4jResult converts Neo4j records and summary to a QueryResult.
func convertNeo4jResult(records []*neo4j.Record, summary neo4j.ResultSummary) QueryResult {
	result := QueryResult{
		Records: make([]map[string]any, 0, len(records)),
		Columns: []string{},
	}

	if len(records) > 0 {
		result.Columns = records[0].Keys
	}

	for _, record := range records {
		row := make(map[string]any, len(record.Keys))
		for i, key := range record.Keys {
			row[key] = record.Values[i]
		}
		result.Records = append(result.Records, row)
	}

	if summary != nil && summary.Counters() != nil {
		counters := summary.Counters()
		result.Summary = QuerySummary{
			NodesCreated:         counters.NodesCreated(),
			NodesDeleted:         counters.NodesDeleted(),
			RelationshipsCreated: counters.RelationshipsCreated(),
			RelationshipsDeleted: counters.RelationshipsDeleted(),
			PropertiesSet:        counters.PropertiesSet(),
			ConstraintsAdded:     counters.ConstraintsAdded(),
		}
	}

	return result
}
