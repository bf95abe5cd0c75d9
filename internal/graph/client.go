package graph

import (
	"context"
	"time"

	"github.com/uakotik/DB-lab5/internal/types"
)

// Client runs single parameterized Cypher queries against a graph database.
// Every Read or Write call acquires its own session and releases it before
// returning, on success and on error alike.
// Implementations must be safe for concurrent use.
type Client interface {
	// Connect establishes the driver and verifies connectivity.
	Connect(ctx context.Context) error

	// Close releases the driver and all pooled connections.
	Close(ctx context.Context) error

	// Health probes the database and reports the connection state.
	Health(ctx context.Context) types.HealthStatus

	// Read runs q in a read transaction and returns all records.
	Read(ctx context.Context, q Query) (QueryResult, error)

	// Write runs q in a write transaction and returns all records.
	Write(ctx context.Context, q Query) (QueryResult, error)
}

// Query is one parameterized Cypher statement.
// Name is a stable operation label used for logs, spans, metrics and mock scripting.
type Query struct {
	Name   string
	Cypher string
	Params map[string]any
}

// NewQuery builds a Query. A nil params map is replaced with an empty one.
func NewQuery(name, cypher string, params map[string]any) Query {
	if params == nil {
		params = map[string]any{}
	}
	return Query{Name: name, Cypher: cypher, Params: params}
}

// QueryResult represents the result of a Cypher query execution.
type QueryResult struct {
	// Records contains the result rows as maps of column name to value.
	Records []map[string]any

	// Columns contains the names of the columns in the result set.
	Columns []string

	// Summary contains metadata about the query execution.
	Summary QuerySummary
}

// Single returns the only record of the result.
// ok is false when the result does not hold exactly one record.
func (r QueryResult) Single() (record map[string]any, ok bool) {
	if len(r.Records) != 1 {
		return nil, false
	}
	return r.Records[0], true
}

// QuerySummary provides metadata about query execution.
type QuerySummary struct {
	ExecutionTime        time.Duration
	NodesCreated         int
	NodesDeleted         int
	RelationshipsCreated int
	RelationshipsDeleted int
	PropertiesSet        int
	ConstraintsAdded     int
}

// Config contains connection settings for a graph database client.
type Config struct {
	// URI is the connection URI for the graph database.
	// For Neo4j, use:
	//   - "bolt://host:port" for unencrypted connections
	//   - "bolt+s://host:port" for TLS encrypted connections
	//   - "bolt+ssc://host:port" for TLS with self-signed certificates
	//   - "neo4j://" or "neo4j+s://" for routing
	URI string

	Username string
	Password string

	// Database name to connect to. Empty uses the server default database.
	Database string

	// MaxConnectionPoolSize limits the number of connections in the pool.
	// Zero or negative values use the driver default.
	MaxConnectionPoolSize int

	// ConnectionTimeout is the maximum time to wait for a pooled connection.
	ConnectionTimeout time.Duration

	// MaxTransactionRetryTime bounds the driver's managed-transaction retries.
	// Zero disables them.
	MaxTransactionRetryTime time.Duration
}

// DefaultConfig returns a Config pointing at a local Neo4j instance.
func DefaultConfig() Config {
	return Config{
		URI:                     "bolt://localhost:7687",
		Username:                "neo4j",
		Password:                "password",
		Database:                "",
		MaxConnectionPoolSize:   50,
		ConnectionTimeout:       30 * time.Second,
		MaxTransactionRetryTime: 0,
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.URI == "" {
		return types.NewError(ErrCodeGraphInvalidConfig, "URI cannot be empty")
	}
	if c.Username == "" {
		return types.NewError(ErrCodeGraphInvalidConfig, "Username cannot be empty")
	}
	if c.Password == "" {
		return types.NewError(ErrCodeGraphInvalidConfig, "Password cannot be empty")
	}
	if c.ConnectionTimeout <= 0 {
		return types.NewError(ErrCodeGraphInvalidConfig, "ConnectionTimeout must be positive")
	}
	if c.MaxTransactionRetryTime < 0 {
		return types.NewError(ErrCodeGraphInvalidConfig, "MaxTransactionRetryTime cannot be negative")
	}
	return nil
}
