// Package graph provides a session-scoped client for a Neo4j graph database.
//
// The Client interface exposes exactly one query per call. Each Read or Write
// opens a fresh driver session, runs the statement inside a managed
// transaction, collects every record plus the result counters, and closes the
// session on every exit path. Connection pooling is left to the driver.
//
// # Implementations
//
//   - Neo4jClient: production implementation using neo4j-go-driver/v5
//   - TracedClient: decorator adding OpenTelemetry spans and query metrics
//   - MockClient: scripted in-memory implementation for unit tests
//
// # Usage
//
//	cfg := graph.DefaultConfig()
//	cfg.Password = os.Getenv("NEO4J_PASSWORD")
//
//	client, err := graph.NewNeo4jClient(cfg)
//	if err != nil {
//	    return err
//	}
//	if err := client.Connect(ctx); err != nil {
//	    return err
//	}
//	defer client.Close(ctx)
//
//	res, err := client.Read(ctx, graph.NewQuery("items_in_order",
//	    "MATCH (o:Order {id: $id})-[:CONTAINS]->(i:Item) RETURN i.name AS name",
//	    map[string]any{"id": "1"},
//	))
//
// # Errors
//
// Failures are *types.Error values with one of the ErrCodeGraph* codes. The
// driver error is kept as the cause, so errors.As with *neo4j.Neo4jError still
// works. Retryable is set from neo4j.IsRetryable. Nothing here retries on its
// own; the driver's managed-transaction retry is bounded by
// Config.MaxTransactionRetryTime and disabled by default.
package graph
