package graph_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uakotik/DB-lab5/internal/graph"
	"github.com/uakotik/DB-lab5/internal/graph/neo4jtest"
	"github.com/uakotik/DB-lab5/internal/types"
	"go.uber.org/goleak"
)

func TestNeo4jClient_Integration(t *testing.T) {
	cfg := neo4jtest.Start(t)

	// Snapshot after the container is up so only driver goroutines are checked.
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	ctx := context.Background()
	client, err := graph.NewNeo4jClient(cfg)
	require.NoError(t, err)
	require.NoError(t, client.Connect(ctx))

	status := client.Health(ctx)
	assert.True(t, status.IsHealthy(), status.Message)

	created, err := client.Write(ctx, graph.NewQuery("create_probe",
		"CREATE (p:Probe {id: $id}) RETURN p.id AS id",
		map[string]any{"id": "p-1"},
	))
	require.NoError(t, err)
	assert.Equal(t, 1, created.Summary.NodesCreated)
	assert.Equal(t, []string{"id"}, created.Columns)

	read, err := client.Read(ctx, graph.NewQuery("read_probe",
		"MATCH (p:Probe {id: $id}) RETURN p.id AS id",
		map[string]any{"id": "p-1"},
	))
	require.NoError(t, err)
	rec, ok := read.Single()
	require.True(t, ok)
	assert.Equal(t, "p-1", rec["id"])

	_, err = client.Read(ctx, graph.NewQuery("broken", "MATCH (n RETURN n", nil))
	require.Error(t, err)
	assert.Equal(t, graph.ErrCodeGraphQueryFailed, types.CodeOf(err))

	deleted, err := client.Write(ctx, graph.NewQuery("cleanup", "MATCH (p:Probe) DETACH DELETE p", nil))
	require.NoError(t, err)
	assert.Equal(t, 1, deleted.Summary.NodesDeleted)

	require.NoError(t, client.Close(ctx))

	_, err = client.Read(ctx, graph.NewQuery("after_close", "RETURN 1", nil))
	assert.Equal(t, graph.ErrCodeGraphConnectionClosed, types.CodeOf(err))
}
