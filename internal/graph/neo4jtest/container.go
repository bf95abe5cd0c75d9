// Package neo4jtest starts a disposable Neo4j server for integration tests.
package neo4jtest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/uakotik/DB-lab5/internal/graph"
)

// Image is the Neo4j image used by integration tests.
const Image = "neo4j:5"

// Start runs a Neo4j container with authentication disabled and returns a
// client config pointing at it. The container is terminated when t finishes.
// The test is skipped in -short mode or when Docker is not reachable.
func Start(t *testing.T) graph.Config {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping Neo4j integration test in short mode")
	}

	ctx := context.Background()

	provider, err := testcontainers.ProviderDocker.GetProvider()
	if err != nil {
		t.Skip("Docker not available, skipping integration test")
	}
	if err := provider.Health(ctx); err != nil {
		t.Skip("Docker not running, skipping integration test")
	}

	req := testcontainers.ContainerRequest{
		Image:        Image,
		ExposedPorts: []string{"7687/tcp"},
		Env: map[string]string{
			"NEO4J_AUTH": "none",
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("7687/tcp"),
			wait.ForLog("Started."),
		).WithDeadline(120 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("failed to start Neo4j container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate Neo4j container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("failed to get container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "7687")
	if err != nil {
		t.Fatalf("failed to get mapped port: %v", err)
	}

	cfg := graph.DefaultConfig()
	cfg.URI = fmt.Sprintf("bolt://%s:%s", host, port.Port())
	// Auth is disabled, but config validation requires a password.
	cfg.Password = "ignored"
	cfg.MaxConnectionPoolSize = 10
	return cfg
}
