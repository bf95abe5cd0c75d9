package graph

import (
	"context"
	"time"

	"github.com/uakotik/DB-lab5/internal/types"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Span and metric names emitted by TracedClient.
const (
	SpanGraphRead    = "shopgraph.graph.read"
	SpanGraphWrite   = "shopgraph.graph.write"
	SpanGraphConnect = "shopgraph.graph.connect"

	MetricGraphQueries       = "shopgraph.graph.queries"
	MetricGraphQueryDuration = "shopgraph.graph.query.duration"

	instrumentationName = "github.com/uakotik/DB-lab5/internal/graph"
)

// TracedClient wraps a Client with OpenTelemetry spans and query metrics.
// It delegates every call to the inner client unchanged.
type TracedClient struct {
	inner  Client
	tracer trace.Tracer

	queries  metric.Int64Counter
	duration metric.Float64Histogram
}

// TracedOption configures a TracedClient.
type TracedOption func(*tracedOptions)

type tracedOptions struct {
	tracer trace.Tracer
	meter  metric.Meter
}

// WithTracer overrides the global tracer.
func WithTracer(tracer trace.Tracer) TracedOption {
	return func(o *tracedOptions) {
		o.tracer = tracer
	}
}

// WithMeter overrides the global meter.
func WithMeter(meter metric.Meter) TracedOption {
	return func(o *tracedOptions) {
		o.meter = meter
	}
}

// NewTracedClient wraps inner with tracing and metrics.
// Without options the global otel providers are used.
func NewTracedClient(inner Client, opts ...TracedOption) (*TracedClient, error) {
	o := &tracedOptions{
		tracer: otel.Tracer(instrumentationName),
		meter:  otel.Meter(instrumentationName),
	}
	for _, opt := range opts {
		opt(o)
	}

	queries, err := o.meter.Int64Counter(MetricGraphQueries,
		metric.WithDescription("Number of graph queries executed"),
	)
	if err != nil {
		return nil, err
	}

	duration, err := o.meter.Float64Histogram(MetricGraphQueryDuration,
		metric.WithDescription("Graph query round-trip time"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &TracedClient{
		inner:    inner,
		tracer:   o.tracer,
		queries:  queries,
		duration: duration,
	}, nil
}

// Connect traces driver creation and connectivity verification.
func (c *TracedClient) Connect(ctx context.Context) error {
	ctx, span := c.tracer.Start(ctx, SpanGraphConnect,
		trace.WithAttributes(attribute.String("db.system", "neo4j")),
	)
	defer span.End()

	if err := c.inner.Connect(ctx); err != nil {
		recordSpanError(span, err)
		return err
	}
	span.SetStatus(codes.Ok, "connected")
	return nil
}

// Close delegates to the inner client.
func (c *TracedClient) Close(ctx context.Context) error {
	return c.inner.Close(ctx)
}

// Health delegates to the inner client.
func (c *TracedClient) Health(ctx context.Context) types.HealthStatus {
	return c.inner.Health(ctx)
}

// Read traces a read query.
func (c *TracedClient) Read(ctx context.Context, q Query) (QueryResult, error) {
	return c.trace(ctx, SpanGraphRead, "read", q, c.inner.Read)
}

// Write traces a write query.
func (c *TracedClient) Write(ctx context.Context, q Query) (QueryResult, error) {
	return c.trace(ctx, SpanGraphWrite, "write", q, c.inner.Write)
}

func (c *TracedClient) trace(
	ctx context.Context,
	spanName, mode string,
	q Query,
	run func(context.Context, Query) (QueryResult, error),
) (QueryResult, error) {
	ctx, span := c.tracer.Start(ctx, spanName,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", "neo4j"),
			attribute.String("db.operation.name", q.Name),
			attribute.String("db.query.text", q.Cypher),
		),
	)
	defer span.End()

	start := time.Now()
	result, err := run(ctx, q)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0

	status := "ok"
	if err != nil {
		status = "error"
	}
	attrs := metric.WithAttributes(
		attribute.String("operation", q.Name),
		attribute.String("mode", mode),
		attribute.String("status", status),
	)
	c.queries.Add(ctx, 1, attrs)
	c.duration.Record(ctx, elapsed, attrs)

	if err != nil {
		recordSpanError(span, err)
		return result, err
	}

	span.SetAttributes(
		attribute.Int("shopgraph.graph.records", len(result.Records)),
		attribute.Int("shopgraph.graph.nodes_created", result.Summary.NodesCreated),
		attribute.Int("shopgraph.graph.nodes_deleted", result.Summary.NodesDeleted),
		attribute.Int("shopgraph.graph.relationships_created", result.Summary.RelationshipsCreated),
	)
	span.SetStatus(codes.Ok, "")
	return result, nil
}

func recordSpanError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	if code := types.CodeOf(err); code != "" {
		span.SetAttributes(attribute.String("error.type", string(code)))
	}
}
