// Package observability wires the process-wide logging, tracing and metrics.
//
// NewLogger builds a log/slog logger that writes text or JSON to stderr, stdout or a
// size-rotated file, redacts credential-like attributes and tags records with the
// trace and span ids of the active span:
//
//	logger, closer, err := observability.NewLogger(cfg.Logging)
//	if err != nil {
//	    return err
//	}
//	defer closer.Close()
//
// InitTracing installs an OTLP gRPC tracer provider, and InitMetrics exposes the
// OpenTelemetry meter provider through a Prometheus scrape endpoint:
//
//	tp, err := observability.InitTracing(ctx, cfg.Tracing)
//	defer observability.ShutdownTracing(ctx, tp)
//
//	m, err := observability.InitMetrics(ctx, cfg.Metrics, logger)
//	defer m.Shutdown(ctx)
//
// Both are disabled by default, in which case they return providers that record nothing.
package observability
