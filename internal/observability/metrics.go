package observability

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/uakotik/DB-lab5/internal/types"
	"go.opentelemetry.io/otel"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

const defaultMetricsPath = "/metrics"

// Metrics owns the meter provider and, when enabled, the Prometheus scrape server.
type Metrics struct {
	provider metric.MeterProvider
	sdk      *sdkmetric.MeterProvider
	server   *http.Server
	listener net.Listener
}

// InitMetrics builds a meter provider for cfg.
//
// When cfg.Enabled is false a noop provider is returned. Otherwise an OpenTelemetry
// Prometheus exporter feeds a dedicated registry served on cfg.Address, and the
// provider is installed globally so instruments created through otel.Meter report to it.
func InitMetrics(ctx context.Context, cfg MetricsConfig, logger *slog.Logger) (*Metrics, error) {
	if !cfg.Enabled {
		return &Metrics{provider: noop.NewMeterProvider()}, nil
	}
	if err := cfg.Validate(); err != nil {
		return nil, types.WrapError(ErrCodeInvalidConfig, "invalid metrics configuration", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	exporter, err := otelprom.New(otelprom.WithRegisterer(registry))
	if err != nil {
		return nil, types.WrapError(ErrCodeExporterConnection, "failed to create prometheus exporter", err)
	}
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))

	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", cfg.Address)
	if err != nil {
		_ = provider.Shutdown(ctx)
		return nil, types.WrapError(ErrCodeExporterConnection, "failed to listen on "+cfg.Address, err)
	}

	path := cfg.Path
	if path == "" {
		path = defaultMetricsPath
	}
	mux := http.NewServeMux()
	mux.Handle(path, promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))

	m := &Metrics{
		provider: provider,
		sdk:      provider,
		server:   &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second},
		listener: ln,
	}
	go func() {
		if err := m.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server stopped", "address", cfg.Address, "error", err)
		}
	}()
	logger.Debug("metrics endpoint listening", "address", ln.Addr().String(), "path", path)

	otel.SetMeterProvider(provider)
	return m, nil
}

// Provider returns the meter provider.
func (m *Metrics) Provider() metric.MeterProvider {
	return m.provider
}

// Addr returns the scrape server's listen address, or "" when metrics are disabled.
func (m *Metrics) Addr() string {
	if m.listener == nil {
		return ""
	}
	return m.listener.Addr().String()
}

// Shutdown stops the scrape server and flushes the provider.
func (m *Metrics) Shutdown(ctx context.Context) error {
	if m == nil || m.sdk == nil {
		return nil
	}

	var errs []error
	if m.server != nil {
		if err := m.server.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if err := m.sdk.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return types.WrapError(ErrCodeShutdown, "failed to shutdown metrics", err)
	}
	return nil
}
