// Package metrics wires the OpenTelemetry instruments for the reconciliation
// pipeline.
package metrics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hotspotid/salesledger/internal/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("observability.metrics",
	fx.Provide(NewConfig),
	fx.Provide(NewProvider),
	fx.Provide(New),
)

// Config configures the metrics provider.
type Config struct {
	Enabled          bool
	ExporterEndpoint string
	ExporterProtocol string
	ServiceName      string
	Environment      string
}

func NewConfig(cfg config.Config) Config {
	return Config{
		Enabled:          cfg.MetricsEnabled,
		ExporterEndpoint: cfg.MetricsEndpoint,
		ExporterProtocol: cfg.MetricsExporter,
		ServiceName:      cfg.AppName,
		Environment:      cfg.Environment,
	}
}

// Metrics exposes application-level instruments.
type Metrics struct {
	salesIngested     metric.Int64Counter
	duplicatesSkipped metric.Int64Counter
	removeFailures    metric.Int64Counter
	fetchFailures     metric.Int64Counter
}

// NewProvider configures and registers the meter provider.
func NewProvider(lc fx.Lifecycle, cfg Config, log *zap.Logger) (metric.MeterProvider, error) {
	if !cfg.Enabled {
		provider := noop.NewMeterProvider()
		otel.SetMeterProvider(provider)
		return provider, nil
	}

	exporter, err := newExporter(cfg.ExporterProtocol, cfg.ExporterEndpoint)
	if err != nil {
		return nil, err
	}

	reader := sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(10*time.Second))
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(provider)

	if lc != nil {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				log.Info("shutting down meter provider")
				return provider.Shutdown(ctx)
			},
		})
	}

	log.Info("metrics initialized",
		zap.String("endpoint", cfg.ExporterEndpoint),
		zap.String("protocol", cfg.ExporterProtocol),
	)

	return provider, nil
}

// New configures the domain metrics instruments.
func New(cfg Config, provider metric.MeterProvider) (*Metrics, error) {
	name := strings.TrimSpace(cfg.ServiceName)
	if name == "" {
		name = "salesledger"
	}
	meter := provider.Meter(name)

	m := &Metrics{}
	var err error

	if m.salesIngested, err = meter.Int64Counter("sales_ingested_total",
		metric.WithDescription("Sale records persisted from the device"),
	); err != nil {
		return nil, err
	}
	if m.duplicatesSkipped, err = meter.Int64Counter("sales_duplicates_skipped_total",
		metric.WithDescription("Remote records already present in the ledger"),
	); err != nil {
		return nil, err
	}
	if m.removeFailures, err = meter.Int64Counter("script_remove_failures_total",
		metric.WithDescription("Best-effort device script removals that failed"),
	); err != nil {
		return nil, err
	}
	if m.fetchFailures, err = meter.Int64Counter("script_fetch_failures_total",
		metric.WithDescription("Device fetches that failed and degraded results to partial"),
	); err != nil {
		return nil, err
	}

	return m, nil
}

func newExporter(protocol, endpoint string) (sdkmetric.Exporter, error) {
	ctx := context.Background()
	switch protocol {
	case "http":
		return otlpmetrichttp.New(ctx,
			otlpmetrichttp.WithEndpoint(endpoint),
			otlpmetrichttp.WithInsecure(),
		)
	case "grpc", "":
		return otlpmetricgrpc.New(ctx,
			otlpmetricgrpc.WithEndpoint(endpoint),
			otlpmetricgrpc.WithInsecure(),
		)
	default:
		return nil, fmt.Errorf("unsupported metrics exporter protocol %q", protocol)
	}
}

func (m *Metrics) RecordIngested(ctx context.Context, tag string) {
	if m == nil {
		return
	}
	m.salesIngested.Add(ctx, 1, metric.WithAttributes(attribute.String("stream", tag)))
}

func (m *Metrics) RecordDuplicate(ctx context.Context, tag string) {
	if m == nil {
		return
	}
	m.duplicatesSkipped.Add(ctx, 1, metric.WithAttributes(attribute.String("stream", tag)))
}

func (m *Metrics) RecordRemoveFailure(ctx context.Context) {
	if m == nil {
		return
	}
	m.removeFailures.Add(ctx, 1)
}

func (m *Metrics) RecordFetchFailure(ctx context.Context, tag string) {
	if m == nil {
		return
	}
	m.fetchFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("stream", tag)))
}
