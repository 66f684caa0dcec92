// Package observability installs the process-wide OpenTelemetry tracer and
// meter providers used by the relay's middleware and upstream client.
package observability

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"vesper-voice-api/internal/config"
	"vesper-voice-api/internal/infrastructure/metrics"
)

const exportInterval = 30 * time.Second

// Shutdown flushes and releases the installed providers.
type Shutdown func(ctx context.Context) error

// Setup installs global tracer and meter providers. OTLP exporters are
// attached only when tracing is enabled and an endpoint is configured;
// otherwise spans and instruments stay in-process.
func Setup(ctx context.Context, cfg *config.Config, log zerolog.Logger) (Shutdown, error) {
	res, err := resource.New(ctx, resource.WithAttributes(
		semconv.ServiceName(cfg.ServiceName),
		attribute.String("environment", cfg.Environment),
	))
	if err != nil {
		return nil, fmt.Errorf("build otel resource: %w", err)
	}

	export := cfg.EnableTracing && cfg.OTLPEndpoint != ""

	tracerProvider, err := newTracerProvider(ctx, res, cfg.OTLPEndpoint, export)
	if err != nil {
		return nil, err
	}
	meterProvider, err := newMeterProvider(ctx, res, cfg.OTLPEndpoint, export)
	if err != nil {
		return nil, errors.Join(err, tracerProvider.Shutdown(ctx))
	}

	otel.SetTracerProvider(tracerProvider)
	otel.SetMeterProvider(meterProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	if export {
		log.Info().Str("endpoint", cfg.OTLPEndpoint).Msg("otlp export enabled")
	} else {
		log.Info().Msg("otlp export disabled")
	}

	return func(ctx context.Context) error {
		return errors.Join(
			named("meter provider", meterProvider.Shutdown(ctx)),
			named("tracer provider", tracerProvider.Shutdown(ctx)),
		)
	}, nil
}

func newTracerProvider(ctx context.Context, res *resource.Resource, endpoint string, export bool) (*sdktrace.TracerProvider, error) {
	opts := []sdktrace.TracerProviderOption{sdktrace.WithResource(res)}
	if export {
		host, insecure := normalizeEndpoint(endpoint)
		exporterOpts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(host)}
		if insecure {
			exporterOpts = append(exporterOpts, otlptracehttp.WithInsecure())
		}
		exporter, err := otlptracehttp.New(ctx, exporterOpts...)
		if err != nil {
			return nil, fmt.Errorf("create trace exporter: %w", err)
		}
		opts = append(opts, sdktrace.WithBatcher(exporter), sdktrace.WithSampler(sdktrace.AlwaysSample()))
	}
	return sdktrace.NewTracerProvider(opts...), nil
}

func newMeterProvider(ctx context.Context, res *resource.Resource, endpoint string, export bool) (*sdkmetric.MeterProvider, error) {
	opts := meterOptions(res)
	if export {
		host, insecure := normalizeEndpoint(endpoint)
		exporterOpts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(host)}
		if insecure {
			exporterOpts = append(exporterOpts, otlpmetrichttp.WithInsecure())
		}
		exporter, err := otlpmetrichttp.New(ctx, exporterOpts...)
		if err != nil {
			return nil, fmt.Errorf("create metric exporter: %w", err)
		}
		opts = append(opts, sdkmetric.WithReader(
			sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(exportInterval)),
		))
	}
	return sdkmetric.NewMeterProvider(opts...), nil
}

// meterOptions buckets the upstream duration histogram like its
// Prometheus twin.
func meterOptions(res *resource.Resource) []sdkmetric.Option {
	upstreamView := sdkmetric.NewView(
		sdkmetric.Instrument{Name: metrics.UpstreamDurationInstrument},
		sdkmetric.Stream{Aggregation: sdkmetric.AggregationExplicitBucketHistogram{
			Boundaries: metrics.UpstreamDurationBuckets,
		}},
	)
	return []sdkmetric.Option{
		sdkmetric.WithResource(res),
		sdkmetric.WithView(upstreamView),
	}
}

func named(what string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("shutdown %s: %w", what, err)
}

// normalizeEndpoint strips the scheme from an OTLP endpoint; plain http
// and scheme-less endpoints are treated as insecure.
func normalizeEndpoint(endpoint string) (string, bool) {
	switch {
	case strings.HasPrefix(endpoint, "https://"):
		return strings.TrimPrefix(endpoint, "https://"), false
	case strings.HasPrefix(endpoint, "http://"):
		return strings.TrimPrefix(endpoint, "http://"), true
	default:
		return endpoint, true
	}
}
