package observability

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"vesper-voice-api/internal/config"
	"vesper-voice-api/internal/infrastructure/metrics"
)

func TestNormalizeEndpoint(t *testing.T) {
	tests := []struct {
		in           string
		wantEndpoint string
		wantInsecure bool
	}{
		{"http://otel-collector:4318", "otel-collector:4318", true},
		{"https://otel.example.com", "otel.example.com", false},
		{"otel-collector:4318", "otel-collector:4318", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			endpoint, insecure := normalizeEndpoint(tt.in)
			assert.Equal(t, tt.wantEndpoint, endpoint)
			assert.Equal(t, tt.wantInsecure, insecure)
		})
	}
}

func TestSetup_Disabled(t *testing.T) {
	cfg := &config.Config{ServiceName: "vesper-voice-api", Environment: "test"}

	shutdown, err := Setup(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}

func TestSetup_InstallsSDKProviders(t *testing.T) {
	cfg := &config.Config{ServiceName: "vesper-voice-api", Environment: "test"}

	shutdown, err := Setup(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = shutdown(context.Background()) })

	assert.IsType(t, &sdktrace.TracerProvider{}, otel.GetTracerProvider())
	assert.IsType(t, &sdkmetric.MeterProvider{}, otel.GetMeterProvider())
}

func TestMeterOptions_UpstreamDurationBuckets(t *testing.T) {
	ctx := context.Background()
	reader := sdkmetric.NewManualReader()
	opts := append(meterOptions(resource.Empty()), sdkmetric.WithReader(reader))
	mp := sdkmetric.NewMeterProvider(opts...)
	t.Cleanup(func() { _ = mp.Shutdown(ctx) })

	hist, err := mp.Meter("test").Float64Histogram(metrics.UpstreamDurationInstrument)
	require.NoError(t, err)
	hist.Record(ctx, 0.3)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))
	require.Len(t, rm.ScopeMetrics, 1)
	require.Len(t, rm.ScopeMetrics[0].Metrics, 1)

	data, ok := rm.ScopeMetrics[0].Metrics[0].Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, data.DataPoints, 1)
	assert.Equal(t, metrics.UpstreamDurationBuckets, data.DataPoints[0].Bounds)
	assert.Equal(t, uint64(1), data.DataPoints[0].Count)
}

func TestNamed(t *testing.T) {
	assert.NoError(t, named("meter provider", nil))
	err := named("meter provider", context.DeadlineExceeded)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, err.Error(), "shutdown meter provider")
}
