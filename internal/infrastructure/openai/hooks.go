package openai

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"vesper-voice-api/internal/domain/session"
	"vesper-voice-api/internal/infrastructure/metrics"
)

type callStartedAt struct{}

// beforeRequest opens the client span, stamps the start time on the request
// context and propagates the trace to the provider.
func (c *Client) beforeRequest(_ *resty.Client, r *resty.Request) error {
	attrs := []attribute.KeyValue{
		attribute.String("http.method", r.Method),
		attribute.String("http.url", r.URL),
	}
	if body, ok := r.Body.(*session.ClientSecretRequest); ok {
		attrs = append(attrs, attribute.String("realtime.model", body.Session.Model))
	}

	ctx, _ := otel.Tracer(instrumentationName).Start(r.Context(), "openai.CreateClientSecret",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attrs...),
	)
	ctx = context.WithValue(ctx, callStartedAt{}, time.Now())
	r.SetContext(ctx)

	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(r.Header))
	return nil
}

// afterResponse runs for every HTTP answer, 2xx or not.
func (c *Client) afterResponse(_ *resty.Client, resp *resty.Response) error {
	ctx := resp.Request.Context()
	latency := elapsed(ctx)

	outcome := metrics.OutcomeSuccess
	if !resp.IsSuccess() {
		outcome = metrics.OutcomeUpstreamError
	}
	c.record(ctx, outcome, latency)

	span := trace.SpanFromContext(ctx)
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode()))
	if outcome != metrics.OutcomeSuccess {
		span.SetStatus(codes.Error, "upstream error")
	}
	span.End()

	c.log.Debug().
		Int("status", resp.StatusCode()).
		Int("resp_bytes", len(resp.Body())).
		Dur("latency", latency).
		Msg("HTTP client request")
	return nil
}

// onError runs when no HTTP answer was obtained.
func (c *Client) onError(r *resty.Request, err error) {
	ctx := r.Context()
	c.record(ctx, metrics.OutcomeTransportErr, elapsed(ctx))

	span := trace.SpanFromContext(ctx)
	span.RecordError(c.redactError(err))
	span.SetStatus(codes.Error, "transport error")
	span.End()
}

func (c *Client) record(ctx context.Context, outcome string, latency time.Duration) {
	metrics.RecordUpstreamRequest(outcome, latency)
	c.upstreamDuration.Record(ctx, latency.Seconds(),
		metric.WithAttributes(attribute.String("outcome", outcome)),
	)
}

func elapsed(ctx context.Context) time.Duration {
	start, ok := ctx.Value(callStartedAt{}).(time.Time)
	if !ok {
		return 0
	}
	return time.Since(start)
}
