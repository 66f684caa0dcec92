// Package openai implements the session provider against the OpenAI
// Realtime client-secrets endpoint.
package openai

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"

	"vesper-voice-api/internal/config"
	"vesper-voice-api/internal/domain/session"
	"vesper-voice-api/internal/infrastructure/metrics"
)

const (
	instrumentationName = "vesper-voice-api/openai"
	redacted            = "[REDACTED]"
)

// Client implements session.Provider with a shared Resty client.
type Client struct {
	httpClient       *resty.Client
	url              string
	apiKey           string
	log              zerolog.Logger
	upstreamDuration metric.Float64Histogram
}

// NewClient creates a Resty-backed client. No timeout is set beyond the
// transport defaults, no retries are configured and redirects are not
// followed: a 3xx is handed back like any other non-2xx answer.
func NewClient(cfg *config.Config, log zerolog.Logger) *Client {
	c := &Client{
		url:    cfg.OpenAIClientSecretsURL,
		apiKey: cfg.OpenAIAPIKey,
		log:    log.With().Str("component", "openai-client").Logger(),
	}

	hist, err := otel.Meter(instrumentationName).Float64Histogram(
		metrics.UpstreamDurationInstrument,
		metric.WithDescription("Duration of upstream client secret requests"),
		metric.WithUnit("s"),
	)
	if err != nil {
		c.log.Warn().Err(err).Msg("upstream duration instrument unavailable")
		hist = noop.Float64Histogram{}
	}
	c.upstreamDuration = hist

	c.httpClient = resty.New().
		SetLogger(restyLogger{log: c.log}).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetAuthToken(cfg.OpenAIAPIKey).
		SetRedirectPolicy(resty.RedirectPolicyFunc(func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		})).
		OnBeforeRequest(c.beforeRequest).
		OnAfterResponse(c.afterResponse).
		OnError(c.onError)

	return c
}

// CreateClientSecret posts req to the client-secrets endpoint. Any HTTP
// response, including non-2xx, is returned as an UpstreamResponse; an error
// is only returned when no response was obtained.
func (c *Client) CreateClientSecret(ctx context.Context, req *session.ClientSecretRequest) (*session.UpstreamResponse, error) {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(req).
		Post(c.url)
	if err != nil {
		return nil, fmt.Errorf("create client secret: %w", c.redactError(err))
	}

	return &session.UpstreamResponse{
		StatusCode: resp.StatusCode(),
		Body:       c.redactBytes(resp.Body()),
	}, nil
}

func (c *Client) redactBytes(b []byte) []byte {
	if c.apiKey == "" || !bytes.Contains(b, []byte(c.apiKey)) {
		return b
	}
	return bytes.ReplaceAll(b, []byte(c.apiKey), []byte(redacted))
}

func (c *Client) redactError(err error) error {
	if c.apiKey == "" || !strings.Contains(err.Error(), c.apiKey) {
		return err
	}
	return errors.New(strings.ReplaceAll(err.Error(), c.apiKey, redacted))
}

// Ensure interface compliance.
var _ session.Provider = (*Client)(nil)

// restyLogger routes Resty's internal logging to zerolog.
type restyLogger struct {
	log zerolog.Logger
}

func (l restyLogger) Errorf(format string, v ...interface{}) {
	l.log.Error().Msgf(strings.TrimSpace(format), v...)
}

func (l restyLogger) Warnf(format string, v ...interface{}) {
	l.log.Warn().Msgf(strings.TrimSpace(format), v...)
}

func (l restyLogger) Debugf(format string, v ...interface{}) {
	l.log.Debug().Msgf(strings.TrimSpace(format), v...)
}
