package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"
)

// LocalDevOrigin is the frontend dev server origin, always allowed by CORS.
const LocalDevOrigin = "http://localhost:3000"

// Config holds all configuration for the voice relay service.
// It is built once at startup and never mutated afterwards.
type Config struct {
	// Service settings
	ServiceName     string        `env:"SERVICE_NAME" envDefault:"vesper-voice-api" validate:"required"`
	Environment     string        `env:"ENVIRONMENT" envDefault:"development"`
	HTTPPort        int           `env:"PORT" envDefault:"8000" validate:"min=1,max=65535"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"LOG_FORMAT" envDefault:"json" validate:"oneof=json console"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// OpenTelemetry
	EnableTracing bool   `env:"OTEL_ENABLED" envDefault:"false"`
	OTLPEndpoint  string `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:""`

	// CORS
	FrontendURL string `env:"FRONTEND_URL" validate:"omitempty,url"`

	// OpenAI Realtime
	OpenAIAPIKey           string `env:"OPENAI_API_KEY"`
	OpenAIClientSecretsURL string `env:"OPENAI_CLIENT_SECRETS_URL" envDefault:"https://api.openai.com/v1/realtime/client_secrets" validate:"required,url"`
	RealtimeModel          string `env:"REALTIME_MODEL" envDefault:"gpt-realtime" validate:"required"`
	RealtimeVoice          string `env:"REALTIME_VOICE" envDefault:"marin" validate:"required"`
}

// Load parses environment variables into Config.
//
// A missing OPENAI_API_KEY is not an error here: the upstream provider
// rejects the call and that rejection is relayed to the caller.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}

	cfg.FrontendURL = strings.TrimRight(strings.TrimSpace(cfg.FrontendURL), "/")
	cfg.OpenAIAPIKey = strings.TrimSpace(cfg.OpenAIAPIKey)

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// Addr returns the HTTP server address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// HasAPIKey reports whether the upstream secret is configured.
func (c *Config) HasAPIKey() bool {
	return c.OpenAIAPIKey != ""
}

// AllowedOrigins returns the origins granted cross-origin access:
// the configured frontend (if any) and the local dev server.
func (c *Config) AllowedOrigins() []string {
	origins := make([]string, 0, 2)
	if c.FrontendURL != "" && c.FrontendURL != LocalDevOrigin {
		origins = append(origins, c.FrontendURL)
	}
	return append(origins, LocalDevOrigin)
}
