// @title           Vesper Voice API
// @version         1.0
// @description     Relay that mints ephemeral realtime voice session credentials.

// @contact.name   Vesper

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8000
// @BasePath  /

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"vesper-voice-api/internal/config"
	"vesper-voice-api/internal/domain"
	"vesper-voice-api/internal/infrastructure"
	"vesper-voice-api/internal/infrastructure/logger"
	"vesper-voice-api/internal/infrastructure/observability"
	"vesper-voice-api/internal/interfaces/httpserver"
	"vesper-voice-api/internal/interfaces/httpserver/handlers"
	"vesper-voice-api/internal/interfaces/httpserver/routes"
)

// Application holds the main application components.
type Application struct {
	httpServer *httpserver.HTTPServer
	log        zerolog.Logger
}

// NewApplication creates a new application instance.
func NewApplication(httpServer *httpserver.HTTPServer, log zerolog.Logger) *Application {
	return &Application{
		httpServer: httpServer,
		log:        log,
	}
}

// Start runs the application until ctx is cancelled.
func (a *Application) Start(ctx context.Context) error {
	return a.httpServer.Run(ctx)
}

func main() {
	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	log := logger.New(cfg)

	if !cfg.HasAPIKey() {
		log.Warn().Msg("OPENAI_API_KEY is not set; session requests will be rejected upstream")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize observability")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("failed to shutdown telemetry")
		}
	}()

	sessionProvider := infrastructure.ProvideSessionProvider(cfg, log)
	sessionService := domain.ProvideSessionService(sessionProvider, cfg, log)
	routeProvider := routes.NewProvider(handlers.NewProvider(sessionService))
	httpServer := httpserver.New(cfg, log, routeProvider)

	app := NewApplication(httpServer, log)

	log.Info().
		Int("port", cfg.HTTPPort).
		Str("environment", cfg.Environment).
		Str("model", cfg.RealtimeModel).
		Str("voice", cfg.RealtimeVoice).
		Msg("starting application")

	if err := app.Start(ctx); err != nil {
		log.Error().Err(err).Msg("application stopped with error")
		return
	}

	log.Info().Msg("application exited cleanly")
}

func loadEnvFiles() {
	paths := []string{".env", "../.env", "../../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
