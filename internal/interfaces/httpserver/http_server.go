package httpserver

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "vesper-voice-api/docs/swagger"
	"vesper-voice-api/internal/config"
	"vesper-voice-api/internal/interfaces/httpserver/middlewares"
	"vesper-voice-api/internal/interfaces/httpserver/routes"
)

// HTTPServer is the HTTP server for the voice relay.
type HTTPServer struct {
	cfg     *config.Config
	handler http.Handler
	log     zerolog.Logger
}

// New creates a new HTTP server.
func New(
	cfg *config.Config,
	log zerolog.Logger,
	routeProvider *routes.Provider,
) *HTTPServer {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	engine.Use(middlewares.RequestID())
	engine.Use(middlewares.Tracing(cfg.ServiceName))
	engine.Use(middlewares.Metrics())
	engine.Use(middlewares.RequestLogger(log))

	registerCoreRoutes(engine)

	routeProvider.Register(engine)

	return &HTTPServer{
		cfg:     cfg,
		handler: middlewares.CORS(cfg.AllowedOrigins())(engine),
		log:     log,
	}
}

// Handler returns the root handler, CORS included.
func (s *HTTPServer) Handler() http.Handler {
	return s.handler
}

// Run starts the HTTP server and blocks until context is cancelled.
func (s *HTTPServer) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:    s.cfg.Addr(),
		Handler: s.handler,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().
			Str("addr", s.cfg.Addr()).
			Strs("allowed_origins", s.cfg.AllowedOrigins()).
			Msg("HTTP server listening")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error().Err(err).Msg("HTTP server error")
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		s.log.Info().Msg("context cancelled, shutting down HTTP server")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func registerCoreRoutes(engine *gin.Engine) {
	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	engine.GET("/readyz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
