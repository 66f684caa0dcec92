package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"

	"vesper-voice-api/internal/interfaces/httpserver/handlers"
)

// Provider holds all route providers.
type Provider struct {
	handlers *handlers.Provider
}

// NewProvider creates a new route provider.
func NewProvider(handlerProvider *handlers.Provider) *Provider {
	return &Provider{handlers: handlerProvider}
}

// Register registers all API routes on the engine. The relay endpoint is
// public: the frontend calls it without credentials.
func (p *Provider) Register(engine *gin.Engine) {
	RegisterSessionRoutes(engine, p.handlers.Session)
}

// RouteProvider provides the route provider for wire.
var RouteProvider = wire.NewSet(
	NewProvider,
)
