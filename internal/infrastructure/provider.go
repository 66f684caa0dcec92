package infrastructure

import (
	"github.com/google/wire"
	"github.com/rs/zerolog"

	"vesper-voice-api/internal/config"
	"vesper-voice-api/internal/domain/session"
	"vesper-voice-api/internal/infrastructure/openai"
)

// ProvideSessionProvider provides the upstream realtime provider client.
func ProvideSessionProvider(cfg *config.Config, log zerolog.Logger) session.Provider {
	return openai.NewClient(cfg, log)
}

// InfrastructureProvider provides all infrastructure dependencies.
var InfrastructureProvider = wire.NewSet(
	ProvideSessionProvider,
)
