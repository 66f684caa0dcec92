package domain

import (
	"github.com/google/wire"
	"github.com/rs/zerolog"

	"vesper-voice-api/internal/config"
	"vesper-voice-api/internal/domain/session"
)

// ProvideSessionService provides the session relay service.
func ProvideSessionService(
	provider session.Provider,
	cfg *config.Config,
	log zerolog.Logger,
) session.Service {
	return session.NewService(provider, cfg.RealtimeModel, cfg.RealtimeVoice, log)
}

// ServiceProvider provides all domain services.
var ServiceProvider = wire.NewSet(
	ProvideSessionService,
)
