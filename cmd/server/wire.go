//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"
	"github.com/rs/zerolog"

	"vesper-voice-api/internal/config"
	"vesper-voice-api/internal/domain"
	"vesper-voice-api/internal/infrastructure"
	"vesper-voice-api/internal/interfaces"
)

// ProviderSet is the wire provider set for the application.
var ProviderSet = wire.NewSet(
	infrastructure.InfrastructureProvider,
	domain.ServiceProvider,
	interfaces.InterfacesProvider,
	NewApplication,
)

// CreateApplication creates the application with all dependencies wired.
func CreateApplication(cfg *config.Config, log zerolog.Logger) (*Application, error) {
	wire.Build(ProviderSet)
	return nil, nil
}
