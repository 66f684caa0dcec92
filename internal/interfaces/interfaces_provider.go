package interfaces

import (
	"github.com/google/wire"

	"vesper-voice-api/internal/interfaces/httpserver"
	"vesper-voice-api/internal/interfaces/httpserver/handlers"
	"vesper-voice-api/internal/interfaces/httpserver/routes"
)

// InterfacesProvider provides all interface dependencies.
var InterfacesProvider = wire.NewSet(
	handlers.HandlerProvider,
	routes.RouteProvider,
	httpserver.New,
)
