package handlers

import (
	"context"

	"vesper-voice-api/internal/domain/session"
)

// SessionHandler handles session relay HTTP requests.
type SessionHandler struct {
	service session.Service
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(service session.Service) *SessionHandler {
	return &SessionHandler{service: service}
}

// CreateSession mints an ephemeral realtime credential upstream.
func (h *SessionHandler) CreateSession(ctx context.Context) (*session.UpstreamResponse, error) {
	return h.service.CreateSession(ctx)
}
