package session

import (
	"context"

	"github.com/rs/zerolog"

	"vesper-voice-api/internal/utils/platformerrors"
)

// Provider mints ephemeral client secrets at the upstream realtime API.
// A returned error means no HTTP response was obtained.
type Provider interface {
	CreateClientSecret(ctx context.Context, req *ClientSecretRequest) (*UpstreamResponse, error)
}

// Service defines the business operations of the session relay.
type Service interface {
	// CreateSession performs one upstream round trip. Failures are
	// *platformerrors.PlatformError values.
	CreateSession(ctx context.Context) (*UpstreamResponse, error)
}

type service struct {
	provider Provider
	request  *ClientSecretRequest
	log      zerolog.Logger
}

// NewService creates a new session relay service.
func NewService(provider Provider, model, voice string, log zerolog.Logger) Service {
	return &service{
		provider: provider,
		request:  NewClientSecretRequest(model, voice),
		log:      log.With().Str("component", "session-service").Logger(),
	}
}

func (s *service) CreateSession(ctx context.Context) (*UpstreamResponse, error) {
	resp, err := s.provider.CreateClientSecret(ctx, s.request)
	if err != nil {
		s.log.Error().Err(err).Msg("upstream call failed")
		return nil, platformerrors.NewInternalError(err)
	}

	if !resp.IsSuccess() {
		s.log.Warn().
			Int("status", resp.StatusCode).
			Msg("upstream rejected session request")
		return nil, platformerrors.NewUpstreamError(resp.StatusCode, string(resp.Body))
	}

	s.log.Info().
		Int("status", resp.StatusCode).
		Str("model", s.request.Session.Model).
		Msg("session created")

	return resp, nil
}
