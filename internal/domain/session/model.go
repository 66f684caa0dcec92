package session

import (
	_ "embed"
	"net/http"
)

// SessionType is the only session type the relay requests.
const SessionType = "realtime"

// Instructions is the fixed system prompt sent with every session request.
//
//go:embed instructions.txt
var Instructions string

// ClientSecretRequest is the body posted to the provider's client-secrets endpoint.
type ClientSecretRequest struct {
	Session SessionConfig `json:"session"`
}

// SessionConfig configures the realtime session the ephemeral credential is minted for.
type SessionConfig struct {
	Type         string      `json:"type"`
	Model        string      `json:"model"`
	Instructions string      `json:"instructions"`
	Audio        AudioConfig `json:"audio"`
}

// AudioConfig holds audio settings of the session.
type AudioConfig struct {
	Output AudioOutput `json:"output"`
}

// AudioOutput selects the voice the model speaks with.
type AudioOutput struct {
	Voice string `json:"voice"`
}

// NewClientSecretRequest builds the deployment-wide request payload.
func NewClientSecretRequest(model, voice string) *ClientSecretRequest {
	return &ClientSecretRequest{
		Session: SessionConfig{
			Type:         SessionType,
			Model:        model,
			Instructions: Instructions,
			Audio: AudioConfig{
				Output: AudioOutput{Voice: voice},
			},
		},
	}
}

// UpstreamResponse is the provider's answer, kept opaque.
type UpstreamResponse struct {
	StatusCode int
	Body       []byte
}

// IsSuccess reports whether the provider answered with a 2xx status.
func (r *UpstreamResponse) IsSuccess() bool {
	return r.StatusCode >= http.StatusOK && r.StatusCode < http.StatusMultipleChoices
}
