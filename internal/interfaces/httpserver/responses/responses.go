// Package responses contains HTTP response DTOs and writers for the relay.
package responses

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"vesper-voice-api/internal/domain/session"
	"vesper-voice-api/internal/utils/platformerrors"
)

// HealthResponse is the liveness payload.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

// ErrorResponse is the failure payload. Detail is the upstream's raw error
// body for upstream rejections, or the error message otherwise.
type ErrorResponse = platformerrors.HTTPErrorResponse

// WriteUpstream relays an upstream response verbatim with its status code.
func WriteUpstream(c *gin.Context, resp *session.UpstreamResponse) {
	c.Data(resp.StatusCode, "application/json", resp.Body)
}

// HandleError writes err as an ErrorResponse.
func HandleError(c *gin.Context, err error) {
	logger := log.With().
		Str("path", c.Request.URL.Path).
		Str("request_id", c.GetString("request_id")).
		Logger()
	platformerrors.WriteError(c, err, logger)
}
