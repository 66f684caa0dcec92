package platformerrors

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// HTTPErrorResponse is the failure body returned to callers.
type HTTPErrorResponse struct {
	Detail string `json:"detail"`
}

// WriteError writes err as a {"detail": ...} response.
// Upstream errors keep the upstream status; everything else is a 500.
func WriteError(c *gin.Context, err error, log zerolog.Logger) {
	pe := AsPlatformError(err)
	LogError(log, pe)

	status := pe.Status
	if pe.Type != ErrorTypeUpstream || status == 0 {
		status = http.StatusInternalServerError
	}

	c.JSON(status, HTTPErrorResponse{Detail: pe.Detail})
}

// LogError logs a PlatformError at a level matching its type.
func LogError(log zerolog.Logger, err *PlatformError) {
	event := log.Error()
	if err.Type == ErrorTypeUpstream && err.Status < http.StatusInternalServerError {
		event = log.Warn()
	}
	event.
		Str("error_type", string(err.Type)).
		Int("status", err.Status).
		Err(err.Err).
		Msg("request failed")
}
