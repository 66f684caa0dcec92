package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vesper-voice-api/internal/interfaces/httpserver/handlers"
	"vesper-voice-api/internal/interfaces/httpserver/responses"
)

// RegisterSessionRoutes registers the session relay routes.
func RegisterSessionRoutes(router gin.IRoutes, handler *handlers.SessionHandler) {
	router.GET("/", healthCheck)
	router.POST("/api/session", createSession(handler))
}

// healthCheck godoc
// @Summary      Liveness check
// @Description  Returns a fixed payload while the service is running.
// @Tags         Health
// @Produce      json
// @Success      200 {object} responses.HealthResponse
// @Router       / [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, responses.HealthResponse{Status: "ok"})
}

// createSession godoc
// @Summary      Create a realtime voice session
// @Description  Mints an ephemeral client secret at the realtime provider using the server-side key and fixed session settings. The request body is ignored. On success the provider's JSON is returned unchanged.
// @Tags         Session
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} responses.ErrorResponse
// @Failure      401 {object} responses.ErrorResponse
// @Failure      429 {object} responses.ErrorResponse
// @Failure      500 {object} responses.ErrorResponse
// @Router       /api/session [post]
func createSession(handler *handlers.SessionHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp, err := handler.CreateSession(c.Request.Context())
		if err != nil {
			responses.HandleError(c, err)
			return
		}

		responses.WriteUpstream(c, resp)
	}
}
