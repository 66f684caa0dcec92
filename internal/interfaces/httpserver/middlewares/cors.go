package middlewares

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS grants cross-origin access, with credentials, to exactly the given
// origins. Requests from any other origin receive no CORS headers.
//
// It wraps the whole engine rather than running as a gin middleware so that
// preflight requests for unregistered routes are answered too.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodHead,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           600,
	})
}
