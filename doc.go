// Package vesperapi implements the Vesper voice relay, a small service that
// mints ephemeral OpenAI Realtime credentials for the portfolio frontend.
//
// The service provides:
//   - POST /api/session: creates a realtime client secret upstream using the
//     server-held API key and a fixed session configuration
//   - GET /: liveness payload
//   - Prometheus metrics, OpenTelemetry tracing and Swagger docs
//
// Configuration is read from the environment; see .env.example.
package vesperapi
