// Package controller contains HTTP middlewares and helper handlers used by the API server.
//
// Provided middlewares:
//   - WithCORS: Allows credentialed cross-origin calls from an origin allowlist
//     and handles OPTIONS preflight.
//   - WithLogger: Attaches a request-scoped logger and request ID to the context
//     and logs access info.
//   - WithMetrics: Records request count and latency instruments.
//
// Provided helpers:
//   - PprofMux: Returns a ServeMux exposing net/http/pprof handlers.
package controller
