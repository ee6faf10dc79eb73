package middleware

import (
	"github.com/deppfellow/rpos-gateway/internal/server"
)

// Middlewares groups every middleware component used by the router.
type Middlewares struct {
	// Global holds CORS, request logging, recovery, secure headers and
	// the global error handler.
	Global *GlobalMiddlewares

	// ContextEnhancer attaches a request-scoped logger.
	ContextEnhancer *ContextEnhancer

	// Tracing installs New Relic and adds request attributes.
	Tracing *TracingMiddleware

	// RateLimit throttles clients per IP and reports throttled requests.
	RateLimit *RateLimitMiddleware
}

// NewMiddlewares constructs all middleware components. Tracing degrades
// to a no-op when New Relic is not configured.
func NewMiddlewares(s *server.Server) *Middlewares {
	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		ContextEnhancer: NewContextEnhancer(s),
		Tracing:         NewTracingMiddleware(s, s.LoggerService.GetApplication()),
		RateLimit:       NewRateLimitMiddleware(s),
	}
}
