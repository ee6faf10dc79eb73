// Package router builds the Echo router: the middleware chain and the
// route groups mapped to their handlers.
package router

import (
	"github.com/deppfellow/rpos-gateway/internal/handler"
	"github.com/deppfellow/rpos-gateway/internal/middleware"
	"github.com/deppfellow/rpos-gateway/internal/server"
	"github.com/labstack/echo/v4"
)

// NewRouter wires middleware and routes. Order matters: New Relic starts
// the transaction before tracing decorates it, and the request id exists
// before the request logger is built.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	m := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = m.Global.GlobalErrorHandler
	router.IPExtractor = middleware.ClientIPExtractor(s.Config.Server.TrustedProxies)

	router.Use(
		m.Tracing.NewRelicMiddleware(),
		m.Tracing.EnhanceTracing(),
		m.Global.CORS(),
		m.Global.Secure(),
		middleware.RequestID(),
		m.ContextEnhancer.EnhanceContext(),
		m.Global.RequestLogger(),
		m.Global.Recover(),
	)

	registerSystemRoutes(router, h)

	api := router.Group("/api")
	api.GET("/health", h.Health.Liveness)

	// Lookups and registrations share the per-client rate limit; system routes
	// stay reachable for monitors.
	limited := api.Group("", m.RateLimit.Limiter())
	registerRegistrationRoutes(limited, h)
	registerLookupRoutes(limited, h)
	registerHostRoutes(limited, h)

	return router
}
