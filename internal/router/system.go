package router

import (
	"github.com/deppfellow/rpos-gateway/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers endpoints that are not business logic:
// the index, dependency health and the API docs.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/", h.System.Index)

	r.GET("/status", h.Health.CheckHealth)

	r.StaticFS("/static", handler.StaticFS)
	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
