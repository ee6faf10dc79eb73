package handler

import (
	"net/http"

	"github.com/deppfellow/rpos-gateway/internal/lib/health"
	"github.com/deppfellow/rpos-gateway/internal/middleware"
	"github.com/deppfellow/rpos-gateway/internal/server"
	"github.com/labstack/echo/v4"
)

// HealthHandler serves liveness and dependency health.
type HealthHandler struct {
	Handler
	checker *health.Checker
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
		checker: s.Health,
	}
}

// Liveness answers as long as the process serves HTTP.
func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "Server is running",
	})
}

// CheckHealth runs the dependency checks: 200 when every required
// dependency answers, 503 otherwise.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	report := h.checker.Run(c.Request().Context())

	if !report.Healthy() {
		logger.Warn().Str("status", report.Status).Msg("health check failed")
		return c.JSON(http.StatusServiceUnavailable, report)
	}

	logger.Debug().Str("status", report.Status).Msg("health check passed")
	return c.JSON(http.StatusOK, report)
}
