package handler

import (
	"net/http"

	"github.com/deppfellow/rpos-gateway/internal/server"
	"github.com/labstack/echo/v4"
)

// Endpoints lists the public routes on the index page.
var Endpoints = map[string]string{
	"health":            "/api/health",
	"status":            "/status",
	"docs":              "/docs",
	"user_by_code":      "/api/user/<employee_code>",
	"user_search":       "/api/user/search (POST)",
	"rpos_login":        "/api/rpos-login (POST)",
	"rpos_login_status": "/api/rpos-login/status?device_id=...",
	"location":          "/api/location/<location_code>",
	"itemmaster":        "/api/itemmaster/details",
	"server_info":       "/api/server-info",
	"device_name":       "/api/device-name",
	"lan_ip":            "/api/lan-ip",
	"client_ip":         "/api/client-ip",
}

type SystemHandler struct {
	Handler
}

func NewSystemHandler(s *server.Server) *SystemHandler {
	return &SystemHandler{Handler: NewHandler(s)}
}

// Index lists the available endpoints.
func (h *SystemHandler) Index(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"message":     "RPOS Gateway API Server",
		"status":      "running",
		"environment": h.server.Config.Primary.Env,
		"endpoints":   Endpoints,
	})
}
