package router

import (
	"net/http"

	"github.com/deppfellow/rpos-gateway/internal/handler"
	"github.com/labstack/echo/v4"
)

func registerRegistrationRoutes(g *echo.Group, h *handler.Handlers) {
	reg := h.Registration

	g.POST("/rpos-login", handler.Handle(reg.Handler, reg.Register, http.StatusOK, &handler.RegisterRequest{}))
	g.GET("/rpos-login/status", handler.Handle(reg.Handler, reg.Status, http.StatusOK, &handler.StatusRequest{}))
}

func registerLookupRoutes(g *echo.Group, h *handler.Handlers) {
	l := h.Lookup

	// The static segment wins over :employee_code in Echo's router.
	g.POST("/user/search", handler.Handle(l.Handler, l.SearchEmployee, http.StatusOK, &handler.SearchEmployeeRequest{}))
	g.GET("/user/:employee_code", handler.Handle(l.Handler, l.GetEmployee, http.StatusOK, &handler.GetEmployeeRequest{}))
	g.GET("/location/:location_code", handler.Handle(l.Handler, l.GetLocation, http.StatusOK, &handler.GetLocationRequest{}))
	g.GET("/itemmaster/details", handler.Handle(l.Handler, l.ListCatalog, http.StatusOK, &handler.CatalogRequest{}))
}

func registerHostRoutes(g *echo.Group, h *handler.Handlers) {
	host := h.Host

	g.GET("/server-info", handler.Handle(host.Handler, host.ServerInfo, http.StatusOK, &handler.EmptyRequest{}))
	g.GET("/device-name", handler.Handle(host.Handler, host.DeviceName, http.StatusOK, &handler.EmptyRequest{}))
	g.GET("/lan-ip", handler.Handle(host.Handler, host.LANIP, http.StatusOK, &handler.EmptyRequest{}))
	g.GET("/client-ip", handler.Handle(host.Handler, host.ClientIP, http.StatusOK, &handler.EmptyRequest{}))
}
