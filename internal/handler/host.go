package handler

import (
	"github.com/deppfellow/rpos-gateway/internal/server"
	"github.com/deppfellow/rpos-gateway/internal/service"
	"github.com/labstack/echo/v4"
)

// HostHandler reports facts about the gateway host and the caller.
type HostHandler struct {
	Handler
	host *service.HostService
}

func NewHostHandler(s *server.Server, host *service.HostService) *HostHandler {
	return &HostHandler{
		Handler: NewHandler(s),
		host:    host,
	}
}

// EmptyRequest is the payload of endpoints that take no input.
type EmptyRequest struct{}

func (r *EmptyRequest) Validate() error {
	return nil
}

type DeviceNameResponse struct {
	Success    bool   `json:"success"`
	DeviceName string `json:"device_name"`
}

type LANIPResponse struct {
	Success bool   `json:"success"`
	LANIP   string `json:"lan_ip"`
}

func (h *HostHandler) ServerInfo(c echo.Context, _ *EmptyRequest) (service.ServerInfo, error) {
	return h.host.ServerInfo(), nil
}

func (h *HostHandler) DeviceName(c echo.Context, _ *EmptyRequest) (DeviceNameResponse, error) {
	return DeviceNameResponse{Success: true, DeviceName: h.host.DeviceName()}, nil
}

func (h *HostHandler) LANIP(c echo.Context, _ *EmptyRequest) (LANIPResponse, error) {
	return LANIPResponse{Success: true, LANIP: h.host.LANIP()}, nil
}

func (h *HostHandler) ClientIP(c echo.Context, _ *EmptyRequest) (service.ClientIPInfo, error) {
	return h.host.ClientIP(c.Request()), nil
}
