package service

import (
	"net/http"

	"github.com/deppfellow/rpos-gateway/internal/lib/netinfo"
)

// ServerInfo describes the machine the gateway runs on.
type ServerInfo struct {
	Success         bool   `json:"success"`
	DeviceName      string `json:"device_name"`
	LANIP           string `json:"lan_ip"`
	Platform        string `json:"platform"`
	PlatformRelease string `json:"platform_release"`
}

type ClientIPInfo struct {
	Success   bool   `json:"success"`
	IP        string `json:"ip"`
	IsPrivate bool   `json:"is_private"`
}

// HostService answers questions about the local host and the caller's
// address. It holds no state.
type HostService struct {
	deviceName func() string
	lanIP      func() string
}

func NewHostService() *HostService {
	return &HostService{
		deviceName: netinfo.DeviceName,
		lanIP:      netinfo.LANIP,
	}
}

func (s *HostService) ServerInfo() ServerInfo {
	return ServerInfo{
		Success:         true,
		DeviceName:      s.deviceName(),
		LANIP:           s.lanIP(),
		Platform:        netinfo.Platform(),
		PlatformRelease: netinfo.PlatformRelease(),
	}
}

func (s *HostService) DeviceName() string {
	return s.deviceName()
}

func (s *HostService) LANIP() string {
	return s.lanIP()
}

func (s *HostService) ClientIP(r *http.Request) ClientIPInfo {
	ip := netinfo.ClientIP(r)
	return ClientIPInfo{
		Success:   true,
		IP:        ip,
		IsPrivate: netinfo.IsPrivateIP(ip),
	}
}
