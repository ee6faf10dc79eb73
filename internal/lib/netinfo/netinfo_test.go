package netinfo

import (
	"net/http/httptest"
	"testing"
)

func TestIsPrivateIP(t *testing.T) {
	tests := []struct {
		ip   string
		want bool
	}{
		{"10.1.2.3", true},
		{"172.16.0.1", true},
		{"172.31.255.254", true},
		{"172.32.0.1", false},
		{"172.15.0.1", false},
		{"192.168.1.20", true},
		{"169.254.10.10", true},
		{"8.8.8.8", false},
		{"127.0.0.1", false},
		{"fd00::1", false},
		{"not-an-ip", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.ip, func(t *testing.T) {
			if got := IsPrivateIP(tt.ip); got != tt.want {
				t.Errorf("IsPrivateIP(%q) = %v, want %v", tt.ip, got, tt.want)
			}
		})
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"remote addr", nil, "192.168.1.50:51234", "192.168.1.50"},
		{"cloudflare first", map[string]string{"CF-Connecting-IP": "203.0.113.9", "X-Forwarded-For": "10.0.0.1"}, "1.1.1.1:1", "203.0.113.9"},
		{"forwarded for first hop", map[string]string{"X-Forwarded-For": " 10.0.0.7 , 172.16.0.1"}, "1.1.1.1:1", "10.0.0.7"},
		{"invalid header skipped", map[string]string{"X-Forwarded-For": "unknown", "X-Real-IP": "192.168.0.9"}, "1.1.1.1:1", "192.168.0.9"},
		{"ipv6 remote rejected", nil, "[::1]:8080", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/client-ip", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}

			if got := ClientIP(req); got != tt.want {
				t.Errorf("ClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHostFallbacks(t *testing.T) {
	if DeviceName() == "" {
		t.Error("DeviceName() returned empty string")
	}
	if LANIP() == "" {
		t.Error("LANIP() returned empty string")
	}
	if Platform() == "" {
		t.Error("Platform() returned empty string")
	}
}
