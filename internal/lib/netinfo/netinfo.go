// Package netinfo answers questions about the host the gateway runs on
// and the network address of its callers.
package netinfo

import (
	"net"
	"net/http"
	"net/netip"
	"os"
	"runtime"
	"strings"
	"time"
)

const (
	UnknownDevice = "Unknown-Device"
	LoopbackIP    = "127.0.0.1"
)

// DeviceName returns the host name, or UnknownDevice.
func DeviceName() string {
	hostname, err := os.Hostname()
	if err != nil || strings.TrimSpace(hostname) == "" {
		return UnknownDevice
	}
	return hostname
}

// LANIP returns the host's private IPv4 address.
//
// It first asks the routing table which source address would reach a
// public host (a UDP dial sends nothing), then scans interfaces. When
// neither yields a private address it returns LoopbackIP.
func LANIP() string {
	if ip, ok := routedIP(); ok {
		return ip
	}
	if ip, ok := interfaceIP(); ok {
		return ip
	}
	return LoopbackIP
}

func routedIP() (string, bool) {
	conn, err := net.DialTimeout("udp4", "8.8.8.8:80", 2*time.Second)
	if err != nil {
		return "", false
	}
	defer conn.Close() //nolint:errcheck // UDP close cannot fail meaningfully

	addr, ok := conn.LocalAddr().(*net.UDPAddr)
	if !ok {
		return "", false
	}
	ip := addr.IP.String()
	return ip, IsPrivateIP(ip)
}

func interfaceIP() (string, bool) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return "", false
	}

	for _, iface := range ifaces {
		if iface.Flags&net.FlagLoopback != 0 || iface.Flags&net.FlagUp == 0 {
			continue
		}
		// Container bridges are never the address a POS terminal can reach.
		if strings.HasPrefix(iface.Name, "veth") ||
			strings.HasPrefix(iface.Name, "docker") ||
			strings.HasPrefix(iface.Name, "br-") {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, addr := range addrs {
			ipnet, ok := addr.(*net.IPNet)
			if !ok || ipnet.IP.To4() == nil {
				continue
			}
			if ip := ipnet.IP.String(); IsPrivateIP(ip) && ip != LoopbackIP {
				return ip, true
			}
		}
	}
	return "", false
}

// IsPrivateIP reports whether ip is an IPv4 address in 10/8, 172.16/12,
// 192.168/16 or the 169.254/16 link-local range.
func IsPrivateIP(ip string) bool {
	addr, err := netip.ParseAddr(strings.TrimSpace(ip))
	if err != nil || !addr.Is4() {
		return false
	}
	return addr.IsPrivate() || addr.IsLinkLocalUnicast()
}

// Platform names the operating system the way clients display it.
func Platform() string {
	switch runtime.GOOS {
	case "linux":
		return "Linux"
	case "darwin":
		return "Darwin"
	case "windows":
		return "Windows"
	default:
		return runtime.GOOS
	}
}

// PlatformRelease returns the kernel release where the OS exposes it.
func PlatformRelease() string {
	data, err := os.ReadFile("/proc/sys/kernel/osrelease")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// forwardedHeaders are checked in order; the first valid IPv4 wins.
var forwardedHeaders = []string{
	"CF-Connecting-IP",
	"X-Forwarded-For",
	"X-Real-IP",
	"X-Forwarded",
	"X-Cluster-Client-IP",
	"Forwarded-For",
	"Forwarded",
}

// ClientIP returns the caller's IPv4 address as seen by the server,
// honouring proxy headers. It returns "" when none is a valid IPv4.
func ClientIP(r *http.Request) string {
	for _, header := range forwardedHeaders {
		value := r.Header.Get(header)
		if value == "" {
			continue
		}
		first := strings.TrimSpace(strings.Split(value, ",")[0])
		if isIPv4(first) {
			return first
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if isIPv4(host) {
		return host
	}
	return ""
}

func isIPv4(s string) bool {
	addr, err := netip.ParseAddr(s)
	return err == nil && addr.Is4()
}
