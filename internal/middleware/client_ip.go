package middleware

import (
	"net"

	"github.com/labstack/echo/v4"
)

// ClientIPExtractor picks the address c.RealIP reports, which keys the rate
// limiter. X-Forwarded-For is honoured only when the socket peer is one of
// trustedProxies; otherwise the peer address is the client.
func ClientIPExtractor(trustedProxies []string) echo.IPExtractor {
	if len(trustedProxies) == 0 {
		return echo.ExtractIPDirect()
	}

	// Tills sit on the private LAN, so private ranges are not trusted
	// implicitly.
	opts := []echo.TrustOption{
		echo.TrustLoopback(false),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(false),
	}
	for _, cidr := range trustedProxies {
		if _, ipNet, err := net.ParseCIDR(cidr); err == nil {
			opts = append(opts, echo.TrustIPRange(ipNet))
		}
	}

	return echo.ExtractIPFromXFFHeader(opts...)
}
