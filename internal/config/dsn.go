package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
)

// buildDSN renders a postgres URL. The password is escaped so characters
// such as '@' or '/' do not break parsing.
func buildDSN(d DatabaseConfig) string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s/%s?sslmode=%s",
		url.QueryEscape(d.User),
		url.QueryEscape(d.Password),
		net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		d.Name,
		d.SSLMode,
	)
}
