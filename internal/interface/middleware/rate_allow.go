package middleware

import (
	"net"

	"github.com/gin-gonic/gin"
)

// AllowFunc returns true to bypass the limiter for a request.
type AllowFunc func(*gin.Context) bool

// AllowPrivateIP bypasses loopback and RFC 1918 clients, e.g. a scraper
// inside the cluster.
func AllowPrivateIP() AllowFunc {
	return func(c *gin.Context) bool {
		parsed := net.ParseIP(ipFromCtx(c))
		if parsed == nil {
			return false
		}
		return parsed.IsLoopback() || parsed.IsPrivate()
	}
}
