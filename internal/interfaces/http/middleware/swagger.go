package middleware

import (
	"net/http"
	"net/netip"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mrtoldo/backend/internal/infrastructure/config"
	"github.com/mrtoldo/backend/internal/interfaces/http/dto"
)

// SwaggerProtection gates the API docs: 404 when disabled, 403 for clients
// outside AllowedIPs (single addresses or CIDR ranges, empty allows all).
func SwaggerProtection(cfg config.SwaggerConfig) gin.HandlerFunc {
	allowed := parseAllowList(cfg.AllowedIPs)

	return func(c *gin.Context) {
		if !cfg.Enabled {
			c.AbortWithStatusJSON(http.StatusNotFound, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeNotFound, "API documentation is not available", getRequestID(c)))
			return
		}

		if len(allowed) > 0 && !isIPAllowed(c.ClientIP(), allowed) {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeUnauthorized, "Access to API documentation is restricted", getRequestID(c)))
			return
		}

		c.Next()
	}
}

// parseAllowList turns addresses and CIDR ranges into prefixes, skipping invalid entries
func parseAllowList(entries []string) []netip.Prefix {
	var prefixes []netip.Prefix
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if strings.Contains(entry, "/") {
			if p, err := netip.ParsePrefix(entry); err == nil {
				prefixes = append(prefixes, p.Masked())
			}
			continue
		}
		if addr, err := netip.ParseAddr(entry); err == nil {
			prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
		}
	}
	return prefixes
}

func isIPAllowed(ip string, allowed []netip.Prefix) bool {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, p := range allowed {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}
