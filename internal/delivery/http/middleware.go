package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// CORSMiddleware restricts browser access to the configured frontend origins.
// An entry of "*" allows every origin; an entry ending in '*' allows any
// origin with that prefix, e.g. "https://preview.*" for deploy previews.
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		if origin != "" && originAllowed(origin, allowedOrigins) {
			h := c.Writer.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")
			h.Set("Access-Control-Max-Age", "3600")
			h.Add("Vary", "Origin")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// originAllowed matches an Origin header value against the allow-list
func originAllowed(origin string, allowedOrigins []string) bool {
	for _, entry := range allowedOrigins {
		if entry == "*" {
			return true
		}
		if prefix, wildcard := strings.CutSuffix(entry, "*"); wildcard {
			if strings.HasPrefix(origin, prefix) {
				return true
			}
			continue
		}
		if entry == origin {
			return true
		}
	}
	return false
}
