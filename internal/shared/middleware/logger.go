package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Logger logs every request with its tenant scope so per-tenant traffic can
// be traced through the reorder pipeline.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		event := log.Info().
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", status).
			Dur("latency_ms", latency).
			Str("ip", c.ClientIP())

		if tenantID := TenantID(c); tenantID != uuid.Nil {
			event = event.Str("tenant_id", tenantID.String())
		}

		event.Msg("HTTP Request")
	}
}
