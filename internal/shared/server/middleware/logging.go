package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"scheduler-backend/internal/shared/telemetry"
)

// Logging emits a structured log per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, "OPTIONS") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()
		reqID := RequestIDFromContext(c)

		userID, _ := c.Get(userIDKey)
		role, _ := c.Get(userRoleKey)
		orderID, _ := c.Get("orderId")
		operationID, _ := c.Get("operationId")
		scheduleStatus := ""
		if raw, ok := c.Get("scheduleStatus"); ok {
			if s, ok := raw.(string); ok {
				scheduleStatus = s
			}
		}

		telemetry.Info("request.complete", map[string]any{
			"request_id":      reqID,
			"method":          c.Request.Method,
			"path":            c.Request.URL.Path,
			"status":          status,
			"schedule_status": scheduleStatus,
			"duration_ms":     float64(latency.Microseconds()) / 1000.0,
			"user_id":         userID,
			"role":            role,
			"order_id":        orderID,
			"operation_id":    operationID,
			"client_ip":       c.ClientIP(),
			"user_agent":      c.Request.UserAgent(),
		})
	}
}
