package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/learnhub/backend/internal/metrics"
)

// HTTPMetrics records per-route counters and latency. The route label
// uses the matched pattern, not the raw path, to keep cardinality
// bounded.
func HTTPMetrics() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		route := c.Route().Path
		if route == "" {
			route = c.Path()
		}
		method := c.Method()
		status := strconv.Itoa(c.Response().StatusCode())

		metrics.RequestsTotal.WithLabelValues(route, method, status).Inc()
		metrics.RequestLatency.WithLabelValues(route, method, status).
			Observe(time.Since(start).Seconds())

		return err
	}
}
