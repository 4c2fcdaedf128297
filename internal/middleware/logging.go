package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/learnhub/backend/pkg/logger"
)

func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		details := map[string]interface{}{
			"method":      c.Method(),
			"path":        c.Path(),
			"status_code": c.Response().StatusCode(),
			"latency_ms":  time.Since(start).Milliseconds(),
			"ip":          c.IP(),
		}

		userID := logger.GetUserIDFromContext(c)
		if c.Response().StatusCode() >= 400 {
			if userID != nil {
				logger.ErrorWithUser(*userID, "http_request", err, details)
			} else {
				logger.Error("http_request", err, details)
			}
		} else {
			if userID != nil {
				logger.InfoWithUser(*userID, "http_request", details)
			} else {
				logger.Info("http_request", details)
			}
		}

		return err
	}
}
