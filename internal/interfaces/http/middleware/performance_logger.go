package middleware

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RequestLogger mede o tempo de resposta das rotas monitoradas
func RequestLogger(logger *zap.Logger, monitoredRoutes ...string) fiber.Handler {
	if len(monitoredRoutes) == 0 {
		monitoredRoutes = []string{"/survey", "/admin"}
	}

	return func(c *fiber.Ctx) error {
		path := c.Path()

		shouldMonitor := false
		for _, route := range monitoredRoutes {
			if strings.HasPrefix(path, route) {
				shouldMonitor = true
				break
			}
		}

		if !shouldMonitor {
			return c.Next()
		}

		start := time.Now()
		err := c.Next()
		duration := time.Since(start)

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}

		logger.Info("requisição",
			zap.String("method", c.Method()),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("request_id", c.GetRespHeader(fiber.HeaderXRequestID)),
		)

		return err
	}
}
