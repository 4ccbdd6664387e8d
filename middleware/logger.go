package middleware

import (
	"time"

	"github.com/mishrapravin114/developers-assessment/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RequestLogger logs one line per request with status and latency.
func RequestLogger(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()

	status := c.Response().StatusCode()
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		} else {
			status = fiber.StatusInternalServerError
		}
	}

	fields := []zap.Field{
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Int("status", status),
		zap.Duration("latency", time.Since(start)),
		zap.String("ip", c.IP()),
	}
	switch {
	case status >= fiber.StatusInternalServerError:
		utils.Logger.Error("Request failed", append(fields, zap.Error(err))...)
	case status >= fiber.StatusBadRequest:
		utils.Logger.Warn("Request rejected", fields...)
	default:
		utils.Logger.Info("Request handled", fields...)
	}
	return err
}
