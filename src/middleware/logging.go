package middleware

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
)

// StructuredLogger logs one line per request with slog
func StructuredLogger(logger *slog.Logger) fiber.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			// the error handler has not written the response yet
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		fields := []any{
			slog.Int("status", status),
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.String("ip", c.IP()),
			slog.Duration("latency", time.Since(start)),
			slog.String("user_agent", c.Get(fiber.HeaderUserAgent)),
		}

		if userID, ok := UserID(c); ok {
			fields = append(fields, slog.String("user_id", userID.Hex()))
		}

		if rid := c.Locals("requestid"); rid != nil {
			fields = append(fields, slog.Any("request_id", rid))
		}

		switch {
		case err != nil:
			fields = append(fields, slog.String("error", err.Error()))
			logger.Error("request failed", fields...)
		case status >= fiber.StatusInternalServerError:
			logger.Error("request processed", fields...)
		default:
			logger.Info("request processed", fields...)
		}

		return err
	}
}
