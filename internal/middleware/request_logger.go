package middleware

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// RequestLogger writes one structured line per request. Bodies and headers
// are never logged; webhook payloads carry customer data.
func RequestLogger(logger *zap.Logger) fiber.Handler {
	log := logger.Named("http")

	return func(c *fiber.Ctx) error {
		start := time.Now()
		chainErr := c.Next()

		status := c.Response().StatusCode()
		if chainErr != nil {
			var fe *fiber.Error
			if errors.As(chainErr, &fe) {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		level := zapcore.InfoLevel
		switch {
		case status >= fiber.StatusInternalServerError:
			level = zapcore.ErrorLevel
		case status >= fiber.StatusBadRequest:
			level = zapcore.WarnLevel
		}

		// Fiber recycles its buffers once the handler returns, and cores may
		// hold on to fields, so strings from the context are copied.
		if ce := log.Check(level, "request"); ce != nil {
			fields := []zap.Field{
				zap.String("request_id", utils.CopyString(c.GetRespHeader(fiber.HeaderXRequestID))),
				zap.String("method", utils.CopyString(c.Method())),
				zap.String("path", utils.CopyString(c.Path())),
				zap.Int("status", status),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", utils.CopyString(c.IP())),
			}
			if chainErr != nil {
				fields = append(fields, zap.Error(chainErr))
			}
			ce.Write(fields...)
		}

		return chainErr
	}
}
