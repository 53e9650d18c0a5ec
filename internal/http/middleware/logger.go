package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"
)

// Logger emits one structured "http request" line per completed request.
// The status is taken after the error handler has run when the handler
// returned an error, so 404s and parser rejections are logged with their
// final code.
func Logger(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = statusFromError(err)
		}

		logger.Info("http request",
			zap.String("request_id", utils.CopyString(RequestIDFromCtx(c))),
			zap.String("method", utils.CopyString(c.Method())),
			zap.String("path", utils.CopyString(c.Path())),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("remote_addr", utils.CopyString(c.IP())),
		)

		return err
	}
}
