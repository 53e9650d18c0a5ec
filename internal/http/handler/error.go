package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"

	"tradesvc/internal/http/middleware"
)

// ErrorHandler returns a Fiber global error handler. Server errors are
// logged with the request id; the response itself is rendered by
// fiber.DefaultErrorHandler so unknown routes and rejected bodies keep the
// framework's default status and text; a known path requested with an
// unknown method gets the same 404 as an unknown path. Errors that are not
// *fiber.Error are answered with a bare 500 without their message.
func ErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		err = middleware.RouteNotFound(c, err)

		var fe *fiber.Error
		if !errors.As(err, &fe) {
			fe = fiber.ErrInternalServerError
		}

		if fe.Code >= fiber.StatusInternalServerError {
			logger.Error("request failed",
				zap.String("request_id", utils.CopyString(middleware.RequestIDFromCtx(c))),
				zap.String("method", utils.CopyString(c.Method())),
				zap.String("path", utils.CopyString(c.Path())),
				zap.Int("status", fe.Code),
				zap.Error(err),
			)
		}

		return fiber.DefaultErrorHandler(c, fe)
	}
}
