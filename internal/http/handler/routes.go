package handler

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterAutoTradingRoutes attaches the auto-trading placeholder routes.
// Only liveness is exposed; there is no trading surface.
func RegisterAutoTradingRoutes(app fiber.Router) {
	app.Get("/health", Health())
}

// RegisterStarterRoutes attaches the starter template routes.
func RegisterStarterRoutes(app fiber.Router, now Clock) {
	app.Get("/", Root())
	app.Get("/health", TimedHealth(now))
}
