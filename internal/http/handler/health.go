package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// ISOTimestampLayout renders UTC instants with millisecond precision and a
// literal Z, e.g. 2024-05-01T12:30:45.123Z.
const ISOTimestampLayout = "2006-01-02T15:04:05.000Z"

// RootGreeting is the fixed body served by the starter's root route.
const RootGreeting = "Express + TypeScript Server"

// HealthStatus is the liveness payload of the auto-trading service.
type HealthStatus struct {
	Status string `json:"status" example:"ok"`
}

// TimedHealthStatus is the liveness payload of the starter service.
type TimedHealthStatus struct {
	Status    string `json:"status" example:"OK"`
	Timestamp string `json:"timestamp" example:"2024-05-01T12:30:45.123Z"`
}

// Clock supplies the current time; tests inject a fixed one.
type Clock func() time.Time

// Health godoc
// @Summary  Liveness probe
// @Tags     system
// @Produce  json
// @Success  200  {object}  handler.HealthStatus
// @Router   /health [get]
func Health() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(HealthStatus{Status: "ok"})
	}
}

// TimedHealth godoc
// @Summary  Liveness probe with server time
// @Tags     system
// @Produce  json
// @Success  200  {object}  handler.TimedHealthStatus
// @Router   /health [get]
func TimedHealth(now Clock) fiber.Handler {
	if now == nil {
		now = time.Now
	}
	return func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(TimedHealthStatus{
			Status:    "OK",
			Timestamp: now().UTC().Format(ISOTimestampLayout),
		})
	}
}

// Root godoc
// @Summary  Greeting
// @Tags     system
// @Produce  plain
// @Success  200  {string}  string  "Express + TypeScript Server"
// @Router   / [get]
func Root() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendString(RootGreeting)
	}
}
