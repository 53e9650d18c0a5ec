package middleware

import (
	"html"

	"github.com/gofiber/fiber/v2"
)

// UnmatchedRouteLabel is the metrics path label for requests no route matched.
const UnmatchedRouteLabel = "unmatched"

// RouteNotFound turns the router's 405 for a known path with an unknown
// method into the same 404 an unknown path gets. Other errors are returned
// unchanged.
func RouteNotFound(c *fiber.Ctx, err error) error {
	if e, ok := err.(*fiber.Error); ok && e.Code == fiber.StatusMethodNotAllowed {
		c.Response().Header.Del(fiber.HeaderAllow)
		return fiber.NewError(fiber.StatusNotFound, "Cannot "+c.Method()+" "+html.EscapeString(c.Path()))
	}
	return err
}

// routeMatched reports whether a non-middleware route handled c.
func routeMatched(c *fiber.Ctx) bool {
	r := c.Route()
	if r == nil || r.Path == "" || r.Method == "USE" {
		return false
	}
	return r.Path != "/" || c.Path() == "/"
}

func statusFromError(err error) int {
	if e, ok := err.(*fiber.Error); ok {
		if e.Code == fiber.StatusMethodNotAllowed {
			return fiber.StatusNotFound
		}
		return e.Code
	}
	return fiber.StatusInternalServerError
}
