package middleware

import (
	"bytes"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// BodyLocalKey is the Fiber locals key holding the decoded request body.
const BodyLocalKey = "body"

// JSONBody decodes application/json request bodies into locals under
// BodyLocalKey. An empty body decodes to an empty object. Only objects and
// arrays are accepted at the top level; anything else, or malformed JSON,
// fails the request with 400. Other content types pass through untouched.
func JSONBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if mediaType(c) != fiber.MIMEApplicationJSON {
			return c.Next()
		}

		// JSON whitespace only; \f, \v and Unicode spaces are not skipped.
		raw := bytes.TrimLeft(c.Body(), " \t\r\n")
		if len(raw) == 0 {
			c.Locals(BodyLocalKey, map[string]any{})
			return c.Next()
		}
		if raw[0] != '{' && raw[0] != '[' {
			return fiber.NewError(fiber.StatusBadRequest, "request body must be a JSON object or array")
		}

		var body any
		if err := c.App().Config().JSONDecoder(raw, &body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "malformed JSON request body")
		}

		c.Locals(BodyLocalKey, body)
		return c.Next()
	}
}

// FormBody decodes application/x-www-form-urlencoded bodies into a
// map[string][]string stored under BodyLocalKey.
func FormBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if mediaType(c) != fiber.MIMEApplicationForm {
			return c.Next()
		}

		form := make(map[string][]string)
		c.Request().PostArgs().VisitAll(func(key, value []byte) {
			k := string(key)
			form[k] = append(form[k], string(value))
		})

		c.Locals(BodyLocalKey, form)
		return c.Next()
	}
}

// mediaType returns the lower-cased Content-Type without parameters.
func mediaType(c *fiber.Ctx) string {
	ct := c.Get(fiber.HeaderContentType)
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return strings.ToLower(strings.TrimSpace(ct))
}
