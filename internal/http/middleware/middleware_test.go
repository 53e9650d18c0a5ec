package middleware

import (
	"bytes"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID())

	app.Get("/test", func(c *fiber.Ctx) error {
		return c.SendString(RequestIDFromCtx(c))
	})

	t.Run("should generate new request id if not present", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		ridHeader := resp.Header.Get(RequestIDHeader)
		assert.NotEmpty(t, ridHeader)

		buf := new(bytes.Buffer)
		buf.ReadFrom(resp.Body)
		assert.Equal(t, ridHeader, buf.String())
	})

	t.Run("should preserve existing request id", func(t *testing.T) {
		existingID := "test-id-123"
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set(RequestIDHeader, existingID)

		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, existingID, resp.Header.Get(RequestIDHeader))

		buf := new(bytes.Buffer)
		buf.ReadFrom(resp.Body)
		assert.Equal(t, existingID, buf.String())
	})
}

func TestRequestIDFromCtxWithoutMiddleware(t *testing.T) {
	app := fiber.New()
	app.Get("/test", func(c *fiber.Ctx) error {
		return c.SendString(RequestIDFromCtx(c))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/test", nil))
	require.NoError(t, err)

	body, _ := io.ReadAll(resp.Body)
	assert.Empty(t, string(body))
}

func TestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	app := fiber.New()

	app.Use(RequestID())
	app.Use(Logger(zap.New(core)))

	app.Get("/test", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusAccepted)
	})

	t.Run("logs completed request", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set(RequestIDHeader, "rid-1")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusAccepted, resp.StatusCode)

		entries := logs.TakeAll()
		require.Len(t, entries, 1)
		assert.Equal(t, "http request", entries[0].Message)

		fields := entries[0].ContextMap()
		assert.Equal(t, "rid-1", fields["request_id"])
		assert.Equal(t, "GET", fields["method"])
		assert.Equal(t, "/test", fields["path"])
		assert.Equal(t, int64(fiber.StatusAccepted), fields["status"])
		assert.IsType(t, time.Duration(0), fields["latency"])
	})

	t.Run("logs final status of unmatched route", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/missing", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

		entries := logs.TakeAll()
		require.Len(t, entries, 1)
		assert.Equal(t, int64(fiber.StatusNotFound), entries[0].ContextMap()["status"])
	})
}

func newBodyApp(parsers ...fiber.Handler) *fiber.App {
	app := fiber.New()
	for _, p := range parsers {
		app.Use(p)
	}
	app.Post("/echo", func(c *fiber.Ctx) error {
		body := c.Locals(BodyLocalKey)
		if body == nil {
			return c.SendString("none")
		}
		return c.JSON(body)
	})
	return app
}

func postBody(t *testing.T, app *fiber.App, contentType, body string) (int, string) {
	t.Helper()
	req := httptest.NewRequest("POST", "/echo", strings.NewReader(body))
	if contentType != "" {
		req.Header.Set(fiber.HeaderContentType, contentType)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(b)
}

func TestJSONBody(t *testing.T) {
	app := newBodyApp(JSONBody())

	t.Run("decodes object", func(t *testing.T) {
		status, body := postBody(t, app, "application/json; charset=utf-8", `{"symbol":"BTCUSDT"}`)
		assert.Equal(t, fiber.StatusOK, status)
		assert.JSONEq(t, `{"symbol":"BTCUSDT"}`, body)
	})

	t.Run("decodes array", func(t *testing.T) {
		status, body := postBody(t, app, "application/json", ` [1,2] `)
		assert.Equal(t, fiber.StatusOK, status)
		assert.JSONEq(t, `[1,2]`, body)
	})

	t.Run("empty body is empty object", func(t *testing.T) {
		status, body := postBody(t, app, "application/json", "")
		assert.Equal(t, fiber.StatusOK, status)
		assert.JSONEq(t, `{}`, body)
	})

	t.Run("malformed json is rejected", func(t *testing.T) {
		status, _ := postBody(t, app, "application/json", `{"symbol":`)
		assert.Equal(t, fiber.StatusBadRequest, status)
	})

	t.Run("top level scalar is rejected", func(t *testing.T) {
		status, _ := postBody(t, app, "application/json", `"ok"`)
		assert.Equal(t, fiber.StatusBadRequest, status)
	})

	t.Run("leading whitespace outside the JSON set is rejected", func(t *testing.T) {
		for _, prefix := range []string{"\f", "\v", "\u00a0", "\u0085"} {
			status, _ := postBody(t, app, "application/json", prefix+`{}`)
			assert.Equal(t, fiber.StatusBadRequest, status, "prefix %q", prefix)
		}
	})

	t.Run("leading JSON whitespace is skipped", func(t *testing.T) {
		status, body := postBody(t, app, "application/json", " \t\r\n{\"a\":1}")
		assert.Equal(t, fiber.StatusOK, status)
		assert.JSONEq(t, `{"a":1}`, body)
	})

	t.Run("other content types pass through", func(t *testing.T) {
		status, body := postBody(t, app, "text/plain", `{not json`)
		assert.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, "none", body)
	})

	t.Run("form bodies are ignored without the form parser", func(t *testing.T) {
		status, body := postBody(t, app, fiber.MIMEApplicationForm, "a=1")
		assert.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, "none", body)
	})
}

func TestFormBody(t *testing.T) {
	app := newBodyApp(JSONBody(), FormBody())

	status, body := postBody(t, app, fiber.MIMEApplicationForm, "side=buy&tag=a&tag=b")
	assert.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"side":["buy"],"tag":["a","b"]}`, body)

	status, body = postBody(t, app, "application/json", `{"side":"sell"}`)
	assert.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"side":"sell"}`, body)
}
