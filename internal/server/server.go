package server

import (
	"fmt"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"tradesvc/internal/config"
	handlers "tradesvc/internal/http/handler"
	"tradesvc/internal/http/middleware"
)

type options struct {
	registry *prometheus.Registry
	clock    handlers.Clock
	swagger  bool
}

// Option customizes New.
type Option func(*options)

// WithRegistry sets the Prometheus registry backing /metrics. Without it a
// fresh registry is created when metrics are enabled.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(o *options) { o.registry = reg }
}

// WithClock overrides the time source of the starter health route.
func WithClock(now handlers.Clock) Option {
	return func(o *options) { o.clock = now }
}

// WithSwagger mounts the Swagger UI under /swagger/*. The caller must have
// registered the service's swag document, usually via a blank docs import.
func WithSwagger() Option {
	return func(o *options) { o.swagger = true }
}

// New assembles the Fiber app for cfg.Service: global middleware, body
// parsers and the service's routes.
func New(cfg *config.AppConfig, logger *zap.Logger, opts ...Option) (*fiber.App, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	app := fiber.New(fiber.Config{
		AppName:               cfg.Service.Name,
		ErrorHandler:          handlers.ErrorHandler(logger),
		BodyLimit:             cfg.Server.BodyLimit,
		ReadTimeout:           cfg.Server.ReadTimeout,
		WriteTimeout:          cfg.Server.WriteTimeout,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	if cfg.TracingEnabled {
		app.Use(otelfiber.Middleware())
	}
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(logger))

	if cfg.MetricsEnabled {
		reg := o.registry
		if reg == nil {
			reg = prometheus.NewRegistry()
		}
		prom, err := middleware.NewPrometheusMiddleware(reg)
		if err != nil {
			return nil, fmt.Errorf("register http metrics: %w", err)
		}
		app.Use(prom.Handler())
		app.Get(middleware.MetricsPath, adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	}

	app.Use(middleware.JSONBody())

	switch cfg.Service.Name {
	case config.AutoTrading.Name:
		handlers.RegisterAutoTradingRoutes(app)
	case config.Starter.Name:
		app.Use(middleware.FormBody())
		handlers.RegisterStarterRoutes(app, o.clock)
	default:
		return nil, fmt.Errorf("unknown service %q", cfg.Service.Name)
	}

	if o.swagger {
		app.Get("/swagger/*", swagger.HandlerDefault)
	}

	return app, nil
}
