package server

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"tradesvc/internal/config"
	tracing "tradesvc/internal/otel"
)

// Serve is the shared process bootstrap: optional tracing, a registry with
// runtime collectors, the service app with Swagger UI, and Run. It returns
// when ctx is cancelled or the listener cannot be bound. The service's swag
// document must already be registered.
func Serve(ctx context.Context, cfg *config.AppConfig, logger *zap.Logger, opts ...Option) error {
	if cfg.TracingEnabled {
		shutdownTracing, err := tracing.Init(ctx, cfg.Service.Name, logger)
		if err != nil {
			return fmt.Errorf("initialize tracing: %w", err)
		}
		defer func() {
			if err := shutdownTracing(context.Background()); err != nil {
				logger.Warn("tracer shutdown", zap.Error(err))
			}
		}()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	opts = append([]Option{WithRegistry(reg), WithSwagger()}, opts...)
	app, err := New(cfg, logger, opts...)
	if err != nil {
		return fmt.Errorf("build app: %w", err)
	}

	return Run(ctx, app, cfg, logger)
}
