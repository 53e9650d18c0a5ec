package server

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"tradesvc/internal/config"
)

// StartupMessage is the notice logged once the listener is bound.
func StartupMessage(svc config.Service, port int) string {
	if svc.Name == config.Starter.Name {
		return "Server running on port " + strconv.Itoa(port)
	}
	return "Service running on port " + strconv.Itoa(port)
}

// Run binds the configured port and serves app until ctx is cancelled.
// A bind failure is returned immediately; callers treat it as fatal.
// Cancellation triggers a graceful shutdown bounded by ShutdownTimeout.
func Run(ctx context.Context, app *fiber.App, cfg *config.AppConfig, logger *zap.Logger) error {
	addr := cfg.Addr()
	ln, err := net.Listen(app.Config().Network, addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}

	logger.Info(StartupMessage(cfg.Service, cfg.Server.Port), zap.Int("port", cfg.Server.Port))

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listener(ln)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutdown signal received")

	shutdownErr := app.ShutdownWithTimeout(cfg.Server.ShutdownTimeout)
	// Covers a cancel that lands before the server registered the listener.
	_ = ln.Close()
	<-errCh

	if shutdownErr != nil {
		return fmt.Errorf("shutdown: %w", shutdownErr)
	}
	logger.Info("server stopped cleanly")
	return nil
}
