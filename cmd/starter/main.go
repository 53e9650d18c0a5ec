package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"

	_ "tradesvc/docs/starter"
	"tradesvc/internal/config"
	"tradesvc/internal/logging"
	"tradesvc/internal/server"
)

// @title Starter Service
// @version 1.0
// @BasePath /
func main() {
	cfg := config.Load(config.Starter)

	logger, err := logging.New(cfg.Log.Env, cfg.Log.Level, cfg.Service.Name)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Serve(ctx, cfg, logger); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}
