package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vitaplan/backend/config"
	"github.com/vitaplan/backend/internal/database"
	"github.com/vitaplan/backend/internal/server"
	"github.com/vitaplan/backend/internal/service"
	"github.com/vitaplan/backend/pkg/logger"
)

func main() {
	var log *logger.Logger
	if config.GetEnvironment() == config.Production {
		log = logger.New()
	} else {
		log = logger.NewDevelopment()
	}
	defer log.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalw("failed to load configuration", "error", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}

	if err := database.RunMigrations(db); err != nil {
		log.Fatalw("failed to run migrations", "error", err)
	}

	// Redis is optional. Without it the server still runs; drafts are
	// disabled and rate limits are not enforced.
	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Warnw("redis unavailable, drafts and rate limiting disabled", "error", err)
		redisClient = nil
	}

	llmService, err := service.NewLLMService(cfg, log)
	if err != nil {
		log.Fatalw("failed to initialize AI client", "error", err)
	}

	srv := server.New(cfg, db, redisClient, llmService, log)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalw("server error", "error", err)
		}
	case sig := <-quit:
		log.Infow("received signal", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server shutdown error", "error", err)
	}
	log.Infow("server stopped")
}
