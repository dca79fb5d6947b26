package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/hardhat-ai/hardhat/internal/api"
	"github.com/hardhat-ai/hardhat/internal/config"
	"github.com/hardhat-ai/hardhat/internal/llm"
	"github.com/hardhat-ai/hardhat/internal/service"
)

var (
	configPath = flag.String("config", "", "Path to config file")
)

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	if cfg.Anthropic.APIKey == "" {
		logger.Warn("No Anthropic API key configured, model calls will fail")
	}

	// One model gateway for the life of the process
	client := llm.NewClient(cfg.Anthropic, logger)

	// Initialize services
	scribeService := service.NewScribeService(client, logger)
	queryService := service.NewQueryService(client, logger)
	riskService := service.NewRiskService(client, logger)
	submittalService := service.NewSubmittalService(client, logger)
	lookaheadService := service.NewLookaheadService(client, logger)

	// Setup router
	router := api.SetupRouter(
		scribeService,
		queryService,
		riskService,
		submittalService,
		lookaheadService,
		logger,
		api.RouterConfig{AllowOrigins: cfg.CORS.AllowOrigins},
	)

	// Create HTTP server. WriteTimeout stays unset so long-lived SSE
	// responses are not cut off mid-stream.
	srv := &http.Server{
		Addr:        cfg.Address(),
		Handler:     router,
		ReadTimeout: 30 * time.Second,
		IdleTimeout: 120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Starting Hard Hat server",
			zap.String("address", cfg.Address()),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
