// ABOUTME: Main entry point for the viewport engine server
// ABOUTME: Wires together all components and starts the HTTP server

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"docview-engine/api"
	"docview-engine/api/handlers"
	"docview-engine/api/ws"
	"docview-engine/core/coordinator"
	"docview-engine/core/interfaces"
	stdclock "docview-engine/infrastructure/clock/standard"
	logruslogger "docview-engine/infrastructure/logger/logrus"
	"docview-engine/infrastructure/provider/snapshot"
	"docview-engine/infrastructure/store/memory"
	redisstore "docview-engine/infrastructure/store/redis"
	sqlitestore "docview-engine/infrastructure/store/sqlite"
	"docview-engine/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Create logger
	logger := logruslogger.NewLogger(cfg.LogLevel)
	logger.Info("Starting viewport engine", map[string]interface{}{
		"port":       cfg.Server.Port,
		"store_type": cfg.Store.Type,
	})

	// Create scroll position store
	var positions interfaces.ScrollPositionStore
	switch cfg.Store.Type {
	case "redis":
		redisStore, err := redisstore.NewStore(cfg.Store.Redis)
		if err != nil {
			logger.Error("Failed to create Redis store, falling back to memory", map[string]interface{}{
				"error": err.Error(),
			})
			positions = memory.NewStore()
		} else {
			positions = redisStore
			logger.Info("Using Redis position store", map[string]interface{}{
				"address": cfg.Store.Redis.Address,
			})
		}
	case "sqlite":
		sqliteStore, err := sqlitestore.NewStore(cfg.Store.SQLite.Path)
		if err != nil {
			logger.Error("Failed to create SQLite store, falling back to memory", map[string]interface{}{
				"error": err.Error(),
			})
			positions = memory.NewStore()
		} else {
			positions = sqliteStore
			logger.Info("Using SQLite position store", map[string]interface{}{
				"path": cfg.Store.SQLite.Path,
			})
		}
	default:
		positions = memory.NewStore()
		logger.Info("Using memory position store", nil)
	}
	defer positions.Close()

	// Create the snapshot provider fed by WebSocket geometry pushes
	provider := snapshot.NewProvider()

	// Create dependencies container
	deps := interfaces.Dependencies{
		Logger:    logger,
		Clock:     stdclock.NewClock(),
		Provider:  provider,
		Positions: positions,
	}

	// Create the coordinator
	engineCfg := coordinator.Config{
		DebounceWindow:      time.Duration(cfg.Viewport.DebounceMs) * time.Millisecond,
		GraceWindow:         time.Duration(cfg.Viewport.GraceMs) * time.Millisecond,
		HighlightWindow:     time.Duration(cfg.Viewport.HighlightMs) * time.Millisecond,
		CacheTTL:            time.Duration(cfg.Viewport.CacheTTLMs) * time.Millisecond,
		VisibilityThreshold: cfg.Viewport.VisibilityThreshold,
		TopMarginPercent:    cfg.Viewport.TopMarginPercent,
		MinDwell:            time.Duration(cfg.Viewport.MinDwellMs) * time.Millisecond,
	}
	engine := coordinator.New(deps, engineCfg)
	defer engine.Close()

	// Create API with middleware
	apiConfig := api.APIConfig{
		Logger:         logger,
		RateLimitRPS:   cfg.Server.RateLimitRPS,
		RateLimitBurst: cfg.Server.RateLimitBurst,
	}
	humaAPI, router := api.NewAPIWithMiddleware(apiConfig)

	// Create and register handlers
	viewportHandler := handlers.NewViewportHandler(engine, positions)
	viewportHandler.RegisterRoutes(humaAPI)

	// Mount the WebSocket endpoint for host UI sessions
	router.Get("/ws", ws.Handler(engine, provider, logger))

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("HTTP server starting", map[string]interface{}{
			"address": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", map[string]interface{}{
				"error": err.Error(),
			})
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...", nil)

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server stopped", nil)
}
