package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/mcoot/wordhunt/internal/api"
	"github.com/mcoot/wordhunt/internal/factory"
	"github.com/mcoot/wordhunt/internal/model"
	"github.com/mcoot/wordhunt/internal/services/category"
	redisstorage "github.com/mcoot/wordhunt/internal/storage/redis"
)

const cleanupInterval = time.Minute

func main() {
	// A missing .env file is fine; real environment variables still apply
	_ = godotenv.Load()

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(os.Getenv("LOG_LEVEL")),
	}))
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Build factory config from environment
	roundCfg := model.DefaultRoundConfig()
	roundCfg.Rows = envInt(logger, "GRID_ROWS", roundCfg.Rows)
	roundCfg.Cols = envInt(logger, "GRID_COLS", roundCfg.Cols)
	roundCfg.DurationSeconds = envInt(logger, "ROUND_SECONDS", roundCfg.DurationSeconds)

	cfg := factory.Config{
		Logger:      logger,
		StorageType: os.Getenv("STORAGE_TYPE"),
		SQLitePath:  os.Getenv("SQLITE_PATH"),
		RoundConfig: roundCfg,
		RewardURL:   os.Getenv("REWARD_URL"),
	}

	// Configure Redis if storage type is redis
	if cfg.StorageType == factory.StorageTypeRedis {
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			logger.Error("REDIS_URL required when STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		cfg.RedisConfig = &redisCfg
	}

	// Category generation is only available with a GCP project
	if projectID := os.Getenv("GCP_PROJECT_ID"); projectID != "" {
		region := os.Getenv("GCP_REGION")
		if region == "" {
			region = "us-central1"
		}
		generator, err := category.NewGeminiGenerator(ctx, projectID, region)
		if err != nil {
			logger.Error("failed to create category generator", slog.String("error", err.Error()))
			os.Exit(1)
		}
		cfg.Generator = generator
	}

	// Create application factory
	app, err := factory.New(cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Warn("failed to close storage", slog.String("error", err.Error()))
		}
	}()

	if err := app.LoadCategories(ctx, os.Getenv("CATEGORIES_PATH")); err != nil {
		logger.Error("failed to load categories", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Create API router
	router := api.NewRouter(api.RouterConfig{
		Logger:          logger,
		AuthService:     app.AuthService,
		CategoryService: app.CategoryService,
		RoundController: app.RoundController,
		RewardClient:    app.RewardClient,
		HubManager:      app.HubManager,
	})

	// Create server
	serverConfig := api.DefaultServerConfig()
	serverConfig.Port = envInt(logger, "PORT", serverConfig.Port)
	server := api.NewServer(router, serverConfig, logger)

	go app.RoundTicker.Run(ctx)
	go runCleanup(ctx, app)

	// Handle graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			cancel()
			return
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			return
		}
	}

	logger.Info("server stopped")
}

// runCleanup drops idle SSE hubs and expired sessions until ctx is cancelled
func runCleanup(ctx context.Context, app *factory.App) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			app.HubManager.CleanupEmptyHubs()
			app.AuthService.CleanExpiredSessions()
		}
	}
}

func logLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func envInt(logger *slog.Logger, key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		logger.Warn("ignoring invalid integer setting", slog.String("key", key), slog.String("value", raw))
		return fallback
	}
	return v
}
