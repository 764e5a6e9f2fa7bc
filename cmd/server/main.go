package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/caarlos0/env/v11"

	"github.com/mkrella/matchroom/internal/api"
	"github.com/mkrella/matchroom/internal/factory"
	"github.com/mkrella/matchroom/internal/snapshot"
)

type serverEnv struct {
	Host         string `env:"MATCHROOM_HOST" envDefault:""`
	Port         int    `env:"MATCHROOM_PORT" envDefault:"8080"`
	LogLevel     string `env:"MATCHROOM_LOG_LEVEL" envDefault:"info"`
	SnapshotType string `env:"MATCHROOM_SNAPSHOT_TYPE" envDefault:"file"`
	SnapshotPath string `env:"MATCHROOM_SNAPSHOT_PATH" envDefault:"matchroom-snapshot.json"`
	RedisURL     string `env:"MATCHROOM_REDIS_URL"`
}

func main() {
	var envCfg serverEnv
	if err := env.Parse(&envCfg); err != nil {
		slog.Error("failed to parse environment", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(envCfg.LogLevel),
	}))
	slog.SetDefault(logger)

	// Build factory config from environment
	cfg := factory.Config{
		SnapshotType: envCfg.SnapshotType,
		SnapshotPath: envCfg.SnapshotPath,
	}

	// Configure Redis if the snapshot sink is redis
	if cfg.SnapshotType == factory.SnapshotTypeRedis {
		if envCfg.RedisURL == "" {
			logger.Error("MATCHROOM_REDIS_URL required when MATCHROOM_SNAPSHOT_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := snapshot.DefaultRedisConfig()
		redisCfg.URL = envCfg.RedisURL
		cfg.RedisConfig = &redisCfg
	}

	// Create application factory
	app, err := factory.New(cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Create API router
	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		AuthService:    app.AuthService,
		RoomController: app.RoomController,
		StatsService:   app.StatsService,
	})

	// Create server
	serverConfig := api.DefaultServerConfig()
	serverConfig.Host = envCfg.Host
	serverConfig.Port = envCfg.Port
	server := api.NewServer(router, serverConfig, logger)

	// Serve until interrupted
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runErr := server.Run(ctx)

	// Final snapshot before exit
	if err := app.Flush(context.Background()); err != nil {
		logger.Error("final snapshot failed", slog.String("error", err.Error()))
	}
	if err := app.Close(); err != nil {
		logger.Error("closing snapshot sink failed", slog.String("error", err.Error()))
	}

	if runErr != nil {
		logger.Error("server error", slog.String("error", runErr.Error()))
		os.Exit(1)
	}

	logger.Info("server stopped")
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
