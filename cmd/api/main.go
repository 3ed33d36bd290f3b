package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/zerotocryptodev/backend/config"
	"github.com/zerotocryptodev/backend/internal/bootstrap"
)

const serviceName = "cryptocode-api"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := bootstrap.NewLogger(cfg.App.Environment, cfg.App.LogLevel)
	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()
	db, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{
		DSN:      cfg.Database.DSN,
		MaxConns: int32(cfg.Database.MaxConns),
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("database unavailable")
	}
	defer db.Close()

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		// Rate limiting fails open without Redis; keep serving.
		logger.Warn().Err(err).Msg("redis unavailable")
	}
	cancel()

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: serviceName,
		Config:      cfg,
		DB:          db,
		Redis:       rdb,
		Logger:      logger,
	})

	logger.Info().Str("port", cfg.Server.Port).Str("env", cfg.App.Environment).Msg("listening")
	if err := http.ListenAndServe(":"+cfg.Server.Port, r); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
