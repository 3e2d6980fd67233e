package main

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/consumershield/claims-core/internal/api"
	"github.com/consumershield/claims-core/internal/infrastructure/config"
	mongodb "github.com/consumershield/claims-core/internal/infrastructure/db/mongo"
	redisdb "github.com/consumershield/claims-core/internal/infrastructure/db/redis"
	"github.com/consumershield/claims-core/internal/infrastructure/queue"
	"github.com/consumershield/claims-core/pkg/logger"
)

// @title        Claims Core API
// @version      1.0
// @description  Multi-tenant consumer-protection claims workflow service.
// @BasePath     /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load(slog.Default())

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	claimRepo := mongodb.NewClaimRepository(db)
	if err := claimRepo.EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to ensure claim indexes")
	}
	authRepo := mongodb.NewAuthRepository(db)
	if err := authRepo.EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to ensure user indexes")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer func() { _ = rdb.Close() }()

	// Post-commit side effects: audit inserts, claimant notifications,
	// cache invalidation. Started before the server so a job enqueued
	// by the first request already has running workers.
	dispatcher := queue.NewDispatcher(
		cfg.SideEffectWorkers,
		mongodb.NewAuditRepository(db),
		redisdb.NewNotifier(rdb),
		redisdb.NewViewCache(rdb),
		log,
	)
	dispatcher.Start(ctx)

	e := api.NewRouter(cfg, db, rdb, dispatcher, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Info().Err(err).Msg("http server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
