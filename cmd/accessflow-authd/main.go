// Command accessflow-authd runs the AccessFlow credential service: login,
// registration, the admin-only audit trail, health probes, and metrics.
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/accessflow/accessflow/internal/api"
	"github.com/accessflow/accessflow/internal/core/service"
	"github.com/accessflow/accessflow/internal/infrastructure/config"
	mongodb "github.com/accessflow/accessflow/internal/infrastructure/db/mongo"
	redisdb "github.com/accessflow/accessflow/internal/infrastructure/db/redis"
	"github.com/accessflow/accessflow/internal/infrastructure/queue"
	"github.com/accessflow/accessflow/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.Env == "development"})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connect failed")
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connect failed")
	}
	defer rdb.Close()

	userRepo := mongodb.NewUserRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)

	auditService := service.NewAuditService(auditRepo, logger.Component("audit"))
	dispatcher := queue.NewDispatcher(cfg.AuditWorkers, auditService, logger.Component("audit-queue"))
	dispatcher.Start(ctx)

	authService := service.NewAuthService(userRepo, dispatcher, cfg.JWTSecret, cfg.TokenTTL)

	e := api.NewRouter(db, rdb, authService, auditService, cfg.JWTSecret, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("credential service starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
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
