// Account service entrypoint: loads configuration, waits for the backing
// stores, ensures indexes, and serves the HTTP API until interrupted.
//
// @title           Account Service API
// @version         1.0
// @description     User account and opaque-token authentication backend.
// @BasePath        /
//
// @securityDefinitions.apikey TokenAuth
// @in   header
// @name Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/userhub/account-service/internal/api"
	"github.com/userhub/account-service/internal/infrastructure/config"
	mongodb "github.com/userhub/account-service/internal/infrastructure/db/mongo"
	redisdb "github.com/userhub/account-service/internal/infrastructure/db/redis"
	"github.com/userhub/account-service/pkg/logger"
)

const (
	dbWaitAttempts  = 30
	dbWaitInterval  = time.Second
	shutdownTimeout = 10 * time.Second
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, db, err := waitForMongo(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb unavailable")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to create indexes")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis unavailable")
	}
	defer func() {
		_ = rdb.Close()
	}()

	e := api.NewRouter(db, rdb, cfg.TokenCacheTTL, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("account service started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// waitForMongo retries the connect-and-ping sequence until the database is
// reachable or the attempt budget runs out, so the service can start before
// its database does.
func waitForMongo(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*mongo.Client, *mongo.Database, error) {
	mongoCfg := mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database}

	var lastErr error
	for attempt := 1; attempt <= dbWaitAttempts; attempt++ {
		client, db, err := mongodb.Connect(ctx, mongoCfg)
		if err == nil {
			return client, db, nil
		}
		lastErr = err

		log.Warn().Err(err).Int("attempt", attempt).Msg("database unavailable, retrying")
		select {
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		case <-time.After(dbWaitInterval):
		}
	}
	return nil, nil, lastErr
}
