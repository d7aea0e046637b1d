package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	gomongo "go.mongodb.org/mongo-driver/mongo"

	"github.com/finledger/ledger-api/internal/api"
	"github.com/finledger/ledger-api/internal/core/ports"
	"github.com/finledger/ledger-api/internal/infrastructure/db/mongo"
	"github.com/finledger/ledger-api/internal/infrastructure/db/redis"
	"github.com/finledger/ledger-api/internal/infrastructure/store"
	"github.com/finledger/ledger-api/internal/pkg/config"
	"github.com/finledger/ledger-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.New(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx := context.Background()

	deps := api.Deps{Logger: log}

	// --- Snapshot backend ---
	var mongoClient *gomongo.Client
	switch cfg.Store.Backend {
	case "mongo":
		client, db, err := mongo.Connect(ctx, mongo.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to mongodb")
		}
		mongoClient = client
		deps.Mongo = db
		deps.Store = store.NewMongoStore(db, log)
	case "file":
		fs := store.NewFileStore(cfg.Store.Path, log)
		deps.Store = fs
		deps.SnapshotDir = filepath.Dir(cfg.Store.Path)
	default:
		log.Fatal().Str("backend", cfg.Store.Backend).Msg("unknown store backend")
	}

	// --- Optional login throttle ---
	var throttle ports.LoginThrottle
	var redisClient *goredis.Client
	if cfg.Redis.Addr != "" {
		client, err := redis.Connect(ctx, cfg.Redis.Addr, cfg.Redis.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		redisClient = client
		deps.Redis = client
		throttle = redis.NewLoginThrottle(client, cfg.Redis.MaxLoginFailures)
	}
	deps.Throttle = throttle

	e := api.NewRouter(deps)

	go func() {
		log.Info().Str("port", cfg.Port).Str("backend", cfg.Store.Backend).Msg("starting ledger api")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
	if mongoClient != nil {
		_ = mongoClient.Disconnect(shutdownCtx)
	}
}
