package main

import (
	"context"
	"github.com/AhmedKotbb/simple-payment-geteway/internal/app"
	"github.com/AhmedKotbb/simple-payment-geteway/internal/config"
	"github.com/AhmedKotbb/simple-payment-geteway/internal/di"
	"github.com/AhmedKotbb/simple-payment-geteway/internal/errors"
	"github.com/AhmedKotbb/simple-payment-geteway/internal/infrastructure/api/middlewares"
	"github.com/AhmedKotbb/simple-payment-geteway/internal/infrastructure/api/routers"
	"github.com/AhmedKotbb/simple-payment-geteway/internal/infrastructure/database/cache"
	"github.com/AhmedKotbb/simple-payment-geteway/internal/infrastructure/database/db_client"
	"github.com/AhmedKotbb/simple-payment-geteway/pkg/log"
	"os"
)

const (
	appName = "payment-gateway"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Load()

	opts := []log.LoggerOption{log.WithLogLevel(log.ParseLevel(cfg.Log.Level))}
	if cfg.Log.ConsoleEnabled() {
		opts = append(opts, log.WithConsoleLogger())
	}
	if cfg.Log.File != "" {
		opts = append(opts, log.WithFileLogger(cfg.Log.File))
	}
	log.Init(appName, opts...)
	logger := log.GetLogger()

	var storage di.Storage
	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		logger.Warn().Msg("using in-memory storage; data is lost on exit")
		storage = di.NewMemoryStorage()
	default:
		pgClient := db_client.NewPGClient(cfg.PostgreSQL)
		db, err := pgClient.Connect()
		if err != nil {
			logger.Fatal().Err(err).Msg(errors.ErrorFailedToConnectToTheDatabase)
		}
		defer db.Close()

		if cfg.PostgreSQL.MigrateOnStart() {
			if err = db_client.Migrate(ctx, db); err != nil {
				logger.Fatal().Err(err).Msg(errors.ErrorFailedToMigrateTheDatabase)
			}
		}
		storage = di.NewPostgresStorage(db, cfg.PostgreSQL.TxRetries())
	}

	var idempotency middlewares.IdempotencyStore
	if cfg.Redis.URL != "" {
		rdb, err := db_client.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			logger.Fatal().Err(err).Msg(errors.ErrorFailedToConnectToRedis)
		}
		defer rdb.Close()
		idempotency = cache.NewIdempotencyStore(rdb)
	}

	container := di.NewContainer(cfg, storage, idempotency)

	if err := container.UserInteractor.SeedAdmin(ctx, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword, cfg.Auth.AdminName); err != nil {
		logger.Fatal().Err(err).Msg(errors.ErrorFailedToSeedAdmin)
	}

	router := routers.NewRouter(container)
	service := app.NewService(cfg)
	if err := service.Run(ctx, router); err != nil {
		cancel()
		os.Exit(1)
	}
}
