package main

import (
	"context"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/neethishnk/hawkcards/internal/analyzer"
	"github.com/neethishnk/hawkcards/internal/handler"
	mid "github.com/neethishnk/hawkcards/internal/middleware"
	"github.com/neethishnk/hawkcards/internal/store"
	"github.com/neethishnk/hawkcards/pkg/config"
	"github.com/neethishnk/hawkcards/pkg/database"
	"github.com/neethishnk/hawkcards/pkg/jwtutil"
	"github.com/neethishnk/hawkcards/pkg/logger"
	"github.com/neethishnk/hawkcards/pkg/metrics"
)

func main() {
	appConfig, err := config.Load()
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	if err := logger.InitLogger(appConfig); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting hawkcards", appConfig.LogConfig()...)

	jwtutil.Initialize(&appConfig.JWT)
	log.Info("JWT utility initialized")

	kv, ping, closeFn, err := openStore(appConfig, log)
	if err != nil {
		log.Fatal("Failed to initialize store", zap.Error(err))
	}
	defer closeFn()

	st := store.New(kv, store.WithLogger(log))

	e := echo.New()
	e.HideBanner = true
	e.Validator = mid.NewValidator()

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(mid.RequestIDMiddleware)
	e.Use(logger.Middleware(log))
	e.Use(metrics.NewHTTPMetrics(appConfig.Metrics.Prefix).Middleware())

	handler.New(handler.Deps{
		Store:    st,
		Analyzer: analyzer.NewClient(appConfig.AI, appConfig.Org.Name),
		BaseURL:  appConfig.Server.BaseURL,
		OrgName:  appConfig.Org.Name,
		Ping:     ping,
	}).Register(e)

	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}

// openStore builds the key-value backend selected by STORE_DRIVER.
func openStore(cfg *config.Config, log *zap.Logger) (store.KV, handler.Pinger, func(), error) {
	switch cfg.Store.Driver {
	case "redis":
		rdb, err := store.NewRedisClient(cfg.Store.RedisURL)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			return nil, nil, nil, err
		}
		log.Info("Redis connection established")
		ping := func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		return store.NewRedisKV(rdb), ping, func() { _ = rdb.Close() }, nil

	case "sql":
		db, err := database.InitDB(cfg)
		if err != nil {
			return nil, nil, nil, err
		}
		log.Info("Database connection established", zap.String("driver", cfg.DB.Driver))
		kv, err := store.NewSQLKV(db)
		if err != nil {
			return nil, nil, nil, err
		}
		ping := func(context.Context) error { return database.Ping(db) }
		closeFn := func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		return kv, ping, closeFn, nil

	default:
		log.Warn("Using in-memory store, data is lost on restart")
		return store.NewMemoryKV(), nil, func() {}, nil
	}
}
