package main

import (
	"context"
	"fmt"
	"log"
	"time"

	_ "github.com/tanush-em/QWERTY/api/swagger"
	"github.com/tanush-em/QWERTY/internal/handler"
	"github.com/tanush-em/QWERTY/internal/registry"
	"github.com/tanush-em/QWERTY/internal/repository"
	"github.com/tanush-em/QWERTY/internal/service"
	"github.com/tanush-em/QWERTY/pkg/cache"
	"github.com/tanush-em/QWERTY/pkg/config"
	"github.com/tanush-em/QWERTY/pkg/database"
	"github.com/tanush-em/QWERTY/pkg/logger"
)

// @title CSE-AIML ERP Read API
// @version 1.0.0
// @description Read-model API over the academic record store
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.NewMongo(ctx, cfg.Mongo)
	if err != nil {
		logr.Sugar().Fatalw("record store connection failed", "error", err)
	}
	defer db.Client().Disconnect(context.Background()) //nolint:errcheck

	metrics := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if cfg.Dashboard.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, dashboard cache disabled", "error", err)
		} else {
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			defer cacheRepo.Close() //nolint:errcheck
			cacheSvc = service.NewCacheService(cacheRepo, metrics, cfg.Dashboard.CacheTTL, logr, true)
		}
	}

	reg := registry.New()
	store := repository.NewStore(db)
	timetableRepo := repository.NewTimetableRepository(db)

	readModel := service.NewReadModelService(store, reg, metrics, logr, service.ReadModelConfig{
		DefaultPageSize: cfg.Pagination.DefaultPageSize,
		MaxPageSize:     cfg.Pagination.MaxPageSize,
	})
	dashboard := service.NewDashboardService(store, cacheSvc, logr, cfg.Dashboard.CacheTTL)
	timetable := service.NewTimetableService(timetableRepo, nil, logr)
	reports := service.NewReportService(readModel, reg, logr, nil, nil)

	router := handler.NewRouter(handler.RouterParams{
		Config:      cfg,
		Logger:      logr,
		Collections: handler.NewCollectionHandler(readModel),
		Dashboard:   handler.NewDashboardHandler(dashboard),
		Timetable:   handler.NewTimetableHandler(timetable),
		Reports:     handler.NewReportHandler(reports),
		Metrics:     metrics,
		Store:       store,
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "database", cfg.Mongo.Database)
	if err := router.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
