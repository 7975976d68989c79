// File: medisched/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medisched/config"
	"medisched/cron"
	"medisched/database"
	bookingRepo "medisched/database/repository/booking"
	historyRepo "medisched/database/repository/history"
	providerRepo "medisched/database/repository/provider"
	"medisched/services/forecast"
	"medisched/services/scheduling"
	"medisched/services/scoring"
	"medisched/utils"
)

// main runs the scheduling daemon: it validates the engine wiring at boot
// and keeps the forecast refresh worker warming demand curves. The engine
// itself is consumed as a library by the routing layer.
func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitForecastCache()

	// repositories.
	provRepo := providerRepo.NewMongoProviderRepo()
	bookRepo := bookingRepo.NewMongoBookingRepo()
	histRepo := historyRepo.NewMongoHistoryRepo()

	// services.
	forecaster := forecast.NewHistoryForecaster(histRepo, utils.GetForecastCacheClient(), logger)
	resultCache := scheduling.NewRedisResultCache(utils.GetCacheClient())

	if _, err := scheduling.NewEngine(scheduling.EngineConfig{
		Providers:     provRepo,
		Bookings:      bookRepo,
		History:       histRepo,
		Forecaster:    forecaster,
		Scorer:        scoring.NewWeightedScorer(),
		WaitEstimator: scoring.LoadWaitEstimator{},
		Cache:         resultCache,
		TTL:           time.Duration(config.AppConfig.ResultCacheTTLSeconds) * time.Second,
		HorizonDays:   config.AppConfig.HorizonDays,
		Logger:        logger,
	}); err != nil {
		logger.Sugar().Fatalf("main: failed to construct scheduling engine: %v", err)
	}
	logger.Sugar().Info("main: scheduling engine wiring validated")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cron.InitForecastWorker(histRepo)
	go cron.StartForecastScheduler(ctx, provRepo)

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: daemon is shutting down...")

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	database.CloseDB(shutdownCtx)

	logger.Sugar().Info("main: daemon stopped gracefully")
}
