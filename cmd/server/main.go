package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ramalsaham/dashboard/internal/clients/alphavantage"
	"github.com/ramalsaham/dashboard/internal/clients/newsfeed"
	"github.com/ramalsaham/dashboard/internal/clients/yahoo"
	"github.com/ramalsaham/dashboard/internal/config"
	"github.com/ramalsaham/dashboard/internal/database"
	"github.com/ramalsaham/dashboard/internal/modules/forecast"
	"github.com/ramalsaham/dashboard/internal/modules/fundamentals"
	"github.com/ramalsaham/dashboard/internal/modules/history"
	"github.com/ramalsaham/dashboard/internal/modules/metrics"
	"github.com/ramalsaham/dashboard/internal/modules/news"
	"github.com/ramalsaham/dashboard/internal/modules/report"
	"github.com/ramalsaham/dashboard/internal/scheduler"
	"github.com/ramalsaham/dashboard/internal/server"
	"github.com/ramalsaham/dashboard/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New(logger.Config{Level: "info", Pretty: true})
		bootLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})
	logger.SetGlobalLogger(log)

	log.Info().Msg("Starting stock dashboard service")

	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	requestLog := report.NewRequestLog(db, log)
	if err := requestLog.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate database")
	}

	// Provider clients, one per external source
	marketClient := yahoo.NewClient(cfg.MarketDataURL, cfg.HTTPTimeout, log)
	fundamentalsClient := alphavantage.NewClient(cfg.FundamentalsURL, cfg.AlphaVantageAPIKey, cfg.HTTPTimeout, log)
	newsClient := newsfeed.NewClient(cfg.NewsFeedURL, cfg.HTTPTimeout, log)

	// Pipeline services
	ingestor := history.NewService(marketClient, log)
	metricsSvc := metrics.NewService(log)
	forecastSvc := forecast.NewService(log)
	fundamentalsSvc := fundamentals.NewService(fundamentalsClient, log)
	newsSvc := news.NewService(newsClient, log)
	reportSvc := report.NewService(ingestor, metricsSvc, forecastSvc, fundamentalsSvc, newsSvc, requestLog, log)

	// Nightly request log prune
	sched := scheduler.New(log)
	if err := sched.AddJob("@daily", scheduler.NewPruneJob(requestLog, cfg.RequestLogRetentionDays, log)); err != nil {
		log.Fatal().Err(err).Msg("Failed to register prune job")
	}
	sched.Start()
	defer sched.Stop()

	srv := server.New(server.Config{
		Port:         cfg.Port,
		Log:          log,
		DevMode:      cfg.DevMode,
		History:      history.NewHandlers(ingestor, log),
		Metrics:      metrics.NewHandlers(ingestor, metricsSvc, log),
		Forecast:     forecast.NewHandlers(ingestor, forecastSvc, log),
		Fundamentals: fundamentals.NewHandlers(fundamentalsSvc, log),
		News:         news.NewHandlers(newsSvc, log),
		Report:       report.NewHandlers(reportSvc, log),
	})

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
