// The worker binary refreshes the market sentiment verdict on a cron
// schedule and warms the company news cache for configured symbols, keeping
// API reads fresh without blocking a client on AI calls.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"

	"marketpulse/internal/config"
	hhttp "marketpulse/internal/handler/http"
	pgRepo "marketpulse/internal/infra/adapter/persistence/postgres"
	"marketpulse/internal/infra/ai"
	"marketpulse/internal/infra/db"
	"marketpulse/internal/infra/source"
	"marketpulse/internal/observability/logging"
	newsUC "marketpulse/internal/usecase/news"
	sentimentUC "marketpulse/internal/usecase/sentiment"
	pkgconfig "marketpulse/pkg/config"
)

// refreshTimeout bounds one full refresh cycle (fan-out, AI calls, store
// writes).
const refreshTimeout = 5 * time.Minute

func main() {
	_ = godotenv.Load()

	logger := logging.NewLogger()
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	database := db.Open()
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	if err := db.MigrateUp(database); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}

	newsSvc, sentimentSvc := buildServices(logger, database, cfg)

	refresh := func() {
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()

		start := time.Now()
		verdict := sentimentSvc.UpdateAndSaveSentiment(ctx)
		logger.Info("sentiment refresh completed",
			slog.String("status", string(verdict.Status)),
			slog.Int("score", verdict.Score),
			slog.Duration("duration", time.Since(start)))

		for _, symbol := range cfg.Sources.WarmupSymbols {
			articles := newsSvc.GetCompanyNewsWithCache(ctx, symbol)
			logger.Info("company news warmup",
				slog.String("symbol", symbol),
				slog.Int("count", len(articles)))
		}
	}

	c := cron.New()
	if _, err := c.AddFunc(cfg.CronSchedule, refresh); err != nil {
		logger.Error("failed to add cron job",
			slog.String("schedule", cfg.CronSchedule),
			slog.Any("error", err))
		os.Exit(1)
	}

	go serveHealth(logger, database)

	// Run once at startup so a fresh deployment has a verdict before the
	// first cron tick.
	refresh()

	c.Start()
	logger.Info("worker started", slog.String("schedule", cfg.CronSchedule))

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	sig := <-stop
	logger.Info("shutting down", slog.String("signal", sig.String()))

	<-c.Stop().Done()
	logger.Info("worker stopped")
}

// buildServices wires the aggregation and sentiment pipelines.
func buildServices(logger *slog.Logger, database *sql.DB, cfg *config.AppConfig) (*newsUC.Service, *sentimentUC.Service) {
	httpClient := &http.Client{Timeout: cfg.FetchTimeout}

	rss := source.NewRSSAdapter(httpClient, cfg.Sources.Feeds)
	marketaux := source.NewMarketauxAdapter(httpClient, os.Getenv("MARKETAUX_API_KEY"))
	finnhub := source.NewFinnhubAdapter(httpClient, os.Getenv("FINNHUB_API_KEY"))

	analyst := ai.NewFromEnv(logger)

	newsSvc := newsUC.NewService(
		[]source.Adapter{rss, marketaux, finnhub},
		[]source.Adapter{marketaux, finnhub},
		pgRepo.NewCompanyNewsRepo(database),
		nil,
		cfg.FetchTimeout, cfg.CompanyNewsTTL,
	)
	sentimentSvc := sentimentUC.NewService(
		analyst,
		pgRepo.NewSentimentRepo(database),
		newsSvc,
		cfg.SentimentTTL,
	)
	newsSvc.Enricher = sentimentSvc

	return newsSvc, sentimentSvc
}

// serveHealth exposes liveness and metrics for the worker process.
func serveHealth(logger *slog.Logger, database *sql.DB) {
	port := pkgconfig.GetEnvInt("WORKER_HEALTH_PORT", 8081)

	mux := http.NewServeMux()
	mux.Handle("GET /healthz", hhttp.HealthHandler{DB: database})
	mux.Handle("GET /metrics", promhttp.Handler())

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	logger.Info("worker health server starting", slog.Int("port", port))
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("worker health server failed", slog.Any("error", err))
	}
}
