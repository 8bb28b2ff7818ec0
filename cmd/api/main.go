// The api binary serves the market news HTTP API: aggregated news,
// per-symbol company news, and the market sentiment verdict.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"marketpulse/internal/config"
	hhttp "marketpulse/internal/handler/http"
	hnews "marketpulse/internal/handler/http/news"
	hsentiment "marketpulse/internal/handler/http/sentiment"
	pgRepo "marketpulse/internal/infra/adapter/persistence/postgres"
	"marketpulse/internal/infra/ai"
	"marketpulse/internal/infra/db"
	"marketpulse/internal/infra/source"
	"marketpulse/internal/observability/logging"
	"marketpulse/internal/observability/tracing"
	newsUC "marketpulse/internal/usecase/news"
	sentimentUC "marketpulse/internal/usecase/sentiment"
)

func main() {
	// A missing .env file is fine; the environment may be set directly.
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

	handler := setupServer(logger, database, cfg)
	runServer(logger, handler, cfg.Port)
}

// setupServer wires the pipeline and returns the root HTTP handler.
func setupServer(logger *slog.Logger, database *sql.DB, cfg *config.AppConfig) http.Handler {
	httpClient := &http.Client{Timeout: cfg.FetchTimeout}

	rss := source.NewRSSAdapter(httpClient, cfg.Sources.Feeds)
	marketaux := source.NewMarketauxAdapter(httpClient, os.Getenv("MARKETAUX_API_KEY"))
	finnhub := source.NewFinnhubAdapter(httpClient, os.Getenv("FINNHUB_API_KEY"))

	// Priority order is the dedup tie-break: RSS, then Marketaux, then
	// Finnhub.
	globalAdapters := []source.Adapter{rss, marketaux, finnhub}
	symbolAdapters := []source.Adapter{marketaux, finnhub}

	analyst := ai.NewFromEnv(logger)

	newsSvc := newsUC.NewService(
		globalAdapters, symbolAdapters,
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

	mux := http.NewServeMux()
	hnews.Register(mux, newsSvc, logger)
	hsentiment.Register(mux, sentimentSvc, logger)
	mux.Handle("GET /healthz", hhttp.HealthHandler{DB: database})
	mux.Handle("GET /metrics", promhttp.Handler())

	var handler http.Handler = mux
	handler = hhttp.Metrics(handler)
	handler = tracing.Middleware(handler)
	handler = hhttp.Logging(logger)(handler)
	handler = hhttp.Recover(logger)(handler)
	return handler
}

// runServer starts the HTTP server and blocks until shutdown completes.
func runServer(logger *slog.Logger, handler http.Handler, port int) {
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("api server starting", slog.Int("port", port))
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("api server failed", slog.Any("error", err))
			os.Exit(1)
		}
	case sig := <-stop:
		logger.Info("shutting down", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
		}
	}

	logger.Info("api server stopped")
}
