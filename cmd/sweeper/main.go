// Package main is the entry point of the trade journal sweeper daemon.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/your-org/trade-journal-bot/internal/alert"
	"github.com/your-org/trade-journal-bot/internal/config"
	"github.com/your-org/trade-journal-bot/internal/event"
	"github.com/your-org/trade-journal-bot/internal/http/handler"
	"github.com/your-org/trade-journal-bot/internal/jobqueue"
	"github.com/your-org/trade-journal-bot/internal/journal"
	"github.com/your-org/trade-journal-bot/internal/quote"
	"github.com/your-org/trade-journal-bot/internal/sweep"
	"github.com/your-org/trade-journal-bot/pkg/logger"
)

func main() {
	// --- Configuration ---
	configPath := flag.String("config", "config/config.yaml", "Path to the configuration file")
	migrations := flag.String("migrations", "file://db/schema", "Migration source URL")
	once := flag.Bool("once", false, "Run a single sweep and exit")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// --- Logger ---
	logger.SetGlobalLogLevel(cfg.LogLevel)
	logger.Info("Trade journal sweeper starting...")
	logger.Infof("Loaded configuration from: %s", *configPath)

	var zapLogger *zap.Logger
	var zapErr error
	if cfg.LogLevel == "debug" {
		zapLogger, zapErr = zap.NewDevelopment()
	} else {
		zapLogger, zapErr = zap.NewProduction()
	}
	if zapErr != nil {
		logger.Fatalf("Failed to initialize Zap logger: %v", zapErr)
	}
	defer func() {
		if err := zapLogger.Sync(); err != nil {
			// We can't use the logger here because it's being synced.
			// Print to stderr instead.
			fmt.Fprintf(os.Stderr, "Failed to sync zap logger: %v\n", err)
		}
	}()

	// --- Database ---
	databaseURL := cfg.DatabaseURL()
	if err := journal.Migrate(*migrations, databaseURL); err != nil {
		logger.Fatalf("Failed to apply schema migrations: %v", err)
	}
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()
	logger.Info("Database connection established.")

	// --- Price Source ---
	vendor := quote.NewVendorClient(cfg.Quote.VendorURL, cfg.VendorKey, cfg.Quote.Timeout())
	var quotes quote.Source = vendor
	if cfg.Quote.StreamURL != "" {
		stream := quote.NewStreamCache(cfg.Quote.StreamURL, vendor, cfg.Quote.CacheMaxAge())
		go stream.Run(ctx)
		quotes = stream
	}

	// --- Engine ---
	store := journal.NewRepository(pool, zapLogger)
	events := event.NewEmitter(pool, zapLogger)
	jobs := jobqueue.NewPGEnqueuer(pool, zapLogger)
	notifier := alert.NewLogNotifier(zapLogger)

	engine := sweep.NewEngine(store, quotes, events, jobs, notifier, zapLogger, sweep.Config{
		Workers:      cfg.Sweep.Workers,
		QuoteTimeout: cfg.Quote.Timeout(),
		ExpiryDays:   cfg.Sweep.ExpiryDays,
	})

	opts := sweep.Options{
		Limit:  cfg.Sweep.Limit,
		DryRun: bool(cfg.Sweep.DryRun),
	}

	if *once {
		if _, err := engine.Run(ctx, opts); err != nil {
			logger.Fatalf("Sweep failed: %v", err)
		}
		return
	}

	// --- HTTP Server ---
	router := chi.NewRouter()
	router.Get("/health", handler.HealthCheckHandler)
	handler.NewSweepHandler(engine).RegisterRoutes(router)

	server := &http.Server{Addr: fmt.Sprintf(":%d", cfg.HTTPPort), Handler: router}
	go func() {
		logger.Infof("HTTP server starting on :%d", cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// --- Graceful Shutdown Setup ---
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	// --- Sweep Loop ---
	go func() {
		ticker := time.NewTicker(cfg.Sweep.Interval())
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				logger.Info("Sweep loop shutting down.")
				return
			case <-ticker.C:
				if _, err := engine.Run(ctx, opts); err != nil {
					logger.Errorf("Sweep failed: %v", err)
				}
			}
		}
	}()

	// Wait for shutdown signal
	sig := <-sigs
	logger.Infof("Received signal: %s, initiating shutdown...", sig)

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("HTTP server shutdown failed: %v", err)
	}
	logger.Info("Trade journal sweeper shut down gracefully.")
}
