// Package main generates a performance report from closed positions.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/your-org/trade-journal-bot/internal/config"
	"github.com/your-org/trade-journal-bot/internal/journal"
	"github.com/your-org/trade-journal-bot/internal/report"
	"github.com/your-org/trade-journal-bot/pkg/logger"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "Path to the configuration file")
	save := flag.Bool("save", false, "Persist the report snapshot to the database")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	logger.SetGlobalLogLevel(cfg.LogLevel)

	zapLogger, err := zap.NewProduction()
	if err != nil {
		logger.Fatalf("Failed to initialize Zap logger: %v", err)
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL())
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	repo := journal.NewRepository(pool, zapLogger)
	positions, err := repo.ClosedPositions(ctx)
	if err != nil {
		logger.Fatalf("Failed to fetch closed positions: %v", err)
	}
	logger.Infof("Analyzing %d closed positions", len(positions))

	rep, err := report.Analyze(positions)
	if err != nil {
		logger.Fatalf("Failed to analyze positions: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		logger.Fatalf("Failed to encode report: %v", err)
	}

	if *save {
		if err := report.NewService(pool).Save(ctx, rep); err != nil {
			logger.Fatalf("Failed to save report: %v", err)
		}
		logger.Info("Report snapshot saved.")
	}
}
