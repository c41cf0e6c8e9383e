package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"sentipulse/internal/config"
	"sentipulse/internal/dataprocessing"
	"sentipulse/internal/exporter"
	"sentipulse/internal/infrastructure"
)

func main() {
	sentimentFile := flag.String("sentiment", "", "sentiment index file (defaults to configured path)")
	tradesFile := flag.String("trades", "", "trade history file (defaults to configured path)")
	outDir := flag.String("out", "", "output directory for reports (defaults to configured path)")
	format := flag.String("format", "csv", "report format: csv, json or both")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("failed to initialize logger", "error", err)
		os.Exit(1)
	}
	defer infrastructure.CloseLogFile()

	// Flags override configured paths.
	if *sentimentFile != "" {
		cfg.Data.SentimentFile = *sentimentFile
	}
	if *tradesFile != "" {
		cfg.Data.TradesFile = *tradesFile
	}
	if *outDir != "" {
		cfg.Data.ReportsDir = *outDir
	}

	ctx := infrastructure.ContextWithTraceID(context.Background())

	pipeline, err := dataprocessing.NewPipeline(cfg.Data, logger)
	if err != nil {
		logger.ErrorContext(ctx, "failed to build pipeline", "error", err)
		os.Exit(1)
	}

	dataset, err := pipeline.Load(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "data load failed", "error", err)
		os.Exit(1)
	}

	if len(dataset.Summaries) == 0 {
		logger.WarnContext(ctx, "no overlapping dates between trades and sentiment; reports will be empty")
	}

	writer := exporter.NewReportWriter(logger, cfg.Data.ReportsDir)

	if *format == "csv" || *format == "both" {
		path, err := writer.WriteSummaryCSV(ctx, "daily_summary.csv", dataset.Summaries)
		if err != nil {
			logger.ErrorContext(ctx, "failed to write CSV report", "error", err)
			os.Exit(1)
		}
		logger.InfoContext(ctx, "CSV report written", "path", path)
	}

	if *format == "json" || *format == "both" {
		path, err := writer.WriteSummaryJSON(ctx, "daily_summary.json", dataset.Summaries)
		if err != nil {
			logger.ErrorContext(ctx, "failed to write JSON report", "error", err)
			os.Exit(1)
		}
		logger.InfoContext(ctx, "JSON report written", "path", path)
	}

	logger.InfoContext(ctx, "processing complete",
		slog.Int("trades", len(dataset.Trades)),
		slog.Int("joined_days", len(dataset.Summaries)))
}
