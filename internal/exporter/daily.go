package exporter

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"sentipulse/internal/errors"
	"sentipulse/pkg/contracts/domain"
)

// ReportWriter writes daily summary reports into a target directory.
type ReportWriter struct {
	logger *slog.Logger
	dir    string
}

// NewReportWriter creates a report writer rooted at dir.
func NewReportWriter(logger *slog.Logger, dir string) *ReportWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportWriter{
		logger: logger.With(slog.String("component", "exporter")),
		dir:    dir,
	}
}

var summaryHeader = []string{
	"Date", "TotalNetPnL", "AvgTradeSize", "TotalTrades", "UniqueAccounts",
	"WinningTrades", "LosingTrades", "TakerTrades", "WinRate", "TakerRatio",
	"Score", "Classification", "Regime",
}

// WriteSummaryCSV writes the joined daily summary table as CSV and returns
// the written path.
func (w *ReportWriter) WriteSummaryCSV(ctx context.Context, name string, summaries []domain.DailySummary) (string, error) {
	path := filepath.Join(w.dir, name)

	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return "", errors.NewStorageError("failed to create reports directory", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return "", errors.NewStorageError("failed to create summary CSV file", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(summaryHeader); err != nil {
		return "", errors.NewStorageError("failed to write CSV header row", err)
	}

	for _, s := range summaries {
		row := []string{
			s.Date,
			formatFloat(s.TotalNetPnL),
			formatFloat(s.AvgTradeSize),
			strconv.Itoa(s.TotalTrades),
			strconv.Itoa(s.UniqueAccounts),
			strconv.Itoa(s.WinningTrades),
			strconv.Itoa(s.LosingTrades),
			strconv.Itoa(s.TakerTrades),
			formatFloat(s.WinRate),
			formatFloat(s.TakerRatio),
			formatFloat(s.Score),
			s.Classification,
			string(s.Regime),
		}
		if err := writer.Write(row); err != nil {
			return "", errors.NewStorageError("failed to write CSV data row", err)
		}
	}

	w.logger.InfoContext(ctx, "wrote daily summary CSV",
		slog.String("path", path),
		slog.Int("rows", len(summaries)))

	return path, nil
}

// WriteSummaryJSON writes the joined daily summary table as JSON and returns
// the written path.
func (w *ReportWriter) WriteSummaryJSON(ctx context.Context, name string, summaries []domain.DailySummary) (string, error) {
	path := filepath.Join(w.dir, name)

	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return "", errors.NewStorageError("failed to create reports directory", err)
	}

	data, err := json.MarshalIndent(summaries, "", "  ")
	if err != nil {
		return "", errors.NewStorageError("failed to marshal summary JSON", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", errors.NewStorageError("failed to write summary JSON file", err)
	}

	w.logger.InfoContext(ctx, "wrote daily summary JSON",
		slog.String("path", path),
		slog.Int("rows", len(summaries)))

	return path, nil
}

// formatFloat renders values without trailing zero padding so outputs stay
// byte-identical across runs on unchanged inputs.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
