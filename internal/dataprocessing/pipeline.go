package dataprocessing

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"sentipulse/internal/config"
	"sentipulse/internal/errors"
	"sentipulse/pkg/contracts/domain"
)

// Dataset is the output of one full pipeline load: the joined daily summary
// table plus the normalized trades for drill-down. It is immutable once
// produced and recomputed from scratch on every load.
type Dataset struct {
	Summaries []domain.DailySummary    `json:"summaries"`
	Trades    []domain.NormalizedTrade `json:"trades"`
	LoadedAt  time.Time                `json:"loaded_at"`
}

// Pipeline runs the full data preparation over the two input files. A load
// is single-threaded and synchronous; it either fully succeeds or fails as a
// whole on the first parse error.
type Pipeline struct {
	logger    *slog.Logger
	cfg       config.DataConfig
	sentiment *SentimentNormalizer
	trades    *TradeNormalizer
}

// NewPipeline wires the normalizers from the data configuration.
func NewPipeline(cfg config.DataConfig, logger *slog.Logger) (*Pipeline, error) {
	if logger == nil {
		logger = slog.Default()
	}

	trades, err := NewTradeNormalizer(logger, cfg.SourceTimezone)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		logger:    logger.With(slog.String("component", "pipeline")),
		cfg:       cfg,
		sentiment: NewSentimentNormalizer(logger, RegimeRules(cfg.FearKeyword, cfg.GreedKeyword)),
		trades:    trades,
	}, nil
}

// Load runs all four stages over the input files and returns the prepared
// dataset. An empty join result is valid; any parse failure aborts the load
// with no partial result.
func (p *Pipeline) Load(ctx context.Context) (*Dataset, error) {
	start := time.Now()

	sentimentTable, err := ReadTable(p.cfg.SentimentFile)
	if err != nil {
		return nil, err
	}
	sentimentDays, err := p.sentiment.FromTable(ctx, sentimentTable)
	if err != nil {
		return nil, err
	}

	tradeTable, err := ReadTable(p.cfg.TradesFile)
	if err != nil {
		return nil, err
	}
	trades, err := p.trades.FromTable(ctx, tradeTable)
	if err != nil {
		return nil, err
	}

	stats := AggregateDaily(trades)
	summaries := JoinRegimes(stats, sentimentDays)

	p.logger.InfoContext(ctx, "pipeline load complete",
		slog.Int("sentiment_days", len(sentimentDays)),
		slog.Int("trades", len(trades)),
		slog.Int("trade_days", len(stats)),
		slog.Int("joined_days", len(summaries)),
		slog.Duration("duration", time.Since(start)))

	return &Dataset{
		Summaries: summaries,
		Trades:    trades,
		LoadedAt:  time.Now().UTC(),
	}, nil
}

// Fingerprint hashes both input files. Identical inputs yield an identical
// fingerprint, which the caching layer uses as its memoization key.
func (p *Pipeline) Fingerprint() (string, error) {
	h := sha256.New()
	for _, path := range []string{p.cfg.SentimentFile, p.cfg.TradesFile} {
		if err := hashFile(h, path); err != nil {
			return "", errors.NewStorageError(fmt.Sprintf("failed to fingerprint input %s", path), err)
		}
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

func hashFile(h io.Writer, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if _, err := fmt.Fprintf(h, "%s\x00", path); err != nil {
		return err
	}
	_, err = io.Copy(h, file)
	return err
}
