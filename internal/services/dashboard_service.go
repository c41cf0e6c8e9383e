package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/singleflight"

	"sentipulse/internal/dataprocessing"
	"sentipulse/pkg/contracts/domain"
)

// DashboardService serves the prepared dataset to the HTTP layer. Loads are
// memoized on a fingerprint of the input files; concurrent cache misses are
// collapsed into a single pipeline run.
type DashboardService struct {
	pipeline *dataprocessing.Pipeline
	logger   *slog.Logger

	group singleflight.Group

	mu       sync.RWMutex
	cached   *dataprocessing.Dataset
	cacheKey string

	loadsTotal   metric.Int64Counter
	loadDuration metric.Float64Histogram
}

// NewDashboardService creates the dashboard service. The meter is optional;
// without one, load metrics are simply not recorded (CLI usage).
func NewDashboardService(pipeline *dataprocessing.Pipeline, logger *slog.Logger, meter metric.Meter) (*DashboardService, error) {
	if logger == nil {
		logger = slog.Default()
	}

	s := &DashboardService{
		pipeline: pipeline,
		logger:   logger.With(slog.String("component", "dashboard_service")),
	}

	if meter != nil {
		var err error
		s.loadsTotal, err = meter.Int64Counter("sentipulse_pipeline_loads_total",
			metric.WithDescription("Number of pipeline loads, by outcome"))
		if err != nil {
			return nil, err
		}
		s.loadDuration, err = meter.Float64Histogram("sentipulse_pipeline_load_duration_seconds",
			metric.WithDescription("Duration of full pipeline loads"))
		if err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Dataset returns the prepared dataset, loading it if the cache is empty or
// the input files changed since the cached load.
func (s *DashboardService) Dataset(ctx context.Context) (*dataprocessing.Dataset, error) {
	key, err := s.pipeline.Fingerprint()
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	if s.cached != nil && s.cacheKey == key {
		cached := s.cached
		s.mu.RUnlock()
		return cached, nil
	}
	s.mu.RUnlock()

	v, err, shared := s.group.Do(key, func() (interface{}, error) {
		return s.load(ctx, key)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		s.logger.DebugContext(ctx, "load shared with concurrent caller")
	}

	return v.(*dataprocessing.Dataset), nil
}

func (s *DashboardService) load(ctx context.Context, key string) (*dataprocessing.Dataset, error) {
	start := time.Now()
	dataset, err := s.pipeline.Load(ctx)

	if s.loadsTotal != nil {
		s.loadsTotal.Add(ctx, 1, metric.WithAttributes(attribute.Bool("success", err == nil)))
	}
	if s.loadDuration != nil {
		s.loadDuration.Record(ctx, time.Since(start).Seconds())
	}

	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cached = dataset
	s.cacheKey = key
	s.mu.Unlock()

	return dataset, nil
}

// Invalidate drops the cached dataset. The next read reloads from disk.
func (s *DashboardService) Invalidate(ctx context.Context) {
	s.mu.Lock()
	s.cached = nil
	s.cacheKey = ""
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "dataset cache invalidated")
}

// Reload invalidates the cache and loads fresh data in one step.
func (s *DashboardService) Reload(ctx context.Context) (*dataprocessing.Dataset, error) {
	s.Invalidate(ctx)
	return s.Dataset(ctx)
}

// Summaries returns the daily summary rows, optionally filtered to the given
// regimes. A nil or empty selection returns all rows; an empty result is
// valid and rendered as "no data" downstream.
func (s *DashboardService) Summaries(ctx context.Context, regimes []domain.Regime) ([]domain.DailySummary, error) {
	dataset, err := s.Dataset(ctx)
	if err != nil {
		return nil, err
	}

	if len(regimes) == 0 {
		return dataset.Summaries, nil
	}
	return domain.FilterByRegime(dataset.Summaries, regimes), nil
}

// KPIs computes the headline metrics over the regime-filtered summary rows.
func (s *DashboardService) KPIs(ctx context.Context, regimes []domain.Regime) (domain.KPISummary, error) {
	rows, err := s.Summaries(ctx, regimes)
	if err != nil {
		return domain.KPISummary{}, err
	}
	return domain.ComputeKPIs(rows), nil
}

// TradesForDate returns the normalized trades for drill-down. An empty date
// returns every trade.
func (s *DashboardService) TradesForDate(ctx context.Context, date string) ([]domain.NormalizedTrade, error) {
	dataset, err := s.Dataset(ctx)
	if err != nil {
		return nil, err
	}

	if date == "" {
		return dataset.Trades, nil
	}

	trades := make([]domain.NormalizedTrade, 0)
	for _, trade := range dataset.Trades {
		if trade.Date == date {
			trades = append(trades, trade)
		}
	}
	return trades, nil
}

// RegimeBreakdown counts joined days per regime, for the filter UI.
func (s *DashboardService) RegimeBreakdown(ctx context.Context) (map[domain.Regime]int, error) {
	dataset, err := s.Dataset(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[domain.Regime]int, 3)
	for _, row := range dataset.Summaries {
		counts[row.Regime]++
	}
	return counts, nil
}
