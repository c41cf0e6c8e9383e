package http

import (
	"context"

	"sentipulse/internal/dataprocessing"
	"sentipulse/pkg/contracts/domain"
)

// DashboardServiceInterface defines what the dashboard handler needs from
// the services layer. Kept as an interface for handler tests.
type DashboardServiceInterface interface {
	Summaries(ctx context.Context, regimes []domain.Regime) ([]domain.DailySummary, error)
	KPIs(ctx context.Context, regimes []domain.Regime) (domain.KPISummary, error)
	TradesForDate(ctx context.Context, date string) ([]domain.NormalizedTrade, error)
	RegimeBreakdown(ctx context.Context) (map[domain.Regime]int, error)
	Reload(ctx context.Context) (*dataprocessing.Dataset, error)
}
