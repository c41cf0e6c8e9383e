package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sentipulse/internal/config"
	"sentipulse/internal/dataprocessing"
	"sentipulse/pkg/contracts/domain"
)

const (
	testSentimentCSV = "date,value,classification\n" +
		"2023-05-01,20,Extreme Fear\n" +
		"2023-05-02,80,Extreme Greed\n"

	testTradesCSV = "Account,Timestamp IST,Closed PnL,Fee,Size USD,Crossed\n" +
		"0xabc,01-05-2023 12:00,10.5,0.5,100,True\n" +
		"0xdef,01-05-2023 15:30,-3,1,200,False\n" +
		"0xabc,02-05-2023 18:00,2,0,50,True\n"
)

func newTestService(t *testing.T) (*DashboardService, config.DataConfig) {
	t.Helper()

	dir := t.TempDir()
	cfg := config.DataConfig{
		SentimentFile:  filepath.Join(dir, "fear_greed_index.csv"),
		TradesFile:     filepath.Join(dir, "trade_history.csv"),
		SourceTimezone: "Asia/Kolkata",
		FearKeyword:    "fear",
		GreedKeyword:   "greed",
	}
	require.NoError(t, os.WriteFile(cfg.SentimentFile, []byte(testSentimentCSV), 0644))
	require.NoError(t, os.WriteFile(cfg.TradesFile, []byte(testTradesCSV), 0644))

	pipeline, err := dataprocessing.NewPipeline(cfg, nil)
	require.NoError(t, err)

	service, err := NewDashboardService(pipeline, nil, nil)
	require.NoError(t, err)
	return service, cfg
}

func TestDashboardService_DatasetIsCached(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	first, err := service.Dataset(ctx)
	require.NoError(t, err)
	require.Len(t, first.Summaries, 2)

	// Unchanged inputs must serve the cached dataset, not reload.
	second, err := service.Dataset(ctx)
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestDashboardService_InvalidateForcesReload(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	first, err := service.Dataset(ctx)
	require.NoError(t, err)

	service.Invalidate(ctx)

	second, err := service.Dataset(ctx)
	require.NoError(t, err)
	assert.NotSame(t, first, second)
	assert.Equal(t, first.Summaries, second.Summaries)
}

func TestDashboardService_InputChangeInvalidatesCache(t *testing.T) {
	service, cfg := newTestService(t)
	ctx := context.Background()

	first, err := service.Dataset(ctx)
	require.NoError(t, err)
	require.Len(t, first.Trades, 3)

	appended := testTradesCSV + "0xabc,02-05-2023 20:00,1,0,25,True\n"
	require.NoError(t, os.WriteFile(cfg.TradesFile, []byte(appended), 0644))

	// The fingerprint changed, so a plain read picks up the new data
	// without an explicit invalidation.
	second, err := service.Dataset(ctx)
	require.NoError(t, err)
	assert.Len(t, second.Trades, 4)
}

func TestDashboardService_Reload(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	first, err := service.Dataset(ctx)
	require.NoError(t, err)

	reloaded, err := service.Reload(ctx)
	require.NoError(t, err)
	assert.NotSame(t, first, reloaded)
	assert.Equal(t, first.Summaries, reloaded.Summaries)
}

func TestDashboardService_Summaries(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	all, err := service.Summaries(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)

	fearOnly, err := service.Summaries(ctx, []domain.Regime{domain.RegimeFear})
	require.NoError(t, err)
	require.Len(t, fearOnly, 1)
	assert.Equal(t, "2023-05-01", fearOnly[0].Date)

	neutralOnly, err := service.Summaries(ctx, []domain.Regime{domain.RegimeNeutral})
	require.NoError(t, err)
	assert.Empty(t, neutralOnly)
}

func TestDashboardService_KPIs(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	kpis, err := service.KPIs(ctx, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, kpis.SelectedDays)
	assert.Equal(t, 8.0, kpis.TotalNetPnL)
	assert.Equal(t, 0.75, kpis.AvgWinRate)
	assert.Equal(t, 0.75, kpis.AvgTakerRatio)
}

func TestDashboardService_TradesForDate(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	all, err := service.TradesForDate(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	day, err := service.TradesForDate(ctx, "2023-05-01")
	require.NoError(t, err)
	require.Len(t, day, 2)
	for _, trade := range day {
		assert.Equal(t, "2023-05-01", trade.Date)
	}

	none, err := service.TradesForDate(ctx, "2030-01-01")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestDashboardService_RegimeBreakdown(t *testing.T) {
	service, _ := newTestService(t)

	counts, err := service.RegimeBreakdown(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, counts[domain.RegimeFear])
	assert.Equal(t, 1, counts[domain.RegimeGreed])
	assert.Equal(t, 0, counts[domain.RegimeNeutral])
}

func TestDashboardService_LoadFailurePropagates(t *testing.T) {
	service, cfg := newTestService(t)
	ctx := context.Background()

	require.NoError(t, os.WriteFile(cfg.TradesFile,
		[]byte("Account,Timestamp IST,Closed PnL,Fee,Size USD,Crossed\n0xabc,garbage,1,0,10,True\n"), 0644))

	_, err := service.Dataset(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Timestamp IST")
}
