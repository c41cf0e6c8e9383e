package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRows() []DailySummary {
	return []DailySummary{
		{DailyStats: DailyStats{Date: "2023-05-01", TotalNetPnL: 6, WinRate: 0.5, TakerRatio: 0.5}, Regime: RegimeFear},
		{DailyStats: DailyStats{Date: "2023-05-02", TotalNetPnL: 2, WinRate: 1, TakerRatio: 1}, Regime: RegimeGreed},
		{DailyStats: DailyStats{Date: "2023-05-03", TotalNetPnL: -3, WinRate: 0, TakerRatio: 0.25}, Regime: RegimeFear},
	}
}

func TestFilterByRegime(t *testing.T) {
	rows := sampleRows()

	fear := FilterByRegime(rows, []Regime{RegimeFear})
	require.Len(t, fear, 2)
	assert.Equal(t, "2023-05-01", fear[0].Date)
	assert.Equal(t, "2023-05-03", fear[1].Date)

	both := FilterByRegime(rows, []Regime{RegimeFear, RegimeGreed})
	assert.Len(t, both, 3)

	assert.Empty(t, FilterByRegime(rows, []Regime{RegimeNeutral}))
	assert.Empty(t, FilterByRegime(rows, nil))
}

func TestComputeKPIs(t *testing.T) {
	kpis := ComputeKPIs(sampleRows())

	assert.Equal(t, 3, kpis.SelectedDays)
	assert.Equal(t, 5.0, kpis.TotalNetPnL)
	assert.Equal(t, 0.5, kpis.AvgWinRate)
	assert.InDelta(t, 0.5833, kpis.AvgTakerRatio, 0.0001)
}

func TestComputeKPIs_Empty(t *testing.T) {
	kpis := ComputeKPIs(nil)

	assert.Equal(t, 0, kpis.SelectedDays)
	assert.Equal(t, 0.0, kpis.TotalNetPnL)
	assert.Equal(t, 0.0, kpis.AvgWinRate)
	assert.Equal(t, 0.0, kpis.AvgTakerRatio)
}

func TestRegime_Valid(t *testing.T) {
	for _, r := range AllRegimes() {
		assert.True(t, r.Valid(), string(r))
	}
	assert.False(t, Regime("Panic").Valid())
	assert.False(t, Regime("").Valid())
}
