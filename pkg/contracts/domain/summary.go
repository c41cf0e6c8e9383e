package domain

// DailyStats holds the aggregated trading statistics for one UTC calendar
// date. A stats row only exists for dates with at least one trade, so
// TotalTrades is always >= 1.
type DailyStats struct {
	Date           string  `json:"date"`
	TotalNetPnL    float64 `json:"total_net_pnl"`
	AvgTradeSize   float64 `json:"avg_trade_size"`
	TotalTrades    int     `json:"total_trades"`
	UniqueAccounts int     `json:"unique_accounts"`
	WinningTrades  int     `json:"winning_trades"`
	LosingTrades   int     `json:"losing_trades"`
	TakerTrades    int     `json:"taker_trades"`
	WinRate        float64 `json:"win_rate"`
	TakerRatio     float64 `json:"taker_ratio"`
}

// DailySummary is the final regime-labeled daily row consumed by the
// dashboard: the inner join of DailyStats and SentimentDay on date.
type DailySummary struct {
	DailyStats

	Score          float64 `json:"score"`
	Classification string  `json:"classification"`
	Regime         Regime  `json:"regime"`
}

// KPISummary is the aggregate reduction over a regime-filtered set of
// DailySummary rows, mirroring the dashboard's headline metrics.
type KPISummary struct {
	SelectedDays  int     `json:"selected_days"`
	TotalNetPnL   float64 `json:"total_net_pnl"`
	AvgWinRate    float64 `json:"avg_win_rate"`
	AvgTakerRatio float64 `json:"avg_taker_ratio"`
}

// FilterByRegime returns the subset of rows whose regime is in the selected
// set, preserving order. An empty selection yields an empty result.
func FilterByRegime(rows []DailySummary, selected []Regime) []DailySummary {
	want := make(map[Regime]bool, len(selected))
	for _, r := range selected {
		want[r] = true
	}

	filtered := make([]DailySummary, 0, len(rows))
	for _, row := range rows {
		if want[row.Regime] {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

// ComputeKPIs reduces a set of daily summaries to the dashboard headline
// metrics. An empty input yields a zero-valued summary, not an error.
func ComputeKPIs(rows []DailySummary) KPISummary {
	kpi := KPISummary{SelectedDays: len(rows)}
	if len(rows) == 0 {
		return kpi
	}

	var winRateSum, takerRatioSum float64
	for _, row := range rows {
		kpi.TotalNetPnL += row.TotalNetPnL
		winRateSum += row.WinRate
		takerRatioSum += row.TakerRatio
	}
	kpi.AvgWinRate = winRateSum / float64(len(rows))
	kpi.AvgTakerRatio = takerRatioSum / float64(len(rows))
	return kpi
}
