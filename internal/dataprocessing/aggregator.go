package dataprocessing

import (
	"sentipulse/pkg/contracts/domain"
)

// dailyAccumulator collects per-date counters before ratio derivation.
type dailyAccumulator struct {
	totalNetPnL float64
	sizeSum     float64
	totalTrades int
	accounts    map[string]struct{}
	wins        int
	losses      int
	takers      int
}

// AggregateDaily groups normalized trades by UTC calendar date and computes
// the daily statistics. The result has one entry per distinct date, in no
// particular order; empty input yields empty output.
func AggregateDaily(trades []domain.NormalizedTrade) []domain.DailyStats {
	groups := make(map[string]*dailyAccumulator)

	for _, trade := range trades {
		acc, ok := groups[trade.Date]
		if !ok {
			acc = &dailyAccumulator{accounts: make(map[string]struct{})}
			groups[trade.Date] = acc
		}

		acc.totalNetPnL += trade.NetPnL
		acc.sizeSum += trade.SizeUSD
		acc.totalTrades++
		acc.accounts[trade.Account] = struct{}{}
		if trade.IsWin {
			acc.wins++
		}
		if trade.IsLoss {
			acc.losses++
		}
		if trade.IsTaker {
			acc.takers++
		}
	}

	stats := make([]domain.DailyStats, 0, len(groups))
	for date, acc := range groups {
		// The max(1, n) denominator guard reports 0 instead of NaN on days
		// where every trade nets to exactly zero.
		decided := acc.wins + acc.losses

		stats = append(stats, domain.DailyStats{
			Date:           date,
			TotalNetPnL:    acc.totalNetPnL,
			AvgTradeSize:   acc.sizeSum / float64(acc.totalTrades),
			TotalTrades:    acc.totalTrades,
			UniqueAccounts: len(acc.accounts),
			WinningTrades:  acc.wins,
			LosingTrades:   acc.losses,
			TakerTrades:    acc.takers,
			WinRate:        float64(acc.wins) / float64(max(1, decided)),
			TakerRatio:     float64(acc.takers) / float64(max(1, acc.totalTrades)),
		})
	}

	return stats
}
