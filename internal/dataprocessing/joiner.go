package dataprocessing

import (
	"sort"

	"sentipulse/pkg/contracts/domain"
)

// JoinRegimes inner-joins daily statistics with sentiment by calendar date.
// Dates present on only one side are dropped: days without sentiment data or
// without trades are not analytically meaningful and must not appear as
// partial rows. The result is sorted ascending by date.
func JoinRegimes(stats []domain.DailyStats, sentiment map[string]domain.SentimentDay) []domain.DailySummary {
	joined := make([]domain.DailySummary, 0, len(stats))

	for _, day := range stats {
		match, ok := sentiment[day.Date]
		if !ok {
			continue
		}
		joined = append(joined, domain.DailySummary{
			DailyStats:     day,
			Score:          match.Score,
			Classification: match.Classification,
			Regime:         match.Regime,
		})
	}

	sort.SliceStable(joined, func(i, j int) bool {
		return joined[i].Date < joined[j].Date
	})

	return joined
}
