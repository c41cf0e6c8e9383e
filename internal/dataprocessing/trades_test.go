package dataprocessing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "sentipulse/internal/errors"
	"sentipulse/pkg/contracts/domain"
)

func newTestTradeNormalizer(t *testing.T) *TradeNormalizer {
	t.Helper()
	n, err := NewTradeNormalizer(nil, "Asia/Kolkata")
	require.NoError(t, err)
	return n
}

func TestNewTradeNormalizer_UnknownTimezone(t *testing.T) {
	_, err := NewTradeNormalizer(nil, "Mars/Olympus_Mons")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeConfig))
}

func TestTradeNormalizer_Normalize(t *testing.T) {
	n := newTestTradeNormalizer(t)

	trade, err := n.Normalize(domain.RawTrade{
		Account:      "0xabc",
		TimestampIST: "01-05-2023 12:00",
		ClosedPnL:    10.5,
		Fee:          0.5,
		SizeUSD:      100,
		Crossed:      true,
	})
	require.NoError(t, err)

	// 12:00 IST is 06:30 UTC on the same calendar day.
	assert.Equal(t, time.Date(2023, 5, 1, 6, 30, 0, 0, time.UTC), trade.TimestampUTC)
	assert.Equal(t, "2023-05-01", trade.Date)
	assert.Equal(t, 10.0, trade.NetPnL)
	assert.True(t, trade.IsWin)
	assert.False(t, trade.IsLoss)
	assert.True(t, trade.IsTaker)
}

func TestTradeNormalizer_EarlyMorningCrossesDateBoundary(t *testing.T) {
	n := newTestTradeNormalizer(t)

	// 02:00 IST on Jan 1 is 20:30 UTC on Dec 31. Bucketing by the raw
	// timestamp's date would put this trade on the wrong day.
	trade, err := n.Normalize(domain.RawTrade{
		Account:      "0xabc",
		TimestampIST: "01-01-2023 02:00",
		ClosedPnL:    1,
		SizeUSD:      50,
	})
	require.NoError(t, err)

	assert.Equal(t, "2022-12-31", trade.Date)
	assert.Equal(t, time.Date(2022, 12, 31, 20, 30, 0, 0, time.UTC), trade.TimestampUTC)
}

func TestTradeNormalizer_ZeroNetPnLIsNeitherWinNorLoss(t *testing.T) {
	n := newTestTradeNormalizer(t)

	trade, err := n.Normalize(domain.RawTrade{
		Account:      "0xabc",
		TimestampIST: "01-05-2023 12:00",
		ClosedPnL:    0.5,
		Fee:          0.5,
		SizeUSD:      10,
	})
	require.NoError(t, err)

	assert.Equal(t, 0.0, trade.NetPnL)
	assert.False(t, trade.IsWin)
	assert.False(t, trade.IsLoss)
}

func TestTradeNormalizer_FromTable(t *testing.T) {
	n := newTestTradeNormalizer(t)
	table := newTable("trades.csv", [][]string{
		{"Account", "Timestamp IST", "Closed PnL", "Fee", "Size USD", "Crossed"},
		{"0xabc", "01-05-2023 12:00", "10.5", "0.5", "100", "True"},
		{"0xdef", "01-05-2023 15:30", "-3", "1", "200", "False"},
	})

	trades, err := n.FromTable(context.Background(), table)
	require.NoError(t, err)
	require.Len(t, trades, 2)

	// Input order is preserved.
	assert.Equal(t, "0xabc", trades[0].Account)
	assert.Equal(t, 10.0, trades[0].NetPnL)
	assert.True(t, trades[0].IsTaker)

	assert.Equal(t, "0xdef", trades[1].Account)
	assert.Equal(t, -4.0, trades[1].NetPnL)
	assert.True(t, trades[1].IsLoss)
	assert.False(t, trades[1].IsTaker)
}

func TestTradeNormalizer_FromTableErrors(t *testing.T) {
	n := newTestTradeNormalizer(t)
	header := []string{"Account", "Timestamp IST", "Closed PnL", "Fee", "Size USD", "Crossed"}

	tests := []struct {
		name      string
		row       []string
		wantField string
	}{
		{"bad timestamp", []string{"0xabc", "2023-05-01T12:00:00Z", "1", "0", "10", "True"}, "Timestamp IST"},
		{"bad pnl", []string{"0xabc", "01-05-2023 12:00", "ten", "0", "10", "True"}, "Closed PnL"},
		{"bad fee", []string{"0xabc", "01-05-2023 12:00", "1", "x", "10", "True"}, "Fee"},
		{"bad size", []string{"0xabc", "01-05-2023 12:00", "1", "0", "", "True"}, "Size USD"},
		{"bad crossed", []string{"0xabc", "01-05-2023 12:00", "1", "0", "10", "maybe"}, "Crossed"},
		{"missing account", []string{"", "01-05-2023 12:00", "1", "0", "10", "True"}, "account"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := newTable("trades.csv", [][]string{header, tt.row})

			_, err := n.FromTable(context.Background(), table)
			require.Error(t, err)
			assert.True(t, apperrors.IsType(err, apperrors.ErrTypeParsing))
			assert.Contains(t, err.Error(), tt.wantField)
			assert.Contains(t, err.Error(), "row 2")
		})
	}
}

func TestTradeNormalizer_FromTableMissingColumn(t *testing.T) {
	n := newTestTradeNormalizer(t)
	table := newTable("trades.csv", [][]string{
		{"Account", "Timestamp IST", "Closed PnL", "Fee", "Size USD"},
		{"0xabc", "01-05-2023 12:00", "1", "0", "10"},
	})

	_, err := n.FromTable(context.Background(), table)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Crossed")
}
