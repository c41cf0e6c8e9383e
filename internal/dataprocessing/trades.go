package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"sentipulse/internal/config"
	"sentipulse/internal/errors"
	"sentipulse/pkg/contracts/domain"
)

// TradeNormalizer converts venue-local trade timestamps to UTC calendar
// dates and derives per-trade economics. The source-region timezone is fixed
// per normalizer instance.
type TradeNormalizer struct {
	logger   *slog.Logger
	location *time.Location
	validate *validator.Validate
}

// NewTradeNormalizer creates a trade normalizer for the given IANA timezone
// identifier (the region the venue records timestamps in).
func NewTradeNormalizer(logger *slog.Logger, timezone string) (*TradeNormalizer, error) {
	if logger == nil {
		logger = slog.Default()
	}

	location, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, errors.NewConfigError(fmt.Sprintf("unknown source timezone %q", timezone), err)
	}

	return &TradeNormalizer{
		logger:   logger.With(slog.String("component", "trade_normalizer")),
		location: location,
		validate: validator.New(),
	}, nil
}

// Normalize derives the UTC instant, the UTC calendar date and the per-trade
// economics for a single raw trade. The timestamp is interpreted in the
// source-region location and then converted; interpreting it as UTC directly
// would bucket trades near midnight into the wrong day.
func (n *TradeNormalizer) Normalize(raw domain.RawTrade) (domain.NormalizedTrade, error) {
	ts, err := time.ParseInLocation(config.TradeTimestampFormat, raw.TimestampIST, n.location)
	if err != nil {
		return domain.NormalizedTrade{}, err
	}

	utc := ts.UTC()
	netPnL := raw.ClosedPnL - raw.Fee

	return domain.NormalizedTrade{
		RawTrade:     raw,
		TimestampUTC: utc,
		Date:         utc.Format(config.DateKeyFormat),
		NetPnL:       netPnL,
		IsWin:        netPnL > 0,
		IsLoss:       netPnL < 0,
		IsTaker:      raw.Crossed,
	}, nil
}

// FromTable normalizes a trade table, preserving input cardinality and
// order. The first malformed row aborts the whole load.
func (n *TradeNormalizer) FromTable(ctx context.Context, t *Table) ([]domain.NormalizedTrade, error) {
	if err := t.Require("Account", "Timestamp IST", "Closed PnL", "Fee", "Size USD", "Crossed"); err != nil {
		return nil, err
	}

	trades := make([]domain.NormalizedTrade, 0, len(t.Rows))

	for i := range t.Rows {
		raw := domain.RawTrade{
			Account:      t.Get(i, "Account"),
			TimestampIST: t.Get(i, "Timestamp IST"),
		}

		var err error
		if raw.ClosedPnL, err = strconv.ParseFloat(t.Get(i, "Closed PnL"), 64); err != nil {
			return nil, errors.NewRowParsingError(t.Source, t.RowNumber(i), "Closed PnL", err)
		}
		if raw.Fee, err = strconv.ParseFloat(t.Get(i, "Fee"), 64); err != nil {
			return nil, errors.NewRowParsingError(t.Source, t.RowNumber(i), "Fee", err)
		}
		if raw.SizeUSD, err = strconv.ParseFloat(t.Get(i, "Size USD"), 64); err != nil {
			return nil, errors.NewRowParsingError(t.Source, t.RowNumber(i), "Size USD", err)
		}
		if raw.Crossed, err = strconv.ParseBool(t.Get(i, "Crossed")); err != nil {
			return nil, errors.NewRowParsingError(t.Source, t.RowNumber(i), "Crossed", err)
		}

		if err := n.validate.Struct(raw); err != nil {
			return nil, errors.NewRowParsingError(t.Source, t.RowNumber(i), validatedField(err), err)
		}

		normalized, err := n.Normalize(raw)
		if err != nil {
			return nil, errors.NewRowParsingError(t.Source, t.RowNumber(i), "Timestamp IST", err)
		}
		trades = append(trades, normalized)
	}

	n.logger.InfoContext(ctx, "trade normalization complete",
		slog.String("source", t.Source),
		slog.String("source_timezone", n.location.String()),
		slog.Int("trades", len(trades)))

	return trades, nil
}
