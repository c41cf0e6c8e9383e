package domain

import "time"

// RawTrade is one executed trade as read from the venue's history file.
// Timestamps are local to the source region (venue export convention) and
// must never be interpreted as UTC directly.
type RawTrade struct {
	Account      string  `json:"account" csv:"Account" validate:"required"`
	TimestampIST string  `json:"timestamp_ist" csv:"Timestamp IST" validate:"required"`
	ClosedPnL    float64 `json:"closed_pnl" csv:"Closed PnL"`
	Fee          float64 `json:"fee" csv:"Fee"`
	SizeUSD      float64 `json:"size_usd" csv:"Size USD" validate:"gte=0"`
	Crossed      bool    `json:"crossed" csv:"Crossed"`
}

// NormalizedTrade is a RawTrade with its timestamp converted to UTC and the
// per-trade economics derived. Date is the UTC calendar date used as the
// daily aggregation bucket.
type NormalizedTrade struct {
	RawTrade

	TimestampUTC time.Time `json:"timestamp_utc"`
	Date         string    `json:"date"`
	NetPnL       float64   `json:"net_pnl"`
	IsWin        bool      `json:"is_win"`
	IsLoss       bool      `json:"is_loss"`
	IsTaker      bool      `json:"is_taker"`
}
