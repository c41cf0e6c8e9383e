// Package dataprocessing implements the data preparation pipeline that turns
// the two raw input files (per-trade records and daily Fear & Greed scores)
// into one time-aligned, regime-labeled daily summary table.
//
// The pipeline runs four stages in order:
//
//  1. Sentiment normalization: raw sentiment rows become one SentimentDay per
//     distinct calendar date, with a regime label derived from the free-text
//     classification.
//  2. Trade normalization: venue-local timestamps are converted to UTC and
//     per-trade economics (net PnL, win/loss, taker) are derived.
//  3. Daily aggregation: normalized trades are grouped by UTC calendar date
//     into a fixed set of daily statistics.
//  4. Regime join: daily statistics are inner-joined with sentiment by date,
//     sorted ascending.
//
// Parsing is strict and all-or-nothing: the first malformed row aborts the
// whole load with an error naming the input, row and field. An empty join
// result is valid, not an error.
package dataprocessing
