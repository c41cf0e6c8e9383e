package config

import "time"

// Application constants shared across commands.
const (
	AppName    = "Senti Pulse"
	AppVersion = "1.0.0"

	// DateKeyFormat is the calendar-date representation used as the join and
	// sort key throughout the pipeline.
	DateKeyFormat = "2006-01-02"

	// TradeTimestampFormat matches the venue export's "Timestamp IST" column
	// (day-month-year hour:minute, source-region local time).
	TradeTimestampFormat = "02-01-2006 15:04"

	// DefaultSourceTimezone is the IANA identifier of the region the trade
	// timestamps are recorded in. The reference venue exports IST.
	DefaultSourceTimezone = "Asia/Kolkata"

	// Regime keyword defaults. Fear is checked before greed so a label
	// containing both classifies as Fear.
	DefaultFearKeyword  = "fear"
	DefaultGreedKeyword = "greed"

	// Default input/output locations (relative to the working directory).
	DefaultSentimentFile = "data/fear_greed_index.csv"
	DefaultTradesFile    = "data/historical_data.csv"
	DefaultReportsDir    = "data/reports"

	// Network timeouts.
	DefaultHTTPTimeout = 30 * time.Second

	// Rate limiting.
	DefaultRateLimit = 100 // requests per second
	DefaultBurstSize = 50
)
