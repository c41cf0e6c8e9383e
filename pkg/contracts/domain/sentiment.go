package domain

// Regime represents a categorical market-sentiment phase derived from the
// free-text Fear & Greed classification.
type Regime string

const (
	RegimeFear    Regime = "Fear"
	RegimeNeutral Regime = "Neutral"
	RegimeGreed   Regime = "Greed"
)

// AllRegimes lists every valid regime in display order.
func AllRegimes() []Regime {
	return []Regime{RegimeFear, RegimeNeutral, RegimeGreed}
}

// Valid reports whether the regime is one of the known phases.
func (r Regime) Valid() bool {
	switch r {
	case RegimeFear, RegimeNeutral, RegimeGreed:
		return true
	}
	return false
}

// RawSentimentRecord is one row of the Fear & Greed index file as read from
// disk. The source may contain duplicate dates; deduplication happens during
// normalization.
type RawSentimentRecord struct {
	Date           string  `json:"date" csv:"date" validate:"required"`
	Score          float64 `json:"value" csv:"value"`
	Classification string  `json:"classification" csv:"classification" validate:"required"`
}

// SentimentDay is the normalized sentiment entry for a single calendar date.
// Exactly one SentimentDay exists per distinct date after normalization.
type SentimentDay struct {
	Date           string  `json:"date"`
	Score          float64 `json:"score"`
	Classification string  `json:"classification"`
	Regime         Regime  `json:"regime"`
}
