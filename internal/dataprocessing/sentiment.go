package dataprocessing

import (
	"context"
	stderrors "errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"sentipulse/internal/config"
	"sentipulse/internal/errors"
	"sentipulse/pkg/contracts/domain"
)

// RegimeRule maps a classification substring to a regime. Rules are checked
// in order; the first match wins.
type RegimeRule struct {
	Keyword string
	Regime  domain.Regime
}

// RegimeRules builds the ordered rule set for the given keywords. Fear is
// checked before greed, so a label containing both classifies as Fear.
func RegimeRules(fearKeyword, greedKeyword string) []RegimeRule {
	return []RegimeRule{
		{Keyword: strings.ToLower(fearKeyword), Regime: domain.RegimeFear},
		{Keyword: strings.ToLower(greedKeyword), Regime: domain.RegimeGreed},
	}
}

// SentimentNormalizer turns raw Fear & Greed rows into one SentimentDay per
// distinct calendar date.
type SentimentNormalizer struct {
	logger   *slog.Logger
	rules    []RegimeRule
	validate *validator.Validate
}

// NewSentimentNormalizer creates a sentiment normalizer with the given
// ordered regime rules.
func NewSentimentNormalizer(logger *slog.Logger, rules []RegimeRule) *SentimentNormalizer {
	if logger == nil {
		logger = slog.Default()
	}
	if len(rules) == 0 {
		rules = RegimeRules(config.DefaultFearKeyword, config.DefaultGreedKeyword)
	}

	return &SentimentNormalizer{
		logger:   logger.With(slog.String("component", "sentiment_normalizer")),
		rules:    rules,
		validate: validator.New(),
	}
}

// Classify derives the regime from the free-text classification by
// case-insensitive substring containment over the ordered rules. Labels
// matching no rule are Neutral.
func (n *SentimentNormalizer) Classify(classification string) domain.Regime {
	label := strings.ToLower(classification)
	for _, rule := range n.rules {
		if strings.Contains(label, rule.Keyword) {
			return rule.Regime
		}
	}
	return domain.RegimeNeutral
}

// FromTable normalizes a sentiment table into a date-keyed map. Duplicate
// dates keep the first-seen row; later occurrences are dropped. Any
// malformed row aborts the whole load.
func (n *SentimentNormalizer) FromTable(ctx context.Context, t *Table) (map[string]domain.SentimentDay, error) {
	if err := t.Require("date", "value", "classification"); err != nil {
		return nil, err
	}

	days := make(map[string]domain.SentimentDay, len(t.Rows))
	duplicates := 0

	for i := range t.Rows {
		raw := domain.RawSentimentRecord{
			Date:           t.Get(i, "date"),
			Classification: t.Get(i, "classification"),
		}

		score, err := strconv.ParseFloat(t.Get(i, "value"), 64)
		if err != nil {
			return nil, errors.NewRowParsingError(t.Source, t.RowNumber(i), "value", err)
		}
		raw.Score = score

		if err := n.validate.Struct(raw); err != nil {
			return nil, errors.NewRowParsingError(t.Source, t.RowNumber(i), validatedField(err), err)
		}

		parsed, err := time.Parse(config.DateKeyFormat, raw.Date)
		if err != nil {
			return nil, errors.NewRowParsingError(t.Source, t.RowNumber(i), "date", err)
		}
		key := parsed.Format(config.DateKeyFormat)

		if _, seen := days[key]; seen {
			duplicates++
			continue
		}

		days[key] = domain.SentimentDay{
			Date:           key,
			Score:          raw.Score,
			Classification: raw.Classification,
			Regime:         n.Classify(raw.Classification),
		}
	}

	n.logger.InfoContext(ctx, "sentiment normalization complete",
		slog.String("source", t.Source),
		slog.Int("rows", len(t.Rows)),
		slog.Int("distinct_days", len(days)),
		slog.Int("duplicate_dates_dropped", duplicates))

	return days, nil
}

// validatedField extracts the failing struct field from a validator error,
// lowered to match the input column naming.
func validatedField(err error) string {
	var fieldErrs validator.ValidationErrors
	if stderrors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return strings.ToLower(fieldErrs[0].Field())
	}
	return "record"
}
