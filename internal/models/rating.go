package models

import "time"

// Rating is the ordinal recommendation emitted by the rating engine.
type Rating string

// Ratings from most negative to most positive.
const (
	RatingStrongSell Rating = "STRONG SELL"
	RatingSell       Rating = "SELL"
	RatingReduce     Rating = "REDUCE"
	RatingHold       Rating = "HOLD"
	RatingAdd        Rating = "ADD"
	RatingBuy        Rating = "BUY"
	RatingStrongBuy  Rating = "STRONG BUY"
)

// Score maps the rating onto 1..7 for sorting, STRONG BUY highest.
func (r Rating) Score() int {
	switch r {
	case RatingStrongBuy:
		return 7
	case RatingBuy:
		return 6
	case RatingAdd:
		return 5
	case RatingHold:
		return 4
	case RatingReduce:
		return 3
	case RatingSell:
		return 2
	case RatingStrongSell:
		return 1
	default:
		return 0
	}
}

// ScoringResult carries the three scores, the classified rating and
// the human-readable notes accumulated while scoring.
type ScoringResult struct {
	FundamentalScore int      `json:"fundamental_score"`
	TechnicalScore   int      `json:"technical_score"`
	CombinedScore    float64  `json:"combined_score"`
	Rating           Rating   `json:"rating"`
	Notes            []string `json:"notes,omitempty"`
}

// Regime is the broad-market trend classification derived from the
// benchmark index.
type Regime string

// Market regimes.
const (
	RegimeUnknown  Regime = "UNKNOWN"
	RegimeBull     Regime = "BULL"
	RegimeBear     Regime = "BEAR"
	RegimeSideways Regime = "SIDEWAYS"
)

// MarketContext is the broad-market state sampled once per run and
// shared across every symbol's contextual rating adjustment. A nil
// VIX means the volatility index could not be fetched.
type MarketContext struct {
	VIX    *float64   `json:"vix,omitempty"`
	Regime Regime     `json:"regime"`
	Month  time.Month `json:"month"`
}
