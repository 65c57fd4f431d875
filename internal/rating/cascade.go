package rating

import (
	"math"

	"github.com/stockeye/stockeye/internal/models"
)

// inputs is everything the cascade can see for one symbol.
type inputs struct {
	fscore   int
	tech     techState
	combined float64
	ind      models.IndicatorSet
	sig      models.SignalSet
	cross    models.CrossEvent
}

// rule is one cascade step. Rules are evaluated top to bottom and the
// first match wins, so order is part of the contract: stronger and
// more specific conditions sit above weaker general ones.
type rule struct {
	name    string
	matches func(in inputs) bool
	rating  func(in inputs) models.Rating
}

func fixed(r models.Rating) func(inputs) models.Rating {
	return func(inputs) models.Rating { return r }
}

var cascade = []rule{
	{
		name: "fresh death cross with momentum against",
		matches: func(in inputs) bool {
			return in.cross.Death() && in.cross.DaysAgo <= 15
		},
		rating: func(in inputs) models.Rating {
			if in.sig.MACD == models.SignalBearish || in.sig.Volume == models.SignalHigh {
				return models.RatingStrongSell
			}
			return models.RatingSell
		},
	},
	{
		name: "overbought weak stock rolling over",
		matches: func(in inputs) bool {
			return in.tech.veryOverbought && in.sig.MACD == models.SignalBearish && in.fscore < 5
		},
		rating: fixed(models.RatingStrongSell),
	},
	{
		name: "recent death cross",
		matches: func(in inputs) bool {
			return in.cross.Death() && in.cross.DaysAgo <= 30
		},
		rating: func(in inputs) models.Rating {
			if in.combined >= 14 {
				return models.RatingReduce
			}
			return models.RatingSell
		},
	},
	{
		// Bullish momentum on adequate volume falls through to the
		// rules below.
		name: "deeply overbought",
		matches: func(in inputs) bool {
			return in.tech.veryOverbought &&
				(in.sig.MACD == models.SignalBearish ||
					in.sig.MACD == models.SignalNeutral ||
					in.sig.Volume == models.SignalLow)
		},
		rating: func(in inputs) models.Rating {
			if in.sig.MACD == models.SignalBearish {
				return models.RatingSell
			}
			return models.RatingReduce
		},
	},
	{
		name: "stale golden cross losing steam",
		matches: func(in inputs) bool {
			return in.cross.Golden() && in.cross.DaysAgo > 90 &&
				(in.sig.MACD == models.SignalBearish || (!math.IsNaN(in.ind.RSI) && in.ind.RSI > 70))
		},
		rating: fixed(models.RatingReduce),
	},
	{
		name: "good company, poor technicals",
		matches: func(in inputs) bool {
			return in.fscore >= 6 && in.tech.score <= 3
		},
		rating: fixed(models.RatingReduce),
	},
	{
		name: "fresh golden cross",
		matches: func(in inputs) bool {
			if !in.cross.Golden() || in.cross.DaysAgo > 10 {
				return false
			}
			return (in.fscore >= 6 && in.sig.MACD == models.SignalBullish && in.sig.Volume == models.SignalHigh) ||
				(in.fscore >= 5 && in.sig.MACD == models.SignalBullish)
		},
		rating: func(in inputs) models.Rating {
			if in.fscore >= 6 && in.sig.Volume == models.SignalHigh {
				return models.RatingStrongBuy
			}
			return models.RatingBuy
		},
	},
	{
		name: "oversold reversal",
		matches: func(in inputs) bool {
			if !in.tech.veryOversold || in.sig.MACD != models.SignalBullish {
				return false
			}
			return in.fscore >= 4
		},
		rating: func(in inputs) models.Rating {
			if in.fscore >= 6 && in.sig.Volume == models.SignalHigh {
				return models.RatingStrongBuy
			}
			return models.RatingBuy
		},
	},
	{
		name: "exceptional combined score",
		matches: func(in inputs) bool {
			return in.combined >= 18 && in.sig.MACD == models.SignalBullish &&
				(in.sig.Volume == models.SignalHigh || in.sig.Volume == models.SignalNormal)
		},
		rating: fixed(models.RatingStrongBuy),
	},
	{
		name: "recent golden cross",
		matches: func(in inputs) bool {
			if !in.cross.Golden() || in.cross.DaysAgo <= 10 || in.cross.DaysAgo > 30 {
				return false
			}
			return in.fscore >= 4
		},
		rating: func(in inputs) models.Rating {
			if in.fscore >= 5 && in.sig.MACD == models.SignalBullish {
				return models.RatingBuy
			}
			return models.RatingAdd
		},
	},
	{
		name: "strong combined score",
		matches: func(in inputs) bool {
			return in.combined >= 15 && in.sig.MACD != models.SignalBearish
		},
		rating: fixed(models.RatingBuy),
	},
	{
		name: "strong on both fronts",
		matches: func(in inputs) bool {
			return in.fscore >= 7 && in.tech.score >= 6
		},
		rating: fixed(models.RatingBuy),
	},
	{
		name: "quality dip above long trend",
		matches: func(in inputs) bool {
			return in.fscore >= 6 && in.tech.oversold &&
				!math.IsNaN(in.ind.Price) && !math.IsNaN(in.ind.DMA200) &&
				in.ind.Price > in.ind.DMA200
		},
		rating: fixed(models.RatingAdd),
	},
	{
		name: "maturing golden cross",
		matches: func(in inputs) bool {
			return in.cross.Golden() && in.cross.DaysAgo > 30 && in.cross.DaysAgo <= 60 &&
				in.fscore >= 5 && in.tech.score >= 5
		},
		rating: fixed(models.RatingAdd),
	},
	{
		name: "decent combined score",
		matches: func(in inputs) bool {
			return in.combined >= 13 && in.sig.MACD != models.SignalBearish && in.fscore >= 5
		},
		rating: fixed(models.RatingAdd),
	},
	{
		name: "middling combined score",
		matches: func(in inputs) bool {
			return in.combined >= 10 && in.combined < 13
		},
		rating: fixed(models.RatingHold),
	},
	{
		name: "acceptable on both fronts",
		matches: func(in inputs) bool {
			return in.fscore >= 4 && in.tech.score >= 4
		},
		rating: fixed(models.RatingHold),
	},
	{
		name: "golden cross floor",
		matches: func(in inputs) bool {
			return in.cross.Golden() && in.fscore >= 4
		},
		rating: fixed(models.RatingHold),
	},
	{
		name: "weak and rolling over",
		matches: func(in inputs) bool {
			return in.combined < 8 && in.sig.MACD == models.SignalBearish
		},
		rating: fixed(models.RatingSell),
	},
	{
		name: "weak on both fronts",
		matches: func(in inputs) bool {
			return in.fscore < 3 && in.tech.score < 4
		},
		rating: fixed(models.RatingSell),
	},
	{
		name: "very weak combined score",
		matches: func(in inputs) bool {
			return in.combined < 6
		},
		rating: fixed(models.RatingStrongSell),
	},
}

// classify runs the cascade and returns the first matching rule's
// rating plus the rule name. Anything that matched nothing falls
// through to SELL.
func classify(in inputs) (models.Rating, string) {
	for _, r := range cascade {
		if r.matches(in) {
			return r.rating(in), r.name
		}
	}
	return models.RatingSell, "no rule matched"
}
