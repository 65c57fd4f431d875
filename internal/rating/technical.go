package rating

import (
	"math"

	"github.com/stockeye/stockeye/internal/models"
)

// techState carries the technical score plus the RSI zone flags the
// cascade rules key on. The zones below the oversold and above the
// overbought thresholds get their own flags because the cascade
// treats the extremes differently from the shoulders.
type techState struct {
	score          int
	oversold       bool // RSI in the 30..40 shoulder
	veryOversold   bool // RSI under 30
	veryOverbought bool // RSI over 70
}

// TechnicalScore rates the indicator snapshot. Unknown signals score
// nothing; a short history produces a low score, never a fabricated
// one.
func TechnicalScore(ind models.IndicatorSet, sig models.SignalSet) (int, []string) {
	st := scoreTechnicals(ind, sig)
	var notes []string
	if st.veryOversold {
		notes = append(notes, "deeply oversold")
	}
	if st.veryOverbought {
		notes = append(notes, "deeply overbought")
	}
	return st.score, notes
}

func scoreTechnicals(ind models.IndicatorSet, sig models.SignalSet) techState {
	st := techState{}

	// Price versus the moving averages.
	price, d50, d200 := ind.Price, ind.DMA50, ind.DMA200
	switch {
	case !math.IsNaN(price) && !math.IsNaN(d50) && !math.IsNaN(d200) && price > d50 && d50 > d200:
		st.score += 3
	case !math.IsNaN(price) && !math.IsNaN(d50) && price > d50:
		st.score += 2
	case !math.IsNaN(price) && !math.IsNaN(d200) && price > d200:
		st.score += 1
	}

	// RSI zones.
	if rsi := ind.RSI; !math.IsNaN(rsi) {
		switch {
		case rsi >= 40 && rsi <= 60:
			st.score += 2
		case rsi >= 30 && rsi < 40:
			st.score++
			st.oversold = true
		case rsi > 60 && rsi <= 70:
			st.score++
		case rsi < 30:
			st.veryOversold = true
		default:
			st.veryOverbought = true
		}
	}

	switch sig.MACD {
	case models.SignalBullish:
		st.score += 2
	case models.SignalNeutral:
		st.score++
	}

	switch sig.Volume {
	case models.SignalHigh:
		st.score += 3
	case models.SignalNormal:
		st.score += 2
	case models.SignalLow:
		st.score++
	}

	switch sig.Bollinger {
	case models.SignalOversold:
		st.score += 2
	case models.SignalNeutral:
		st.score++
	}

	if sig.Supertrend == models.SignalBullish {
		st.score += 2
	}
	if sig.ADX == models.SignalStrong {
		st.score++
	}

	return st
}
