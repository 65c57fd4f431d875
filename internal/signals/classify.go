package signals

import (
	"math"

	"github.com/stockeye/stockeye/internal/models"
)

// ClassifyRSI maps an RSI value onto oversold/overbought/neutral.
func ClassifyRSI(rsi, oversold, overbought float64) models.Signal {
	switch {
	case math.IsNaN(rsi):
		return models.SignalUnknown
	case rsi < oversold:
		return models.SignalOversold
	case rsi > overbought:
		return models.SignalOverbought
	default:
		return models.SignalNeutral
	}
}

// ClassifyMACD is bullish only when the MACD line is above its signal
// with a positive histogram, bearish only in the mirrored case.
func ClassifyMACD(macd, signal, hist float64) models.Signal {
	switch {
	case math.IsNaN(macd) || math.IsNaN(signal) || math.IsNaN(hist):
		return models.SignalUnknown
	case macd > signal && hist > 0:
		return models.SignalBullish
	case macd < signal && hist < 0:
		return models.SignalBearish
	default:
		return models.SignalNeutral
	}
}

// ClassifyVolume maps the volume ratio onto high/normal/low.
func ClassifyVolume(ratio, high, low float64) models.Signal {
	switch {
	case math.IsNaN(ratio):
		return models.SignalUnknown
	case ratio > high:
		return models.SignalHigh
	case ratio < low:
		return models.SignalLow
	default:
		return models.SignalNormal
	}
}

// ClassifyBollinger maps the 0..100 band position onto
// oversold/overbought/neutral.
func ClassifyBollinger(position float64) models.Signal {
	switch {
	case math.IsNaN(position):
		return models.SignalUnknown
	case position < 20:
		return models.SignalOversold
	case position > 80:
		return models.SignalOverbought
	default:
		return models.SignalNeutral
	}
}

// ClassifySupertrend is bullish while the close holds above the stop
// line.
func ClassifySupertrend(close, line float64) models.Signal {
	switch {
	case math.IsNaN(close) || math.IsNaN(line):
		return models.SignalUnknown
	case close > line:
		return models.SignalBullish
	default:
		return models.SignalBearish
	}
}

// ClassifyADX maps trend strength onto strong/moderate/weak.
func ClassifyADX(adx float64) models.Signal {
	switch {
	case math.IsNaN(adx):
		return models.SignalUnknown
	case adx > 25:
		return models.SignalStrong
	case adx < 20:
		return models.SignalWeak
	default:
		return models.SignalModerate
	}
}
