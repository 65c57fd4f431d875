// Package signals computes technical indicator series and their
// categorical classifications over daily price history.
//
// Every series function takes ascending-date input and returns a
// slice aligned with it, padded with NaN where the available history
// cannot support the indicator's window. NaN is the only "I don't
// know" value; no indicator ever substitutes a neutral default.
package signals

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/stockeye/stockeye/internal/models"
)

// SMASeries returns the simple moving average. The first period-1
// positions are NaN.
func SMASeries(values []float64, period int) []float64 {
	out := nanSlice(len(values))
	if period <= 0 || len(values) < period {
		return out
	}
	for i := period - 1; i < len(values); i++ {
		out[i] = stat.Mean(values[i-period+1:i+1], nil)
	}
	return out
}

// EMASeries returns the exponential moving average, seeded with the
// SMA of the first period values.
func EMASeries(values []float64, period int) []float64 {
	out := nanSlice(len(values))
	if period <= 0 || len(values) < period {
		return out
	}
	alpha := 2.0 / float64(period+1)
	out[period-1] = stat.Mean(values[:period], nil)
	for i := period; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}
	return out
}

// RSISeries returns the Wilder-smoothed relative strength index.
// The first period positions are NaN; period+1 closes are the minimum
// input that produces any value.
func RSISeries(values []float64, period int) []float64 {
	out := nanSlice(len(values))
	if period <= 0 || len(values) < period+1 {
		return out
	}

	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		delta := values[i] - values[i-1]
		if delta > 0 {
			avgGain += delta
		} else {
			avgLoss -= delta
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)
	out[period] = rsiValue(avgGain, avgLoss)

	for i := period + 1; i < len(values); i++ {
		delta := values[i] - values[i-1]
		gain, loss := 0.0, 0.0
		if delta > 0 {
			gain = delta
		} else {
			loss = -delta
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		out[i] = rsiValue(avgGain, avgLoss)
	}
	return out
}

func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}

// MACDSeries returns the MACD line, its signal line and the
// histogram. The signal line needs slow+signal-1 closes before its
// first value appears.
func MACDSeries(values []float64, fast, slow, signal int) (macd, signalLine, hist []float64) {
	n := len(values)
	macd = nanSlice(n)
	signalLine = nanSlice(n)
	hist = nanSlice(n)

	emaFast := EMASeries(values, fast)
	emaSlow := EMASeries(values, slow)
	for i := range values {
		if !math.IsNaN(emaFast[i]) && !math.IsNaN(emaSlow[i]) {
			macd[i] = emaFast[i] - emaSlow[i]
		}
	}

	// EMA of the MACD line over its defined region only.
	start := slow - 1
	if start < 0 || n-start < signal {
		return macd, signalLine, hist
	}
	alpha := 2.0 / float64(signal+1)
	seedEnd := start + signal
	signalLine[seedEnd-1] = stat.Mean(macd[start:seedEnd], nil)
	for i := seedEnd; i < n; i++ {
		signalLine[i] = alpha*macd[i] + (1-alpha)*signalLine[i-1]
	}
	for i := range values {
		if !math.IsNaN(macd[i]) && !math.IsNaN(signalLine[i]) {
			hist[i] = macd[i] - signalLine[i]
		}
	}
	return macd, signalLine, hist
}

// VolumeRatioSeries returns each bar's volume relative to the rolling
// mean volume over the window including the bar itself.
func VolumeRatioSeries(volumes []float64, period int) []float64 {
	out := nanSlice(len(volumes))
	if period <= 0 || len(volumes) < period {
		return out
	}
	for i := period - 1; i < len(volumes); i++ {
		mean := stat.Mean(volumes[i-period+1:i+1], nil)
		if mean > 0 {
			out[i] = volumes[i] / mean
		}
	}
	return out
}

// BollingerSeries returns the upper, middle and lower bands plus the
// band position: where the close sits between the bands on a 0..100
// scale. Position is NaN when the bands collapse to zero width.
func BollingerSeries(values []float64, period int, stdDevs float64) (upper, middle, lower, position []float64) {
	n := len(values)
	upper = nanSlice(n)
	middle = nanSlice(n)
	lower = nanSlice(n)
	position = nanSlice(n)
	if period <= 1 || n < period {
		return
	}
	for i := period - 1; i < n; i++ {
		window := values[i-period+1 : i+1]
		mean, std := stat.MeanStdDev(window, nil)
		middle[i] = mean
		upper[i] = mean + stdDevs*std
		lower[i] = mean - stdDevs*std
		if width := upper[i] - lower[i]; width > 0 {
			position[i] = (values[i] - lower[i]) / width * 100
		}
	}
	return
}

// ATRSeries returns the Wilder-smoothed average true range.
func ATRSeries(bars models.PriceSeries, period int) []float64 {
	n := len(bars)
	out := nanSlice(n)
	if period <= 0 || n < period {
		return out
	}

	tr := make([]float64, n)
	tr[0] = bars[0].High - bars[0].Low
	for i := 1; i < n; i++ {
		hl := bars[i].High - bars[i].Low
		hc := math.Abs(bars[i].High - bars[i-1].Close)
		lc := math.Abs(bars[i].Low - bars[i-1].Close)
		tr[i] = math.Max(hl, math.Max(hc, lc))
	}

	out[period-1] = stat.Mean(tr[:period], nil)
	for i := period; i < n; i++ {
		out[i] = (out[i-1]*float64(period-1) + tr[i]) / float64(period)
	}
	return out
}

// SupertrendSeries returns the supertrend stop line and its direction
// (+1 uptrend, -1 downtrend) per bar. Both are NaN until the ATR is
// defined.
func SupertrendSeries(bars models.PriceSeries, period int, factor float64) (line, direction []float64) {
	n := len(bars)
	line = nanSlice(n)
	direction = nanSlice(n)
	atr := ATRSeries(bars, period)
	if n == 0 || period <= 0 || n < period {
		return
	}

	finalUpper := nanSlice(n)
	finalLower := nanSlice(n)
	for i := period - 1; i < n; i++ {
		mid := (bars[i].High + bars[i].Low) / 2
		basicUpper := mid + factor*atr[i]
		basicLower := mid - factor*atr[i]

		if i == period-1 || math.IsNaN(finalUpper[i-1]) {
			finalUpper[i] = basicUpper
			finalLower[i] = basicLower
			direction[i] = 1
			line[i] = finalLower[i]
			continue
		}

		// Bands only tighten while price stays on the same side.
		if basicUpper < finalUpper[i-1] || bars[i-1].Close > finalUpper[i-1] {
			finalUpper[i] = basicUpper
		} else {
			finalUpper[i] = finalUpper[i-1]
		}
		if basicLower > finalLower[i-1] || bars[i-1].Close < finalLower[i-1] {
			finalLower[i] = basicLower
		} else {
			finalLower[i] = finalLower[i-1]
		}

		prevDir := direction[i-1]
		if prevDir > 0 && bars[i].Close < finalLower[i] {
			direction[i] = -1
		} else if prevDir < 0 && bars[i].Close > finalUpper[i] {
			direction[i] = 1
		} else {
			direction[i] = prevDir
		}

		if direction[i] > 0 {
			line[i] = finalLower[i]
		} else {
			line[i] = finalUpper[i]
		}
	}
	return
}

// ADXSeries returns the average directional index. Roughly 2*period
// bars are needed before the first value appears.
func ADXSeries(bars models.PriceSeries, period int) []float64 {
	n := len(bars)
	out := nanSlice(n)
	if period <= 0 || n < 2*period {
		return out
	}

	plusDM := make([]float64, n)
	minusDM := make([]float64, n)
	tr := make([]float64, n)
	for i := 1; i < n; i++ {
		up := bars[i].High - bars[i-1].High
		down := bars[i-1].Low - bars[i].Low
		if up > down && up > 0 {
			plusDM[i] = up
		}
		if down > up && down > 0 {
			minusDM[i] = down
		}
		hl := bars[i].High - bars[i].Low
		hc := math.Abs(bars[i].High - bars[i-1].Close)
		lc := math.Abs(bars[i].Low - bars[i-1].Close)
		tr[i] = math.Max(hl, math.Max(hc, lc))
	}

	// Wilder-smoothed sums seeded over the first period of diffs.
	var smTR, smPlus, smMinus float64
	for i := 1; i <= period; i++ {
		smTR += tr[i]
		smPlus += plusDM[i]
		smMinus += minusDM[i]
	}

	dx := nanSlice(n)
	dx[period] = dxValue(smPlus, smMinus, smTR)
	for i := period + 1; i < n; i++ {
		smTR = smTR - smTR/float64(period) + tr[i]
		smPlus = smPlus - smPlus/float64(period) + plusDM[i]
		smMinus = smMinus - smMinus/float64(period) + minusDM[i]
		dx[i] = dxValue(smPlus, smMinus, smTR)
	}

	// ADX is the Wilder mean of DX.
	var seed float64
	for i := period; i < 2*period; i++ {
		seed += dx[i]
	}
	out[2*period-1] = seed / float64(period)
	for i := 2 * period; i < n; i++ {
		out[i] = (out[i-1]*float64(period-1) + dx[i]) / float64(period)
	}
	return out
}

func dxValue(smPlus, smMinus, smTR float64) float64 {
	if smTR == 0 {
		return 0
	}
	plusDI := 100 * smPlus / smTR
	minusDI := 100 * smMinus / smTR
	if sum := plusDI + minusDI; sum > 0 {
		return 100 * math.Abs(plusDI-minusDI) / sum
	}
	return 0
}

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

func last(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	return values[len(values)-1]
}
