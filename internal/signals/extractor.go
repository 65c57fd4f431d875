package signals

import (
	"math"

	"github.com/stockeye/stockeye/internal/common"
	"github.com/stockeye/stockeye/internal/models"
)

// Extractor computes the full indicator snapshot for a series using
// configured windows and thresholds.
type Extractor struct {
	cfg common.IndicatorConfig
}

// NewExtractor creates an extractor from indicator configuration.
func NewExtractor(cfg common.IndicatorConfig) *Extractor {
	return &Extractor{cfg: cfg}
}

// Extract computes every indicator at the most recent bar and its
// categorical classification. Indicators the history cannot support
// come back NaN and classify as unknown.
func (e *Extractor) Extract(series models.PriceSeries) (models.IndicatorSet, models.SignalSet) {
	closes := series.Closes()
	volumes := series.Volumes()

	ind := models.IndicatorSet{
		Price:       math.NaN(),
		DMA50:       last(SMASeries(closes, e.cfg.ShortDMA)),
		DMA200:      last(SMASeries(closes, e.cfg.LongDMA)),
		RSI:         last(RSISeries(closes, e.cfg.RSIPeriod)),
		VolumeRatio: last(VolumeRatioSeries(volumes, e.cfg.VolumePeriod)),
	}
	if latest, ok := series.Latest(); ok {
		ind.Price = latest.Close
	}

	macd, signalLine, hist := MACDSeries(closes, e.cfg.MACDFast, e.cfg.MACDSlow, e.cfg.MACDSignal)
	ind.MACD = last(macd)
	ind.MACDSignal = last(signalLine)
	ind.MACDHist = last(hist)

	upper, middle, lower, position := BollingerSeries(closes, e.cfg.BollingerPeriod, e.cfg.BollingerStdDev)
	ind.BBUpper = last(upper)
	ind.BBMiddle = last(middle)
	ind.BBLower = last(lower)
	ind.BBPosition = last(position)

	st, _ := SupertrendSeries(series, e.cfg.SupertrendPeriod, e.cfg.SupertrendFactor)
	ind.Supertrend = last(st)

	ind.ADX = last(ADXSeries(series, e.cfg.ADXPeriod))

	sig := models.SignalSet{
		RSI:        ClassifyRSI(ind.RSI, e.cfg.RSIOversold, e.cfg.RSIOverbought),
		MACD:       ClassifyMACD(ind.MACD, ind.MACDSignal, ind.MACDHist),
		Volume:     ClassifyVolume(ind.VolumeRatio, e.cfg.VolumeHighRatio, e.cfg.VolumeLowRatio),
		Bollinger:  ClassifyBollinger(ind.BBPosition),
		Supertrend: ClassifySupertrend(ind.Price, ind.Supertrend),
		ADX:        ClassifyADX(ind.ADX),
	}

	return ind, sig
}

// Cross runs crossover detection with the configured DMA windows.
func (e *Extractor) Cross(series models.PriceSeries) models.CrossEvent {
	return DetectCross(series, e.cfg.ShortDMA, e.cfg.LongDMA)
}
