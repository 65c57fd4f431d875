package models

// Signal is a categorical indicator reading. Unknown is reserved for
// insufficient history and is never fabricated from a default value.
type Signal string

// Signal values across all indicator classifiers.
const (
	SignalUnknown Signal = "UNKNOWN"

	// RSI and Bollinger band position
	SignalOversold   Signal = "OVERSOLD"
	SignalOverbought Signal = "OVERBOUGHT"
	SignalNeutral    Signal = "NEUTRAL"

	// MACD and supertrend direction
	SignalBullish Signal = "BULLISH"
	SignalBearish Signal = "BEARISH"

	// Volume ratio
	SignalHigh   Signal = "HIGH"
	SignalNormal Signal = "NORMAL"
	SignalLow    Signal = "LOW"

	// ADX trend strength
	SignalStrong   Signal = "STRONG"
	SignalModerate Signal = "MODERATE"
	SignalWeak     Signal = "WEAK"
)

// IndicatorSet is the numeric snapshot of every indicator at the most
// recent bar. NaN marks values the available history cannot support.
type IndicatorSet struct {
	Price       float64 `json:"price"`
	DMA50       float64 `json:"dma_50"`
	DMA200      float64 `json:"dma_200"`
	RSI         float64 `json:"rsi"`
	MACD        float64 `json:"macd"`
	MACDSignal  float64 `json:"macd_signal"`
	MACDHist    float64 `json:"macd_hist"`
	VolumeRatio float64 `json:"volume_ratio"`
	BBUpper     float64 `json:"bb_upper"`
	BBMiddle    float64 `json:"bb_middle"`
	BBLower     float64 `json:"bb_lower"`
	BBPosition  float64 `json:"bb_position"`
	Supertrend  float64 `json:"supertrend"`
	ADX         float64 `json:"adx"`
}

// SignalSet is the categorical view of an IndicatorSet.
type SignalSet struct {
	RSI        Signal `json:"rsi"`
	MACD       Signal `json:"macd"`
	Volume     Signal `json:"volume"`
	Bollinger  Signal `json:"bollinger"`
	Supertrend Signal `json:"supertrend"`
	ADX        Signal `json:"adx"`
}

// CrossType identifies a moving-average crossover direction.
type CrossType string

// Crossover outcomes.
const (
	CrossNone   CrossType = ""
	CrossGolden CrossType = "GOLDEN"
	CrossDeath  CrossType = "DEATH"
)

// CrossEvent records the most recent moving-average crossover found in
// a series. DaysAgo and Price are meaningful only when Type is not
// CrossNone; DaysAgo counts calendar days from the cross bar to the
// latest bar, so a cross completed on the latest bar has DaysAgo 0.
type CrossEvent struct {
	Type    CrossType `json:"type"`
	DaysAgo int       `json:"days_ago"`
	Price   float64   `json:"price"`
}

// Golden reports whether the event is a golden cross.
func (e CrossEvent) Golden() bool { return e.Type == CrossGolden }

// Death reports whether the event is a death cross.
func (e CrossEvent) Death() bool { return e.Type == CrossDeath }
