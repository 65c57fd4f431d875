package models

import "time"

// Analysis is the full per-symbol result produced by the analyzer:
// indicator snapshot, categorical signals, crossover state, scores
// and rating. Err is set when the symbol could not be analyzed; the
// other fields are then zero.
type Analysis struct {
	Symbol     string        `json:"symbol"`
	Name       string        `json:"name,omitempty"`
	AsOf       time.Time     `json:"as_of"`
	Indicators IndicatorSet  `json:"indicators"`
	Signals    SignalSet     `json:"signals"`
	Cross      CrossEvent    `json:"cross"`
	Scoring    ScoringResult `json:"scoring"`
	Valuation  *Valuation    `json:"valuation,omitempty"`
	Err        string        `json:"error,omitempty"`
}

// Failed reports whether analysis of this symbol produced no result.
func (a *Analysis) Failed() bool {
	return a.Err != ""
}

// Valuation is the Graham-style intrinsic value estimate for a symbol.
type Valuation struct {
	Symbol            string  `json:"symbol"`
	Price             float64 `json:"price"`
	EPS               float64 `json:"eps"`
	GrowthEstimate    float64 `json:"growth_estimate"`
	IntrinsicValue    float64 `json:"intrinsic_value"`
	ConservativeValue float64 `json:"conservative_value"`
	MarginOfSafety    float64 `json:"margin_of_safety"`
	MarginPercent     float64 `json:"margin_percent"`
	Label             string  `json:"label"`
}
