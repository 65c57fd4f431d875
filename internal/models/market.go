// Package models defines the data structures shared across stockeye.
package models

import (
	"sort"
	"time"
)

// PriceBar is a single daily OHLCV observation.
type PriceBar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// PriceSeries is a run of daily bars ordered by ascending date.
type PriceSeries []PriceBar

// Normalize sorts the series ascending by date and drops duplicate
// calendar days, keeping the last bar seen for each day.
func (s PriceSeries) Normalize() PriceSeries {
	if len(s) == 0 {
		return s
	}
	out := make(PriceSeries, len(s))
	copy(out, s)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	dedup := out[:1]
	for _, bar := range out[1:] {
		last := &dedup[len(dedup)-1]
		if sameDay(last.Date, bar.Date) {
			*last = bar
			continue
		}
		dedup = append(dedup, bar)
	}
	return dedup
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Clone returns a defensive copy of the series.
func (s PriceSeries) Clone() PriceSeries {
	if s == nil {
		return nil
	}
	out := make(PriceSeries, len(s))
	copy(out, s)
	return out
}

// Closes returns the close column in series order.
func (s PriceSeries) Closes() []float64 {
	out := make([]float64, len(s))
	for i, bar := range s {
		out[i] = bar.Close
	}
	return out
}

// Volumes returns the volume column in series order.
func (s PriceSeries) Volumes() []float64 {
	out := make([]float64, len(s))
	for i, bar := range s {
		out[i] = float64(bar.Volume)
	}
	return out
}

// Latest returns the most recent bar, or false when the series is empty.
func (s PriceSeries) Latest() (PriceBar, bool) {
	if len(s) == 0 {
		return PriceBar{}, false
	}
	return s[len(s)-1], true
}

// Period identifies a history lookback window as accepted by the
// upstream provider ("1mo", "3mo", "6mo", "1y", "2y", "5y", "max").
type Period string

// Common lookback periods.
const (
	Period1M  Period = "1mo"
	Period3M  Period = "3mo"
	Period6M  Period = "6mo"
	Period1Y  Period = "1y"
	Period2Y  Period = "2y"
	Period5Y  Period = "5y"
	PeriodMax Period = "max"
)
