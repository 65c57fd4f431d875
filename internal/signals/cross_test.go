package signals

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stockeye/stockeye/internal/models"
)

func TestDetectCrossGolden(t *testing.T) {
	// Short average dips below the long one, then a rally flips it.
	series := generateBars([]float64{10, 10, 10, 10, 9, 8, 7, 20, 30})

	event := DetectCross(series, 2, 4)
	assert.Equal(t, models.CrossGolden, event.Type)
	assert.Equal(t, 1, event.DaysAgo)
	assert.InDelta(t, 20.0, event.Price, 0.01)
}

func TestDetectCrossDeath(t *testing.T) {
	series := generateBars([]float64{10, 10, 10, 10, 11, 12, 13, 2, 1})

	event := DetectCross(series, 2, 4)
	assert.Equal(t, models.CrossDeath, event.Type)
	assert.Equal(t, 1, event.DaysAgo)
	assert.InDelta(t, 2.0, event.Price, 0.01)
}

func TestDetectCrossImmediateFlip(t *testing.T) {
	// The flip lands exactly on the final bar: age zero.
	series := generateBars([]float64{10, 10, 10, 10, 9, 8, 7, 30})

	event := DetectCross(series, 2, 4)
	assert.Equal(t, models.CrossGolden, event.Type)
	assert.Equal(t, 0, event.DaysAgo)
	assert.InDelta(t, 30.0, event.Price, 0.01)
}

func TestDetectCrossLaterEventWins(t *testing.T) {
	// A death cross followed by a golden cross: the golden one is
	// the answer.
	series := generateBars([]float64{10, 10, 10, 10, 12, 14, 16, 5, 4, 3, 2, 18, 25, 30})

	event := DetectCross(series, 2, 4)
	assert.Equal(t, models.CrossGolden, event.Type)
}

func TestDetectCrossNoneInSteadyTrend(t *testing.T) {
	// A monotonic rise keeps the short average on top throughout.
	series := generateTrendBars(50, 1.0, 30)

	event := DetectCross(series, 2, 4)
	assert.Equal(t, models.CrossNone, event.Type)
}

func TestDetectCrossInsufficientHistory(t *testing.T) {
	tests := []struct {
		name   string
		series models.PriceSeries
	}{
		{"empty", nil},
		{"one bar", generateBars([]float64{10})},
		{"below long window", generateBars([]float64{10, 11, 12})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := DetectCross(tt.series, 2, 4)
			assert.Equal(t, models.CrossNone, event.Type)
		})
	}
}

func TestDetectCrossDeterministic(t *testing.T) {
	series := generateBars([]float64{10, 10, 10, 10, 9, 8, 7, 20, 30})

	first := DetectCross(series, 2, 4)
	second := DetectCross(series, 2, 4)
	assert.Equal(t, first, second)
}

func TestDetectCrossStableAsTrendContinues(t *testing.T) {
	// Appending bars that keep the short average on top must not
	// change the cross type, only age it.
	closes := []float64{10, 10, 10, 10, 9, 8, 7, 20, 30}
	series := generateBars(closes)
	before := DetectCross(series, 2, 4)

	extended := generateBars(append(closes, 35, 40, 45))
	after := DetectCross(extended, 2, 4)

	assert.Equal(t, before.Type, after.Type)
	assert.Greater(t, after.DaysAgo, before.DaysAgo)
}
