package signals

import (
	"math"

	"github.com/stockeye/stockeye/internal/models"
)

// DetectCross finds the most recent moving-average crossover between
// the short and long SMAs of a series.
//
// The windowed pass walks the region where both averages are defined,
// tracking the sign of short minus long; a sign increase is a golden
// cross, a decrease a death cross, and when both occurred the
// chronologically later one wins. A strict flip across the final two
// bars then overrides the age to zero: the flip IS the most recent
// event, and the override guards against equal-sign plateaus hiding
// it. The override never contradicts a windowed cross of the other
// type that happened later, because no bar is later than the last.
func DetectCross(series models.PriceSeries, short, long int) models.CrossEvent {
	closes := series.Closes()
	smaShort := SMASeries(closes, short)
	smaLong := SMASeries(closes, long)

	// Indexes where both averages are defined.
	var defined []int
	for i := range series {
		if !math.IsNaN(smaShort[i]) && !math.IsNaN(smaLong[i]) {
			defined = append(defined, i)
		}
	}
	if len(defined) < 2 {
		return models.CrossEvent{}
	}

	sign := func(i int) int {
		switch {
		case smaShort[i] > smaLong[i]:
			return 1
		case smaShort[i] < smaLong[i]:
			return -1
		default:
			return 0
		}
	}

	lastGolden, lastDeath := -1, -1
	for k := 1; k < len(defined); k++ {
		prev, curr := defined[k-1], defined[k]
		diff := sign(curr) - sign(prev)
		if diff > 0 {
			lastGolden = curr
		} else if diff < 0 {
			lastDeath = curr
		}
	}

	event := models.CrossEvent{}
	crossAt := func(idx int, t models.CrossType) models.CrossEvent {
		latest := series[len(series)-1].Date
		days := int(latest.Sub(series[idx].Date).Hours() / 24)
		return models.CrossEvent{Type: t, DaysAgo: days, Price: series[idx].Close}
	}
	switch {
	case lastGolden >= 0 && lastGolden >= lastDeath:
		event = crossAt(lastGolden, models.CrossGolden)
	case lastDeath >= 0:
		event = crossAt(lastDeath, models.CrossDeath)
	}

	// Immediate override on a strict flip across the last two bars.
	p, c := defined[len(defined)-2], defined[len(defined)-1]
	if sign(p) < 0 && sign(c) > 0 {
		if event.Type == models.CrossNone || event.Type == models.CrossGolden {
			event = models.CrossEvent{Type: models.CrossGolden, DaysAgo: 0, Price: series[c].Close}
		}
	} else if sign(p) > 0 && sign(c) < 0 {
		if event.Type == models.CrossNone || event.Type == models.CrossDeath {
			event = models.CrossEvent{Type: models.CrossDeath, DaysAgo: 0, Price: series[c].Close}
		}
	}

	return event
}
