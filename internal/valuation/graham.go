// Package valuation estimates intrinsic value with the Graham growth
// formula and derives a margin of safety against the current price.
package valuation

import (
	"fmt"

	"github.com/stockeye/stockeye/internal/models"
)

// Growth assumptions are clamped hard: the classic formula explodes
// on optimistic growth, and negative growth below -20% says more
// about the data than the business.
const (
	maxGrowth             = 25.0
	minGrowth             = -20.0
	conservativeMaxGrowth = 15.0
	maxEarningsMultiple   = 15.0
)

// EstimateGrowth derives the growth assumption (in percent) from
// revenue and earnings growth, averaging whichever are present.
// Returns false when neither is reported.
func EstimateGrowth(info *models.CompanyInfo) (float64, bool) {
	if info == nil {
		return 0, false
	}
	var sum float64
	var n int
	if info.RevenueGrowth != nil {
		sum += *info.RevenueGrowth * 100
		n++
	}
	if info.EarningsGrowth != nil {
		sum += *info.EarningsGrowth * 100
		n++
	}
	if n == 0 {
		return 0, false
	}
	return clamp(sum/float64(n), minGrowth, maxGrowth), true
}

// IntrinsicValue applies the Graham growth formula EPS * (8.5 + 2g)
// with growth given in percent.
func IntrinsicValue(eps, growth float64) float64 {
	return eps * (8.5 + 2*clamp(growth, minGrowth, maxGrowth))
}

// ConservativeValue caps growth at 15% and the whole result at 15x
// earnings.
func ConservativeValue(eps, growth float64) float64 {
	v := IntrinsicValue(eps, clamp(growth, minGrowth, conservativeMaxGrowth))
	if ceiling := maxEarningsMultiple * eps; v > ceiling {
		return ceiling
	}
	return v
}

// Evaluate produces the full valuation for a symbol. It fails when
// the price is unknown, EPS is absent or non-positive, or no growth
// input exists; a margin of safety cannot be fabricated from missing
// fundamentals.
func Evaluate(symbol string, price float64, info *models.CompanyInfo) (*models.Valuation, error) {
	if price <= 0 {
		return nil, fmt.Errorf("no price for %s", symbol)
	}
	if info == nil || info.TrailingEPS == nil {
		return nil, fmt.Errorf("no EPS for %s", symbol)
	}
	eps := *info.TrailingEPS
	if eps <= 0 {
		return nil, fmt.Errorf("non-positive EPS for %s", symbol)
	}
	growth, ok := EstimateGrowth(info)
	if !ok {
		return nil, fmt.Errorf("no growth inputs for %s", symbol)
	}

	iv := IntrinsicValue(eps, growth)
	mos := iv - price
	mosPct := mos / iv * 100

	return &models.Valuation{
		Symbol:            symbol,
		Price:             price,
		EPS:               eps,
		GrowthEstimate:    growth,
		IntrinsicValue:    iv,
		ConservativeValue: ConservativeValue(eps, growth),
		MarginOfSafety:    mos,
		MarginPercent:     mosPct,
		Label:             Label(mosPct),
	}, nil
}

// Label maps a margin-of-safety percentage onto a value band.
func Label(marginPercent float64) string {
	switch {
	case marginPercent >= 50:
		return "STRONG VALUE"
	case marginPercent >= 40:
		return "EXCELLENT VALUE"
	case marginPercent >= 30:
		return "GOOD VALUE"
	case marginPercent >= 20:
		return "FAIR VALUE"
	case marginPercent >= 10:
		return "MARGINAL"
	case marginPercent >= 0:
		return "OVERVALUED"
	default:
		return "EXPENSIVE"
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
