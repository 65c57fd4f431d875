// Package rating scores fundamentals and technicals and classifies
// the result into an ordinal recommendation through an ordered rule
// cascade, with toggleable broad-market adjustments on top.
package rating

import "github.com/stockeye/stockeye/internal/models"

// FundamentalScore rates company metadata on a 0..12 scale. Every
// check is gated on its field being present; an absent field simply
// contributes nothing, so thin metadata yields a low score rather
// than an error. Ratios are fractional (0.15 means 15%).
func FundamentalScore(info *models.CompanyInfo) (int, []string) {
	if info == nil {
		return 0, nil
	}

	score := 0
	var notes []string
	award := func(points int, note string) {
		score += points
		notes = append(notes, note)
	}

	if v := info.ReturnOnEquity; v != nil && *v > 0.15 {
		award(2, "strong ROE")
	}
	if v := info.DebtToEquity; v != nil && *v < 1 {
		award(2, "low debt")
	}
	if v := info.RevenueGrowth; v != nil && *v > 0.10 {
		award(2, "growing revenue")
	}
	if v := info.ProfitMargin; v != nil && *v > 0.10 {
		award(2, "healthy margins")
	}
	if v := info.InsiderHolding; v != nil && *v >= 0.40 && *v <= 0.70 {
		award(1, "aligned insider holding")
	}
	if v := info.PriceToBook; v != nil && *v < 3 {
		award(1, "reasonable price-to-book")
	}
	if v := info.DividendYield; v != nil && *v > 0.01 {
		award(1, "pays dividend")
	}
	if v := info.OperatingMargin; v != nil && *v > 0.15 {
		award(1, "strong operating margin")
	}

	return score, notes
}
