package rating

import (
	"fmt"

	"github.com/stockeye/stockeye/internal/common"
	"github.com/stockeye/stockeye/internal/models"
)

// applyContext nudges a classified rating by at most one step per
// factor based on broad-market state. Factors are applied in a fixed
// order (volatility, calendar, regime) so the result is deterministic.
// Each factor is independently toggleable and a missing input (nil
// VIX, unknown regime) applies nothing.
func applyContext(cfg common.RatingConfig, rating models.Rating, fscore int, mctx models.MarketContext) (models.Rating, []string) {
	var notes []string

	if cfg.UseVIX && mctx.VIX != nil {
		switch vix := *mctx.VIX; {
		case vix >= cfg.VIXHighThreshold:
			switch rating {
			case models.RatingStrongBuy:
				rating = models.RatingBuy
				notes = append(notes, fmt.Sprintf("high volatility (VIX %.1f)", vix))
			case models.RatingBuy:
				rating = models.RatingAdd
				notes = append(notes, fmt.Sprintf("high volatility (VIX %.1f)", vix))
			}
		case vix <= cfg.VIXLowThreshold && fscore >= 8:
			if rating == models.RatingAdd || rating == models.RatingHold {
				rating = models.RatingBuy
				notes = append(notes, fmt.Sprintf("calm market (VIX %.1f)", vix))
			}
		}
	}

	if cfg.UseCalendar && fscore < 8 {
		for _, month := range cfg.WeakMonths {
			if mctx.Month != month {
				continue
			}
			switch rating {
			case models.RatingStrongBuy:
				rating = models.RatingBuy
			case models.RatingBuy:
				rating = models.RatingAdd
			default:
				continue
			}
			notes = append(notes, fmt.Sprintf("seasonally weak month (%s)", month))
			break
		}
	}

	if cfg.UseRegime {
		switch mctx.Regime {
		case models.RegimeBear:
			switch rating {
			case models.RatingStrongBuy:
				rating = models.RatingBuy
				notes = append(notes, "bear market")
			case models.RatingBuy:
				rating = models.RatingAdd
				notes = append(notes, "bear market")
			}
		case models.RegimeBull:
			switch rating {
			case models.RatingAdd:
				rating = models.RatingBuy
				notes = append(notes, "bull market")
			case models.RatingHold:
				rating = models.RatingAdd
				notes = append(notes, "bull market")
			}
		}
	}

	return rating, notes
}
