// Package marketctx samples the broad-market state (volatility index
// and benchmark regime) shared by every rating in a run.
package marketctx

import (
	"context"
	"math"
	"time"

	"github.com/stockeye/stockeye/internal/common"
	"github.com/stockeye/stockeye/internal/interfaces"
	"github.com/stockeye/stockeye/internal/models"
	"github.com/stockeye/stockeye/internal/signals"
)

// Service fetches context through the shared cache so repeated scans
// within the TTL reuse one benchmark download. Failures degrade to
// "no context": nil VIX and an unknown regime, which apply no
// adjustment downstream.
type Service struct {
	cache      interfaces.MarketCache
	cfg        common.RatingConfig
	indicators common.IndicatorConfig
	logger     *common.Logger
}

// NewService creates a market context provider.
func NewService(cache interfaces.MarketCache, cfg common.RatingConfig, indicators common.IndicatorConfig, logger *common.Logger) *Service {
	return &Service{cache: cache, cfg: cfg, indicators: indicators, logger: logger}
}

// Current samples the volatility index and benchmark regime.
func (s *Service) Current(ctx context.Context) models.MarketContext {
	mctx := models.MarketContext{
		Regime: models.RegimeUnknown,
		Month:  time.Now().Month(),
	}

	if s.cfg.UseVIX && s.cfg.VIXSymbol != "" {
		series, err := s.cache.History(ctx, s.cfg.VIXSymbol, models.Period1M)
		if err != nil {
			s.logger.Warn().Err(err).Str("symbol", s.cfg.VIXSymbol).Msg("volatility index unavailable")
		} else if latest, ok := series.Latest(); ok {
			vix := latest.Close
			mctx.VIX = &vix
		}
	}

	if s.cfg.UseRegime && s.cfg.BenchmarkSymbol != "" {
		mctx.Regime = s.detectRegime(ctx)
	}

	return mctx
}

// detectRegime classifies the benchmark trend from its position
// against the short and long moving averages.
func (s *Service) detectRegime(ctx context.Context) models.Regime {
	series, err := s.cache.History(ctx, s.cfg.BenchmarkSymbol, models.Period1Y)
	if err != nil {
		s.logger.Warn().Err(err).Str("symbol", s.cfg.BenchmarkSymbol).Msg("benchmark unavailable")
		return models.RegimeUnknown
	}

	closes := series.Closes()
	short := signals.SMASeries(closes, s.indicators.ShortDMA)
	long := signals.SMASeries(closes, s.indicators.LongDMA)
	if len(closes) == 0 {
		return models.RegimeUnknown
	}

	price := closes[len(closes)-1]
	s50 := short[len(short)-1]
	s200 := long[len(long)-1]
	if math.IsNaN(s50) || math.IsNaN(s200) {
		return models.RegimeUnknown
	}

	switch {
	case price > s50 && s50 > s200:
		return models.RegimeBull
	case price < s50 && price < s200:
		return models.RegimeBear
	default:
		return models.RegimeSideways
	}
}

// Ensure Service implements ContextProvider
var _ interfaces.ContextProvider = (*Service)(nil)
