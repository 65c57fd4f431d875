// Package analyzer orchestrates the per-symbol pipeline: fetch,
// extract signals, score, rate.
package analyzer

import (
	"context"
	"fmt"
	"sort"

	"github.com/stockeye/stockeye/internal/common"
	"github.com/stockeye/stockeye/internal/interfaces"
	"github.com/stockeye/stockeye/internal/models"
	"github.com/stockeye/stockeye/internal/rating"
	"github.com/stockeye/stockeye/internal/signals"
	"github.com/stockeye/stockeye/internal/valuation"
)

// Service runs analyses over the shared cache and fetch pool.
type Service struct {
	fetcher   interfaces.Fetcher
	cache     interfaces.MarketCache
	watchlist interfaces.WatchlistService
	market    interfaces.ContextProvider
	extractor *signals.Extractor
	engine    *rating.Engine
	period    models.Period
	logger    *common.Logger
}

// NewService creates an analyzer.
func NewService(
	fetcher interfaces.Fetcher,
	cache interfaces.MarketCache,
	watchlist interfaces.WatchlistService,
	market interfaces.ContextProvider,
	extractor *signals.Extractor,
	engine *rating.Engine,
	period models.Period,
	logger *common.Logger,
) *Service {
	return &Service{
		fetcher:   fetcher,
		cache:     cache,
		watchlist: watchlist,
		market:    market,
		extractor: extractor,
		engine:    engine,
		period:    period,
		logger:    logger,
	}
}

// Analyze runs the full pipeline for one symbol.
func (s *Service) Analyze(ctx context.Context, symbol string) (*models.Analysis, error) {
	data, err := s.fetcher.Fetch(ctx, symbol, s.period)
	if err != nil {
		return nil, fmt.Errorf("analyze %s: %w", symbol, err)
	}

	mctx := s.market.Current(ctx)
	return s.analyzeData(symbol, data, mctx), nil
}

// AnalyzeAll analyzes a symbol set over the configured default period.
func (s *Service) AnalyzeAll(ctx context.Context, symbols []string) ([]*models.Analysis, error) {
	return s.AnalyzeAllWithPeriod(ctx, symbols, s.period)
}

// AnalyzeAllWithPeriod analyzes a symbol set with one batch fetch and
// one market context sample. Symbols with no data at all come back as
// error rows rather than disappearing; results are sorted by symbol.
func (s *Service) AnalyzeAllWithPeriod(ctx context.Context, symbols []string, period models.Period) ([]*models.Analysis, error) {
	if len(symbols) == 0 {
		return nil, nil
	}

	s.cache.SweepExpired()
	mctx := s.market.Current(ctx)

	dataset, err := s.fetcher.FetchMany(ctx, symbols, period)
	if err != nil {
		return nil, fmt.Errorf("batch fetch: %w", err)
	}

	results := make([]*models.Analysis, 0, len(symbols))
	for _, symbol := range symbols {
		data, ok := dataset[symbol]
		if !ok {
			results = append(results, &models.Analysis{
				Symbol: symbol,
				Err:    "no data available",
			})
			continue
		}
		results = append(results, s.analyzeData(symbol, data, mctx))
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Symbol < results[j].Symbol
	})
	return results, nil
}

// AnalyzeWatchlist analyzes every watchlist symbol.
func (s *Service) AnalyzeWatchlist(ctx context.Context) ([]*models.Analysis, error) {
	symbols, err := s.watchlist.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load watchlist: %w", err)
	}
	if len(symbols) == 0 {
		return nil, nil
	}
	return s.AnalyzeAll(ctx, symbols)
}

// analyzeData turns one symbol's fetched data into an Analysis.
func (s *Service) analyzeData(symbol string, data models.SymbolData, mctx models.MarketContext) *models.Analysis {
	if len(data.History) == 0 {
		return &models.Analysis{
			Symbol: symbol,
			Err:    "no price history",
		}
	}

	ind, sig := s.extractor.Extract(data.History)
	cross := s.extractor.Cross(data.History)
	scoring := s.engine.Score(data.Info, ind, sig, cross, mctx)

	result := &models.Analysis{
		Symbol:     symbol,
		Indicators: ind,
		Signals:    sig,
		Cross:      cross,
		Scoring:    scoring,
	}
	if latest, ok := data.History.Latest(); ok {
		result.AsOf = latest.Date
	}
	if data.Info != nil {
		result.Name = data.Info.Name
	}

	// Valuation rides along when the fundamentals support it.
	if v, err := valuation.Evaluate(symbol, ind.Price, data.Info); err == nil {
		result.Valuation = v
	}

	return result
}

// Ensure Service implements Analyzer
var _ interfaces.Analyzer = (*Service)(nil)
