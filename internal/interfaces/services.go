package interfaces

import (
	"context"

	"github.com/stockeye/stockeye/internal/models"
)

// MarketCache is the read-through cache in front of the market data
// client. Hits return defensive copies; misses fetch, store and
// return. Fetch failures are never cached.
type MarketCache interface {
	History(ctx context.Context, symbol string, period models.Period) (models.PriceSeries, error)
	Info(ctx context.Context, symbol string) (*models.CompanyInfo, error)
	BulkHistory(ctx context.Context, symbols []string, period models.Period) (map[string]models.PriceSeries, error)

	SweepExpired() int
	SaveToDisk() error
	LoadFromDisk() error
	Stats() models.CacheStats
}

// Fetcher assembles history plus metadata for a set of symbols
// concurrently, tolerating partial failure.
type Fetcher interface {
	Fetch(ctx context.Context, symbol string, period models.Period) (models.SymbolData, error)
	FetchMany(ctx context.Context, symbols []string, period models.Period) (map[string]models.SymbolData, error)
}

// Analyzer runs the full pipeline for individual symbols or the
// watchlist. AnalyzeAll uses the configured default period;
// AnalyzeAllWithPeriod overrides it for scans needing a longer
// lookback.
type Analyzer interface {
	Analyze(ctx context.Context, symbol string) (*models.Analysis, error)
	AnalyzeAll(ctx context.Context, symbols []string) ([]*models.Analysis, error)
	AnalyzeAllWithPeriod(ctx context.Context, symbols []string, period models.Period) ([]*models.Analysis, error)
	AnalyzeWatchlist(ctx context.Context) ([]*models.Analysis, error)
}

// Scanner screens a universe of symbols against preset filters.
type Scanner interface {
	StrongBuys(ctx context.Context, universe []string) ([]*models.Analysis, error)
	FundamentallyStrong(ctx context.Context, universe []string) ([]*models.Analysis, error)
	ValueOpportunities(ctx context.Context, universe []string) ([]*models.Analysis, error)
	GrahamValue(ctx context.Context, universe []string, minMargin float64) ([]*models.Analysis, error)
}

// WatchlistService manages the user's flat symbol list.
type WatchlistService interface {
	Add(ctx context.Context, symbols ...string) ([]string, error)
	Remove(ctx context.Context, symbols ...string) ([]string, error)
	List(ctx context.Context) ([]string, error)
	Clear(ctx context.Context) error
}

// UniverseProvider resolves an index name to its member symbols.
type UniverseProvider interface {
	Symbols(index string) ([]string, error)
	Indexes() []string
}

// ContextProvider samples the broad-market state used by the rating
// engine's contextual adjustments.
type ContextProvider interface {
	Current(ctx context.Context) models.MarketContext
}
