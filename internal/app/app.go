// Package app wires the stockeye services together and owns their
// lifecycle.
package app

import (
	"time"

	"github.com/stockeye/stockeye/internal/cache"
	"github.com/stockeye/stockeye/internal/clients/yahoo"
	"github.com/stockeye/stockeye/internal/common"
	"github.com/stockeye/stockeye/internal/fetch"
	"github.com/stockeye/stockeye/internal/interfaces"
	"github.com/stockeye/stockeye/internal/models"
	"github.com/stockeye/stockeye/internal/rating"
	"github.com/stockeye/stockeye/internal/services/analyzer"
	"github.com/stockeye/stockeye/internal/services/marketctx"
	"github.com/stockeye/stockeye/internal/services/scanner"
	"github.com/stockeye/stockeye/internal/services/watchlist"
	"github.com/stockeye/stockeye/internal/signals"
	"github.com/stockeye/stockeye/internal/universe"
)

// App holds all initialized clients and services. It is the shared
// core behind every CLI command.
type App struct {
	Config      *common.Config
	Logger      *common.Logger
	Client      interfaces.MarketDataClient
	Cache       interfaces.MarketCache
	Fetcher     interfaces.Fetcher
	Watchlist   interfaces.WatchlistService
	Universe    interfaces.UniverseProvider
	Market      interfaces.ContextProvider
	Analyzer    interfaces.Analyzer
	Scanner     interfaces.Scanner
	StartupTime time.Time

	scheduler *scheduler
}

// NewApp initializes clients, the cache (warm from disk) and all
// services from configuration.
func NewApp(cfg *common.Config) (*App, error) {
	logger := common.NewLogger(cfg.Logging.Level)

	client := yahoo.NewClient(
		yahoo.WithBaseURL(cfg.Provider.BaseURL),
		yahoo.WithRateLimit(cfg.Provider.RateLimit),
		yahoo.WithTimeout(cfg.Provider.GetTimeout()),
		yahoo.WithUserAgent(cfg.Provider.UserAgent),
		yahoo.WithLogger(logger),
	)

	marketCache := cache.New(client, logger, cfg.Cache.Dir,
		cache.WithMetadataTTL(cfg.Cache.GetMetadataTTL()),
		cache.WithHistoryTTL(cfg.Cache.GetHistoryTTL()),
	)
	if err := marketCache.LoadFromDisk(); err != nil {
		logger.Warn().Err(err).Msg("cache load failed, starting cold")
	}
	marketCache.SweepExpired()

	fetcher := fetch.New(marketCache, logger)
	watchlistSvc := watchlist.NewService(cfg.Paths.Watchlist, logger)
	universeSvc := universe.NewProvider(cfg.Paths.Universe, logger)
	marketSvc := marketctx.NewService(marketCache, cfg.Rating, cfg.Indicators, logger)

	extractor := signals.NewExtractor(cfg.Indicators)
	engine := rating.NewEngine(cfg.Rating)

	analyzerSvc := analyzer.NewService(
		fetcher,
		marketCache,
		watchlistSvc,
		marketSvc,
		extractor,
		engine,
		models.Period(cfg.Indicators.Period),
		logger,
	)
	scannerSvc := scanner.NewService(analyzerSvc, logger)

	a := &App{
		Config:      cfg,
		Logger:      logger,
		Client:      client,
		Cache:       marketCache,
		Fetcher:     fetcher,
		Watchlist:   watchlistSvc,
		Universe:    universeSvc,
		Market:      marketSvc,
		Analyzer:    analyzerSvc,
		Scanner:     scannerSvc,
		StartupTime: time.Now(),
	}
	a.scheduler = newScheduler(a)

	return a, nil
}

// Close stops background work and persists the cache.
func (a *App) Close() error {
	a.scheduler.stop()

	if err := a.Cache.SaveToDisk(); err != nil {
		a.Logger.Error().Err(err).Msg("cache persist failed")
		return err
	}
	return nil
}
