// Package fetch assembles history and metadata for symbol sets: one
// bulk history task plus one metadata task per symbol, run on a
// bounded pool, tolerant of per-symbol failure.
package fetch

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/stockeye/stockeye/internal/common"
	"github.com/stockeye/stockeye/internal/interfaces"
	"github.com/stockeye/stockeye/internal/models"
)

// Orchestrator runs batch fetches through the shared cache.
type Orchestrator struct {
	cache  interfaces.MarketCache
	logger *common.Logger
}

// New creates a batch fetch orchestrator.
func New(cache interfaces.MarketCache, logger *common.Logger) *Orchestrator {
	return &Orchestrator{cache: cache, logger: logger}
}

// poolSize bounds worker concurrency at min(4*NumCPU, tasks).
func poolSize(symbols int) int {
	limit := runtime.NumCPU() * 4
	if tasks := symbols + 1; tasks < limit {
		return tasks
	}
	return limit
}

// FetchMany fetches history for the whole set in one bulk task and
// metadata per symbol concurrently. A symbol with neither history nor
// metadata is dropped from the result; everything else survives with
// whatever halves succeeded. The returned error is non-nil only when
// the context was cancelled.
func (o *Orchestrator) FetchMany(ctx context.Context, symbols []string, period models.Period) (map[string]models.SymbolData, error) {
	if len(symbols) == 0 {
		return map[string]models.SymbolData{}, nil
	}

	var (
		mu        sync.Mutex
		histories map[string]models.PriceSeries
		infos     = make(map[string]*models.CompanyInfo, len(symbols))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(poolSize(len(symbols)))

	g.Go(func() error {
		batch, err := o.cache.BulkHistory(gctx, symbols, period)
		if err != nil {
			o.logger.Warn().Err(err).Int("symbols", len(symbols)).Msg("bulk history failed")
			return nil
		}
		mu.Lock()
		histories = batch
		mu.Unlock()
		return nil
	})

	for _, symbol := range symbols {
		symbol := symbol
		g.Go(func() error {
			info, err := o.cache.Info(gctx, symbol)
			if err != nil {
				o.logger.Warn().Err(err).Str("symbol", symbol).Msg("metadata fetch failed")
				return nil
			}
			mu.Lock()
			infos[symbol] = info
			mu.Unlock()
			return nil
		})
	}

	// Workers swallow their own errors, so Wait only fails when the
	// context is done.
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make(map[string]models.SymbolData, len(symbols))
	for _, symbol := range symbols {
		data := models.SymbolData{
			History: histories[symbol],
			Info:    infos[symbol],
		}
		if len(data.History) == 0 && data.Info.IsEmpty() {
			o.logger.Debug().Str("symbol", symbol).Msg("dropping symbol with no data")
			continue
		}
		out[symbol] = data
	}
	return out, nil
}

// Fetch retrieves one symbol's history and metadata. Unlike FetchMany
// it fails when the history is unavailable, since a single-symbol
// analysis cannot proceed without bars.
func (o *Orchestrator) Fetch(ctx context.Context, symbol string, period models.Period) (models.SymbolData, error) {
	history, err := o.cache.History(ctx, symbol, period)
	if err != nil {
		return models.SymbolData{}, err
	}

	info, err := o.cache.Info(ctx, symbol)
	if err != nil {
		o.logger.Warn().Err(err).Str("symbol", symbol).Msg("metadata fetch failed")
		info = nil
	}

	return models.SymbolData{History: history, Info: info}, nil
}

// Ensure Orchestrator implements Fetcher
var _ interfaces.Fetcher = (*Orchestrator)(nil)
