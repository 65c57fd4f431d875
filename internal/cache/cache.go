// Package cache implements the read-through market data cache: three
// TTL'd tables (company metadata, per-symbol history, batch history)
// in front of the upstream client, with JSON disk persistence.
package cache

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/stockeye/stockeye/internal/common"
	"github.com/stockeye/stockeye/internal/interfaces"
	"github.com/stockeye/stockeye/internal/models"
)

// Cache is the shared market data cache. Fetch failures are returned
// to the caller and never stored, so one bad response cannot poison
// later lookups. The upstream call is made outside any table lock.
type Cache struct {
	client interfaces.MarketDataClient
	logger *common.Logger
	dir    string

	metadata *table[*models.CompanyInfo]
	history  *table[models.PriceSeries]
	batch    *table[map[string]models.PriceSeries]

	// now is swappable so tests can control expiry.
	now func() time.Time
}

// Option configures the cache
type Option func(*Cache)

// WithMetadataTTL overrides the metadata table TTL
func WithMetadataTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		c.metadata.ttl = ttl
	}
}

// WithHistoryTTL overrides the history and batch table TTLs
func WithHistoryTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		c.history.ttl = ttl
		c.batch.ttl = ttl
	}
}

// WithClock overrides the cache clock
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

// New creates a cache backed by the given client, persisting under dir.
func New(client interfaces.MarketDataClient, logger *common.Logger, dir string, opts ...Option) *Cache {
	c := &Cache{
		client:   client,
		logger:   logger,
		dir:      dir,
		metadata: newTable[*models.CompanyInfo](common.FreshnessMetadata),
		history:  newTable[models.PriceSeries](common.FreshnessHistory),
		batch:    newTable[map[string]models.PriceSeries](common.FreshnessHistory),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func historyKey(symbol string, period models.Period) string {
	return strings.ToUpper(symbol) + "|" + string(period)
}

// batchKey is order-insensitive: the same symbol set in any order
// maps to the same entry.
func batchKey(symbols []string, period models.Period) string {
	sorted := make([]string, len(symbols))
	for i, s := range symbols {
		sorted[i] = strings.ToUpper(s)
	}
	sort.Strings(sorted)
	return strings.Join(sorted, ",") + "|" + string(period)
}

// History returns cached bars for a symbol, fetching on miss.
func (c *Cache) History(ctx context.Context, symbol string, period models.Period) (models.PriceSeries, error) {
	key := historyKey(symbol, period)
	if series, ok := c.history.get(key, c.now()); ok {
		return series.Clone(), nil
	}

	series, err := c.client.History(ctx, symbol, period)
	if err != nil {
		return nil, fmt.Errorf("history fetch for %s: %w", symbol, err)
	}

	c.history.put(key, series, c.now())
	return series.Clone(), nil
}

// Info returns cached company metadata for a symbol, fetching on miss.
func (c *Cache) Info(ctx context.Context, symbol string) (*models.CompanyInfo, error) {
	key := strings.ToUpper(symbol)
	if info, ok := c.metadata.get(key, c.now()); ok {
		return info.Clone(), nil
	}

	info, err := c.client.Info(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("info fetch for %s: %w", symbol, err)
	}

	c.metadata.put(key, info, c.now())
	return info.Clone(), nil
}

// BulkHistory returns cached history for a symbol set, fetching the
// whole set on miss. The entry is keyed by the sorted set, so the
// same universe in a different order still hits.
func (c *Cache) BulkHistory(ctx context.Context, symbols []string, period models.Period) (map[string]models.PriceSeries, error) {
	key := batchKey(symbols, period)
	if batch, ok := c.batch.get(key, c.now()); ok {
		return cloneBatch(batch), nil
	}

	batch, err := c.client.BulkHistory(ctx, symbols, period)
	if err != nil {
		return nil, fmt.Errorf("bulk history fetch: %w", err)
	}

	c.batch.put(key, batch, c.now())
	return cloneBatch(batch), nil
}

func cloneBatch(batch map[string]models.PriceSeries) map[string]models.PriceSeries {
	out := make(map[string]models.PriceSeries, len(batch))
	for symbol, series := range batch {
		out[symbol] = series.Clone()
	}
	return out
}

// SweepExpired drops every expired entry across all tables and
// returns the number removed.
func (c *Cache) SweepExpired() int {
	now := c.now()
	removed := c.metadata.sweep(now) + c.history.sweep(now) + c.batch.sweep(now)
	if removed > 0 {
		c.logger.Debug().Int("removed", removed).Msg("cache sweep")
	}
	return removed
}

// Stats reports current entry counts per table.
func (c *Cache) Stats() models.CacheStats {
	return models.CacheStats{
		MetadataEntries: c.metadata.size(),
		HistoryEntries:  c.history.size(),
		BatchEntries:    c.batch.size(),
	}
}

// Ensure Cache implements MarketCache
var _ interfaces.MarketCache = (*Cache)(nil)
