package fetch

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockeye/stockeye/internal/common"
	"github.com/stockeye/stockeye/internal/models"
)

// fakeCache satisfies the cache contract with canned per-symbol
// behavior.
type fakeCache struct {
	mu          sync.Mutex
	failBulk    bool
	failInfoFor map[string]bool
	noBarsFor   map[string]bool
	infoCalls   int
}

func (f *fakeCache) History(ctx context.Context, symbol string, period models.Period) (models.PriceSeries, error) {
	if f.noBarsFor[symbol] {
		return nil, errors.New("no data")
	}
	return series(), nil
}

func (f *fakeCache) Info(ctx context.Context, symbol string) (*models.CompanyInfo, error) {
	f.mu.Lock()
	f.infoCalls++
	f.mu.Unlock()
	if f.failInfoFor[symbol] {
		return nil, errors.New("no metadata")
	}
	return &models.CompanyInfo{Symbol: symbol, Name: symbol + " Corp"}, nil
}

func (f *fakeCache) BulkHistory(ctx context.Context, symbols []string, period models.Period) (map[string]models.PriceSeries, error) {
	if f.failBulk {
		return nil, errors.New("bulk failed")
	}
	out := make(map[string]models.PriceSeries)
	for _, s := range symbols {
		if f.noBarsFor[s] {
			continue
		}
		out[s] = series()
	}
	return out, nil
}

func (f *fakeCache) SweepExpired() int        { return 0 }
func (f *fakeCache) SaveToDisk() error        { return nil }
func (f *fakeCache) LoadFromDisk() error      { return nil }
func (f *fakeCache) Stats() models.CacheStats { return models.CacheStats{} }

func series() models.PriceSeries {
	return models.PriceSeries{{
		Date:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Close:  100,
		Volume: 1000,
	}}
}

func TestFetchManyAllHealthy(t *testing.T) {
	o := New(&fakeCache{}, common.NewSilentLogger())

	out, err := o.FetchMany(context.Background(), []string{"AAPL", "MSFT", "GOOG"}, models.Period1Y)
	require.NoError(t, err)
	require.Len(t, out, 3)
	for _, symbol := range []string{"AAPL", "MSFT", "GOOG"} {
		assert.NotEmpty(t, out[symbol].History)
		assert.NotNil(t, out[symbol].Info)
	}
}

func TestFetchManyToleratesMetadataFailure(t *testing.T) {
	cache := &fakeCache{failInfoFor: map[string]bool{"MSFT": true}}
	o := New(cache, common.NewSilentLogger())

	out, err := o.FetchMany(context.Background(), []string{"AAPL", "MSFT"}, models.Period1Y)
	require.NoError(t, err)
	require.Len(t, out, 2)

	// MSFT keeps its history even though metadata failed.
	assert.NotEmpty(t, out["MSFT"].History)
	assert.Nil(t, out["MSFT"].Info)
	assert.NotNil(t, out["AAPL"].Info)
}

func TestFetchManyToleratesBulkFailure(t *testing.T) {
	cache := &fakeCache{failBulk: true}
	o := New(cache, common.NewSilentLogger())

	out, err := o.FetchMany(context.Background(), []string{"AAPL", "MSFT"}, models.Period1Y)
	require.NoError(t, err)
	require.Len(t, out, 2)

	// Metadata alone keeps the symbols alive.
	assert.Empty(t, out["AAPL"].History)
	assert.NotNil(t, out["AAPL"].Info)
}

func TestFetchManyDropsSymbolsWithNothing(t *testing.T) {
	cache := &fakeCache{
		noBarsFor:   map[string]bool{"JUNK": true},
		failInfoFor: map[string]bool{"JUNK": true},
	}
	o := New(cache, common.NewSilentLogger())

	out, err := o.FetchMany(context.Background(), []string{"AAPL", "JUNK"}, models.Period1Y)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Contains(t, out, "AAPL")
	assert.NotContains(t, out, "JUNK")
}

func TestFetchManyEmptyInput(t *testing.T) {
	o := New(&fakeCache{}, common.NewSilentLogger())

	out, err := o.FetchMany(context.Background(), nil, models.Period1Y)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestFetchManyCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	o := New(&fakeCache{}, common.NewSilentLogger())
	_, err := o.FetchMany(ctx, []string{"AAPL"}, models.Period1Y)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFetchSingleRequiresHistory(t *testing.T) {
	cache := &fakeCache{noBarsFor: map[string]bool{"JUNK": true}}
	o := New(cache, common.NewSilentLogger())

	_, err := o.Fetch(context.Background(), "JUNK", models.Period1Y)
	assert.Error(t, err)
}

func TestFetchSingleToleratesMetadataFailure(t *testing.T) {
	cache := &fakeCache{failInfoFor: map[string]bool{"AAPL": true}}
	o := New(cache, common.NewSilentLogger())

	data, err := o.Fetch(context.Background(), "AAPL", models.Period1Y)
	require.NoError(t, err)
	assert.NotEmpty(t, data.History)
	assert.Nil(t, data.Info)
}

func TestPoolSize(t *testing.T) {
	// Never larger than tasks, never zero.
	assert.Equal(t, 2, poolSize(1))
	assert.GreaterOrEqual(t, poolSize(1000), 1)
	assert.LessOrEqual(t, poolSize(1000), 1001)
}
