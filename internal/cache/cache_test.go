package cache

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockeye/stockeye/internal/common"
	"github.com/stockeye/stockeye/internal/models"
)

// fakeClient counts upstream calls and can be told to fail.
type fakeClient struct {
	mu           sync.Mutex
	historyCalls int
	infoCalls    int
	bulkCalls    int
	failHistory  bool
	failInfo     bool
	failBulk     bool
}

func (f *fakeClient) History(ctx context.Context, symbol string, period models.Period) (models.PriceSeries, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.historyCalls++
	if f.failHistory {
		return nil, errors.New("upstream down")
	}
	return testSeries(symbol), nil
}

func (f *fakeClient) Info(ctx context.Context, symbol string) (*models.CompanyInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.infoCalls++
	if f.failInfo {
		return nil, errors.New("upstream down")
	}
	return &models.CompanyInfo{Symbol: symbol, Name: symbol + " Corp"}, nil
}

func (f *fakeClient) BulkHistory(ctx context.Context, symbols []string, period models.Period) (map[string]models.PriceSeries, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bulkCalls++
	if f.failBulk {
		return nil, errors.New("upstream down")
	}
	out := make(map[string]models.PriceSeries, len(symbols))
	for _, s := range symbols {
		out[s] = testSeries(s)
	}
	return out, nil
}

func (f *fakeClient) Quote(ctx context.Context, symbol string) (float64, error) {
	return 100, nil
}

func testSeries(symbol string) models.PriceSeries {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	series := make(models.PriceSeries, 5)
	for i := range series {
		series[i] = models.PriceBar{
			Date:   start.AddDate(0, 0, i),
			Close:  float64(100 + i),
			Volume: 1000,
		}
	}
	return series
}

// testClock is an adjustable time source.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestCache(t *testing.T, client *fakeClient, clock *testClock) *Cache {
	t.Helper()
	return New(client, common.NewSilentLogger(), t.TempDir(),
		WithMetadataTTL(5*time.Minute),
		WithHistoryTTL(time.Minute),
		WithClock(clock.Now),
	)
}

func TestHistoryCachesWithinTTL(t *testing.T) {
	client := &fakeClient{}
	c := newTestCache(t, client, newTestClock())

	first, err := c.History(context.Background(), "AAPL", models.Period1Y)
	require.NoError(t, err)
	second, err := c.History(context.Background(), "AAPL", models.Period1Y)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, client.historyCalls)
}

func TestHistoryExpiresAfterTTL(t *testing.T) {
	client := &fakeClient{}
	clock := newTestClock()
	c := newTestCache(t, client, clock)

	_, err := c.History(context.Background(), "AAPL", models.Period1Y)
	require.NoError(t, err)

	clock.Advance(61 * time.Second)

	_, err = c.History(context.Background(), "AAPL", models.Period1Y)
	require.NoError(t, err)
	assert.Equal(t, 2, client.historyCalls)
}

func TestHistoryKeyIncludesPeriod(t *testing.T) {
	client := &fakeClient{}
	c := newTestCache(t, client, newTestClock())

	_, err := c.History(context.Background(), "AAPL", models.Period1Y)
	require.NoError(t, err)
	_, err = c.History(context.Background(), "AAPL", models.Period5Y)
	require.NoError(t, err)

	assert.Equal(t, 2, client.historyCalls)
}

func TestFailedFetchIsNotCached(t *testing.T) {
	client := &fakeClient{failHistory: true}
	c := newTestCache(t, client, newTestClock())

	_, err := c.History(context.Background(), "AAPL", models.Period1Y)
	require.Error(t, err)

	// Recovery is visible immediately, not masked by a cached error.
	client.failHistory = false
	series, err := c.History(context.Background(), "AAPL", models.Period1Y)
	require.NoError(t, err)
	assert.Len(t, series, 5)
	assert.Equal(t, 2, client.historyCalls)
}

func TestHistoryReturnsDefensiveCopy(t *testing.T) {
	client := &fakeClient{}
	c := newTestCache(t, client, newTestClock())

	first, err := c.History(context.Background(), "AAPL", models.Period1Y)
	require.NoError(t, err)
	first[0].Close = -1

	second, err := c.History(context.Background(), "AAPL", models.Period1Y)
	require.NoError(t, err)
	assert.Equal(t, 1, client.historyCalls)
	assert.InDelta(t, 100.0, second[0].Close, 0.01)
}

func TestInfoReturnsDefensiveCopy(t *testing.T) {
	client := &fakeClient{}
	c := newTestCache(t, client, newTestClock())

	first, err := c.Info(context.Background(), "AAPL")
	require.NoError(t, err)
	first.Name = "mutated"

	second, err := c.Info(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, "AAPL Corp", second.Name)
}

func TestBulkHistoryKeyIsOrderInsensitive(t *testing.T) {
	client := &fakeClient{}
	c := newTestCache(t, client, newTestClock())

	_, err := c.BulkHistory(context.Background(), []string{"AAPL", "MSFT"}, models.Period1Y)
	require.NoError(t, err)
	_, err = c.BulkHistory(context.Background(), []string{"MSFT", "AAPL"}, models.Period1Y)
	require.NoError(t, err)

	assert.Equal(t, 1, client.bulkCalls)
}

func TestSweepExpired(t *testing.T) {
	client := &fakeClient{}
	clock := newTestClock()
	c := newTestCache(t, client, clock)

	_, err := c.History(context.Background(), "AAPL", models.Period1Y)
	require.NoError(t, err)
	_, err = c.Info(context.Background(), "AAPL")
	require.NoError(t, err)

	// Past the history TTL but within the metadata TTL.
	clock.Advance(2 * time.Minute)

	removed := c.SweepExpired()
	assert.Equal(t, 1, removed)

	stats := c.Stats()
	assert.Equal(t, 0, stats.HistoryEntries)
	assert.Equal(t, 1, stats.MetadataEntries)
}

func TestPersistenceRoundTrip(t *testing.T) {
	client := &fakeClient{}
	clock := newTestClock()
	dir := t.TempDir()

	c := New(client, common.NewSilentLogger(), dir, WithClock(clock.Now))
	_, err := c.History(context.Background(), "AAPL", models.Period1Y)
	require.NoError(t, err)
	_, err = c.Info(context.Background(), "AAPL")
	require.NoError(t, err)
	require.NoError(t, c.SaveToDisk())

	for _, name := range []string{metadataFile, historyFile, batchFile} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, "expected %s on disk", name)
	}

	// A fresh cache over the same directory serves from disk.
	restored := New(client, common.NewSilentLogger(), dir, WithClock(clock.Now))
	require.NoError(t, restored.LoadFromDisk())

	series, err := restored.History(context.Background(), "AAPL", models.Period1Y)
	require.NoError(t, err)
	assert.Len(t, series, 5)
	assert.Equal(t, 1, client.historyCalls)
}

func TestLoadDropsExpiredEntries(t *testing.T) {
	client := &fakeClient{}
	clock := newTestClock()
	dir := t.TempDir()

	c := New(client, common.NewSilentLogger(), dir, WithClock(clock.Now))
	_, err := c.History(context.Background(), "AAPL", models.Period1Y)
	require.NoError(t, err)
	require.NoError(t, c.SaveToDisk())

	clock.Advance(time.Hour)

	restored := New(client, common.NewSilentLogger(), dir, WithClock(clock.Now))
	require.NoError(t, restored.LoadFromDisk())
	assert.Equal(t, 0, restored.Stats().HistoryEntries)
}

func TestLoadToleratesCorruptFile(t *testing.T) {
	client := &fakeClient{}
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, historyFile), []byte("{not json"), 0644))

	c := New(client, common.NewSilentLogger(), dir, WithClock(newTestClock().Now))
	require.NoError(t, c.LoadFromDisk())

	// Cold start: the next read fetches upstream.
	series, err := c.History(context.Background(), "AAPL", models.Period1Y)
	require.NoError(t, err)
	assert.Len(t, series, 5)
	assert.Equal(t, 1, client.historyCalls)
}

func TestLoadToleratesMissingFiles(t *testing.T) {
	c := New(&fakeClient{}, common.NewSilentLogger(), t.TempDir(), WithClock(newTestClock().Now))
	require.NoError(t, c.LoadFromDisk())
	assert.Equal(t, models.CacheStats{}, c.Stats())
}

func TestConcurrentAccess(t *testing.T) {
	client := &fakeClient{}
	c := newTestCache(t, client, newTestClock())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			symbol := fmt.Sprintf("SYM%d", n%5)
			_, err := c.History(context.Background(), symbol, models.Period1Y)
			assert.NoError(t, err)
			_, err = c.Info(context.Background(), symbol)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	stats := c.Stats()
	assert.Equal(t, 5, stats.HistoryEntries)
	assert.Equal(t, 5, stats.MetadataEntries)
}
