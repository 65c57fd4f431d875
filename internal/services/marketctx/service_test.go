package marketctx

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockeye/stockeye/internal/common"
	"github.com/stockeye/stockeye/internal/models"
)

type fakeCache struct {
	series map[string]models.PriceSeries
	errFor map[string]error
}

func (c *fakeCache) History(ctx context.Context, symbol string, period models.Period) (models.PriceSeries, error) {
	if err, ok := c.errFor[symbol]; ok {
		return nil, err
	}
	series, ok := c.series[symbol]
	if !ok {
		return nil, errors.New("no data")
	}
	return series, nil
}

func (c *fakeCache) Info(ctx context.Context, symbol string) (*models.CompanyInfo, error) {
	return nil, errors.New("not used")
}

func (c *fakeCache) BulkHistory(ctx context.Context, symbols []string, period models.Period) (map[string]models.PriceSeries, error) {
	return nil, errors.New("not used")
}

func (c *fakeCache) SweepExpired() int        { return 0 }
func (c *fakeCache) SaveToDisk() error        { return nil }
func (c *fakeCache) LoadFromDisk() error      { return nil }
func (c *fakeCache) Stats() models.CacheStats { return models.CacheStats{} }

// flatSeries produces n bars at a constant close.
func flatSeries(n int, close float64) models.PriceSeries {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	series := make(models.PriceSeries, n)
	for i := range series {
		series[i] = models.PriceBar{Date: start.AddDate(0, 0, i), Close: close}
	}
	return series
}

// trendingSeries rises or falls linearly so the short average sits on
// the expected side of the long one.
func trendingSeries(n int, start, step float64) models.PriceSeries {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	series := make(models.PriceSeries, n)
	for i := range series {
		series[i] = models.PriceBar{Date: base.AddDate(0, 0, i), Close: start + float64(i)*step}
	}
	return series
}

func newTestService(cache *fakeCache) *Service {
	cfg := common.NewDefaultConfig()
	return NewService(cache, cfg.Rating, cfg.Indicators, common.NewSilentLogger())
}

func TestCurrentSamplesVIX(t *testing.T) {
	vix := flatSeries(5, 18.5)
	s := newTestService(&fakeCache{series: map[string]models.PriceSeries{
		"^VIX":  vix,
		"^GSPC": trendingSeries(250, 100, 0.5),
	}})

	mctx := s.Current(context.Background())
	require.NotNil(t, mctx.VIX)
	assert.Equal(t, 18.5, *mctx.VIX)
	assert.Equal(t, time.Now().Month(), mctx.Month)
}

func TestCurrentVIXUnavailable(t *testing.T) {
	s := newTestService(&fakeCache{
		series: map[string]models.PriceSeries{"^GSPC": trendingSeries(250, 100, 0.5)},
		errFor: map[string]error{"^VIX": errors.New("boom")},
	})

	mctx := s.Current(context.Background())
	assert.Nil(t, mctx.VIX)
	assert.Equal(t, models.RegimeBull, mctx.Regime)
}

func TestRegimeBull(t *testing.T) {
	s := newTestService(&fakeCache{series: map[string]models.PriceSeries{
		"^VIX":  flatSeries(5, 15),
		"^GSPC": trendingSeries(250, 100, 0.5),
	}})

	assert.Equal(t, models.RegimeBull, s.Current(context.Background()).Regime)
}

func TestRegimeBear(t *testing.T) {
	s := newTestService(&fakeCache{series: map[string]models.PriceSeries{
		"^VIX":  flatSeries(5, 15),
		"^GSPC": trendingSeries(250, 250, -0.5),
	}})

	assert.Equal(t, models.RegimeBear, s.Current(context.Background()).Regime)
}

func TestRegimeSideways(t *testing.T) {
	s := newTestService(&fakeCache{series: map[string]models.PriceSeries{
		"^VIX":  flatSeries(5, 15),
		"^GSPC": flatSeries(250, 100),
	}})

	assert.Equal(t, models.RegimeSideways, s.Current(context.Background()).Regime)
}

func TestRegimeInsufficientHistory(t *testing.T) {
	// Too few bars for the long average leaves the regime unknown.
	s := newTestService(&fakeCache{series: map[string]models.PriceSeries{
		"^VIX":  flatSeries(5, 15),
		"^GSPC": flatSeries(100, 100),
	}})

	assert.Equal(t, models.RegimeUnknown, s.Current(context.Background()).Regime)
}

func TestRegimeBenchmarkUnavailable(t *testing.T) {
	s := newTestService(&fakeCache{
		series: map[string]models.PriceSeries{"^VIX": flatSeries(5, 15)},
		errFor: map[string]error{"^GSPC": errors.New("boom")},
	})

	assert.Equal(t, models.RegimeUnknown, s.Current(context.Background()).Regime)
}

func TestTogglesDisableSampling(t *testing.T) {
	cfg := common.NewDefaultConfig()
	cfg.Rating.UseVIX = false
	cfg.Rating.UseRegime = false

	// The cache errors on everything; with sampling off it is never
	// consulted.
	cache := &fakeCache{errFor: map[string]error{"^VIX": errors.New("boom"), "^GSPC": errors.New("boom")}}
	s := NewService(cache, cfg.Rating, cfg.Indicators, common.NewSilentLogger())

	mctx := s.Current(context.Background())
	assert.Nil(t, mctx.VIX)
	assert.Equal(t, models.RegimeUnknown, mctx.Regime)
}
