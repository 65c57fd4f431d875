package yahoo

import (
	"context"
	"fmt"
	"net/url"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/stockeye/stockeye/internal/models"
)

// chartResponse mirrors the chart endpoint envelope. Null entries in
// the quote arrays mark non-trading timestamps and are skipped.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// History retrieves daily bars for a symbol, ascending by date
func (c *Client) History(ctx context.Context, symbol string, period models.Period) (models.PriceSeries, error) {
	params := url.Values{}
	params.Set("range", string(period))
	params.Set("interval", "1d")

	path := fmt.Sprintf("/v8/finance/chart/%s", url.PathEscape(symbol))

	var resp chartResponse
	if err := c.get(ctx, path, params, &resp); err != nil {
		return nil, err
	}

	if resp.Chart.Error != nil {
		return nil, fmt.Errorf("chart error for %s: %s", symbol, resp.Chart.Error.Description)
	}
	if len(resp.Chart.Result) == 0 || len(resp.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("no chart data for %s", symbol)
	}

	result := resp.Chart.Result[0]
	quote := result.Indicators.Quote[0]

	series := make(models.PriceSeries, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(quote.Close) || quote.Close[i] == nil {
			continue
		}
		bar := models.PriceBar{
			Date:  time.Unix(ts, 0).UTC(),
			Close: *quote.Close[i],
		}
		if i < len(quote.Open) && quote.Open[i] != nil {
			bar.Open = *quote.Open[i]
		}
		if i < len(quote.High) && quote.High[i] != nil {
			bar.High = *quote.High[i]
		}
		if i < len(quote.Low) && quote.Low[i] != nil {
			bar.Low = *quote.Low[i]
		}
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			bar.Volume = *quote.Volume[i]
		}
		series = append(series, bar)
	}

	return series.Normalize(), nil
}

// Quote returns the latest close for a symbol over a short window
func (c *Client) Quote(ctx context.Context, symbol string) (float64, error) {
	series, err := c.History(ctx, symbol, models.Period1M)
	if err != nil {
		return 0, err
	}
	latest, ok := series.Latest()
	if !ok {
		return 0, fmt.Errorf("no quote data for %s", symbol)
	}
	return latest.Close, nil
}

// BulkHistory fetches history for many symbols as one logical call,
// fanning out over the chart endpoint with bounded concurrency.
// Symbols that fail are dropped; the call errors only when every
// symbol failed.
func (c *Client) BulkHistory(ctx context.Context, symbols []string, period models.Period) (map[string]models.PriceSeries, error) {
	if len(symbols) == 0 {
		return map[string]models.PriceSeries{}, nil
	}

	var mu sync.Mutex
	out := make(map[string]models.PriceSeries, len(symbols))

	g, gctx := errgroup.WithContext(ctx)
	limit := runtime.NumCPU() * 4
	if limit > len(symbols) {
		limit = len(symbols)
	}
	g.SetLimit(limit)

	for _, symbol := range symbols {
		symbol := symbol
		g.Go(func() error {
			series, err := c.History(gctx, symbol, period)
			if err != nil {
				c.logger.Warn().Err(err).Str("symbol", symbol).Msg("bulk history fetch failed")
				return nil
			}
			mu.Lock()
			out[symbol] = series
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("bulk history: no data for any of %d symbols", len(symbols))
	}
	return out, nil
}
