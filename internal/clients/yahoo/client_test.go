package yahoo

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockeye/stockeye/internal/models"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(
		WithBaseURL(server.URL),
		WithRateLimit(1000),
	)
}

// chartBody builds a chart response with one null row in the middle.
const chartBody = `{
  "chart": {
    "result": [{
      "timestamp": [1704067200, 1704153600, 1704240000],
      "indicators": {
        "quote": [{
          "open":   [99.0, null, 101.0],
          "high":   [101.0, null, 103.0],
          "low":    [98.0, null, 100.0],
          "close":  [100.0, null, 102.0],
          "volume": [1000, null, 1200]
        }]
      }
    }],
    "error": null
  }
}`

func TestHistory(t *testing.T) {
	var gotPath, gotQuery string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		fmt.Fprint(w, chartBody)
	}))

	series, err := c.History(context.Background(), "AAPL", models.Period1Y)
	require.NoError(t, err)

	assert.Equal(t, "/v8/finance/chart/AAPL", gotPath)
	assert.Contains(t, gotQuery, "range=1y")
	assert.Contains(t, gotQuery, "interval=1d")

	// The null row is skipped, and bars come back ascending.
	require.Len(t, series, 2)
	assert.Equal(t, 100.0, series[0].Close)
	assert.Equal(t, 102.0, series[1].Close)
	assert.Equal(t, int64(1000), series[0].Volume)
	assert.True(t, series[0].Date.Before(series[1].Date))
}

func TestHistoryChartError(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`)
	}))

	_, err := c.History(context.Background(), "NOPE", models.Period1Y)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "delisted")
}

func TestHistoryHTTPError(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))

	_, err := c.History(context.Background(), "AAPL", models.Period1Y)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	assert.Equal(t, "/v8/finance/chart/AAPL", apiErr.Endpoint)
}

func TestQuote(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.RawQuery, "range=1mo")
		fmt.Fprint(w, chartBody)
	}))

	price, err := c.Quote(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, 102.0, price)
}

func TestInfo(t *testing.T) {
	body := `{
	  "quoteSummary": {
	    "result": [{
	      "price": {
	        "longName": "Apple Inc.",
	        "regularMarketPrice": {"raw": 180.5},
	        "marketCap": {"raw": 2800000000000}
	      },
	      "assetProfile": {"sector": "Technology", "industry": "Consumer Electronics"},
	      "summaryDetail": {
	        "trailingPE": {"raw": 29.1},
	        "dividendYield": {"raw": 0.0055}
	      },
	      "defaultKeyStatistics": {
	        "trailingEps": {"raw": 6.2},
	        "heldPercentInsiders": {"raw": 0.07}
	      },
	      "financialData": {
	        "returnOnEquity": {"raw": 1.47},
	        "debtToEquity": {"raw": 176.3},
	        "revenueGrowth": {"raw": 0.02},
	        "profitMargins": {"raw": 0.25},
	        "operatingMargins": {}
	      }
	    }],
	    "error": null
	  }
	}`

	var gotPath, gotQuery string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		fmt.Fprint(w, body)
	}))

	info, err := c.Info(context.Background(), "AAPL")
	require.NoError(t, err)

	assert.Equal(t, "/v10/finance/quoteSummary/AAPL", gotPath)
	assert.Contains(t, gotQuery, "modules=")

	assert.Equal(t, "AAPL", info.Symbol)
	assert.Equal(t, "Apple Inc.", info.Name)
	assert.Equal(t, "Technology", info.Sector)
	require.NotNil(t, info.CurrentPrice)
	assert.Equal(t, 180.5, *info.CurrentPrice)
	require.NotNil(t, info.ReturnOnEquity)
	assert.Equal(t, 1.47, *info.ReturnOnEquity)

	// Debt to equity arrives as a percentage and is stored as a ratio.
	require.NotNil(t, info.DebtToEquity)
	assert.InDelta(t, 1.763, *info.DebtToEquity, 0.0001)

	// Empty wrapper objects and absent modules stay nil.
	assert.Nil(t, info.OperatingMargin)
	assert.Nil(t, info.ForwardEPS)
	assert.False(t, info.IsEmpty())
}

func TestInfoShortNameFallback(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"quoteSummary":{"result":[{"price":{"shortName":"Reliance"}}],"error":null}}`)
	}))

	info, err := c.Info(context.Background(), "RELIANCE.NS")
	require.NoError(t, err)
	assert.Equal(t, "Reliance", info.Name)
	assert.Nil(t, info.CurrentPrice)
}

func TestInfoError(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"quoteSummary":{"result":null,"error":{"code":"Not Found","description":"Quote not found"}}}`)
	}))

	_, err := c.Info(context.Background(), "NOPE")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Quote not found")
}

func TestBulkHistory(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "BAD") {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		fmt.Fprint(w, chartBody)
	}))

	out, err := c.BulkHistory(context.Background(), []string{"AAPL", "BAD", "MSFT"}, models.Period1Y)
	require.NoError(t, err)

	// The failing symbol is dropped, the rest survive.
	require.Len(t, out, 2)
	assert.Contains(t, out, "AAPL")
	assert.Contains(t, out, "MSFT")
	assert.NotContains(t, out, "BAD")
}

func TestBulkHistoryAllFailed(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))

	_, err := c.BulkHistory(context.Background(), []string{"A", "B"}, models.Period1Y)
	assert.Error(t, err)
}

func TestBulkHistoryEmptyInput(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	}))

	out, err := c.BulkHistory(context.Background(), nil, models.Period1Y)
	require.NoError(t, err)
	assert.Empty(t, out)
}
