// Package interfaces defines the contracts between stockeye components.
package interfaces

import (
	"context"

	"github.com/stockeye/stockeye/internal/models"
)

// MarketDataClient fetches price history and company metadata from the
// upstream provider. Implementations must be safe for concurrent use.
type MarketDataClient interface {
	// History returns daily bars for one symbol over the lookback
	// period, ascending by date.
	History(ctx context.Context, symbol string, period models.Period) (models.PriceSeries, error)

	// Info returns company metadata for one symbol. Fields the
	// provider does not report are left nil.
	Info(ctx context.Context, symbol string) (*models.CompanyInfo, error)

	// BulkHistory fetches history for many symbols in one logical
	// call. Symbols that fail are absent from the result; the call
	// errors only when nothing could be fetched.
	BulkHistory(ctx context.Context, symbols []string, period models.Period) (map[string]models.PriceSeries, error)

	// Quote returns the latest close for a symbol. Used for index
	// quotes such as the volatility index.
	Quote(ctx context.Context, symbol string) (float64, error)
}
