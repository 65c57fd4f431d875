package yahoo

import (
	"context"
	"fmt"
	"net/url"

	"github.com/stockeye/stockeye/internal/models"
)

// rawValue handles the {"raw": n, "fmt": "..."} wrappers the
// quote-summary endpoint puts around every number. An empty object
// means the field is unreported.
type rawValue struct {
	Raw *float64 `json:"raw"`
}

func (v rawValue) ptr() *float64 {
	if v.Raw == nil {
		return nil
	}
	val := *v.Raw
	return &val
}

type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			Price struct {
				LongName           string   `json:"longName"`
				ShortName          string   `json:"shortName"`
				RegularMarketPrice rawValue `json:"regularMarketPrice"`
				MarketCap          rawValue `json:"marketCap"`
			} `json:"price"`
			AssetProfile struct {
				Sector   string `json:"sector"`
				Industry string `json:"industry"`
			} `json:"assetProfile"`
			SummaryDetail struct {
				TrailingPE    rawValue `json:"trailingPE"`
				DividendYield rawValue `json:"dividendYield"`
			} `json:"summaryDetail"`
			DefaultKeyStatistics struct {
				TrailingEPS         rawValue `json:"trailingEps"`
				ForwardEPS          rawValue `json:"forwardEps"`
				BookValue           rawValue `json:"bookValue"`
				PriceToBook         rawValue `json:"priceToBook"`
				HeldPercentInsiders rawValue `json:"heldPercentInsiders"`
			} `json:"defaultKeyStatistics"`
			FinancialData struct {
				ReturnOnEquity   rawValue `json:"returnOnEquity"`
				DebtToEquity     rawValue `json:"debtToEquity"`
				RevenueGrowth    rawValue `json:"revenueGrowth"`
				EarningsGrowth   rawValue `json:"earningsGrowth"`
				ProfitMargins    rawValue `json:"profitMargins"`
				OperatingMargins rawValue `json:"operatingMargins"`
			} `json:"financialData"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

// Info retrieves company metadata for a symbol. Fields the provider
// does not report stay nil.
func (c *Client) Info(ctx context.Context, symbol string) (*models.CompanyInfo, error) {
	params := url.Values{}
	params.Set("modules", "price,assetProfile,summaryDetail,defaultKeyStatistics,financialData")

	path := fmt.Sprintf("/v10/finance/quoteSummary/%s", url.PathEscape(symbol))

	var resp quoteSummaryResponse
	if err := c.get(ctx, path, params, &resp); err != nil {
		return nil, err
	}

	if resp.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("quote summary error for %s: %s", symbol, resp.QuoteSummary.Error.Description)
	}
	if len(resp.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("no quote summary for %s", symbol)
	}

	r := resp.QuoteSummary.Result[0]

	name := r.Price.LongName
	if name == "" {
		name = r.Price.ShortName
	}

	info := &models.CompanyInfo{
		Symbol:          symbol,
		Name:            name,
		Sector:          r.AssetProfile.Sector,
		Industry:        r.AssetProfile.Industry,
		CurrentPrice:    r.Price.RegularMarketPrice.ptr(),
		MarketCap:       r.Price.MarketCap.ptr(),
		TrailingPE:      r.SummaryDetail.TrailingPE.ptr(),
		TrailingEPS:     r.DefaultKeyStatistics.TrailingEPS.ptr(),
		ForwardEPS:      r.DefaultKeyStatistics.ForwardEPS.ptr(),
		BookValue:       r.DefaultKeyStatistics.BookValue.ptr(),
		PriceToBook:     r.DefaultKeyStatistics.PriceToBook.ptr(),
		ReturnOnEquity:  r.FinancialData.ReturnOnEquity.ptr(),
		RevenueGrowth:   r.FinancialData.RevenueGrowth.ptr(),
		EarningsGrowth:  r.FinancialData.EarningsGrowth.ptr(),
		ProfitMargin:    r.FinancialData.ProfitMargins.ptr(),
		OperatingMargin: r.FinancialData.OperatingMargins.ptr(),
		InsiderHolding:  r.DefaultKeyStatistics.HeldPercentInsiders.ptr(),
		DividendYield:   r.SummaryDetail.DividendYield.ptr(),
	}

	// The endpoint reports debt-to-equity as a percentage; keep it as
	// a plain ratio to match the scoring thresholds.
	if de := r.FinancialData.DebtToEquity.ptr(); de != nil {
		ratio := *de / 100
		info.DebtToEquity = &ratio
	}

	return info, nil
}
