package models

// CompanyInfo carries the fundamental metadata for a symbol. Numeric
// fields are pointers because the upstream provider omits whichever
// ones it does not know; a nil field means unknown, never zero.
// Ratios are fractional (0.15 means 15%).
type CompanyInfo struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name,omitempty"`
	Sector   string `json:"sector,omitempty"`
	Industry string `json:"industry,omitempty"`

	CurrentPrice     *float64 `json:"current_price,omitempty"`
	MarketCap        *float64 `json:"market_cap,omitempty"`
	TrailingPE       *float64 `json:"trailing_pe,omitempty"`
	TrailingEPS      *float64 `json:"trailing_eps,omitempty"`
	ForwardEPS       *float64 `json:"forward_eps,omitempty"`
	BookValue        *float64 `json:"book_value,omitempty"`
	PriceToBook      *float64 `json:"price_to_book,omitempty"`
	ReturnOnEquity   *float64 `json:"return_on_equity,omitempty"`
	DebtToEquity     *float64 `json:"debt_to_equity,omitempty"`
	RevenueGrowth    *float64 `json:"revenue_growth,omitempty"`
	EarningsGrowth   *float64 `json:"earnings_growth,omitempty"`
	ProfitMargin     *float64 `json:"profit_margin,omitempty"`
	OperatingMargin  *float64 `json:"operating_margin,omitempty"`
	InsiderHolding   *float64 `json:"insider_holding,omitempty"`
	DividendYield    *float64 `json:"dividend_yield,omitempty"`
}

// IsEmpty reports whether no fundamental field was populated.
func (c *CompanyInfo) IsEmpty() bool {
	if c == nil {
		return true
	}
	return c.Name == "" && c.Sector == "" &&
		c.CurrentPrice == nil && c.MarketCap == nil &&
		c.TrailingPE == nil && c.TrailingEPS == nil &&
		c.ForwardEPS == nil && c.BookValue == nil &&
		c.PriceToBook == nil && c.ReturnOnEquity == nil &&
		c.DebtToEquity == nil && c.RevenueGrowth == nil &&
		c.EarningsGrowth == nil && c.ProfitMargin == nil &&
		c.OperatingMargin == nil && c.InsiderHolding == nil &&
		c.DividendYield == nil
}

// Clone returns a deep copy so cache callers cannot mutate the
// cached record through shared pointers.
func (c *CompanyInfo) Clone() *CompanyInfo {
	if c == nil {
		return nil
	}
	out := *c
	out.CurrentPrice = clonePtr(c.CurrentPrice)
	out.MarketCap = clonePtr(c.MarketCap)
	out.TrailingPE = clonePtr(c.TrailingPE)
	out.TrailingEPS = clonePtr(c.TrailingEPS)
	out.ForwardEPS = clonePtr(c.ForwardEPS)
	out.BookValue = clonePtr(c.BookValue)
	out.PriceToBook = clonePtr(c.PriceToBook)
	out.ReturnOnEquity = clonePtr(c.ReturnOnEquity)
	out.DebtToEquity = clonePtr(c.DebtToEquity)
	out.RevenueGrowth = clonePtr(c.RevenueGrowth)
	out.EarningsGrowth = clonePtr(c.EarningsGrowth)
	out.ProfitMargin = clonePtr(c.ProfitMargin)
	out.OperatingMargin = clonePtr(c.OperatingMargin)
	out.InsiderHolding = clonePtr(c.InsiderHolding)
	out.DividendYield = clonePtr(c.DividendYield)
	return &out
}

func clonePtr(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Float returns a pointer to v. Convenience for building CompanyInfo
// literals in tests and decoders.
func Float(v float64) *float64 {
	return &v
}
