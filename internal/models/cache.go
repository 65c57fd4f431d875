package models

// SymbolData pairs the two halves fetched for a symbol. Either side
// may be empty when the upstream call for it failed; a symbol with
// neither is dropped by the fetcher.
type SymbolData struct {
	History PriceSeries  `json:"history"`
	Info    *CompanyInfo `json:"info,omitempty"`
}

// CacheStats is a point-in-time count of live entries per cache table.
type CacheStats struct {
	MetadataEntries int `json:"metadata_entries"`
	HistoryEntries  int `json:"history_entries"`
	BatchEntries    int `json:"batch_entries"`
}
