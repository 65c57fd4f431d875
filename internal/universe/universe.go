// Package universe resolves index names to their member symbols from
// per-index CSV files.
package universe

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/stockeye/stockeye/internal/common"
	"github.com/stockeye/stockeye/internal/interfaces"
)

// Provider loads <INDEX>.csv membership files from a directory. Each
// file needs a Symbol column; other columns are ignored.
type Provider struct {
	dir    string
	logger *common.Logger
}

// NewProvider creates a universe provider over a directory of CSVs.
func NewProvider(dir string, logger *common.Logger) *Provider {
	return &Provider{dir: dir, logger: logger}
}

// Indexes lists the universes available, by CSV base name.
func (p *Provider) Indexes() []string {
	entries, err := os.ReadDir(p.dir)
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(name), ".csv") {
			continue
		}
		out = append(out, strings.ToUpper(strings.TrimSuffix(name, filepath.Ext(name))))
	}
	sort.Strings(out)
	return out
}

// Symbols returns the member symbols of an index, uppercased and
// suffixed for the exchange. Rows naming the index itself are
// dropped; membership files often carry them.
func (p *Provider) Symbols(index string) ([]string, error) {
	index = strings.ToUpper(strings.TrimSpace(index))
	path := filepath.Join(p.dir, index+".csv")

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unknown index %s: %w", index, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty index file %s", path)
	}

	col := symbolColumn(records[0])
	suffix := exchangeSuffix(index)

	var symbols []string
	seen := make(map[string]bool)
	for _, row := range records[1:] {
		if col >= len(row) {
			continue
		}
		symbol := strings.ToUpper(strings.TrimSpace(row[col]))
		if symbol == "" || strings.HasPrefix(symbol, "NIFTY") {
			continue
		}
		if suffix != "" && !strings.Contains(symbol, ".") {
			symbol += suffix
		}
		if !seen[symbol] {
			seen[symbol] = true
			symbols = append(symbols, symbol)
		}
	}

	p.logger.Debug().Str("index", index).Int("symbols", len(symbols)).Msg("universe loaded")
	return symbols, nil
}

// symbolColumn finds the Symbol header, defaulting to the first
// column.
func symbolColumn(header []string) int {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), "symbol") {
			return i
		}
	}
	return 0
}

// exchangeSuffix maps an index to the suffix its members trade
// under: SME boards use -SM.NS, other Indian indexes .NS, and US
// indexes need nothing.
func exchangeSuffix(index string) string {
	switch {
	case strings.Contains(index, "SME"):
		return "-SM.NS"
	case strings.HasPrefix(index, "US") || strings.HasPrefix(index, "SP") || strings.HasPrefix(index, "NASDAQ") || strings.HasPrefix(index, "DOW"):
		return ""
	default:
		return ".NS"
	}
}

// Ensure Provider implements UniverseProvider
var _ interfaces.UniverseProvider = (*Provider)(nil)
