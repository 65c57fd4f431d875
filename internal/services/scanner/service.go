// Package scanner screens symbol universes against preset filters.
package scanner

import (
	"context"
	"math"
	"sort"

	"github.com/stockeye/stockeye/internal/common"
	"github.com/stockeye/stockeye/internal/interfaces"
	"github.com/stockeye/stockeye/internal/models"
)

// Scan thresholds on the 0..12 fundamental scale.
const (
	minStrongFundamentals = 8
	valueRSICeiling       = 40
)

// The margin-of-safety scan runs on five years of history rather than
// the configured default.
const grahamPeriod = models.Period5Y

// Service runs universe scans through the analyzer.
type Service struct {
	analyzer interfaces.Analyzer
	logger   *common.Logger
}

// NewService creates a scanner.
func NewService(analyzer interfaces.Analyzer, logger *common.Logger) *Service {
	return &Service{analyzer: analyzer, logger: logger}
}

// StrongBuys returns symbols rated BUY or better, best first.
func (s *Service) StrongBuys(ctx context.Context, universe []string) ([]*models.Analysis, error) {
	results, err := s.analyzer.AnalyzeAll(ctx, universe)
	if err != nil {
		return nil, err
	}

	matches := filter(results, func(a *models.Analysis) bool {
		return a.Scoring.Rating.Score() >= models.RatingBuy.Score()
	})
	sort.Slice(matches, func(i, j int) bool {
		ri, rj := matches[i].Scoring.Rating.Score(), matches[j].Scoring.Rating.Score()
		if ri != rj {
			return ri > rj
		}
		fi, fj := matches[i].Scoring.FundamentalScore, matches[j].Scoring.FundamentalScore
		if fi != fj {
			return fi > fj
		}
		return matches[i].Symbol < matches[j].Symbol
	})

	s.logger.Info().Int("universe", len(universe)).Int("matches", len(matches)).Msg("strong buy scan")
	return matches, nil
}

// FundamentallyStrong returns symbols with a high fundamental score
// regardless of technicals.
func (s *Service) FundamentallyStrong(ctx context.Context, universe []string) ([]*models.Analysis, error) {
	results, err := s.analyzer.AnalyzeAll(ctx, universe)
	if err != nil {
		return nil, err
	}

	matches := filter(results, func(a *models.Analysis) bool {
		return a.Scoring.FundamentalScore >= minStrongFundamentals
	})
	sortByFundamentals(matches)

	s.logger.Info().Int("universe", len(universe)).Int("matches", len(matches)).Msg("fundamentals scan")
	return matches, nil
}

// ValueOpportunities returns fundamentally strong symbols that look
// cheap: either pulled back on RSI or already rated accumulate-or-
// better.
func (s *Service) ValueOpportunities(ctx context.Context, universe []string) ([]*models.Analysis, error) {
	results, err := s.analyzer.AnalyzeAll(ctx, universe)
	if err != nil {
		return nil, err
	}

	matches := filter(results, func(a *models.Analysis) bool {
		if a.Scoring.FundamentalScore < minStrongFundamentals {
			return false
		}
		dipped := !math.IsNaN(a.Indicators.RSI) && a.Indicators.RSI < valueRSICeiling
		return dipped || a.Scoring.Rating.Score() >= models.RatingAdd.Score()
	})
	sortByFundamentals(matches)

	s.logger.Info().Int("universe", len(universe)).Int("matches", len(matches)).Msg("value scan")
	return matches, nil
}

// GrahamValue returns symbols trading below intrinsic value by at
// least minMargin percent, widest margin first.
func (s *Service) GrahamValue(ctx context.Context, universe []string, minMargin float64) ([]*models.Analysis, error) {
	results, err := s.analyzer.AnalyzeAllWithPeriod(ctx, universe, grahamPeriod)
	if err != nil {
		return nil, err
	}

	matches := filter(results, func(a *models.Analysis) bool {
		return a.Valuation != nil && a.Valuation.MarginPercent >= minMargin
	})
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Valuation.MarginPercent > matches[j].Valuation.MarginPercent
	})

	s.logger.Info().Int("universe", len(universe)).Int("matches", len(matches)).Msg("graham value scan")
	return matches, nil
}

func filter(results []*models.Analysis, keep func(*models.Analysis) bool) []*models.Analysis {
	var out []*models.Analysis
	for _, a := range results {
		if a.Failed() {
			continue
		}
		if keep(a) {
			out = append(out, a)
		}
	}
	return out
}

func sortByFundamentals(matches []*models.Analysis) {
	sort.Slice(matches, func(i, j int) bool {
		fi, fj := matches[i].Scoring.FundamentalScore, matches[j].Scoring.FundamentalScore
		if fi != fj {
			return fi > fj
		}
		return matches[i].Symbol < matches[j].Symbol
	})
}

// Ensure Service implements Scanner
var _ interfaces.Scanner = (*Service)(nil)
