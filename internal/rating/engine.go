package rating

import (
	"github.com/stockeye/stockeye/internal/common"
	"github.com/stockeye/stockeye/internal/models"
)

// Fundamentals are weighted 1.5x against technicals in the combined
// score.
const fundamentalWeight = 1.5

// Engine scores a symbol and classifies its rating.
type Engine struct {
	cfg common.RatingConfig
}

// NewEngine creates a rating engine.
func NewEngine(cfg common.RatingConfig) *Engine {
	return &Engine{cfg: cfg}
}

// Score runs the full pipeline: fundamental score, technical score,
// combined score, cascade classification, then contextual
// adjustments. The same inputs always produce the same result.
func (e *Engine) Score(info *models.CompanyInfo, ind models.IndicatorSet, sig models.SignalSet, cross models.CrossEvent, mctx models.MarketContext) models.ScoringResult {
	fscore, notes := FundamentalScore(info)
	tech := scoreTechnicals(ind, sig)
	combined := float64(fscore)*fundamentalWeight + float64(tech.score)

	in := inputs{
		fscore:   fscore,
		tech:     tech,
		combined: combined,
		ind:      ind,
		sig:      sig,
		cross:    cross,
	}
	classified, ruleName := classify(in)
	notes = append(notes, ruleName)

	adjusted, ctxNotes := applyContext(e.cfg, classified, fscore, mctx)
	notes = append(notes, ctxNotes...)

	return models.ScoringResult{
		FundamentalScore: fscore,
		TechnicalScore:   tech.score,
		CombinedScore:    combined,
		Rating:           adjusted,
		Notes:            notes,
	}
}
