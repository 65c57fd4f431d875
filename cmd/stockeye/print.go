package main

import (
	"fmt"
	"math"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/stockeye/stockeye/internal/models"
)

func nowStamp() string {
	return time.Now().Format("2006-01-02 15:04:05")
}

// fmtNum renders an indicator value, showing a dash for unknowns.
func fmtNum(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return fmt.Sprintf("%.2f", v)
}

func fmtCross(e models.CrossEvent) string {
	switch e.Type {
	case models.CrossGolden:
		return fmt.Sprintf("golden %dd", e.DaysAgo)
	case models.CrossDeath:
		return fmt.Sprintf("death %dd", e.DaysAgo)
	default:
		return "-"
	}
}

func printAnalyses(results []*models.Analysis) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SYMBOL\tPRICE\tRSI\tMACD\tVOL\tCROSS\tF\tT\tCOMB\tRATING\tNOTES")
	for _, a := range results {
		if a.Failed() {
			fmt.Fprintf(w, "%s\t-\t-\t-\t-\t-\t-\t-\t-\tERROR\t%s\n", a.Symbol, a.Err)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%d\t%d\t%.1f\t%s\t%s\n",
			a.Symbol,
			fmtNum(a.Indicators.Price),
			fmtNum(a.Indicators.RSI),
			a.Signals.MACD,
			a.Signals.Volume,
			fmtCross(a.Cross),
			a.Scoring.FundamentalScore,
			a.Scoring.TechnicalScore,
			a.Scoring.CombinedScore,
			a.Scoring.Rating,
			strings.Join(a.Scoring.Notes, "; "),
		)
	}
	w.Flush()
}

func printValuations(results []*models.Analysis) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SYMBOL\tPRICE\tEPS\tGROWTH\tINTRINSIC\tCONSERVATIVE\tMOS%\tVERDICT")
	for _, a := range results {
		if a.Valuation == nil {
			continue
		}
		v := a.Valuation
		fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%.1f%%\t%.2f\t%.2f\t%.1f%%\t%s\n",
			v.Symbol, v.Price, v.EPS, v.GrowthEstimate,
			v.IntrinsicValue, v.ConservativeValue, v.MarginPercent, v.Label)
	}
	w.Flush()
}

func printWatchlist(symbols []string) {
	if len(symbols) == 0 {
		fmt.Println("Watchlist is empty")
		return
	}
	fmt.Printf("Watchlist (%d): %s\n", len(symbols), strings.Join(symbols, ", "))
}
