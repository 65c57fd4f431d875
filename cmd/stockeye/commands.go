package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/stockeye/stockeye/internal/app"
	"github.com/stockeye/stockeye/internal/models"
)

func runAnalyze(ctx context.Context, a *app.App, args []string) int {
	var (
		results []*models.Analysis
		err     error
	)
	if len(args) == 0 {
		results, err = a.Analyzer.AnalyzeWatchlist(ctx)
	} else {
		results, err = a.Analyzer.AnalyzeAll(ctx, args)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Analysis failed: %v\n", err)
		return 1
	}
	if len(results) == 0 {
		fmt.Println("Nothing to analyze. Add symbols with: stockeye watch add SYMBOL")
		return 0
	}
	printAnalyses(results)
	return 0
}

func runScan(ctx context.Context, a *app.App, args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "scan requires a subcommand: strong-buys, fundamentals, value, mos")
		return 2
	}
	command := args[0]

	index, minMargin, err := scanFlags("scan "+command, args[1:])
	if err != nil {
		return 2
	}
	if index == "" {
		fmt.Fprintf(os.Stderr, "scan requires --index; available: %s\n", strings.Join(a.Universe.Indexes(), ", "))
		return 2
	}

	universe, err := a.Universe.Symbols(index)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load universe: %v\n", err)
		return 1
	}

	var results []*models.Analysis
	switch command {
	case "strong-buys":
		results, err = a.Scanner.StrongBuys(ctx, universe)
	case "fundamentals":
		results, err = a.Scanner.FundamentallyStrong(ctx, universe)
	case "value":
		results, err = a.Scanner.ValueOpportunities(ctx, universe)
	case "mos":
		results, err = a.Scanner.GrahamValue(ctx, universe, minMargin)
	default:
		fmt.Fprintf(os.Stderr, "unknown scan command %q\n", command)
		return 2
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Scan failed: %v\n", err)
		return 1
	}

	if command == "mos" {
		printValuations(results)
	} else {
		printAnalyses(results)
	}
	fmt.Printf("\n%d of %d symbols matched\n", len(results), len(universe))
	return 0
}

func runWatch(ctx context.Context, a *app.App, args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "watch requires a subcommand: add, remove, list, clear, run")
		return 2
	}

	switch args[0] {
	case "add":
		symbols, err := a.Watchlist.Add(ctx, args[1:]...)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to update watchlist: %v\n", err)
			return 1
		}
		printWatchlist(symbols)
	case "remove":
		symbols, err := a.Watchlist.Remove(ctx, args[1:]...)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to update watchlist: %v\n", err)
			return 1
		}
		printWatchlist(symbols)
	case "list":
		symbols, err := a.Watchlist.List(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to read watchlist: %v\n", err)
			return 1
		}
		printWatchlist(symbols)
	case "clear":
		if err := a.Watchlist.Clear(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to clear watchlist: %v\n", err)
			return 1
		}
		fmt.Println("Watchlist cleared")
	case "run":
		err := a.Watch(ctx, func(results []*models.Analysis) {
			fmt.Printf("\n--- watchlist at %s ---\n", nowStamp())
			printAnalyses(results)
		})
		if err != nil && err != context.Canceled {
			fmt.Fprintf(os.Stderr, "Watch failed: %v\n", err)
			return 1
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown watch command %q\n", args[0])
		return 2
	}
	return 0
}

func runCache(a *app.App, args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "cache requires a subcommand: stats, sweep")
		return 2
	}

	switch args[0] {
	case "stats":
		stats := a.Cache.Stats()
		fmt.Printf("metadata: %d entries\nhistory:  %d entries\nbatch:    %d entries\n",
			stats.MetadataEntries, stats.HistoryEntries, stats.BatchEntries)
	case "sweep":
		removed := a.Cache.SweepExpired()
		fmt.Printf("removed %d expired entries\n", removed)
	default:
		fmt.Fprintf(os.Stderr, "unknown cache command %q\n", args[0])
		return 2
	}
	return 0
}
