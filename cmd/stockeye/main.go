package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/stockeye/stockeye/internal/app"
	"github.com/stockeye/stockeye/internal/common"
)

const usage = `stockeye - cached stock screener and rating engine

Usage:
  stockeye analyze SYMBOL [SYMBOL...]      analyze symbols (no args: watchlist)
  stockeye scan COMMAND --index INDEX      scan a universe
      strong-buys                          symbols rated BUY or better
      fundamentals                         fundamentally strong symbols
      value                                strong symbols trading cheap
      mos [--min-margin N]                 Graham margin-of-safety scan
  stockeye watch add|remove SYMBOL...      manage the watchlist
  stockeye watch list|clear
  stockeye watch run                       rerun watchlist on a schedule
  stockeye cache stats|sweep               inspect the market data cache
  stockeye version

Configuration is read from stockeye.toml (or STOCKEYE_CONFIG), with
STOCKEYE_* environment variables taking precedence.
`

func main() {
	// A local .env can carry STOCKEYE_* overrides.
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if os.Args[1] == "version" {
		fmt.Println("stockeye", common.GetFullVersion())
		return
	}

	configPath := os.Getenv("STOCKEYE_CONFIG")
	if configPath == "" {
		configPath = "stockeye.toml"
	}
	cfg, err := common.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	a, err := app.NewApp(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	ctx, cancel := signalContext()
	defer cancel()

	exit := 0
	switch os.Args[1] {
	case "analyze":
		exit = runAnalyze(ctx, a, os.Args[2:])
	case "scan":
		exit = runScan(ctx, a, os.Args[2:])
	case "watch":
		exit = runWatch(ctx, a, os.Args[2:])
	case "cache":
		exit = runCache(a, os.Args[2:])
	default:
		fmt.Fprint(os.Stderr, usage)
		exit = 2
	}

	if err := a.Close(); err != nil {
		exit = 1
	}
	os.Exit(exit)
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// scanFlags parses the flags shared by the scan subcommands.
func scanFlags(name string, args []string) (index string, minMargin float64, err error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&index, "index", "", "universe index name")
	fs.Float64Var(&minMargin, "min-margin", 25, "minimum margin of safety percent")
	err = fs.Parse(args)
	return
}
