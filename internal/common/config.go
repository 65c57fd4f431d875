// Package common provides shared utilities for stockeye
package common

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for stockeye
type Config struct {
	Environment string          `toml:"environment"`
	Provider    ProviderConfig  `toml:"provider"`
	Cache       CacheConfig     `toml:"cache"`
	Indicators  IndicatorConfig `toml:"indicators"`
	Rating      RatingConfig    `toml:"rating"`
	Scheduler   SchedulerConfig `toml:"scheduler"`
	Paths       PathsConfig     `toml:"paths"`
	Logging     LoggingConfig   `toml:"logging"`
}

// ProviderConfig holds upstream market-data client configuration
type ProviderConfig struct {
	BaseURL   string `toml:"base_url"`
	RateLimit int    `toml:"rate_limit"` // requests per second
	Timeout   string `toml:"timeout"`
	UserAgent string `toml:"user_agent"`
}

// GetTimeout parses and returns the per-request timeout duration
func (c *ProviderConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// CacheConfig holds the market-data cache TTLs and disk location
type CacheConfig struct {
	Dir         string `toml:"dir"`
	MetadataTTL string `toml:"metadata_ttl"`
	HistoryTTL  string `toml:"history_ttl"`
}

// GetMetadataTTL parses the metadata table TTL, defaulting to 5 minutes
func (c *CacheConfig) GetMetadataTTL() time.Duration {
	d, err := time.ParseDuration(c.MetadataTTL)
	if err != nil {
		return 5 * time.Minute
	}
	return d
}

// GetHistoryTTL parses the history table TTL, defaulting to 1 minute
func (c *CacheConfig) GetHistoryTTL() time.Duration {
	d, err := time.ParseDuration(c.HistoryTTL)
	if err != nil {
		return time.Minute
	}
	return d
}

// IndicatorConfig holds the indicator windows and classification thresholds
type IndicatorConfig struct {
	Period           string  `toml:"period"` // default history lookback
	ShortDMA         int     `toml:"short_dma"`
	LongDMA          int     `toml:"long_dma"`
	RSIPeriod        int     `toml:"rsi_period"`
	RSIOversold      float64 `toml:"rsi_oversold"`
	RSIOverbought    float64 `toml:"rsi_overbought"`
	MACDFast         int     `toml:"macd_fast"`
	MACDSlow         int     `toml:"macd_slow"`
	MACDSignal       int     `toml:"macd_signal"`
	VolumePeriod     int     `toml:"volume_period"`
	VolumeHighRatio  float64 `toml:"volume_high_ratio"`
	VolumeLowRatio   float64 `toml:"volume_low_ratio"`
	BollingerPeriod  int     `toml:"bollinger_period"`
	BollingerStdDev  float64 `toml:"bollinger_std_dev"`
	SupertrendPeriod int     `toml:"supertrend_period"`
	SupertrendFactor float64 `toml:"supertrend_factor"`
	ADXPeriod        int     `toml:"adx_period"`
}

// RatingConfig toggles the contextual rating adjustments and names the
// symbols used to sample the broad market
type RatingConfig struct {
	UseVIX           bool         `toml:"use_vix"`
	UseCalendar      bool         `toml:"use_calendar"`
	UseRegime        bool         `toml:"use_regime"`
	VIXSymbol        string       `toml:"vix_symbol"`
	BenchmarkSymbol  string       `toml:"benchmark_symbol"`
	VIXHighThreshold float64      `toml:"vix_high_threshold"`
	VIXLowThreshold  float64      `toml:"vix_low_threshold"`
	WeakMonths       []time.Month `toml:"weak_months"`
}

// SchedulerConfig holds the cron schedules for background work
type SchedulerConfig struct {
	SweepSchedule string `toml:"sweep_schedule"` // cache expiry sweep
	WatchSchedule string `toml:"watch_schedule"` // watch-mode reanalysis
}

// PathsConfig holds file locations for user data
type PathsConfig struct {
	Watchlist string `toml:"watchlist"`
	Universe  string `toml:"universe"` // directory of <INDEX>.csv files
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Provider: ProviderConfig{
			BaseURL:   "https://query1.finance.yahoo.com",
			RateLimit: 5,
			Timeout:   "30s",
			UserAgent: "stockeye/1.0",
		},
		Cache: CacheConfig{
			Dir:         "data/cache",
			MetadataTTL: "5m",
			HistoryTTL:  "1m",
		},
		Indicators: IndicatorConfig{
			Period:           "1y",
			ShortDMA:         50,
			LongDMA:          200,
			RSIPeriod:        14,
			RSIOversold:      30,
			RSIOverbought:    70,
			MACDFast:         12,
			MACDSlow:         26,
			MACDSignal:       9,
			VolumePeriod:     20,
			VolumeHighRatio:  1.5,
			VolumeLowRatio:   0.5,
			BollingerPeriod:  20,
			BollingerStdDev:  2.0,
			SupertrendPeriod: 10,
			SupertrendFactor: 3.0,
			ADXPeriod:        14,
		},
		Rating: RatingConfig{
			UseVIX:           true,
			UseCalendar:      true,
			UseRegime:        true,
			VIXSymbol:        "^VIX",
			BenchmarkSymbol:  "^GSPC",
			VIXHighThreshold: 25,
			VIXLowThreshold:  12,
			WeakMonths:       []time.Month{time.September},
		},
		Scheduler: SchedulerConfig{
			SweepSchedule: "@every 1m",
			WatchSchedule: "",
		},
		Paths: PathsConfig{
			Watchlist: "data/watchlist.json",
			Universe:  "data/universe",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Load and merge each config file in order (later files override earlier)
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("STOCKEYE_ENV"); env != "" {
		config.Environment = env
	}

	if level := os.Getenv("STOCKEYE_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if url := os.Getenv("STOCKEYE_PROVIDER_URL"); url != "" {
		config.Provider.BaseURL = url
	}

	if rl := os.Getenv("STOCKEYE_RATE_LIMIT"); rl != "" {
		if n, err := strconv.Atoi(rl); err == nil && n > 0 {
			config.Provider.RateLimit = n
		}
	}

	if path := os.Getenv("STOCKEYE_DATA_PATH"); path != "" {
		config.Cache.Dir = filepath.Join(path, "cache")
		config.Paths.Watchlist = filepath.Join(path, "watchlist.json")
		config.Paths.Universe = filepath.Join(path, "universe")
	}

	if ttl := os.Getenv("STOCKEYE_METADATA_TTL"); ttl != "" {
		config.Cache.MetadataTTL = ttl
	}
	if ttl := os.Getenv("STOCKEYE_HISTORY_TTL"); ttl != "" {
		config.Cache.HistoryTTL = ttl
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
