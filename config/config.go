package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/courtside/sim"
	"github.com/rustyeddy/courtside/strategy"
	"github.com/rustyeddy/courtside/tuning"
)

var ErrInvalid = errors.New("invalid config")

// Config is everything one courtside session needs.
type Config struct {
	Account  sim.Config      `json:"account" yaml:"account"`
	Strategy strategy.Params `json:"strategy" yaml:"strategy"`
	Backtest BacktestConfig  `json:"backtest" yaml:"backtest"`
	Tune     TuneConfig      `json:"tune" yaml:"tune"`
	Live     LiveConfig      `json:"live" yaml:"live"`
	Journal  JournalConfig   `json:"journal" yaml:"journal"`
	Log      LogConfig       `json:"log" yaml:"log"`
}

// BacktestConfig names the recorded game to replay.
type BacktestConfig struct {
	Dataset string `json:"dataset,omitempty" yaml:"dataset,omitempty"`
	Format  string `json:"format,omitempty" yaml:"format,omitempty"` // "json" or "csv"; empty picks by extension
}

type TuneConfig struct {
	Grid    tuning.Grid `json:"grid" yaml:"grid"`
	Workers int         `json:"workers" yaml:"workers"`
	SortBy  string      `json:"sort_by" yaml:"sort_by"`
}

// LiveConfig points a live session at a websocket feed.
type LiveConfig struct {
	URL            string `json:"url,omitempty" yaml:"url,omitempty"`
	ReadTimeout    string `json:"read_timeout,omitempty" yaml:"read_timeout,omitempty"`       // e.g. "30s"
	StatusInterval string `json:"status_interval,omitempty" yaml:"status_interval,omitempty"` // e.g. "10s"
}

func (l LiveConfig) ReadTimeoutDuration() (time.Duration, error) {
	return parseDuration(l.ReadTimeout)
}

func (l LiveConfig) StatusIntervalDuration() (time.Duration, error) {
	return parseDuration(l.StatusInterval)
}

func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	return time.ParseDuration(s)
}

type JournalConfig struct {
	Type   string `json:"type" yaml:"type"` // "none", "csv" or "sqlite"
	Dir    string `json:"dir,omitempty" yaml:"dir,omitempty"`
	DBPath string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

type LogConfig struct {
	Level string `json:"level" yaml:"level"`
}

// Default returns the reference configuration.
func Default() *Config {
	return &Config{
		Account:  sim.DefaultConfig(),
		Strategy: strategy.DefaultParams(),
		Tune: TuneConfig{
			Grid:   tuning.DefaultGrid(),
			SortBy: "pnl",
		},
		Live: LiveConfig{
			ReadTimeout:    "60s",
			StatusInterval: "10s",
		},
		Journal: JournalConfig{
			Type:   "sqlite",
			DBPath: "./courtside.sqlite",
		},
		Log: LogConfig{Level: "info"},
	}
}

// Params returns the engine parameters. Sizing capital and the opening
// market price always come from the account section.
func (c *Config) Params() strategy.Params {
	p := c.Strategy
	p.Capital = c.Account.Capital
	p.InitialMarketPrice = c.Account.InitialPrice
	return p
}

// LoadFromFile reads path (YAML, falling back to JSON), applies environment
// overrides and validates the result. Sections missing from the file keep
// their defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		cfg = Default()
		if jerr := json.Unmarshal(data, cfg); jerr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", jerr)
		}
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveToFile writes YAML for .yaml/.yml paths and indented JSON otherwise.
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Environment overrides, read after an optional .env file.
const (
	EnvLogLevel  = "COURTSIDE_LOG_LEVEL"
	EnvJournalDB = "COURTSIDE_JOURNAL_DB"
	EnvCapital   = "COURTSIDE_CAPITAL"
	EnvFeedURL   = "COURTSIDE_FEED_URL"
)

// ApplyEnv loads .env from the working directory if there is one and lets
// COURTSIDE_* variables override the file.
func (c *Config) ApplyEnv() error {
	_ = godotenv.Load()

	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(EnvJournalDB); v != "" {
		c.Journal.Type = "sqlite"
		c.Journal.DBPath = v
	}
	if v := os.Getenv(EnvCapital); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a number", ErrInvalid, EnvCapital, v)
		}
		c.Account.Capital = f
	}
	if v := os.Getenv(EnvFeedURL); v != "" {
		c.Live.URL = v
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// Validate checks ranges. Every error wraps ErrInvalid.
func (c *Config) Validate() error {
	a := c.Account
	if a.Capital <= 0 {
		return invalid("account.capital must be positive")
	}
	if a.TrailingStopPct < 0 || a.TrailingStopPct >= 1 {
		return invalid("account.trailing_stop_pct must be in [0, 1)")
	}
	if a.InitialPrice <= 0 || a.InitialPrice > 100 {
		return invalid("account.initial_market_price must be in (0, 100]")
	}

	s := c.Strategy
	if s.Instrument == "" {
		return invalid("strategy.instrument is required")
	}
	if s.Alpha < 0 || s.Beta < 0 {
		return invalid("strategy.alpha and strategy.beta must not be negative")
	}
	if s.RecentWindow <= 0 {
		return invalid("strategy.recent_events must be positive")
	}
	if s.CooldownSeconds < 0 {
		return invalid("strategy.cooldown_seconds must not be negative")
	}
	if s.GameLength <= 0 {
		return invalid("strategy.game_length must be positive")
	}
	r := s.Risk
	if r.MaxExposurePct <= 0 || r.MaxExposurePct > 1 {
		return invalid("strategy.risk.max_exposure_pct must be in (0, 1]")
	}
	if r.MinGap < 0 || r.BaseGap < r.MinGap {
		return invalid("strategy.risk gaps need 0 <= min_gap <= base_gap")
	}
	if r.MinTradeSize < 0 {
		return invalid("strategy.risk.min_trade_size must not be negative")
	}
	if r.ShockThreshold < 0 {
		return invalid("strategy.risk.stop_loss_shock_threshold must not be negative")
	}

	switch c.Backtest.Format {
	case "", "json", "csv":
	default:
		return invalid("backtest.format must be 'json' or 'csv'")
	}
	if c.Tune.Workers < 0 {
		return invalid("tune.workers must not be negative")
	}
	switch c.Tune.SortBy {
	case "", "pnl", "sharpe", "final_value", "max_drawdown":
	default:
		return invalid("unknown tune.sort_by %q", c.Tune.SortBy)
	}
	if _, err := c.Live.ReadTimeoutDuration(); err != nil {
		return invalid("live.read_timeout: %v", err)
	}
	if _, err := c.Live.StatusIntervalDuration(); err != nil {
		return invalid("live.status_interval: %v", err)
	}

	switch c.Journal.Type {
	case "", "none":
	case "csv":
		if c.Journal.Dir == "" {
			return invalid("journal.dir required for csv type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return invalid("journal.db_path required for sqlite type")
		}
	default:
		return invalid("journal.type must be 'none', 'csv' or 'sqlite'")
	}

	switch strings.ToLower(strings.TrimSpace(c.Log.Level)) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return invalid("unknown log.level %q", c.Log.Level)
	}
	return nil
}
