package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NotNil(t, cfg)
	assert.Equal(t, 100_000.0, cfg.Account.Capital)
	assert.Equal(t, 0.10, cfg.Account.TrailingStopPct)
	assert.Equal(t, "TEAM_A", cfg.Strategy.Instrument)
	assert.Equal(t, 0.2, cfg.Strategy.Risk.MaxExposurePct)
	assert.Equal(t, "sqlite", cfg.Journal.Type)
	assert.NoError(t, cfg.Validate())
}

func TestParamsTakeAccountValues(t *testing.T) {
	cfg := Default()
	cfg.Account.Capital = 5000
	cfg.Account.InitialPrice = 62
	cfg.Strategy.Capital = 1

	p := cfg.Params()
	assert.Equal(t, 5000.0, p.Capital)
	assert.Equal(t, 62.0, p.InitialMarketPrice)
	assert.Equal(t, 1.0, cfg.Strategy.Capital)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		errMsg string
	}{
		{"valid config", func(c *Config) {}, ""},
		{"zero capital", func(c *Config) { c.Account.Capital = 0 }, "account.capital must be positive"},
		{"trailing stop of one", func(c *Config) { c.Account.TrailingStopPct = 1 }, "account.trailing_stop_pct"},
		{"negative trailing stop", func(c *Config) { c.Account.TrailingStopPct = -0.1 }, "account.trailing_stop_pct"},
		{"trailing stop off", func(c *Config) { c.Account.TrailingStopPct = 0 }, ""},
		{"price over 100", func(c *Config) { c.Account.InitialPrice = 101 }, "account.initial_market_price"},
		{"price of zero", func(c *Config) { c.Account.InitialPrice = 0 }, "account.initial_market_price"},
		{"price of 100", func(c *Config) { c.Account.InitialPrice = 100 }, ""},
		{"no instrument", func(c *Config) { c.Strategy.Instrument = "" }, "strategy.instrument is required"},
		{"negative beta", func(c *Config) { c.Strategy.Beta = -1 }, "must not be negative"},
		{"empty window", func(c *Config) { c.Strategy.RecentWindow = 0 }, "strategy.recent_events"},
		{"exposure over one", func(c *Config) { c.Strategy.Risk.MaxExposurePct = 1.5 }, "max_exposure_pct"},
		{"min gap above base", func(c *Config) { c.Strategy.Risk.MinGap = 2 }, "min_gap <= base_gap"},
		{"shock threshold of zero", func(c *Config) { c.Strategy.Risk.ShockThreshold = 0 }, ""},
		{"negative shock threshold", func(c *Config) { c.Strategy.Risk.ShockThreshold = -0.1 }, "stop_loss_shock_threshold"},
		{"bad format", func(c *Config) { c.Backtest.Format = "xml" }, "backtest.format"},
		{"bad sort key", func(c *Config) { c.Tune.SortBy = "luck" }, "tune.sort_by"},
		{"bad timeout", func(c *Config) { c.Live.ReadTimeout = "soon" }, "live.read_timeout"},
		{"csv without dir", func(c *Config) { c.Journal = JournalConfig{Type: "csv"} }, "journal.dir"},
		{"sqlite without path", func(c *Config) { c.Journal.DBPath = "" }, "journal.db_path"},
		{"unknown journal", func(c *Config) { c.Journal.Type = "postgres" }, "journal.type"},
		{"no journal", func(c *Config) { c.Journal = JournalConfig{Type: "none"} }, ""},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalid)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestSaveAndLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "courtside.yaml")

	cfg := Default()
	cfg.Strategy.Alpha = 0.8
	cfg.Tune.Grid.Windows = []int{4, 6}
	require.NoError(t, cfg.SaveToFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "max_exposure_pct: 0.2")
	assert.Contains(t, string(data), "recent_events: 8")

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestSaveAndLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "courtside.json")

	cfg := Default()
	cfg.Journal = JournalConfig{Type: "csv", Dir: "out"}
	require.NoError(t, cfg.SaveToFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"trailing_stop_pct": 0.1`)

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "csv", loaded.Journal.Type)
	assert.Equal(t, "out", loaded.Journal.Dir)
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("strategy:\n  alpha: 0.9\nlog:\n  level: debug\n"), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 0.9, cfg.Strategy.Alpha)
	assert.Equal(t, 0.5, cfg.Strategy.Beta)
	assert.Equal(t, 100_000.0, cfg.Account.Capital)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFromFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("account: [\n"), 0o644))
	_, err = LoadFromFile(bad)
	assert.ErrorContains(t, err, "parse config")

	invalidCfg := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalidCfg, []byte("account:\n  capital: -5\n"), 0o644))
	_, err = LoadFromFile(invalidCfg)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvLogLevel, "warn")
	t.Setenv(EnvJournalDB, "/tmp/runs.sqlite")
	t.Setenv(EnvCapital, "2500.5")
	t.Setenv(EnvFeedURL, "ws://localhost:9000/feed")

	cfg := Default()
	cfg.Journal = JournalConfig{Type: "none"}
	require.NoError(t, cfg.ApplyEnv())

	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, JournalConfig{Type: "sqlite", DBPath: "/tmp/runs.sqlite"}, cfg.Journal)
	assert.Equal(t, 2500.5, cfg.Account.Capital)
	assert.Equal(t, "ws://localhost:9000/feed", cfg.Live.URL)
}

func TestApplyEnvBadCapital(t *testing.T) {
	t.Setenv(EnvCapital, "lots")
	err := Default().ApplyEnv()
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestLiveDurations(t *testing.T) {
	l := LiveConfig{ReadTimeout: "1m30s"}
	d, err := l.ReadTimeoutDuration()
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, d)

	d, err = l.StatusIntervalDuration()
	require.NoError(t, err)
	assert.Zero(t, d)
}
