package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/iamdhruvsharma3/arbitrage/engine"
)

func TestDefaultIsValid(t *testing.T) {
	t.Parallel()

	cfg := Default()
	assert.NoError(t, cfg.Validate())

	assert.Equal(t, "NIFTY", cfg.Trading.Instrument)
	assert.Equal(t, 50, cfg.Instrument().LotSize)

	p := cfg.Policy()
	assert.InDelta(t, 10000, p.StartingCapital, 1e-9)
	assert.InDelta(t, 1000, p.CapitalPerTrade(), 1e-9)
	assert.Equal(t, 50, p.LotSize)

	rule, err := cfg.ExitRule()
	assert.NoError(t, err)
	assert.Equal(t, 5*time.Minute, rule.MaxDuration)
	assert.InDelta(t, 10, rule.ExitThreshold, 1e-9)
}

func TestLoadFromYAML(t *testing.T) {
	t.Parallel()

	yml := `
risk:
  starting_capital: 25000
  capital_per_trade_pct: 0.05
  max_open_positions: 1
  max_trades_per_day: 5
  max_position_size: 1
  max_margin_usage: 0.5
  disable_after_loss: false
trading:
  instrument: NIFTY
  cost_per_leg: 4
  min_profit: 3
  exit_threshold: 8
  max_trade_duration: 10m
  settlement: convergence
  update_interval: 1s
feed:
  type: replay
  file: ticks.csv
journal:
  type: none
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	assert.NoError(t, os.WriteFile(path, []byte(yml), 0o644))

	cfg, err := LoadFromFile(path)
	assert.NoError(t, err)

	assert.InDelta(t, 25000, cfg.Risk.StartingCapital, 1e-9)
	assert.False(t, cfg.Risk.DisableAfterLoss)
	assert.Equal(t, "convergence", cfg.Trading.Settlement)
	assert.Equal(t, "replay", cfg.Feed.Type)
	assert.Equal(t, "ticks.csv", cfg.Feed.File)
	assert.Equal(t, "none", cfg.Journal.Type)

	// unset sections keep their defaults
	assert.Equal(t, "info", cfg.Logging.Level)

	iv, err := cfg.UpdateInterval()
	assert.NoError(t, err)
	assert.Equal(t, time.Second, iv)
}

func TestLoadFromJSON(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Trading.Settlement = string(engine.SettleConvergence)

	path := filepath.Join(t.TempDir(), "config.json")
	assert.NoError(t, cfg.SaveToFile(path))

	loaded, err := LoadFromFile(path)
	assert.NoError(t, err)
	assert.Equal(t, string(engine.SettleConvergence), loaded.Trading.Settlement)
	assert.InDelta(t, cfg.Risk.StartingCapital, loaded.Risk.StartingCapital, 1e-9)
}

func TestValidateRejections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"zero capital", func(c *Config) { c.Risk.StartingCapital = 0 }, "starting_capital"},
		{"pct too high", func(c *Config) { c.Risk.CapitalPerTradePct = 1.5 }, "capital_per_trade_pct"},
		{"multi position", func(c *Config) { c.Risk.MaxOpenPositions = 2 }, "max_open_positions"},
		{"zero daily", func(c *Config) { c.Risk.MaxTradesPerDay = 0 }, "max_trades_per_day"},
		{"margin out of range", func(c *Config) { c.Risk.MaxMarginUsage = 0 }, "max_margin_usage"},
		{"unknown instrument", func(c *Config) { c.Trading.Instrument = "BANKNIFTY" }, "unknown instrument"},
		{"negative cost", func(c *Config) { c.Trading.CostPerLeg = -1 }, "cost_per_leg"},
		{"zero min profit", func(c *Config) { c.Trading.MinProfit = 0 }, "min_profit"},
		{"zero exit threshold", func(c *Config) { c.Trading.ExitThreshold = 0 }, "exit_threshold"},
		{"bad settlement", func(c *Config) { c.Trading.Settlement = "half" }, "settlement"},
		{"bad duration", func(c *Config) { c.Trading.MaxTradeDuration = "soon" }, "max_trade_duration"},
		{"bad interval", func(c *Config) { c.Trading.UpdateInterval = "" }, "update_interval"},
		{"bad feed type", func(c *Config) { c.Feed.Type = "carrier-pigeon" }, "feed.type"},
		{"replay without file", func(c *Config) { c.Feed.Type = "replay" }, "feed.file"},
		{"stream without url", func(c *Config) { c.Feed.Type = "stream" }, "stream_url"},
		{"bad journal type", func(c *Config) { c.Journal.Type = "parquet" }, "journal.type"},
		{"csv journal without files", func(c *Config) { c.Journal.Type = "csv" }, "trades_file"},
		{"sqlite without path", func(c *Config) { c.Journal.DBPath = "" }, "db_path"},
		{"server without addr", func(c *Config) { c.Server.Enabled = true; c.Server.Addr = "" }, "server.addr"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.wantErr)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "read config file")
}
