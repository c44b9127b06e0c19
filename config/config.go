// Package config loads the bot configuration from YAML or JSON. It is read
// once at startup and treated as immutable afterwards.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/iamdhruvsharma3/arbitrage/engine"
	"github.com/iamdhruvsharma3/arbitrage/market"
	"github.com/iamdhruvsharma3/arbitrage/risk"
)

// Config represents the complete bot configuration
type Config struct {
	Risk    RiskConfig    `json:"risk" yaml:"risk"`
	Trading TradingConfig `json:"trading" yaml:"trading"`
	Feed    FeedConfig    `json:"feed" yaml:"feed"`
	Journal JournalConfig `json:"journal" yaml:"journal"`
	Server  ServerConfig  `json:"server" yaml:"server"`
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

// RiskConfig contains the capital and safety limits
type RiskConfig struct {
	StartingCapital    float64 `json:"starting_capital" yaml:"starting_capital"`
	CapitalPerTradePct float64 `json:"capital_per_trade_pct" yaml:"capital_per_trade_pct"`
	MaxOpenPositions   int     `json:"max_open_positions" yaml:"max_open_positions"`
	MaxTradesPerDay    int     `json:"max_trades_per_day" yaml:"max_trades_per_day"`
	MaxPositionSize    int     `json:"max_position_size" yaml:"max_position_size"`
	MaxMarginUsage     float64 `json:"max_margin_usage" yaml:"max_margin_usage"`
	DisableAfterLoss   bool    `json:"disable_after_loss" yaml:"disable_after_loss"`
}

// TradingConfig contains the detection and lifecycle parameters
type TradingConfig struct {
	Instrument       string  `json:"instrument" yaml:"instrument"`
	CostPerLeg       float64 `json:"cost_per_leg" yaml:"cost_per_leg"`
	MinProfit        float64 `json:"min_profit" yaml:"min_profit"`
	ExitThreshold    float64 `json:"exit_threshold" yaml:"exit_threshold"`
	MaxTradeDuration string  `json:"max_trade_duration" yaml:"max_trade_duration"` // e.g. "5m"
	Settlement       string  `json:"settlement" yaml:"settlement"`                 // "full" or "convergence"
	UpdateInterval   string  `json:"update_interval" yaml:"update_interval"`       // e.g. "3s"
}

// FeedConfig selects and parameterizes the snapshot source
type FeedConfig struct {
	Type      string `json:"type" yaml:"type"` // "sim", "replay", "broker" or "stream"
	Seed      int64  `json:"seed,omitempty" yaml:"seed,omitempty"`
	File      string `json:"file,omitempty" yaml:"file,omitempty"`
	StreamURL string `json:"stream_url,omitempty" yaml:"stream_url,omitempty"`
	MaxAge    string `json:"max_age,omitempty" yaml:"max_age,omitempty"`
}

// JournalConfig contains the persistence parameters
type JournalConfig struct {
	Type         string `json:"type" yaml:"type"` // "none", "csv" or "sqlite"
	TradesFile   string `json:"trades_file,omitempty" yaml:"trades_file,omitempty"`
	SessionsFile string `json:"sessions_file,omitempty" yaml:"sessions_file,omitempty"`
	DBPath       string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// ServerConfig controls the status HTTP endpoint
type ServerConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Addr    string `json:"addr,omitempty" yaml:"addr,omitempty"`
}

// LoggingConfig controls the audit-trail renderer
type LoggingConfig struct {
	Level  string `json:"level" yaml:"level"`   // logrus level name
	Format string `json:"format" yaml:"format"` // "text" or "json"
}

// LoadFromFile loads configuration from a file (JSON or YAML based on content)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jerr := json.Unmarshal(data, cfg); jerr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Risk.StartingCapital <= 0 {
		return fmt.Errorf("risk.starting_capital must be positive")
	}
	if c.Risk.CapitalPerTradePct <= 0 || c.Risk.CapitalPerTradePct > 1 {
		return fmt.Errorf("risk.capital_per_trade_pct must be between 0 and 1")
	}
	if c.Risk.MaxOpenPositions != 1 {
		return fmt.Errorf("risk.max_open_positions must be 1, one position at a time")
	}
	if c.Risk.MaxTradesPerDay < 1 {
		return fmt.Errorf("risk.max_trades_per_day must be at least 1")
	}
	if c.Risk.MaxPositionSize < 1 {
		return fmt.Errorf("risk.max_position_size must be at least 1")
	}
	if c.Risk.MaxMarginUsage <= 0 || c.Risk.MaxMarginUsage > 1 {
		return fmt.Errorf("risk.max_margin_usage must be between 0 and 1")
	}

	if _, ok := market.Instruments[c.Trading.Instrument]; !ok {
		return fmt.Errorf("unknown instrument: %s", c.Trading.Instrument)
	}
	if c.Trading.CostPerLeg < 0 {
		return fmt.Errorf("trading.cost_per_leg must not be negative")
	}
	if c.Trading.MinProfit <= 0 {
		return fmt.Errorf("trading.min_profit must be positive")
	}
	if c.Trading.ExitThreshold <= 0 {
		return fmt.Errorf("trading.exit_threshold must be positive")
	}
	if !engine.Settlement(c.Trading.Settlement).Valid() {
		return fmt.Errorf("trading.settlement must be %q or %q", engine.SettleFull, engine.SettleConvergence)
	}
	if _, err := c.MaxTradeDuration(); err != nil {
		return fmt.Errorf("trading.max_trade_duration: %w", err)
	}
	if _, err := c.UpdateInterval(); err != nil {
		return fmt.Errorf("trading.update_interval: %w", err)
	}

	switch c.Feed.Type {
	case "sim":
	case "replay":
		if c.Feed.File == "" {
			return fmt.Errorf("feed.file required for replay feed")
		}
	case "broker":
		// credentials come from the environment, nothing to check here
	case "stream":
		if c.Feed.StreamURL == "" {
			return fmt.Errorf("feed.stream_url required for stream feed")
		}
	default:
		return fmt.Errorf("feed.type must be 'sim', 'replay', 'broker' or 'stream'")
	}

	switch c.Journal.Type {
	case "none":
	case "csv":
		if c.Journal.TradesFile == "" || c.Journal.SessionsFile == "" {
			return fmt.Errorf("journal trades_file and sessions_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	default:
		return fmt.Errorf("journal.type must be 'none', 'csv' or 'sqlite'")
	}

	if c.Server.Enabled && c.Server.Addr == "" {
		return fmt.Errorf("server.addr required when server is enabled")
	}
	return nil
}

// MaxTradeDuration parses the trading.max_trade_duration string
func (c *Config) MaxTradeDuration() (time.Duration, error) {
	return time.ParseDuration(c.Trading.MaxTradeDuration)
}

// UpdateInterval parses the trading.update_interval string
func (c *Config) UpdateInterval() (time.Duration, error) {
	return time.ParseDuration(c.Trading.UpdateInterval)
}

// MaxSnapshotAge parses feed.max_age, zero when unset
func (c *Config) MaxSnapshotAge() (time.Duration, error) {
	if c.Feed.MaxAge == "" {
		return 0, nil
	}
	return time.ParseDuration(c.Feed.MaxAge)
}

// Instrument returns the configured instrument metadata
func (c *Config) Instrument() market.InstrumentMeta {
	return market.Instruments[c.Trading.Instrument]
}

// Policy assembles the risk policy the gate evaluates against
func (c *Config) Policy() risk.Policy {
	return risk.Policy{
		StartingCapital:    c.Risk.StartingCapital,
		CapitalPerTradePct: c.Risk.CapitalPerTradePct,
		MaxOpenPositions:   c.Risk.MaxOpenPositions,
		MaxTradesPerDay:    c.Risk.MaxTradesPerDay,
		MaxPositionSize:    c.Risk.MaxPositionSize,
		MaxMarginUsage:     c.Risk.MaxMarginUsage,
		DisableAfterLoss:   c.Risk.DisableAfterLoss,
		CostPerLeg:         c.Trading.CostPerLeg,
		MinProfit:          c.Trading.MinProfit,
		LotSize:            c.Instrument().LotSize,
	}
}

// ExitRule assembles the lifecycle exit limits
func (c *Config) ExitRule() (engine.ExitRule, error) {
	maxDur, err := c.MaxTradeDuration()
	if err != nil {
		return engine.ExitRule{}, err
	}
	return engine.ExitRule{
		ExitThreshold:   c.Trading.ExitThreshold,
		MaxDuration:     maxDur,
		MaxMarginUsage:  c.Risk.MaxMarginUsage,
		StartingCapital: c.Risk.StartingCapital,
	}, nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Risk: RiskConfig{
			StartingCapital:    10000,
			CapitalPerTradePct: 0.10,
			MaxOpenPositions:   1,
			MaxTradesPerDay:    3,
			MaxPositionSize:    1,
			MaxMarginUsage:     0.80,
			DisableAfterLoss:   true,
		},
		Trading: TradingConfig{
			Instrument:       "NIFTY",
			CostPerLeg:       5,
			MinProfit:        2,
			ExitThreshold:    10,
			MaxTradeDuration: "5m",
			Settlement:       string(engine.SettleFull),
			UpdateInterval:   "3s",
		},
		Feed: FeedConfig{
			Type: "sim",
			Seed: 1,
		},
		Journal: JournalConfig{
			Type:   "sqlite",
			DBPath: "./arbbot.db",
		},
		Server: ServerConfig{
			Enabled: false,
			Addr:    ":8087",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
