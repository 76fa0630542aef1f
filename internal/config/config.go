package config

import (
	"time"

	"github.com/shopspring/decimal"
)

type Config struct {
	Node       NodeConfig     `mapstructure:"node"`
	Agent      AgentConfig    `mapstructure:"agent"`
	Wallet     WalletConfig   `mapstructure:"wallet"`
	Display    DisplayConfig  `mapstructure:"display"`
	Monitor    MonitorConfig  `mapstructure:"monitor"`
	Send       SendConfig     `mapstructure:"send"`
	Breaker    BreakerConfig  `mapstructure:"breaker"`
	Database   DatabaseConfig `mapstructure:"database"`
	Log        LogConfig      `mapstructure:"log"`
	ConfigPath string         `mapstructure:"-"`
}

type NodeConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type AgentConfig struct {
	URL string `mapstructure:"url"`
}

// WalletConfig describes the single asset this wallet sends. Fee is kept as a
// string so the yaml file round-trips it without float rounding.
type WalletConfig struct {
	Coin string `mapstructure:"coin"`
	Fee  string `mapstructure:"fee"`
}

type DisplayConfig struct {
	PageSize int `mapstructure:"page_size"`
}

type MonitorConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

type SendConfig struct {
	SettleDelay     time.Duration `mapstructure:"settle_delay"`
	VerifyRecipient bool          `mapstructure:"verify_recipient"`
}

type BreakerConfig struct {
	MaxRequests  uint32        `mapstructure:"max_requests"`
	Interval     time.Duration `mapstructure:"interval"`
	Timeout      time.Duration `mapstructure:"timeout"`
	FailureRatio float64       `mapstructure:"failure_ratio"`
	MinRequests  uint32        `mapstructure:"min_requests"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func NewDefault() *Config {
	return &Config{
		Node:    NodeConfig{URL: "http://127.0.0.1:12391", Timeout: 30 * time.Second},
		Agent:   AgentConfig{URL: "http://127.0.0.1:12391"},
		Wallet:  WalletConfig{Coin: "QORT", Fee: "0.011"},
		Display: DisplayConfig{PageSize: 5},
		Monitor: MonitorConfig{Interval: 60 * time.Second},
		Send:    SendConfig{SettleDelay: 3 * time.Second},
		Breaker: BreakerConfig{
			MaxRequests:  5,
			Interval:     30 * time.Second,
			Timeout:      60 * time.Second,
			FailureRatio: 0.8,
			MinRequests:  5,
		},
		Database: DatabaseConfig{Path: ""},
		Log:      LogConfig{Level: "warn", Format: "console"},
	}
}

// FeeAmount parses the configured network fee, falling back to zero when the
// value is malformed.
func (c *Config) FeeAmount() decimal.Decimal {
	fee, err := decimal.NewFromString(c.Wallet.Fee)
	if err != nil {
		return decimal.Zero
	}
	return fee
}
