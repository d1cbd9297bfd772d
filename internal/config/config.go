package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"StockPerf/internal/calculator"
)

// EnvPrefix is the prefix of environment overrides, e.g. STOCKPERF_TICKERS.
const EnvPrefix = "STOCKPERF"

// DefaultTickers is the ticker set analysed when none is configured.
var DefaultTickers = []string{"GOOGL", "AMZN", "AAPL", "MSFT", "JPM"}

// Config holds all application configuration. Environment keys are always
// prefixed, e.g. STOCKPERF_DATA_SOURCE_API_KEY; only the proxy also honours
// the plain HTTPS_PROXY.
type Config struct {
	Tickers      []string `yaml:"tickers" split_words:"true"`
	LookbackDays int      `yaml:"lookback_days" split_words:"true"`
	Indicators   struct {
		ShortWindow  int `yaml:"short_window" split_words:"true"`
		LongWindow   int `yaml:"long_window" split_words:"true"`
		RSIPeriod    int `yaml:"rsi_period" split_words:"true"`
		VolumeWindow int `yaml:"volume_window" split_words:"true"`
	} `yaml:"indicators" split_words:"true"`
	DataSource struct {
		BaseURL         string        `yaml:"base_url" split_words:"true"`
		APIKey          string        `yaml:"api_key" split_words:"true"`
		RequestInterval time.Duration `yaml:"request_interval" split_words:"true"`
	} `yaml:"data_source" split_words:"true"`
	Chart struct {
		OutputDir string `yaml:"output_dir" split_words:"true"`
		Width     int    `yaml:"width" split_words:"true"`
		Height    int    `yaml:"height" split_words:"true"`
	} `yaml:"chart" split_words:"true"`
	Proxy string `yaml:"proxy" envconfig:"HTTPS_PROXY"`
}

// Load reads config from a YAML file, then applies .env and environment
// variable overrides, then fills defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if len(data) > 0 {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("env overrides: %w", err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	tickers := c.Tickers[:0]
	for _, t := range c.Tickers {
		if t = strings.ToUpper(strings.TrimSpace(t)); t != "" {
			tickers = append(tickers, t)
		}
	}
	c.Tickers = tickers
	if len(c.Tickers) == 0 {
		c.Tickers = append([]string(nil), DefaultTickers...)
	}
	if c.LookbackDays == 0 {
		c.LookbackDays = 100
	}

	def := calculator.DefaultParams()
	if c.Indicators.ShortWindow == 0 {
		c.Indicators.ShortWindow = def.ShortWindow
	}
	if c.Indicators.LongWindow == 0 {
		c.Indicators.LongWindow = def.LongWindow
	}
	if c.Indicators.RSIPeriod == 0 {
		c.Indicators.RSIPeriod = def.RSIPeriod
	}
	if c.Indicators.VolumeWindow == 0 {
		c.Indicators.VolumeWindow = def.VolumeWindow
	}

	if c.DataSource.RequestInterval == 0 {
		c.DataSource.RequestInterval = 500 * time.Millisecond
	}
	if c.Chart.OutputDir == "" {
		c.Chart.OutputDir = "charts"
	}
	if c.Chart.Width == 0 {
		c.Chart.Width = 1600
	}
	if c.Chart.Height == 0 {
		c.Chart.Height = 900
	}
}

// Params returns the indicator windows as calculator parameters.
func (c *Config) Params() calculator.Params {
	return calculator.Params{
		ShortWindow:  c.Indicators.ShortWindow,
		LongWindow:   c.Indicators.LongWindow,
		RSIPeriod:    c.Indicators.RSIPeriod,
		VolumeWindow: c.Indicators.VolumeWindow,
	}
}

// Validate checks that all fields hold usable values.
func (c *Config) Validate() error {
	if len(c.Tickers) == 0 {
		return fmt.Errorf("tickers must not be empty")
	}
	if c.LookbackDays <= 0 {
		return fmt.Errorf("lookback_days must be positive")
	}
	if err := c.Params().Validate(); err != nil {
		return fmt.Errorf("indicators: %w", err)
	}
	if c.DataSource.RequestInterval < 0 {
		return fmt.Errorf("data_source.request_interval must not be negative")
	}
	if c.Chart.Width <= 0 || c.Chart.Height <= 0 {
		return fmt.Errorf("chart.width and chart.height must be positive")
	}
	return nil
}
