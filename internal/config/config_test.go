package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, DefaultTickers, cfg.Tickers)
	assert.Equal(t, 100, cfg.LookbackDays)
	assert.Equal(t, 10, cfg.Indicators.ShortWindow)
	assert.Equal(t, 20, cfg.Indicators.LongWindow)
	assert.Equal(t, 14, cfg.Indicators.RSIPeriod)
	assert.Equal(t, 10, cfg.Indicators.VolumeWindow)
	assert.Equal(t, 500*time.Millisecond, cfg.DataSource.RequestInterval)
	assert.Equal(t, "charts", cfg.Chart.OutputDir)
}

func TestLoad_YAML(t *testing.T) {
	path := writeConfig(t, `
tickers: [tsla, " nvda "]
lookback_days: 30
indicators:
  short_window: 5
  rsi_period: 7
data_source:
  base_url: http://bars.local
  request_interval: 2s
chart:
  output_dir: out
  width: 800
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, []string{"TSLA", "NVDA"}, cfg.Tickers)
	assert.Equal(t, 30, cfg.LookbackDays)
	assert.Equal(t, 5, cfg.Indicators.ShortWindow)
	assert.Equal(t, 20, cfg.Indicators.LongWindow)
	assert.Equal(t, 7, cfg.Indicators.RSIPeriod)
	assert.Equal(t, "http://bars.local", cfg.DataSource.BaseURL)
	assert.Equal(t, 2*time.Second, cfg.DataSource.RequestInterval)
	assert.Equal(t, "out", cfg.Chart.OutputDir)
	assert.Equal(t, 800, cfg.Chart.Width)
	assert.Equal(t, 900, cfg.Chart.Height)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "tickers: [AAPL]\nlookback_days: 30\n")
	t.Setenv("STOCKPERF_TICKERS", "JPM,MSFT")
	t.Setenv("STOCKPERF_LOOKBACK_DAYS", "60")
	t.Setenv("STOCKPERF_INDICATORS_LONG_WINDOW", "50")
	t.Setenv("STOCKPERF_DATA_SOURCE_API_KEY", "k")
	t.Setenv("HTTPS_PROXY", "http://proxy.local:3128")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"JPM", "MSFT"}, cfg.Tickers)
	assert.Equal(t, 60, cfg.LookbackDays)
	assert.Equal(t, 50, cfg.Indicators.LongWindow)
	assert.Equal(t, "k", cfg.DataSource.APIKey)
	assert.Equal(t, "http://proxy.local:3128", cfg.Proxy)
}

func TestLoad_IgnoresUnprefixedEnv(t *testing.T) {
	path := writeConfig(t, "data_source:\n  api_key: from-file\n")
	t.Setenv("API_KEY", "unrelated-secret")
	t.Setenv("BASE_URL", "http://elsewhere.local")
	t.Setenv("WIDTH", "-5")
	t.Setenv("TICKERS", "FOO")
	t.Setenv("OUTPUT_DIR", "/tmp/elsewhere")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "from-file", cfg.DataSource.APIKey)
	assert.Empty(t, cfg.DataSource.BaseURL)
	assert.Equal(t, 1600, cfg.Chart.Width)
	assert.Equal(t, DefaultTickers, cfg.Tickers)
	assert.Equal(t, "charts", cfg.Chart.OutputDir)
}

func TestLoad_SplitWordKeys(t *testing.T) {
	t.Setenv("STOCKPERF_INDICATORS_RSI_PERIOD", "9")
	t.Setenv("STOCKPERF_DATA_SOURCE_BASE_URL", "http://bars.local")
	t.Setenv("STOCKPERF_CHART_OUTPUT_DIR", "out")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.Indicators.RSIPeriod)
	assert.Equal(t, "http://bars.local", cfg.DataSource.BaseURL)
	assert.Equal(t, "out", cfg.Chart.OutputDir)
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "tickers: [unclosed"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	bad := *cfg
	bad.LookbackDays = -1
	assert.Error(t, bad.Validate())

	bad = *cfg
	bad.Indicators.RSIPeriod = -2
	assert.Error(t, bad.Validate())

	bad = *cfg
	bad.Chart.Width = -1
	assert.Error(t, bad.Validate())

	bad = *cfg
	bad.Tickers = nil
	assert.Error(t, bad.Validate())
}

func TestParams(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	p := cfg.Params()
	assert.Equal(t, 10, p.ShortWindow)
	assert.Equal(t, 20, p.LongWindow)
	assert.Equal(t, 14, p.RSIPeriod)
	assert.Equal(t, 10, p.VolumeWindow)
}
