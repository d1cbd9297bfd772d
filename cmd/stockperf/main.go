package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"

	"StockPerf/internal/collector"
	"StockPerf/internal/config"
	"StockPerf/internal/model"
	"StockPerf/internal/pipeline"
	"StockPerf/internal/plot"
)

var rootCmd = &cobra.Command{
	Use:          "stockperf",
	Short:        "Fetch daily bars, compute moving averages and RSI, and render charts",
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	rootCmd.PersistentFlags().String("config", cfgPath, "config file path")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.Flags().Int("head", 5, "number of enriched rows to print before the summary")
	rootCmd.Flags().Bool("mock", false, "use generated bars instead of a live data source")
}

func run(cmd *cobra.Command, _ []string) error {
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		log.SetLevel(log.DebugLevel)
	}
	cfgPath, _ := cmd.Flags().GetString("config")
	head, _ := cmd.Flags().GetInt("head")

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	mock, _ := cmd.Flags().GetBool("mock")
	now := time.Now()

	var fetcher collector.Fetcher
	switch {
	case mock:
		fetcher = mockFetcher(cfg.Tickers, cfg.LookbackDays, now)
	case cfg.DataSource.BaseURL != "":
		fetcher = collector.NewRESTFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy)
	default:
		fetcher = collector.NewYahooFetcher(cfg.Proxy)
	}
	log.Infof("data source: %s", fetcher.Name())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	params := cfg.Params()
	p := &pipeline.Pipeline{
		Collector:    collector.NewCollector(fetcher, cfg.Tickers, cfg.DataSource.RequestInterval),
		Params:       params,
		Renderer:     plot.NewRenderer(cfg.Chart.OutputDir, cfg.Chart.Width, cfg.Chart.Height, params),
		Out:          cmd.OutOrStdout(),
		LookbackDays: cfg.LookbackDays,
		HeadRows:     head,
	}
	res, err := p.Run(ctx, now)
	if err != nil {
		return err
	}
	log.Infof("%d charts written to %s", len(res.Charts), cfg.Chart.OutputDir)
	return nil
}

func mockFetcher(tickers []string, days int, now time.Time) *collector.MockFetcher {
	m := &collector.MockFetcher{Bars: make(map[string][]model.OHLCV, len(tickers))}
	for i, t := range tickers {
		m.Bars[t] = collector.GenerateMockBars(100+float64(i)*50, days, now)
	}
	return m
}

func main() {
	log.SetFormatter(&prefixed.TextFormatter{FullTimestamp: true})
	if err := rootCmd.Execute(); err != nil {
		log.WithError(err).Fatal("stockperf failed")
	}
}
