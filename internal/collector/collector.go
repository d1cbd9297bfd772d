package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"StockPerf/internal/model"
)

var log = logrus.WithField("component", "collector")

// MockFetcher returns fixed data for development and testing.
type MockFetcher struct {
	Bars map[string][]model.OHLCV
	Err  map[string]error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(_ context.Context, symbol string, start, end time.Time) ([]model.OHLCV, error) {
	if err := m.Err[symbol]; err != nil {
		return nil, err
	}
	var bars []model.OHLCV
	for _, b := range m.Bars[symbol] {
		if inRange(b.Time, start, end) {
			bars = append(bars, b)
		}
	}
	return bars, nil
}

// GenerateMockBars builds count consecutive daily bars ending before end.
func GenerateMockBars(basePrice float64, count int, end time.Time) []model.OHLCV {
	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.OHLCV{
			Time:   end.AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}

func inRange(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}

// Collector fetches daily bars for a fixed ticker list into one table.
type Collector struct {
	Fetcher Fetcher
	Tickers []string
	Limiter *rate.Limiter
}

// NewCollector creates a Collector that waits at least interval between requests.
// A non-positive interval disables pacing.
func NewCollector(fetcher Fetcher, tickers []string, interval time.Duration) *Collector {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &Collector{
		Fetcher: fetcher,
		Tickers: tickers,
		Limiter: rate.NewLimiter(limit, 1),
	}
}

// Window returns the [now-days, now) range. start is the UTC midnight of
// its calendar day so the first day's bar is kept whatever the run time.
func Window(now time.Time, days int) (start, end time.Time) {
	y, m, d := now.AddDate(0, 0, -days).UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), now
}

// Collect fetches every ticker in order and flattens the bars into a table.
// Tickers without data in the range contribute no rows. Any fetch error
// aborts the collection.
func (c *Collector) Collect(ctx context.Context, start, end time.Time) (model.Table, error) {
	var table model.Table
	for _, ticker := range c.Tickers {
		if c.Limiter != nil {
			if err := c.Limiter.Wait(ctx); err != nil {
				return nil, fmt.Errorf("wait for %s: %w", ticker, err)
			}
		}

		bars, err := c.Fetcher.FetchDailyBars(ctx, ticker, start, end)
		if err != nil {
			return nil, fmt.Errorf("fetch %s from %s: %w", ticker, c.Fetcher.Name(), err)
		}

		n := 0
		for _, b := range bars {
			if !inRange(b.Time, start, end) {
				continue
			}
			table = append(table, model.Observation{Ticker: ticker, OHLCV: b})
			n++
		}
		if n == 0 {
			log.Warnf("no data for %s between %s and %s", ticker, start.Format("2006-01-02"), end.Format("2006-01-02"))
			continue
		}
		log.Infof("fetched %d daily bars for %s", n, ticker)
	}
	return table, nil
}
