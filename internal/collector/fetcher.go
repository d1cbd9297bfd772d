package collector

import (
	"context"
	"time"

	"StockPerf/internal/model"
)

// Fetcher defines the interface for fetching daily bars.
//
// FetchDailyBars returns the bars of symbol whose time falls in [start, end),
// in ascending order. A symbol without data in the range yields no bars and
// no error.
type Fetcher interface {
	FetchDailyBars(ctx context.Context, symbol string, start, end time.Time) ([]model.OHLCV, error)
	Name() string
}
