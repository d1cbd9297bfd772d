package collector

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockPerf/internal/model"
)

var now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func TestCollector_FlattensInTickerOrder(t *testing.T) {
	fetcher := &MockFetcher{Bars: map[string][]model.OHLCV{
		"AAA": GenerateMockBars(100, 5, now),
		"BBB": GenerateMockBars(50, 3, now),
	}}
	col := NewCollector(fetcher, []string{"BBB", "AAA"}, 0)
	start, end := Window(now, 30)

	table, err := col.Collect(context.Background(), start, end)
	require.NoError(t, err)
	require.Len(t, table, 8)
	for i := 0; i < 3; i++ {
		assert.Equal(t, "BBB", table[i].Ticker)
	}
	for i := 3; i < 8; i++ {
		assert.Equal(t, "AAA", table[i].Ticker)
	}
}

func TestCollector_MissingTickerContributesNoRows(t *testing.T) {
	fetcher := &MockFetcher{Bars: map[string][]model.OHLCV{
		"AAA": GenerateMockBars(100, 4, now),
	}}
	col := NewCollector(fetcher, []string{"AAA", "NODATA"}, 0)
	start, end := Window(now, 30)

	table, err := col.Collect(context.Background(), start, end)
	require.NoError(t, err)
	assert.Len(t, table, 4)
}

func TestCollector_FiltersToWindow(t *testing.T) {
	fetcher := &MockFetcher{Bars: map[string][]model.OHLCV{
		"AAA": GenerateMockBars(100, 60, now),
	}}
	col := NewCollector(fetcher, []string{"AAA"}, 0)
	start, end := Window(now, 10)

	table, err := col.Collect(context.Background(), start, end)
	require.NoError(t, err)
	assert.Len(t, table, 10)
	for _, row := range table {
		assert.False(t, row.Time.Before(start))
		assert.True(t, row.Time.Before(end))
	}
}

func TestCollector_FetchErrorAborts(t *testing.T) {
	boom := errors.New("rate limited")
	fetcher := &MockFetcher{
		Bars: map[string][]model.OHLCV{"AAA": GenerateMockBars(100, 4, now)},
		Err:  map[string]error{"BBB": boom},
	}
	col := NewCollector(fetcher, []string{"AAA", "BBB"}, 0)
	start, end := Window(now, 30)

	table, err := col.Collect(context.Background(), start, end)
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, table)
}

func TestCollector_CancelledContext(t *testing.T) {
	fetcher := &MockFetcher{Bars: map[string][]model.OHLCV{}}
	col := NewCollector(fetcher, []string{"AAA", "BBB"}, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start, end := Window(now, 30)
	_, err := col.Collect(ctx, start, end)
	assert.Error(t, err)
}

func TestWindow(t *testing.T) {
	late := time.Date(2024, 5, 31, 22, 15, 0, 0, time.UTC)
	start, end := Window(late, 100)
	assert.Equal(t, late, end)
	assert.Equal(t, time.Date(2024, 2, 21, 0, 0, 0, 0, time.UTC), start)
}

func TestWindow_KeepsFirstDayBar(t *testing.T) {
	// daily bars stamped at the 13:30 UTC open
	open := time.Date(2024, 5, 1, 13, 30, 0, 0, time.UTC)
	fetcher := &MockFetcher{Bars: map[string][]model.OHLCV{
		"AAA": {
			{Time: open.AddDate(0, 0, -1), Close: 9},
			{Time: open, Close: 10},
			{Time: open.AddDate(0, 0, 1), Close: 11},
		},
	}}
	col := NewCollector(fetcher, []string{"AAA"}, 0)

	start, end := Window(time.Date(2024, 5, 3, 20, 0, 0, 0, time.UTC), 2)
	table, err := col.Collect(context.Background(), start, end)
	require.NoError(t, err)
	require.Len(t, table, 2)
	assert.Equal(t, open, table[0].Time)
}
