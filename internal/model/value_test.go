package model

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValue(t *testing.T) {
	var zero Value
	assert.False(t, zero.Valid())
	assert.True(t, math.IsNaN(zero.Float64()))
	assert.Equal(t, "n/a", zero.String())

	v := Some(0)
	assert.True(t, v.Valid())
	f, ok := v.Get()
	assert.True(t, ok)
	assert.Equal(t, 0.0, f)
	assert.Equal(t, "0.00", v.String())

	assert.False(t, Some(math.NaN()).Valid())
	assert.False(t, Some(math.Inf(1)).Valid())
	assert.Equal(t, None(), zero)
	assert.Equal(t, "12.346", Some(12.3456).Format(3))
}

func TestEnrichedTable_Grouping(t *testing.T) {
	d := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	row := func(ticker string, day int) EnrichedObservation {
		return EnrichedObservation{Observation: Observation{Ticker: ticker, OHLCV: OHLCV{Time: d.AddDate(0, 0, day)}}}
	}
	table := EnrichedTable{row("B", 1), row("A", 0), row("B", 0), row("A", 1)}

	assert.Equal(t, []string{"B", "A"}, table.Tickers())
	got := table.ForTicker("B")
	if assert.Len(t, got, 2) {
		assert.True(t, got[0].Time.Before(got[1].Time))
	}
	assert.Empty(t, table.ForTicker("C"))
	assert.Empty(t, EnrichedTable(nil).Tickers())
}

func TestSeries(t *testing.T) {
	s := Series{Ticker: "X", Bars: []OHLCV{{Close: 1, Volume: 10}, {Close: 2, Volume: 20}}}
	assert.Equal(t, []float64{1, 2}, s.Closes())
	assert.Equal(t, []float64{10, 20}, s.Volumes())
}
