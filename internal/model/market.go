package model

import "time"

// OHLCV represents a single daily bar.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}

// Observation is one row of the fetched table, keyed by (Ticker, Time).
type Observation struct {
	Ticker string
	OHLCV
}

// Table is the flat list of observations returned by a data source.
// Rows of different tickers may be interleaved.
type Table []Observation

// Series holds the date-ordered bars of a single ticker.
type Series struct {
	Ticker string
	Bars   []OHLCV
}

// Closes returns the closing prices of the series in order.
func (s Series) Closes() []float64 {
	closes := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		closes[i] = b.Close
	}
	return closes
}

// Volumes returns the volumes of the series as float64 values.
func (s Series) Volumes() []float64 {
	vols := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		vols[i] = float64(b.Volume)
	}
	return vols
}
