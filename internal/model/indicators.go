package model

import "sort"

// Indicators holds the rolling indicators derived for one observation.
type Indicators struct {
	MAShort   Value
	MALong    Value
	RSI       Value
	AvgVolume Value
}

// EnrichedObservation is an observation together with its indicators.
type EnrichedObservation struct {
	Observation
	Indicators
}

// EnrichedTable is aligned 1:1 with the Table it was computed from.
type EnrichedTable []EnrichedObservation

// Tickers returns the distinct tickers in first-seen order.
func (t EnrichedTable) Tickers() []string {
	seen := make(map[string]struct{})
	var tickers []string
	for _, row := range t {
		if _, ok := seen[row.Ticker]; ok {
			continue
		}
		seen[row.Ticker] = struct{}{}
		tickers = append(tickers, row.Ticker)
	}
	return tickers
}

// ForTicker returns the rows of one ticker ordered by date.
func (t EnrichedTable) ForTicker(ticker string) []EnrichedObservation {
	var rows []EnrichedObservation
	for _, row := range t {
		if row.Ticker == ticker {
			rows = append(rows, row)
		}
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Time.Before(rows[j].Time) })
	return rows
}
