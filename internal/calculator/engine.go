package calculator

import (
	"fmt"
	"sort"

	"StockPerf/internal/model"
)

// Params configures the rolling windows used by Enrich.
type Params struct {
	ShortWindow  int
	LongWindow   int
	RSIPeriod    int
	VolumeWindow int
}

// DefaultParams returns MA(10), MA(20), RSI(14) and a 10-day volume average.
func DefaultParams() Params {
	return Params{
		ShortWindow:  10,
		LongWindow:   20,
		RSIPeriod:    DefaultRSIPeriod,
		VolumeWindow: 10,
	}
}

// Validate checks that every window is positive.
func (p Params) Validate() error {
	checks := []struct {
		name string
		v    int
	}{
		{"short window", p.ShortWindow},
		{"long window", p.LongWindow},
		{"rsi period", p.RSIPeriod},
		{"volume window", p.VolumeWindow},
	}
	for _, c := range checks {
		if c.v <= 0 {
			return fmt.Errorf("%s %d: %w", c.name, c.v, ErrInvalidWindow)
		}
	}
	return nil
}

// partition is one ticker's slice of the table: row indices ordered by date.
type partition struct {
	ticker string
	rows   []int
}

// partitionByTicker groups row indices per ticker in first-seen order and
// sorts each group by date, keeping source order for equal dates.
func partitionByTicker(table model.Table) []partition {
	pos := make(map[string]int)
	var parts []partition
	for i, obs := range table {
		p, ok := pos[obs.Ticker]
		if !ok {
			p = len(parts)
			pos[obs.Ticker] = p
			parts = append(parts, partition{ticker: obs.Ticker})
		}
		parts[p].rows = append(parts[p].rows, i)
	}
	for _, p := range parts {
		rows := p.rows
		sort.SliceStable(rows, func(a, b int) bool {
			return table[rows[a]].Time.Before(table[rows[b]].Time)
		})
	}
	return parts
}

func (p partition) series(table model.Table) model.Series {
	s := model.Series{Ticker: p.ticker, Bars: make([]model.OHLCV, len(p.rows))}
	for i, r := range p.rows {
		s.Bars[i] = table[r].OHLCV
	}
	return s
}

// Enrich computes the moving averages, RSI and average volume of every
// ticker independently and returns a new table aligned with the input.
// The input table is not modified.
func Enrich(table model.Table, params Params) (model.EnrichedTable, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	out := make(model.EnrichedTable, len(table))
	for i, obs := range table {
		out[i].Observation = obs
	}

	for _, p := range partitionByTicker(table) {
		s := p.series(table)

		maShort, err := MovingAverage(s, params.ShortWindow)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p.ticker, err)
		}
		maLong, err := MovingAverage(s, params.LongWindow)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p.ticker, err)
		}
		rsi, err := RSI(s, params.RSIPeriod)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p.ticker, err)
		}
		avgVol, err := VolumeMovingAverage(s, params.VolumeWindow)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p.ticker, err)
		}

		for i, r := range p.rows {
			out[r].Indicators = model.Indicators{
				MAShort:   maShort[i],
				MALong:    maLong[i],
				RSI:       rsi[i],
				AvgVolume: avgVol[i],
			}
		}
		log.Debugf("enriched %s: %d rows", p.ticker, len(p.rows))
	}
	return out, nil
}
