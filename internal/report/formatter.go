package report

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"StockPerf/internal/calculator"
	"StockPerf/internal/model"
)

// TickerSummary is the latest state of one ticker over the window.
type TickerSummary struct {
	Ticker    string
	Rows      int
	First     model.OHLCV
	Last      model.OHLCV
	ChangePct model.Value
	High      model.Value
	Low       model.Value
	Latest    model.Indicators
}

// Summarize builds one summary per ticker, in first-seen order.
func Summarize(enriched model.EnrichedTable) []TickerSummary {
	var out []TickerSummary
	for _, ticker := range enriched.Tickers() {
		rows := enriched.ForTicker(ticker)
		bars := make([]model.OHLCV, len(rows))
		for i, row := range rows {
			bars[i] = row.OHLCV
		}

		s := TickerSummary{
			Ticker: ticker,
			Rows:   len(rows),
			First:  bars[0],
			Last:   bars[len(bars)-1],
			Latest: rows[len(rows)-1].Indicators,
		}
		if pct, err := calculator.PercentChange(bars); err == nil {
			s.ChangePct = model.Some(pct)
		}
		if high, low, err := calculator.PriceRange(bars); err == nil {
			s.High = model.Some(high)
			s.Low = model.Some(low)
		}
		out = append(out, s)
	}
	return out
}

func newTable(title string) table.Writer {
	t := table.NewWriter()
	t.SetTitle(title)
	t.SetStyle(table.StyleLight)
	return t
}

// FormatSummary renders the per-ticker summary as a text table.
func FormatSummary(summaries []TickerSummary, params calculator.Params) string {
	t := newTable("Stock Market Performance")
	t.AppendHeader(table.Row{
		"Ticker", "Days", "From", "To", "Close", "Change",
		"High", "Low",
		fmt.Sprintf("MA_%d", params.ShortWindow),
		fmt.Sprintf("MA_%d", params.LongWindow),
		fmt.Sprintf("RSI_%d", params.RSIPeriod),
		fmt.Sprintf("Avg Vol (%d)", params.VolumeWindow),
	})
	for _, s := range summaries {
		change := "n/a"
		if pct, ok := s.ChangePct.Get(); ok {
			change = fmt.Sprintf("%+.2f%%", pct)
		}
		t.AppendRow(table.Row{
			s.Ticker,
			s.Rows,
			s.First.Time.Format("2006-01-02"),
			s.Last.Time.Format("2006-01-02"),
			fmt.Sprintf("%.2f", s.Last.Close),
			change,
			s.High.Format(2),
			s.Low.Format(2),
			s.Latest.MAShort.Format(2),
			s.Latest.MALong.Format(2),
			s.Latest.RSI.Format(1),
			formatVolume(s.Latest.AvgVolume),
		})
	}
	t.SetColumnConfigs(rightAligned(2, 5, 6, 7, 8, 9, 10, 11, 12))
	return t.Render()
}

// FormatHead renders the first n rows of the enriched table.
func FormatHead(enriched model.EnrichedTable, n int) string {
	t := newTable("")
	t.AppendHeader(table.Row{"Ticker", "Date", "Open", "High", "Low", "Close", "Volume", "MA Short", "MA Long", "RSI", "Avg Volume"})
	if n > len(enriched) {
		n = len(enriched)
	}
	for _, row := range enriched[:n] {
		t.AppendRow(table.Row{
			row.Ticker,
			row.Time.Format("2006-01-02"),
			fmt.Sprintf("%.2f", row.Open),
			fmt.Sprintf("%.2f", row.High),
			fmt.Sprintf("%.2f", row.Low),
			fmt.Sprintf("%.2f", row.Close),
			humanize.Comma(row.Volume),
			row.MAShort.Format(2),
			row.MALong.Format(2),
			row.RSI.Format(1),
			formatVolume(row.AvgVolume),
		})
	}
	return t.Render()
}

func formatVolume(v model.Value) string {
	f, ok := v.Get()
	if !ok {
		return "n/a"
	}
	return humanize.Comma(int64(math.Round(f)))
}

func rightAligned(cols ...int) []table.ColumnConfig {
	cfgs := make([]table.ColumnConfig, len(cols))
	for i, c := range cols {
		cfgs[i] = table.ColumnConfig{Number: c, Align: text.AlignRight}
	}
	return cfgs
}
