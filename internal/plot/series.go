package plot

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/dustin/go-humanize"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"StockPerf/internal/model"
)

var palette = []drawing.Color{
	drawing.ColorFromHex("1f77b4"),
	drawing.ColorFromHex("ff7f0e"),
	drawing.ColorFromHex("2ca02c"),
	drawing.ColorFromHex("d62728"),
	drawing.ColorFromHex("9467bd"),
	drawing.ColorFromHex("8c564b"),
	drawing.ColorFromHex("e377c2"),
	drawing.ColorFromHex("7f7f7f"),
}

func color(i int) drawing.Color { return palette[i%len(palette)] }

func lineStyle(i int) chart.Style {
	return chart.Style{StrokeColor: color(i), StrokeWidth: 2}
}

// picker selects one plotted field of a row.
type picker func(row model.EnrichedObservation) model.Value

func closeOf(row model.EnrichedObservation) model.Value   { return model.Some(row.Close) }
func maShortOf(row model.EnrichedObservation) model.Value { return row.MAShort }
func maLongOf(row model.EnrichedObservation) model.Value  { return row.MALong }
func rsiOf(row model.EnrichedObservation) model.Value     { return row.RSI }
func avgVolOf(row model.EnrichedObservation) model.Value  { return row.AvgVolume }

// timeSeries builds a line from the defined values of rows. Undefined
// values are left out rather than drawn as zero. ok is false when fewer
// than two points remain.
func timeSeries(name string, rows []model.EnrichedObservation, pick picker, style chart.Style) (ts chart.TimeSeries, ok bool) {
	ts = chart.TimeSeries{Name: name, Style: style}
	for _, row := range rows {
		v, defined := pick(row).Get()
		if !defined {
			continue
		}
		ts.XValues = append(ts.XValues, row.Time)
		ts.YValues = append(ts.YValues, v)
	}
	return ts, len(ts.XValues) >= 2
}

// horizontalLine spans the dates of rows at a constant level.
func horizontalLine(name string, rows []model.EnrichedObservation, level float64, c drawing.Color) chart.TimeSeries {
	first, last := rows[0].Time, rows[len(rows)-1].Time
	return chart.TimeSeries{
		Name:    name,
		XValues: []time.Time{first, last},
		YValues: []float64{level, level},
		Style: chart.Style{
			StrokeColor:     c,
			StrokeWidth:     1,
			StrokeDashArray: []float64{5, 5},
		},
	}
}

func priceFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%.2f", f)
	}
	return ""
}

func volumeFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return humanize.SIWithDigits(f, 1, "")
	}
	return ""
}

// fileStem turns a ticker into a safe lower-case file name component.
func fileStem(ticker string) string {
	stem := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		if r == '-' || r == '.' {
			return '_'
		}
		return -1
	}, ticker)
	if stem == "" {
		return "ticker"
	}
	return stem
}
