package plot

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/wcharczuk/go-chart/v2"

	"StockPerf/internal/calculator"
	"StockPerf/internal/model"
)

var log = logrus.WithField("component", "plot")

// Canvas is implemented by chart.Chart and chart.BarChart.
type Canvas interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}

// Renderer draws the enriched table into PNG files.
type Renderer struct {
	OutputDir string
	Width     int
	Height    int
	Params    calculator.Params
}

// NewRenderer creates a Renderer writing into dir.
func NewRenderer(dir string, width, height int, params calculator.Params) *Renderer {
	return &Renderer{OutputDir: dir, Width: width, Height: height, Params: params}
}

func (r *Renderer) newChart(title, yName string, formatter chart.ValueFormatter) chart.Chart {
	c := chart.Chart{
		Title:  title,
		Width:  r.Width,
		Height: r.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:           "Date",
			ValueFormatter: chart.TimeDateValueFormatter,
			TickStyle:      chart.Style{TextRotationDegrees: 45.0},
		},
		YAxis: chart.YAxis{
			Name:           yName,
			ValueFormatter: formatter,
		},
	}
	return c
}

func withLegend(c *chart.Chart) *chart.Chart {
	c.Elements = []chart.Renderable{chart.Legend(c)}
	return c
}

// ClosingPrices plots the closing price of every ticker on one chart.
// It returns nil when no ticker has two or more bars.
func (r *Renderer) ClosingPrices(table model.EnrichedTable) *chart.Chart {
	c := r.newChart(fmt.Sprintf("Stock Market Performance for the last %d sessions", sessions(table)), "Closing Price", priceFormatter)
	for i, ticker := range table.Tickers() {
		if ts, ok := timeSeries(ticker, table.ForTicker(ticker), closeOf, lineStyle(i)); ok {
			c.Series = append(c.Series, ts)
		}
	}
	if len(c.Series) == 0 {
		return nil
	}
	return withLegend(&c)
}

// MovingAverages plots the close with its short and long moving averages.
func (r *Renderer) MovingAverages(ticker string, rows []model.EnrichedObservation) *chart.Chart {
	c := r.newChart(ticker+" Moving Averages", "Closing Price", priceFormatter)
	lines := []struct {
		name string
		pick picker
	}{
		{"Stock Price", closeOf},
		{fmt.Sprintf("MA_%d", r.Params.ShortWindow), maShortOf},
		{fmt.Sprintf("MA_%d", r.Params.LongWindow), maLongOf},
	}
	for i, l := range lines {
		if ts, ok := timeSeries(l.name, rows, l.pick, lineStyle(i)); ok {
			c.Series = append(c.Series, ts)
		}
	}
	if len(c.Series) == 0 {
		return nil
	}
	return withLegend(&c)
}

// RSI plots the RSI on a fixed 0-100 axis with 30/70 guides.
func (r *Renderer) RSI(ticker string, rows []model.EnrichedObservation) *chart.Chart {
	ts, ok := timeSeries(fmt.Sprintf("RSI_%d", r.Params.RSIPeriod), rows, rsiOf, lineStyle(0))
	if !ok {
		return nil
	}
	c := r.newChart(ticker+" RSI", "RSI", priceFormatter)
	c.YAxis.Range = &chart.ContinuousRange{Min: 0, Max: 100}
	c.Series = []chart.Series{
		ts,
		horizontalLine("Overbought (70)", rows, 70, color(3)),
		horizontalLine("Oversold (30)", rows, 30, color(2)),
	}
	return withLegend(&c)
}

// AverageVolume plots the rolling average volume of one ticker.
func (r *Renderer) AverageVolume(ticker string, rows []model.EnrichedObservation) *chart.Chart {
	ts, ok := timeSeries(ticker, rows, avgVolOf, lineStyle(0))
	if !ok {
		return nil
	}
	c := r.newChart(ticker+"-Average Volume", "Volume", volumeFormatter)
	c.Series = []chart.Series{ts}
	return withLegend(&c)
}

// VolumeComparison draws one bar per ticker with its peak daily volume.
func (r *Renderer) VolumeComparison(table model.EnrichedTable) *chart.BarChart {
	var bars []chart.Value
	var highest float64
	for i, ticker := range table.Tickers() {
		var peak int64
		for _, row := range table.ForTicker(ticker) {
			if row.Volume > peak {
				peak = row.Volume
			}
		}
		if float64(peak) > highest {
			highest = float64(peak)
		}
		bars = append(bars, chart.Value{
			Label: ticker,
			Value: float64(peak),
			Style: chart.Style{FillColor: color(i), StrokeColor: color(i)},
		})
	}
	if len(bars) == 0 || highest == 0 {
		return nil
	}
	return &chart.BarChart{
		Title:  "Volume Comparison",
		Width:  r.Width,
		Height: r.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 50},
		},
		BarWidth: 60,
		YAxis: chart.YAxis{
			Name:           "Volume",
			ValueFormatter: volumeFormatter,
			Range:          &chart.ContinuousRange{Min: 0, Max: highest * 1.1},
		},
		Bars: bars,
	}
}

// RenderAll writes every chart to OutputDir and returns the written paths.
// Charts without drawable data, or that fail to render, are skipped.
func (r *Renderer) RenderAll(table model.EnrichedTable) ([]string, error) {
	if err := os.MkdirAll(r.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create chart dir: %w", err)
	}

	var written []string
	save := func(name string, c Canvas) error {
		path, err := r.save(name, c)
		if err != nil {
			return err
		}
		if path != "" {
			written = append(written, path)
		}
		return nil
	}

	if err := save("closing_prices.png", nilCanvas(r.ClosingPrices(table))); err != nil {
		return written, err
	}
	for _, ticker := range table.Tickers() {
		rows := table.ForTicker(ticker)
		stem := fileStem(ticker)
		if err := save(stem+"_moving_averages.png", nilCanvas(r.MovingAverages(ticker, rows))); err != nil {
			return written, err
		}
		if err := save(stem+"_rsi.png", nilCanvas(r.RSI(ticker, rows))); err != nil {
			return written, err
		}
		if err := save(stem+"_avg_volume.png", nilCanvas(r.AverageVolume(ticker, rows))); err != nil {
			return written, err
		}
	}
	var vc Canvas
	if bc := r.VolumeComparison(table); bc != nil {
		vc = bc
	}
	if err := save("volume_comparison.png", vc); err != nil {
		return written, err
	}
	return written, nil
}

// nilCanvas keeps a nil *chart.Chart from becoming a non-nil interface.
func nilCanvas(c *chart.Chart) Canvas {
	if c == nil {
		return nil
	}
	return c
}

// save renders c and writes it to name. It returns "" without error when
// the chart is skipped.
func (r *Renderer) save(name string, c Canvas) (string, error) {
	if c == nil {
		log.Warnf("skipping %s: not enough data", name)
		return "", nil
	}
	var buf bytes.Buffer
	if err := c.Render(chart.PNG, &buf); err != nil {
		log.WithError(err).Warnf("skipping %s: render failed", name)
		return "", nil
	}
	path := filepath.Join(r.OutputDir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	log.Infof("chart written: %s", path)
	return path, nil
}

// sessions returns the largest number of rows held by a single ticker.
func sessions(table model.EnrichedTable) int {
	counts := make(map[string]int)
	n := 0
	for _, row := range table {
		counts[row.Ticker]++
		if counts[row.Ticker] > n {
			n = counts[row.Ticker]
		}
	}
	return n
}
