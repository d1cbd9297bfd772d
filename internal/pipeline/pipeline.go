package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"StockPerf/internal/calculator"
	"StockPerf/internal/collector"
	"StockPerf/internal/model"
	"StockPerf/internal/plot"
	"StockPerf/internal/report"
)

var log = logrus.WithField("component", "pipeline")

// Pipeline runs fetch, compute, report and render once.
type Pipeline struct {
	Collector    *collector.Collector
	Params       calculator.Params
	Renderer     *plot.Renderer
	Out          io.Writer
	LookbackDays int
	HeadRows     int
}

// Result is what a run produced.
type Result struct {
	Table  model.EnrichedTable
	Charts []string
}

// Run fetches the trailing window ending at now and produces the report and charts.
// Fetch errors abort the run; missing tickers and short histories do not.
func (p *Pipeline) Run(ctx context.Context, now time.Time) (*Result, error) {
	start, end := collector.Window(now, p.LookbackDays)
	log.Infof("collecting %d tickers from %s to %s via %s",
		len(p.Collector.Tickers), start.Format("2006-01-02"), end.Format("2006-01-02"), p.Collector.Fetcher.Name())

	table, err := p.Collector.Collect(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("collect: %w", err)
	}
	if len(table) == 0 {
		log.Warn("no data returned for any ticker")
	}

	enriched, err := calculator.Enrich(table, p.Params)
	if err != nil {
		return nil, fmt.Errorf("compute indicators: %w", err)
	}

	if p.Out != nil && len(enriched) > 0 {
		if p.HeadRows > 0 {
			fmt.Fprintln(p.Out, report.FormatHead(enriched, p.HeadRows))
		}
		fmt.Fprintln(p.Out, report.FormatSummary(report.Summarize(enriched), p.Params))
	}

	res := &Result{Table: enriched}
	if p.Renderer != nil {
		charts, err := p.Renderer.RenderAll(enriched)
		if err != nil {
			return res, fmt.Errorf("render charts: %w", err)
		}
		res.Charts = charts
	}
	return res, nil
}
