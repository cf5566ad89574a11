//-------------------------------------------------------------------------
//
// pgEdge Shop Stats
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package report

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/pgEdge/pgedge-shopstats/internal/logging"
	"github.com/pgEdge/pgedge-shopstats/internal/rfm"
	"github.com/pgEdge/pgedge-shopstats/internal/store"
)

// ErrNothingToPlot is returned when a chart has no data to draw.
var ErrNothingToPlot = errors.New("nothing to plot")

const (
	maxBarWidth = 80

	// barAxisAllowance is horizontal space kept for the y axis and padding.
	barAxisAllowance = 120
)

var chartPadding = chart.Box{Top: 50, Left: 20, Right: 40, Bottom: 20}

// ChartMonthlySales draws the monthly sales trend as a line chart. At
// least two months are needed.
func (r *Report) ChartMonthlySales(rows []store.MonthlySales) error {
	if len(rows) < 2 {
		return fmt.Errorf("monthly sales trend needs 2 months, got %d: %w", len(rows), ErrNothingToPlot)
	}

	xs := make([]float64, len(rows))
	ys := make([]float64, len(rows))
	ticks := make([]chart.Tick, len(rows))
	for i, m := range rows {
		xs[i] = float64(i)
		ys[i] = m.Sales
		ticks[i] = chart.Tick{Value: float64(i), Label: m.Month}
	}

	graph := chart.Chart{
		Title:      "Monthly Sales Trend",
		Width:      r.opts.ChartWidth,
		Height:     r.opts.ChartHeight,
		Background: chart.Style{Padding: chartPadding},
		XAxis: chart.XAxis{
			Name:  "Month",
			Ticks: ticks,
			Range: &chart.ContinuousRange{Min: 0, Max: float64(len(rows) - 1)},
		},
		YAxis: chart.YAxis{
			Name:           "Sales",
			Range:          &chart.ContinuousRange{Min: 0, Max: axisMax(ys)},
			ValueFormatter: amountFormatter,
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Sales",
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: chart.ColorBlue,
					StrokeWidth: 2,
					DotColor:    chart.ColorBlue,
					DotWidth:    4,
				},
			},
		},
	}

	return r.renderPNG(MonthlySalesChart, len(rows), func(w io.Writer) error {
		return graph.Render(chart.PNG, w)
	})
}

// ChartCategorySales draws each category's share of sales as a pie chart.
func (r *Report) ChartCategorySales(rows []store.CategoryPerformance) error {
	total := 0.0
	for _, c := range rows {
		total += c.TotalSales
	}
	if total <= 0 {
		return fmt.Errorf("category sales pie has no sales: %w", ErrNothingToPlot)
	}

	values := make([]chart.Value, 0, len(rows))
	for _, c := range rows {
		if c.TotalSales <= 0 {
			continue
		}
		values = append(values, chart.Value{
			Value: c.TotalSales,
			Label: fmt.Sprintf("%s %.1f%%", c.Category, c.TotalSales/total*100),
		})
	}

	// Square canvas
	pie := chart.PieChart{
		Title:  "Sales Share by Category",
		Width:  r.opts.ChartHeight,
		Height: r.opts.ChartHeight,
		Values: values,
	}

	return r.renderPNG(CategorySalesChart, len(values), func(w io.Writer) error {
		return pie.Render(chart.PNG, w)
	})
}

// ChartCitySales draws total sales per city as a bar chart.
func (r *Report) ChartCitySales(rows []store.CityPerformance) error {
	values := make([]chart.Value, len(rows))
	for i, c := range rows {
		values[i] = chart.Value{Value: c.TotalSales, Label: c.City}
	}
	return r.renderBars(CitySalesChart, "Sales by City", values)
}

// ChartSegments draws the number of customers in each segment.
func (r *Report) ChartSegments(counts []rfm.SegmentCount) error {
	values := make([]chart.Value, len(counts))
	for i, c := range counts {
		values[i] = chart.Value{Value: float64(c.Customers), Label: string(c.Segment)}
	}
	return r.renderBars(SegmentsChart, "Customer Segments", values)
}

func (r *Report) renderBars(name, title string, values []chart.Value) error {
	if len(values) == 0 {
		return fmt.Errorf("%s: %w", title, ErrNothingToPlot)
	}

	ys := make([]float64, len(values))
	for i, v := range values {
		ys[i] = v.Value
	}

	width, spacing := barLayout(r.opts.ChartWidth, len(values))
	bar := chart.BarChart{
		Title:      title,
		Width:      r.opts.ChartWidth,
		Height:     r.opts.ChartHeight,
		Background: chart.Style{Padding: chartPadding},
		BarWidth:   width,
		BarSpacing: spacing,
		YAxis: chart.YAxis{
			Range:          &chart.ContinuousRange{Min: 0, Max: axisMax(ys)},
			ValueFormatter: amountFormatter,
		},
		Bars: values,
	}

	return r.renderPNG(name, len(values), func(w io.Writer) error {
		return bar.Render(chart.PNG, w)
	})
}

// barLayout fits n bars and their spacing into a canvas of the given
// width.
func barLayout(canvasWidth, n int) (width, spacing int) {
	slot := max((canvasWidth-barAxisAllowance)/max(n, 1), 2)
	width = min(slot*2/3, maxBarWidth)
	spacing = slot - width
	return max(width, 1), max(spacing, 1)
}

// axisMax leaves headroom above the largest value and never returns a
// zero range.
func axisMax(values []float64) float64 {
	top := 0.0
	for _, v := range values {
		top = math.Max(top, v)
	}
	if top <= 0 {
		return 1
	}
	return top * 1.1
}

func amountFormatter(v interface{}) string {
	f, ok := v.(float64)
	if !ok {
		return fmt.Sprint(v)
	}
	switch {
	case math.Abs(f) >= 1e6:
		return fmt.Sprintf("%.1fM", f/1e6)
	case math.Abs(f) >= 1e3:
		return fmt.Sprintf("%.0fK", f/1e3)
	default:
		return fmt.Sprintf("%.0f", f)
	}
}

func (r *Report) renderPNG(name string, points int, render func(io.Writer) error) error {
	path := r.path(name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	if err := render(bw); err != nil {
		f.Close()
		_ = os.Remove(path)
		logging.Debug().Err(err).Str("chart", name).Msg("Render failed")
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}

	r.record(name, KindChart, points)
	return nil
}
