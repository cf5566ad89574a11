//-------------------------------------------------------------------------
//
// pgEdge Shop Stats
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package datagen

import (
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/pgEdge/pgedge-shopstats/internal/logging"
)

// Progress tracks generation or load progress of a table.
type Progress interface {
	// Add records n more rows.
	Add(n int64)

	// Done marks the table complete.
	Done()
}

// LogProgress reports progress through the logger every interval rows.
type LogProgress struct {
	tableName        string
	totalRows        int64
	currentRow       int64
	progressInterval int64
}

// NewLogProgress creates a new log-based progress reporter.
func NewLogProgress(tableName string, totalRows int64, interval int64) *LogProgress {
	return &LogProgress{
		tableName:        tableName,
		totalRows:        totalRows,
		progressInterval: max(interval, 1),
	}
}

// Add updates the progress and logs if an interval boundary was crossed.
func (p *LogProgress) Add(rows int64) {
	oldRow := p.currentRow
	p.currentRow += rows

	if p.currentRow/p.progressInterval > oldRow/p.progressInterval {
		pct := 100.0
		if p.totalRows > 0 {
			pct = float64(p.currentRow) / float64(p.totalRows) * 100
		}
		logging.Debug().
			Str("table", p.tableName).
			Int64("rows", p.currentRow).
			Int64("total", p.totalRows).
			Float64("percent", pct).
			Msg("Progress")
	}
}

// Done logs completion.
func (p *LogProgress) Done() {
	logging.Info().
		Str("table", p.tableName).
		Int64("rows", p.currentRow).
		Msg("Table complete")
}

// Rows returns the number of rows recorded so far.
func (p *LogProgress) Rows() int64 {
	return p.currentRow
}

// BarProgress draws a terminal progress bar.
type BarProgress struct {
	tableName string
	bar       *progressbar.ProgressBar
}

// NewBarProgress creates a progress bar for totalRows rows written to w.
func NewBarProgress(tableName string, totalRows int64, w io.Writer) *BarProgress {
	bar := progressbar.NewOptions64(totalRows,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(tableName),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(w)
		}),
	)
	return &BarProgress{tableName: tableName, bar: bar}
}

// Add advances the bar by n rows.
func (p *BarProgress) Add(n int64) {
	_ = p.bar.Add64(n)
}

// Done completes the bar and logs completion.
func (p *BarProgress) Done() {
	_ = p.bar.Finish()
	logging.Info().
		Str("table", p.tableName).
		Int64("rows", int64(p.bar.State().CurrentNum)).
		Msg("Table complete")
}
