//-------------------------------------------------------------------------
//
// pgEdge Shop Stats
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package report writes analysis results as CSV files, PNG charts and a
// JSON run manifest.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/pgEdge/pgedge-shopstats/internal/logging"
)

// Output file names.
const (
	MonthlySalesFile        = "monthly_sales.csv"
	CategoryPerformanceFile = "category_performance.csv"
	CityPerformanceFile     = "city_performance.csv"
	RFMAnalysisFile         = "rfm_analysis.csv"
	SegmentCountsFile       = "segment_counts.csv"

	MonthlySalesChart  = "monthly_sales_trend.png"
	CategorySalesChart = "category_sales_pie.png"
	CitySalesChart     = "city_sales_bar.png"
	SegmentsChart      = "customer_segments.png"

	ManifestFile = "manifest.json"
)

// File kinds recorded in the manifest.
const (
	KindCSV   = "csv"
	KindChart = "chart"
)

// File is an output recorded in the manifest.
type File struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
	Rows int    `json:"rows,omitempty"`
}

// Manifest describes one analysis run.
type Manifest struct {
	RunID         string    `json:"run_id"`
	Version       string    `json:"version"`
	Driver        string    `json:"driver"`
	ReferenceDate string    `json:"reference_date"`
	Customers     int       `json:"customers"`
	StartedAt     time.Time `json:"started_at"`
	FinishedAt    time.Time `json:"finished_at"`
	Files         []File    `json:"files"`
}

// Options configure a Report.
type Options struct {
	// ChartWidth and ChartHeight are the chart size in pixels.
	ChartWidth  int
	ChartHeight int
}

// Report writes the outputs of one analysis run into a directory.
type Report struct {
	dir      string
	opts     Options
	manifest Manifest
}

// New creates the output directory and starts a run manifest.
func New(dir string, opts Options) (*Report, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	if opts.ChartWidth <= 0 {
		opts.ChartWidth = 1200
	}
	if opts.ChartHeight <= 0 {
		opts.ChartHeight = 600
	}

	return &Report{
		dir:  dir,
		opts: opts,
		manifest: Manifest{
			RunID:     uuid.NewString(),
			StartedAt: time.Now().UTC(),
		},
	}, nil
}

// Dir returns the output directory.
func (r *Report) Dir() string {
	return r.dir
}

// RunID returns the unique id of this run.
func (r *Report) RunID() string {
	return r.manifest.RunID
}

// Files returns the outputs written so far.
func (r *Report) Files() []File {
	return r.manifest.Files
}

// SetRunInfo records run details in the manifest.
func (r *Report) SetRunInfo(version, driver string, referenceDate time.Time, customers int) {
	r.manifest.Version = version
	r.manifest.Driver = driver
	r.manifest.ReferenceDate = referenceDate.Format(time.DateOnly)
	r.manifest.Customers = customers
}

func (r *Report) path(name string) string {
	return filepath.Join(r.dir, name)
}

func (r *Report) record(name, kind string, rows int) {
	r.manifest.Files = append(r.manifest.Files, File{Name: name, Kind: kind, Rows: rows})
	logging.Info().
		Str("file", r.path(name)).
		Int("rows", rows).
		Msg("Wrote " + kind)
}

// WriteManifest writes manifest.json and returns the manifest.
func (r *Report) WriteManifest() (Manifest, error) {
	r.manifest.FinishedAt = time.Now().UTC()

	data, err := json.MarshalIndent(r.manifest, "", "  ")
	if err != nil {
		return Manifest{}, fmt.Errorf("failed to encode manifest: %w", err)
	}
	if err := os.WriteFile(r.path(ManifestFile), append(data, '\n'), 0o644); err != nil {
		return Manifest{}, fmt.Errorf("failed to write manifest: %w", err)
	}

	logging.Debug().Str("run_id", r.manifest.RunID).Msg("Wrote manifest")
	return r.manifest, nil
}
