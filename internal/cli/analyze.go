//-------------------------------------------------------------------------
//
// pgEdge Shop Stats
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-shopstats/internal/config"
	"github.com/pgEdge/pgedge-shopstats/internal/logging"
	"github.com/pgEdge/pgedge-shopstats/internal/report"
	"github.com/pgEdge/pgedge-shopstats/internal/rfm"
	"github.com/pgEdge/pgedge-shopstats/internal/store"
	"github.com/pgEdge/pgedge-shopstats/pkg/version"
)

var (
	analyzeReferenceDate string
	analyzeNoCharts      bool
	analyzeChartWidth    int
	analyzeChartHeight   int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyse the loaded dataset and segment customers",
	Long: `Run the sales analysis against the database: monthly sales trend,
category and city performance, and RFM customer segmentation. Results are
written to the output directory as CSV files, PNG charts and manifest.json.

Recency is measured in days up to the reference date, which defaults to the
last day of the loaded dataset.

Example:
  pgedge-shopstats analyze --reference-date 2024-12-31 --connection "postgres://..."`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeReferenceDate, "reference-date", "",
		"date recency is measured from (YYYY-MM-DD)")
	analyzeCmd.Flags().BoolVar(&analyzeNoCharts, "no-charts", false,
		"skip PNG chart rendering")
	analyzeCmd.Flags().IntVar(&analyzeChartWidth, "chart-width", 0,
		"chart width in pixels")
	analyzeCmd.Flags().IntVar(&analyzeChartHeight, "chart-height", 0,
		"chart height in pixels")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if analyzeReferenceDate != "" {
		cfg.Analyze.ReferenceDate = analyzeReferenceDate
	}
	if analyzeNoCharts {
		cfg.Analyze.Charts = false
	}
	if analyzeChartWidth > 0 {
		cfg.Analyze.ChartWidth = analyzeChartWidth
	}
	if analyzeChartHeight > 0 {
		cfg.Analyze.ChartHeight = analyzeChartHeight
	}

	// Validate configuration
	if err := cfg.ValidateAnalyze(); err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	s, err := store.Open(ctx, cfg.Driver, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer s.Close()

	ref, err := resolveReferenceDate(ctx, s, cfg.Analyze.ReferenceDate, time.Now())
	if err != nil {
		return err
	}

	rep, err := report.New(cfg.OutputDir, report.Options{
		ChartWidth:  cfg.Analyze.ChartWidth,
		ChartHeight: cfg.Analyze.ChartHeight,
	})
	if err != nil {
		return err
	}

	logging.Info().
		Str("run_id", rep.RunID()).
		Str("driver", s.Driver()).
		Str("reference_date", ref.Format(time.DateOnly)).
		Msg("Starting analysis")

	scored, err := analyze(ctx, s, rep, ref, cfg.Analyze.Charts)
	if err != nil {
		return err
	}

	rep.SetRunInfo(version.Short(), s.Driver(), ref, len(scored))
	if _, err := rep.WriteManifest(); err != nil {
		return err
	}

	printSegmentSummary(cmd.OutOrStdout(), rfm.SegmentCounts(scored), len(scored))

	logging.Info().
		Str("run_id", rep.RunID()).
		Str("output_dir", rep.Dir()).
		Int("files", len(rep.Files())).
		Msg("Analysis complete")

	return nil
}

// analyze runs every query, writes the CSV outputs and, if charts is set,
// the charts. It returns the scored customers.
func analyze(ctx context.Context, s store.Store, rep *report.Report, ref time.Time, charts bool) ([]rfm.ScoredCustomer, error) {
	monthly, err := s.MonthlySales(ctx)
	if err != nil {
		return nil, err
	}
	if err := rep.WriteMonthlySales(monthly); err != nil {
		return nil, err
	}

	categories, err := s.CategoryPerformance(ctx)
	if err != nil {
		return nil, err
	}
	if err := rep.WriteCategoryPerformance(categories); err != nil {
		return nil, err
	}

	cities, err := s.CityPerformance(ctx)
	if err != nil {
		return nil, err
	}
	if err := rep.WriteCityPerformance(cities); err != nil {
		return nil, err
	}

	aggregates, err := s.CustomerAggregates(ctx, ref)
	if err != nil {
		return nil, err
	}
	if err := rfm.Validate(aggregates); err != nil {
		return nil, err
	}
	scored, err := rfm.Score(aggregates)
	if err != nil {
		return nil, fmt.Errorf("customer segmentation failed: %w", err)
	}
	counts := rfm.SegmentCounts(scored)

	if err := rep.WriteRFMAnalysis(scored); err != nil {
		return nil, err
	}
	if err := rep.WriteSegmentCounts(counts); err != nil {
		return nil, err
	}

	if !charts {
		return scored, nil
	}

	for _, draw := range []func() error{
		func() error { return rep.ChartMonthlySales(monthly) },
		func() error { return rep.ChartCategorySales(categories) },
		func() error { return rep.ChartCitySales(cities) },
		func() error { return rep.ChartSegments(counts) },
	} {
		if err := draw(); err != nil {
			if !errors.Is(err, report.ErrNothingToPlot) {
				return nil, err
			}
			logging.Warn().Err(err).Msg("Skipping chart")
		}
	}

	return scored, nil
}

// metadataReader is the part of store.Store used to find the dataset end
// date.
type metadataReader interface {
	Metadata(ctx context.Context, key string) (string, error)
}

// resolveReferenceDate returns the explicit date if given, else the end
// date recorded when the dataset was loaded, else the current day.
func resolveReferenceDate(ctx context.Context, meta metadataReader, explicit string, now time.Time) (time.Time, error) {
	if explicit != "" {
		ref, err := time.Parse(config.DateLayout, explicit)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid reference date: %w", err)
		}
		return ref, nil
	}

	end, err := meta.Metadata(ctx, store.MetaEndDate)
	switch {
	case err == nil:
		ref, err := time.Parse(config.DateLayout, end)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid %s metadata %q: %w", store.MetaEndDate, end, err)
		}
		return ref, nil
	case errors.Is(err, store.ErrNoMetadata):
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		logging.Warn().
			Str("reference_date", today.Format(config.DateLayout)).
			Msg("No dataset metadata found, measuring recency from today")
		return today, nil
	default:
		return time.Time{}, err
	}
}

func printSegmentSummary(w io.Writer, counts []rfm.SegmentCount, total int) {
	fmt.Fprintf(w, "Customer segments (%d customers):\n", total)
	for _, c := range counts {
		pct := 0.0
		if total > 0 {
			pct = float64(c.Customers) / float64(total) * 100
		}
		fmt.Fprintf(w, "  %-10s %6d  %5.1f%%\n", c.Segment, c.Customers, pct)
	}
}
