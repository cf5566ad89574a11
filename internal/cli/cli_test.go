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
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgEdge/pgedge-shopstats/internal/datagen"
	"github.com/pgEdge/pgedge-shopstats/internal/report"
	"github.com/pgEdge/pgedge-shopstats/internal/rfm"
	"github.com/pgEdge/pgedge-shopstats/internal/store"
)

// fakeStore serves canned query results.
type fakeStore struct {
	meta       map[string]string
	metaErr    error
	aggregates []rfm.CustomerAggregate
	ref        time.Time
}

func (f *fakeStore) Driver() string {
	return "fake"
}

func (f *fakeStore) CreateSchema(ctx context.Context) error {
	return nil
}

func (f *fakeStore) DropSchema(ctx context.Context) error {
	return nil
}

func (f *fakeStore) LoadDataset(ctx context.Context, ds *datagen.Dataset) error {
	return nil
}

func (f *fakeStore) Close() {}

func (f *fakeStore) SaveMetadata(ctx context.Context, values map[string]string) error {
	f.meta = values
	return nil
}

func (f *fakeStore) Metadata(ctx context.Context, key string) (string, error) {
	if f.metaErr != nil {
		return "", f.metaErr
	}
	v, ok := f.meta[key]
	if !ok {
		return "", store.ErrNoMetadata
	}
	return v, nil
}

func (f *fakeStore) MonthlySales(ctx context.Context) ([]store.MonthlySales, error) {
	return []store.MonthlySales{
		{Month: "2024-01", Sales: 1000, Orders: 10, AvgOrderValue: 100},
		{Month: "2024-02", Sales: 1500, Orders: 12, AvgOrderValue: 125},
	}, nil
}

func (f *fakeStore) CategoryPerformance(ctx context.Context) ([]store.CategoryPerformance, error) {
	return []store.CategoryPerformance{
		{Category: "Electronics", OrderCount: 15, TotalSales: 2000, AvgSaleValue: 133.33, TotalQuantity: 20},
		{Category: "Food", OrderCount: 7, TotalSales: 500, AvgSaleValue: 71.43, TotalQuantity: 9},
	}, nil
}

func (f *fakeStore) CityPerformance(ctx context.Context) ([]store.CityPerformance, error) {
	return []store.CityPerformance{
		{City: "Wuhan", OrderCount: 12, TotalSales: 1400, CustomerCount: 6, SalesPerCustomer: 233.33},
		{City: "Nanjing", OrderCount: 10, TotalSales: 1100, CustomerCount: 5, SalesPerCustomer: 220},
	}, nil
}

func (f *fakeStore) CustomerAggregates(ctx context.Context, ref time.Time) ([]rfm.CustomerAggregate, error) {
	f.ref = ref
	return f.aggregates, nil
}

func sampleAggregates(n int) []rfm.CustomerAggregate {
	out := make([]rfm.CustomerAggregate, n)
	for i := range out {
		out[i] = rfm.CustomerAggregate{
			CustomerID: int64(1000 + i),
			Recency:    (i * 7) % 60,
			Frequency:  i%6 + 1,
			Monetary:   float64(100 + i*37),
		}
	}
	return out
}

func TestAnalyze(t *testing.T) {
	fs := &fakeStore{aggregates: sampleAggregates(30)}
	rep, err := report.New(t.TempDir(), report.Options{ChartWidth: 800, ChartHeight: 400})
	require.NoError(t, err)

	ref := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)
	scored, err := analyze(context.Background(), fs, rep, ref, true)
	require.NoError(t, err)

	assert.Len(t, scored, 30)
	assert.Equal(t, ref, fs.ref)

	var names []string
	for _, f := range rep.Files() {
		names = append(names, f.Name)
		_, err := os.Stat(filepath.Join(rep.Dir(), f.Name))
		assert.NoError(t, err, f.Name)
	}
	assert.ElementsMatch(t, []string{
		report.MonthlySalesFile, report.CategoryPerformanceFile, report.CityPerformanceFile,
		report.RFMAnalysisFile, report.SegmentCountsFile,
		report.MonthlySalesChart, report.CategorySalesChart, report.CitySalesChart, report.SegmentsChart,
	}, names)
}

func TestAnalyzeWithoutCharts(t *testing.T) {
	fs := &fakeStore{aggregates: sampleAggregates(30)}
	rep, err := report.New(t.TempDir(), report.Options{})
	require.NoError(t, err)

	_, err = analyze(context.Background(), fs, rep, time.Now(), false)
	require.NoError(t, err)
	for _, f := range rep.Files() {
		assert.Equal(t, report.KindCSV, f.Kind)
	}
}

func TestAnalyzeTooFewCustomers(t *testing.T) {
	fs := &fakeStore{aggregates: sampleAggregates(3)}
	rep, err := report.New(t.TempDir(), report.Options{})
	require.NoError(t, err)

	_, err = analyze(context.Background(), fs, rep, time.Now(), true)
	assert.ErrorIs(t, err, rfm.ErrInsufficientDistinctValues)
}

func TestAnalyzeInvalidAggregate(t *testing.T) {
	aggs := sampleAggregates(30)
	aggs[4].Frequency = 0
	fs := &fakeStore{aggregates: aggs}
	rep, err := report.New(t.TempDir(), report.Options{})
	require.NoError(t, err)

	_, err = analyze(context.Background(), fs, rep, time.Now(), true)
	assert.Error(t, err)
}

func TestResolveReferenceDate(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 15, 13, 45, 0, 0, time.UTC)

	ref, err := resolveReferenceDate(ctx, &fakeStore{}, "2024-03-01", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), ref)

	ref, err = resolveReferenceDate(ctx, &fakeStore{meta: map[string]string{store.MetaEndDate: "2024-12-31"}}, "", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), ref)

	ref, err = resolveReferenceDate(ctx, &fakeStore{}, "", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), ref)

	_, err = resolveReferenceDate(ctx, &fakeStore{}, "31/12/2024", now)
	assert.Error(t, err)

	boom := errors.New("connection reset")
	_, err = resolveReferenceDate(ctx, &fakeStore{metaErr: boom}, "", now)
	assert.ErrorIs(t, err, boom)
}

func TestPrintSegmentSummary(t *testing.T) {
	var buf bytes.Buffer
	printSegmentSummary(&buf, []rfm.SegmentCount{
		{Segment: rfm.Champion, Customers: 1},
		{Segment: rfm.General, Customers: 3},
	}, 4)

	out := buf.String()
	assert.Contains(t, out, "Customer segments (4 customers):")
	assert.Contains(t, out, "Champion")
	assert.Contains(t, out, "75.0%")
}

func execute(t *testing.T, args ...string) string {
	t.Helper()
	t.Chdir(t.TempDir())

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	return buf.String()
}

func TestSegmentsCommand(t *testing.T) {
	out := execute(t, "segments")
	for _, seg := range rfm.Segments() {
		assert.Contains(t, out, string(seg))
	}
}

func TestProfilesCommand(t *testing.T) {
	out := execute(t, "profiles")
	for _, name := range []string{"calendar", "flat", "promo"} {
		assert.Contains(t, out, name)
	}
}

func TestGenerateCommand(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	execute(t, "generate",
		"--output-dir", dir,
		"--start-date", "2024-01-01",
		"--end-date", "2024-01-31",
		"--products", "25",
		"--customers", "10",
		"--transactions", "40",
		"--seed", "9",
		"--progress=false",
	)

	ds, err := datagen.ReadDataset(dir)
	require.NoError(t, err)
	assert.Len(t, ds.Products, 25)
	assert.Len(t, ds.Customers, 10)
	assert.Len(t, ds.Sales, 40)
}

var _ store.Store = (*fakeStore)(nil)
