//-------------------------------------------------------------------------
//
// pgEdge Shop Stats
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package testutil

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pgEdge/pgedge-shopstats/internal/rfm"
	"github.com/pgEdge/pgedge-shopstats/internal/store"
)

// RunStoreChecks loads SampleDataset into an empty database through s and
// checks every query against the known answers. It drops the schema when
// done.
func RunStoreChecks(t *testing.T, s store.Store) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if err := s.DropSchema(ctx); err != nil {
		t.Fatalf("DropSchema failed: %v", err)
	}
	if _, err := s.Metadata(ctx, store.MetaEndDate); !errors.Is(err, store.ErrNoMetadata) {
		t.Errorf("Expected ErrNoMetadata before load, got %v", err)
	}

	if err := s.CreateSchema(ctx); err != nil {
		t.Fatalf("CreateSchema failed: %v", err)
	}
	ds := SampleDataset()
	if err := s.LoadDataset(ctx, ds); err != nil {
		t.Fatalf("LoadDataset failed: %v", err)
	}
	if err := s.SaveMetadata(ctx, store.DatasetMetadata(ds, "test", time.Now())); err != nil {
		t.Fatalf("SaveMetadata failed: %v", err)
	}
	// Saving again updates in place
	if err := s.SaveMetadata(ctx, map[string]string{store.MetaVersion: "test2"}); err != nil {
		t.Fatalf("SaveMetadata update failed: %v", err)
	}

	if end, err := s.Metadata(ctx, store.MetaEndDate); err != nil || end != "2024-02-29" {
		t.Errorf("Expected end_date 2024-02-29, got %q (%v)", end, err)
	}
	if v, err := s.Metadata(ctx, store.MetaVersion); err != nil || v != "test2" {
		t.Errorf("Expected version test2, got %q (%v)", v, err)
	}
	if _, err := s.Metadata(ctx, "missing"); !errors.Is(err, store.ErrNoMetadata) {
		t.Errorf("Expected ErrNoMetadata for missing key, got %v", err)
	}

	monthly, err := s.MonthlySales(ctx)
	if err != nil {
		t.Fatalf("MonthlySales failed: %v", err)
	}
	wantMonthly := []store.MonthlySales{
		{Month: "2024-01", Sales: 890, Orders: 2, AvgOrderValue: 445},
		{Month: "2024-02", Sales: 180, Orders: 1, AvgOrderValue: 180},
	}
	if len(monthly) != len(wantMonthly) {
		t.Fatalf("Expected %d months, got %+v", len(wantMonthly), monthly)
	}
	for i := range wantMonthly {
		if monthly[i] != wantMonthly[i] {
			t.Errorf("Month %d: expected %+v, got %+v", i, wantMonthly[i], monthly[i])
		}
	}

	categories, err := s.CategoryPerformance(ctx)
	if err != nil {
		t.Fatalf("CategoryPerformance failed: %v", err)
	}
	wantCategories := []store.CategoryPerformance{
		{Category: "Electronics", OrderCount: 1, TotalSales: 800, AvgSaleValue: 800, TotalQuantity: 1},
		{Category: "Food", OrderCount: 2, TotalSales: 270, AvgSaleValue: 135, TotalQuantity: 3},
	}
	if len(categories) != len(wantCategories) {
		t.Fatalf("Expected %d categories, got %+v", len(wantCategories), categories)
	}
	for i := range wantCategories {
		if categories[i] != wantCategories[i] {
			t.Errorf("Category %d: expected %+v, got %+v", i, wantCategories[i], categories[i])
		}
	}

	cities, err := s.CityPerformance(ctx)
	if err != nil {
		t.Fatalf("CityPerformance failed: %v", err)
	}
	wantCities := []store.CityPerformance{
		{City: "Wuhan", OrderCount: 2, TotalSales: 980, CustomerCount: 1, SalesPerCustomer: 980},
		{City: "Chengdu", OrderCount: 1, TotalSales: 90, CustomerCount: 1, SalesPerCustomer: 90},
	}
	if len(cities) != len(wantCities) {
		t.Fatalf("Expected %d cities, got %+v", len(wantCities), cities)
	}
	for i := range wantCities {
		if cities[i] != wantCities[i] {
			t.Errorf("City %d: expected %+v, got %+v", i, wantCities[i], cities[i])
		}
	}

	aggs, err := s.CustomerAggregates(ctx, day("2024-02-29"))
	if err != nil {
		t.Fatalf("CustomerAggregates failed: %v", err)
	}
	wantAggs := []rfm.CustomerAggregate{
		{CustomerID: 1000, Recency: 9, Frequency: 2, Monetary: 980},
		{CustomerID: 1001, Recency: 45, Frequency: 1, Monetary: 90},
	}
	if len(aggs) != len(wantAggs) {
		t.Fatalf("Expected %d aggregates, got %+v", len(wantAggs), aggs)
	}
	for i := range wantAggs {
		if aggs[i] != wantAggs[i] {
			t.Errorf("Aggregate %d: expected %+v, got %+v", i, wantAggs[i], aggs[i])
		}
	}

	// Orders after the reference date clamp recency at zero
	aggs, err = s.CustomerAggregates(ctx, day("2024-02-01"))
	if err != nil {
		t.Fatalf("CustomerAggregates failed: %v", err)
	}
	if len(aggs) == 0 || aggs[0].Recency != 0 {
		t.Errorf("Expected recency 0 for customer 1000, got %+v", aggs)
	}

	if err := s.DropSchema(ctx); err != nil {
		t.Fatalf("DropSchema failed: %v", err)
	}
}
