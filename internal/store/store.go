//-------------------------------------------------------------------------
//
// pgEdge Shop Stats
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package store defines the database interface used to load the sales
// dataset and run the analysis queries, and a registry of drivers.
package store

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/pgEdge/pgedge-shopstats/internal/datagen"
	"github.com/pgEdge/pgedge-shopstats/internal/rfm"
)

// MetadataTable holds key/value information about the loaded dataset.
const MetadataTable = "shopstats_metadata"

// Metadata keys written by the load step.
const (
	MetaVersion   = "version"
	MetaLoadedAt  = "loaded_at"
	MetaStartDate = "start_date"
	MetaEndDate   = "end_date"
	MetaProducts  = "products"
	MetaCustomers = "customers"
	MetaSales     = "sales"
)

// Tables in dependency order.
var Tables = []string{"products", "customers", "sales"}

// ErrNoMetadata is returned when a metadata key is not present.
var ErrNoMetadata = errors.New("metadata not found")

// MonthlySales is one row of the monthly sales trend.
type MonthlySales struct {
	// Month is formatted YYYY-MM.
	Month         string
	Sales         float64
	Orders        int64
	AvgOrderValue float64
}

// CategoryPerformance summarises sales of a product category.
type CategoryPerformance struct {
	Category      string
	OrderCount    int64
	TotalSales    float64
	AvgSaleValue  float64
	TotalQuantity int64
}

// CityPerformance summarises sales in a city.
type CityPerformance struct {
	City             string
	OrderCount       int64
	TotalSales       float64
	CustomerCount    int64
	SalesPerCustomer float64
}

// Store is a database holding the sales dataset.
type Store interface {
	// Driver returns the registered driver name.
	Driver() string

	// CreateSchema creates the dataset tables if they do not exist.
	CreateSchema(ctx context.Context) error

	// DropSchema drops the dataset and metadata tables.
	DropSchema(ctx context.Context) error

	// LoadDataset bulk loads products, customers and sales.
	LoadDataset(ctx context.Context, ds *datagen.Dataset) error

	// SaveMetadata upserts metadata values.
	SaveMetadata(ctx context.Context, values map[string]string) error

	// Metadata returns a metadata value, or ErrNoMetadata.
	Metadata(ctx context.Context, key string) (string, error)

	// MonthlySales returns sales per month, ordered by month.
	MonthlySales(ctx context.Context) ([]MonthlySales, error)

	// CategoryPerformance returns sales per category, largest first.
	CategoryPerformance(ctx context.Context) ([]CategoryPerformance, error)

	// CityPerformance returns sales per city, largest first.
	CityPerformance(ctx context.Context) ([]CityPerformance, error)

	// CustomerAggregates returns recency, frequency and monetary value
	// per customer with at least one order. Recency is whole days from
	// the customer's last order to ref, and never negative.
	CustomerAggregates(ctx context.Context, ref time.Time) ([]rfm.CustomerAggregate, error)

	// Close releases the connection pool.
	Close()
}

// DatasetMetadata returns the metadata values describing ds.
func DatasetMetadata(ds *datagen.Dataset, version string, loadedAt time.Time) map[string]string {
	return map[string]string{
		MetaVersion:   version,
		MetaLoadedAt:  loadedAt.UTC().Format(time.RFC3339),
		MetaStartDate: ds.StartDate.Format(time.DateOnly),
		MetaEndDate:   ds.EndDate.Format(time.DateOnly),
		MetaProducts:  strconv.Itoa(len(ds.Products)),
		MetaCustomers: strconv.Itoa(len(ds.Customers)),
		MetaSales:     strconv.Itoa(len(ds.Sales)),
	}
}
