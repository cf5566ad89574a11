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
	"context"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pgEdge/pgedge-shopstats/internal/datagen/demand"
	"github.com/pgEdge/pgedge-shopstats/internal/logging"
)

// GeneratorConfig holds configuration for dataset generation.
type GeneratorConfig struct {
	StartDate time.Time
	EndDate   time.Time

	Products     int
	Customers    int
	Transactions int

	// Seed makes generation reproducible. Zero picks a time-based seed.
	Seed uint64

	// Profile weights order dates. Nil means every day weighs the same.
	Profile demand.Profile

	// ProgressBar, when set, receives a terminal progress bar for the
	// sales table. Otherwise progress is logged.
	ProgressBar io.Writer
}

// Generator builds a synthetic e-commerce dataset.
type Generator struct {
	faker *Faker
	cfg   GeneratorConfig
}

// NewGenerator creates a new dataset generator.
func NewGenerator(cfg GeneratorConfig) *Generator {
	faker := NewFaker()
	if cfg.Seed != 0 {
		faker = NewFakerWithSeed(cfg.Seed)
	}
	if cfg.Profile == nil {
		cfg.Profile = demand.NewFlat()
	}
	return &Generator{faker: faker, cfg: cfg}
}

// Generate produces products, customers and sales.
func (g *Generator) Generate(ctx context.Context) (*Dataset, error) {
	if g.cfg.EndDate.Before(g.cfg.StartDate) {
		return nil, fmt.Errorf("end date %s is before start date %s",
			g.cfg.EndDate.Format(time.DateOnly), g.cfg.StartDate.Format(time.DateOnly))
	}

	logging.Info().
		Str("start", g.cfg.StartDate.Format(time.DateOnly)).
		Str("end", g.cfg.EndDate.Format(time.DateOnly)).
		Str("profile", g.cfg.Profile.Name()).
		Msg("Generating dataset")

	products := g.GenerateProducts(g.cfg.Products)
	if len(products) == 0 {
		return nil, fmt.Errorf("%d products is too few to cover %d subcategories",
			g.cfg.Products, subcategoryCount())
	}

	customers := g.GenerateCustomers(g.cfg.Customers)
	if len(customers) == 0 {
		return nil, fmt.Errorf("at least one customer is required")
	}

	sales, err := g.GenerateSales(ctx, products, customers, g.cfg.Transactions)
	if err != nil {
		return nil, err
	}

	return &Dataset{
		StartDate: dayOf(g.cfg.StartDate),
		EndDate:   dayOf(g.cfg.EndDate),
		Products:  products,
		Customers: customers,
		Sales:     sales,
	}, nil
}

// GenerateProducts creates count/25 products for every subcategory, so
// the result may be smaller than count.
func (g *Generator) GenerateProducts(count int) []Product {
	logging.Info().Int("count", count).Msg("Generating products")

	perSubcategory := count / len(Catalogue)
	var products []Product
	productID := 1

	for _, cat := range Catalogue {
		n := perSubcategory / len(cat.Subcategories)
		for _, sub := range cat.Subcategories {
			for i := 0; i < n; i++ {
				cost := roundMoney(g.faker.Float64(cat.MinCost, cat.MaxCost))
				price := roundMoney(cost * g.faker.Float64(minMarkup, maxMarkup))

				products = append(products, Product{
					ProductID:    productID,
					ProductName:  fmt.Sprintf("%s%d", sub, i),
					Category:     cat.Name,
					Subcategory:  sub,
					CostPrice:    cost,
					SellingPrice: price,
					Supplier:     fmt.Sprintf("Supplier %d", g.faker.Int(1, numSuppliers)),
				})
				productID++
			}
		}
	}

	logging.Info().Int("rows", len(products)).Msg("products complete")
	return products
}

// GenerateCustomers creates count customers with ids starting at 1000.
func (g *Generator) GenerateCustomers(count int) []Customer {
	logging.Info().Int("count", count).Msg("Generating customers")

	start := dayOf(g.cfg.StartDate)
	customers := make([]Customer, 0, count)
	for i := 0; i < count; i++ {
		customers = append(customers, Customer{
			CustomerID: firstCustomerID + i,
			Name:       g.faker.Name(),
			City:       Choose(g.faker, Cities),
			AgeGroup:   Choose(g.faker, AgeGroups),
			JoinDate:   start.AddDate(0, 0, g.faker.Int(0, joinWindowDays)),
		})
	}

	logging.Info().Int("rows", len(customers)).Msg("customers complete")
	return customers
}

// GenerateSales creates count single-line orders. Order dates are drawn
// from the configured date range, weighted by the demand profile.
func (g *Generator) GenerateSales(ctx context.Context, products []Product, customers []Customer, count int) ([]Sale, error) {
	logging.Info().Int("count", count).Msg("Generating sales")

	days := demand.Days(g.cfg.StartDate, g.cfg.EndDate)
	sampler := NewWeightedSampler(days, demand.Weights(g.cfg.Profile, days))

	progress := g.newProgress("sales", int64(count))
	defer progress.Done()

	sales := make([]Sale, 0, count)
	for i := 0; i < count; i++ {
		if i%batchCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		customer := Choose(g.faker, customers)
		product := Choose(g.faker, products)
		quantity := g.faker.Poisson(quantityLambda) + 1

		sales = append(sales, Sale{
			OrderID:     firstOrderID + i,
			OrderDate:   sampler.Pick(g.faker),
			CustomerID:  customer.CustomerID,
			ProductID:   product.ProductID,
			Quantity:    quantity,
			UnitPrice:   product.SellingPrice,
			City:        customer.City,
			TotalAmount: lineTotal(product.SellingPrice, quantity),
		})
		progress.Add(1)
	}

	return sales, nil
}

func (g *Generator) newProgress(table string, total int64) Progress {
	if g.cfg.ProgressBar != nil {
		return NewBarProgress(table, total, g.cfg.ProgressBar)
	}
	return NewLogProgress(table, total, max(total/10, 1))
}

// batchCheckInterval is how often GenerateSales checks for cancellation.
const batchCheckInterval = 1000

func subcategoryCount() int {
	n := 0
	for _, c := range Catalogue {
		n += len(c.Subcategories)
	}
	return n
}

func roundMoney(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

func lineTotal(unitPrice float64, quantity int) float64 {
	return decimal.NewFromFloat(unitPrice).
		Mul(decimal.NewFromInt(int64(quantity))).
		Round(2).
		InexactFloat64()
}

// dayOf truncates t to midnight UTC of its calendar day.
func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
