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
	"errors"
	"math"
	"testing"
	"time"

	"github.com/pgEdge/pgedge-shopstats/internal/datagen/demand"
)

func testConfig() GeneratorConfig {
	return GeneratorConfig{
		StartDate:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
		Products:     100,
		Customers:    50,
		Transactions: 500,
		Seed:         42,
		Profile:      demand.NewCalendar(),
	}
}

func TestGenerateProducts(t *testing.T) {
	g := NewGenerator(testConfig())
	products := g.GenerateProducts(100)

	if len(products) != 100 {
		t.Fatalf("Expected 100 products, got %d", len(products))
	}

	perSub := make(map[string]int)
	ids := make(map[int]bool)
	for _, p := range products {
		perSub[p.Subcategory]++
		if ids[p.ProductID] {
			t.Errorf("Duplicate product id %d", p.ProductID)
		}
		ids[p.ProductID] = true

		if p.Category == "Food" && (p.CostPrice < 50 || p.CostPrice > 500) {
			t.Errorf("Food cost price %f outside 50-500", p.CostPrice)
		}
		if p.Category != "Food" && (p.CostPrice < 100 || p.CostPrice > 2000) {
			t.Errorf("%s cost price %f outside 100-2000", p.Category, p.CostPrice)
		}
		// Rounding to cents may shave a fraction off the markup.
		if p.SellingPrice < p.CostPrice*minMarkup-0.01 || p.SellingPrice > p.CostPrice*maxMarkup+0.01 {
			t.Errorf("Selling price %f outside markup range for cost %f", p.SellingPrice, p.CostPrice)
		}
	}

	if len(perSub) != subcategoryCount() {
		t.Errorf("Expected %d subcategories, got %d", subcategoryCount(), len(perSub))
	}
	for sub, n := range perSub {
		if n != 4 {
			t.Errorf("Expected 4 products in %s, got %d", sub, n)
		}
	}
}

func TestGenerateProductsRoundsDown(t *testing.T) {
	g := NewGenerator(testConfig())
	if n := len(g.GenerateProducts(60)); n != 50 {
		t.Errorf("Expected 50 products, got %d", n)
	}
	if n := len(g.GenerateProducts(24)); n != 0 {
		t.Errorf("Expected 0 products, got %d", n)
	}
}

func TestGenerateCustomers(t *testing.T) {
	cfg := testConfig()
	g := NewGenerator(cfg)
	customers := g.GenerateCustomers(20)

	if len(customers) != 20 {
		t.Fatalf("Expected 20 customers, got %d", len(customers))
	}
	latest := cfg.StartDate.AddDate(0, 0, joinWindowDays)
	for i, c := range customers {
		if c.CustomerID != firstCustomerID+i {
			t.Errorf("Expected customer id %d, got %d", firstCustomerID+i, c.CustomerID)
		}
		if c.Name == "" {
			t.Error("Customer name is empty")
		}
		if c.JoinDate.Before(cfg.StartDate) || c.JoinDate.After(latest) {
			t.Errorf("Join date %s outside join window", c.JoinDate.Format(time.DateOnly))
		}
	}
}

func TestGenerate(t *testing.T) {
	cfg := testConfig()
	ds, err := NewGenerator(cfg).Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if len(ds.Sales) != cfg.Transactions {
		t.Fatalf("Expected %d sales, got %d", cfg.Transactions, len(ds.Sales))
	}

	products := make(map[int]Product)
	for _, p := range ds.Products {
		products[p.ProductID] = p
	}
	customers := make(map[int]Customer)
	for _, c := range ds.Customers {
		customers[c.CustomerID] = c
	}

	for i, s := range ds.Sales {
		if s.OrderID != firstOrderID+i {
			t.Errorf("Expected order id %d, got %d", firstOrderID+i, s.OrderID)
		}
		if s.OrderDate.Before(ds.StartDate) || s.OrderDate.After(ds.EndDate) {
			t.Errorf("Order date %s outside range", s.OrderDate.Format(time.DateOnly))
		}
		if s.Quantity < 1 {
			t.Errorf("Expected quantity >= 1, got %d", s.Quantity)
		}
		p, ok := products[s.ProductID]
		if !ok {
			t.Fatalf("Sale references unknown product %d", s.ProductID)
		}
		c, ok := customers[s.CustomerID]
		if !ok {
			t.Fatalf("Sale references unknown customer %d", s.CustomerID)
		}
		if s.UnitPrice != p.SellingPrice {
			t.Errorf("Expected unit price %f, got %f", p.SellingPrice, s.UnitPrice)
		}
		if s.City != c.City {
			t.Errorf("Expected city %s, got %s", c.City, s.City)
		}
		if math.Abs(s.TotalAmount-s.UnitPrice*float64(s.Quantity)) > 0.005 {
			t.Errorf("Total %f does not match %f x %d", s.TotalAmount, s.UnitPrice, s.Quantity)
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a, err := NewGenerator(testConfig()).Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	b, err := NewGenerator(testConfig()).Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	for i := range a.Sales {
		if a.Sales[i] != b.Sales[i] {
			t.Fatalf("Sale %d differs between runs with the same seed", i)
		}
	}
	for i := range a.Customers {
		if a.Customers[i] != b.Customers[i] {
			t.Fatalf("Customer %d differs between runs with the same seed", i)
		}
	}
}

func TestGenerateErrors(t *testing.T) {
	cfg := testConfig()
	cfg.Products = 10
	if _, err := NewGenerator(cfg).Generate(context.Background()); err == nil {
		t.Error("Expected error for too few products")
	}

	cfg = testConfig()
	cfg.Customers = 0
	if _, err := NewGenerator(cfg).Generate(context.Background()); err == nil {
		t.Error("Expected error for zero customers")
	}

	cfg = testConfig()
	cfg.EndDate = cfg.StartDate.AddDate(0, 0, -1)
	if _, err := NewGenerator(cfg).Generate(context.Background()); err == nil {
		t.Error("Expected error for end date before start date")
	}
}

func TestGenerateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewGenerator(testConfig()).Generate(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestLineTotal(t *testing.T) {
	tests := []struct {
		price    float64
		quantity int
		want     float64
	}{
		{19.99, 3, 59.97},
		{0.1, 3, 0.3},
		{1234.56, 1, 1234.56},
	}
	for _, tt := range tests {
		if got := lineTotal(tt.price, tt.quantity); got != tt.want {
			t.Errorf("lineTotal(%v, %d) = %v, expected %v", tt.price, tt.quantity, got, tt.want)
		}
	}
}
