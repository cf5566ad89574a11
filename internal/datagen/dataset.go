//-------------------------------------------------------------------------
//
// pgEdge Shop Stats
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package datagen

import "time"

// Product is a catalogue entry.
type Product struct {
	ProductID    int
	ProductName  string
	Category     string
	Subcategory  string
	CostPrice    float64
	SellingPrice float64
	Supplier     string
}

// Customer is a registered shopper.
type Customer struct {
	CustomerID int
	Name       string
	City       string
	AgeGroup   string
	JoinDate   time.Time
}

// Sale is a single-line order.
type Sale struct {
	OrderID     int
	OrderDate   time.Time
	CustomerID  int
	ProductID   int
	Quantity    int
	UnitPrice   float64
	City        string
	TotalAmount float64
}

// Dataset is a complete synthetic sales history.
type Dataset struct {
	// StartDate and EndDate bound the order dates (inclusive).
	StartDate time.Time
	EndDate   time.Time

	Products  []Product
	Customers []Customer
	Sales     []Sale
}

// Category is a top-level product category and its subcategories.
type Category struct {
	Name          string
	Subcategories []string

	// MinCost and MaxCost bound the uniform cost price distribution.
	MinCost float64
	MaxCost float64
}

// Catalogue is the fixed category tree products are generated from.
var Catalogue = []Category{
	{
		Name:          "Electronics",
		Subcategories: []string{"Smartphone", "Laptop", "Tablet", "Smartwatch", "Headphones"},
		MinCost:       100, MaxCost: 2000,
	},
	{
		Name:          "Apparel",
		Subcategories: []string{"T-Shirt", "Jeans", "Dress", "Jacket", "Sneakers"},
		MinCost:       100, MaxCost: 2000,
	},
	{
		Name:          "Home",
		Subcategories: []string{"Sofa", "Bed", "Dining Table", "Chair", "Cabinet"},
		MinCost:       100, MaxCost: 2000,
	},
	{
		Name:          "Beauty",
		Subcategories: []string{"Lipstick", "Foundation", "Eyeshadow", "Face Mask", "Perfume"},
		MinCost:       100, MaxCost: 2000,
	},
	{
		Name:          "Food",
		Subcategories: []string{"Snacks", "Beverages", "Fresh Produce", "Grain & Oil", "Condiments"},
		MinCost:       50, MaxCost: 500,
	},
}

// Cities customers live in.
var Cities = []string{
	"Shenzhen", "Guangzhou", "Beijing", "Shanghai",
	"Hangzhou", "Chengdu", "Wuhan", "Nanjing",
}

// AgeGroups customers are bucketed into.
var AgeGroups = []string{"18-25", "26-35", "36-45", "46-55", "55+"}

const (
	firstCustomerID = 1000
	firstOrderID    = 10000
	numSuppliers    = 20

	// joinWindowDays is how far after the start date customers may join.
	joinWindowDays = 100

	// quantityLambda is the Poisson mean of the extra units per order.
	quantityLambda = 1.5

	minMarkup = 1.2
	maxMarkup = 2.5
)
