//-------------------------------------------------------------------------
//
// pgEdge Shop Stats
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pgEdge/pgedge-shopstats/internal/datagen"
	"github.com/pgEdge/pgedge-shopstats/internal/logging"
)

// LoadDataset copies the three tables in a single transaction.
func (s *Store) LoadDataset(ctx context.Context, ds *datagen.Dataset) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	products := ds.Products
	if err := copyTable(ctx, tx, "products",
		[]string{"product_id", "product_name", "category", "subcategory", "cost_price", "selling_price", "supplier"},
		len(products), func(i int) []any {
			p := products[i]
			return []any{p.ProductID, p.ProductName, p.Category, p.Subcategory, p.CostPrice, p.SellingPrice, p.Supplier}
		}); err != nil {
		return err
	}

	customers := ds.Customers
	if err := copyTable(ctx, tx, "customers",
		[]string{"customer_id", "name", "city", "age_group", "join_date"},
		len(customers), func(i int) []any {
			c := customers[i]
			return []any{c.CustomerID, c.Name, c.City, c.AgeGroup, c.JoinDate}
		}); err != nil {
		return err
	}

	sales := ds.Sales
	if err := copyTable(ctx, tx, "sales",
		[]string{"order_id", "order_date", "customer_id", "product_id", "quantity", "unit_price", "city", "total_amount"},
		len(sales), func(i int) []any {
			o := sales[i]
			return []any{o.OrderID, o.OrderDate, o.CustomerID, o.ProductID, o.Quantity, o.UnitPrice, o.City, o.TotalAmount}
		}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit load: %w", err)
	}
	return nil
}

func copyTable(ctx context.Context, tx pgx.Tx, table string, columns []string, n int, row func(int) []any) error {
	copied, err := tx.CopyFrom(ctx, pgx.Identifier{table}, columns,
		pgx.CopyFromSlice(n, func(i int) ([]any, error) {
			return row(i), nil
		}))
	if err != nil {
		return fmt.Errorf("failed to copy %s: %w", table, err)
	}

	logging.Info().
		Str("table", table).
		Int64("rows", copied).
		Msg("Table loaded")
	return nil
}
