//-------------------------------------------------------------------------
//
// pgEdge Shop Stats
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pgEdge/pgedge-shopstats/internal/datagen"
	"github.com/pgEdge/pgedge-shopstats/internal/logging"
)

// LoadDataset inserts the three tables in batches within one transaction.
func (s *Store) LoadDataset(ctx context.Context, ds *datagen.Dataset) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	products := ds.Products
	if err := s.insertTable(ctx, tx, "products",
		[]string{"product_id", "product_name", "category", "subcategory", "cost_price", "selling_price", "supplier"},
		len(products), func(i int) []any {
			p := products[i]
			return []any{p.ProductID, p.ProductName, p.Category, p.Subcategory, p.CostPrice, p.SellingPrice, p.Supplier}
		}); err != nil {
		return err
	}

	customers := ds.Customers
	if err := s.insertTable(ctx, tx, "customers",
		[]string{"customer_id", "name", "city", "age_group", "join_date"},
		len(customers), func(i int) []any {
			c := customers[i]
			return []any{c.CustomerID, c.Name, c.City, c.AgeGroup, c.JoinDate}
		}); err != nil {
		return err
	}

	sales := ds.Sales
	if err := s.insertTable(ctx, tx, "sales",
		[]string{"order_id", "order_date", "customer_id", "product_id", "quantity", "unit_price", "city", "total_amount"},
		len(sales), func(i int) []any {
			o := sales[i]
			return []any{o.OrderID, o.OrderDate, o.CustomerID, o.ProductID, o.Quantity, o.UnitPrice, o.City, o.TotalAmount}
		}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit load: %w", err)
	}
	return nil
}

func (s *Store) insertTable(ctx context.Context, tx *sql.Tx, table string, columns []string, n int, row func(int) []any) error {
	for start := 0; start < n; start += s.batchSize {
		end := min(start+s.batchSize, n)

		args := make([]any, 0, (end-start)*len(columns))
		for i := start; i < end; i++ {
			args = append(args, row(i)...)
		}
		if _, err := tx.ExecContext(ctx, insertSQL(table, columns, end-start), args...); err != nil {
			return fmt.Errorf("failed to insert into %s: %w", table, err)
		}
	}

	logging.Info().
		Str("table", table).
		Int("rows", n).
		Msg("Table loaded")
	return nil
}

// insertSQL builds a multi-row INSERT with rows placeholder tuples.
func insertSQL(table string, columns []string, rows int) string {
	tuple := "(" + strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ") + ")"

	var b strings.Builder
	fmt.Fprintf(&b, "INSERT INTO %s (%s) VALUES ", table, strings.Join(columns, ", "))
	for i := 0; i < rows; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(tuple)
	}
	return b.String()
}
