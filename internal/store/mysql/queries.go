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
	"time"

	"github.com/pgEdge/pgedge-shopstats/internal/rfm"
	"github.com/pgEdge/pgedge-shopstats/internal/store"
)

const monthlySalesSQL = `
SELECT DATE_FORMAT(order_date, '%Y-%m') AS month,
       SUM(total_amount)                AS sales,
       COUNT(DISTINCT order_id)         AS orders,
       AVG(total_amount)                AS avg_order_value
FROM sales
GROUP BY DATE_FORMAT(order_date, '%Y-%m')
ORDER BY month`

const categoryPerformanceSQL = `
SELECT p.category,
       COUNT(DISTINCT s.order_id) AS order_count,
       SUM(s.total_amount)        AS total_sales,
       AVG(s.total_amount)        AS avg_sale_value,
       SUM(s.quantity)            AS total_quantity
FROM sales s
JOIN products p ON s.product_id = p.product_id
GROUP BY p.category
ORDER BY total_sales DESC, p.category`

const cityPerformanceSQL = `
SELECT city,
       COUNT(DISTINCT order_id)                        AS order_count,
       SUM(total_amount)                               AS total_sales,
       COUNT(DISTINCT customer_id)                     AS customer_count,
       SUM(total_amount) / COUNT(DISTINCT customer_id) AS sales_per_customer
FROM sales
GROUP BY city
ORDER BY total_sales DESC, city`

const customerAggregatesSQL = `
SELECT customer_id,
       GREATEST(DATEDIFF(?, MAX(order_date)), 0) AS recency,
       COUNT(DISTINCT order_id)                  AS frequency,
       SUM(total_amount)                         AS monetary
FROM sales
GROUP BY customer_id
ORDER BY customer_id`

// collect scans every row with scan and closes rows.
func collect[T any](rows *sql.Rows, scan func(*sql.Rows) (T, error)) ([]T, error) {
	defer rows.Close()

	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// MonthlySales returns sales per month.
func (s *Store) MonthlySales(ctx context.Context) ([]store.MonthlySales, error) {
	rows, err := s.db.QueryContext(ctx, monthlySalesSQL)
	if err != nil {
		return nil, fmt.Errorf("monthly sales query failed: %w", err)
	}
	return collect(rows, func(r *sql.Rows) (store.MonthlySales, error) {
		var m store.MonthlySales
		err := r.Scan(&m.Month, &m.Sales, &m.Orders, &m.AvgOrderValue)
		return m, err
	})
}

// CategoryPerformance returns sales per category.
func (s *Store) CategoryPerformance(ctx context.Context) ([]store.CategoryPerformance, error) {
	rows, err := s.db.QueryContext(ctx, categoryPerformanceSQL)
	if err != nil {
		return nil, fmt.Errorf("category performance query failed: %w", err)
	}
	return collect(rows, func(r *sql.Rows) (store.CategoryPerformance, error) {
		var c store.CategoryPerformance
		err := r.Scan(&c.Category, &c.OrderCount, &c.TotalSales, &c.AvgSaleValue, &c.TotalQuantity)
		return c, err
	})
}

// CityPerformance returns sales per city.
func (s *Store) CityPerformance(ctx context.Context) ([]store.CityPerformance, error) {
	rows, err := s.db.QueryContext(ctx, cityPerformanceSQL)
	if err != nil {
		return nil, fmt.Errorf("city performance query failed: %w", err)
	}
	return collect(rows, func(r *sql.Rows) (store.CityPerformance, error) {
		var c store.CityPerformance
		err := r.Scan(&c.City, &c.OrderCount, &c.TotalSales, &c.CustomerCount, &c.SalesPerCustomer)
		return c, err
	})
}

// CustomerAggregates returns RFM inputs for every customer with orders.
func (s *Store) CustomerAggregates(ctx context.Context, ref time.Time) ([]rfm.CustomerAggregate, error) {
	rows, err := s.db.QueryContext(ctx, customerAggregatesSQL, ref.Format(time.DateOnly))
	if err != nil {
		return nil, fmt.Errorf("customer aggregates query failed: %w", err)
	}
	return collect(rows, func(r *sql.Rows) (rfm.CustomerAggregate, error) {
		var c rfm.CustomerAggregate
		err := r.Scan(&c.CustomerID, &c.Recency, &c.Frequency, &c.Monetary)
		return c, err
	})
}

var _ store.Store = (*Store)(nil)
