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
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/pgEdge/pgedge-shopstats/internal/rfm"
	"github.com/pgEdge/pgedge-shopstats/internal/store"
)

const monthlySalesSQL = `
SELECT to_char(order_date, 'YYYY-MM')    AS month,
       SUM(total_amount)::float8         AS sales,
       COUNT(DISTINCT order_id)          AS orders,
       AVG(total_amount)::float8         AS avg_order_value
FROM sales
GROUP BY to_char(order_date, 'YYYY-MM')
ORDER BY month`

const categoryPerformanceSQL = `
SELECT p.category,
       COUNT(DISTINCT s.order_id)  AS order_count,
       SUM(s.total_amount)::float8 AS total_sales,
       AVG(s.total_amount)::float8 AS avg_sale_value,
       SUM(s.quantity)::bigint     AS total_quantity
FROM sales s
JOIN products p ON s.product_id = p.product_id
GROUP BY p.category
ORDER BY total_sales DESC, p.category`

const cityPerformanceSQL = `
SELECT city,
       COUNT(DISTINCT order_id)                                  AS order_count,
       SUM(total_amount)::float8                                 AS total_sales,
       COUNT(DISTINCT customer_id)                               AS customer_count,
       (SUM(total_amount) / COUNT(DISTINCT customer_id))::float8 AS sales_per_customer
FROM sales
GROUP BY city
ORDER BY total_sales DESC, city`

const customerAggregatesSQL = `
SELECT customer_id::bigint,
       GREATEST($1::date - MAX(order_date), 0) AS recency,
       COUNT(DISTINCT order_id)::int           AS frequency,
       SUM(total_amount)::float8               AS monetary
FROM sales
GROUP BY customer_id
ORDER BY customer_id`

// MonthlySales returns sales per month.
func (s *Store) MonthlySales(ctx context.Context) ([]store.MonthlySales, error) {
	rows, err := s.pool.Query(ctx, monthlySalesSQL)
	if err != nil {
		return nil, fmt.Errorf("monthly sales query failed: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (store.MonthlySales, error) {
		var m store.MonthlySales
		err := row.Scan(&m.Month, &m.Sales, &m.Orders, &m.AvgOrderValue)
		return m, err
	})
}

// CategoryPerformance returns sales per category.
func (s *Store) CategoryPerformance(ctx context.Context) ([]store.CategoryPerformance, error) {
	rows, err := s.pool.Query(ctx, categoryPerformanceSQL)
	if err != nil {
		return nil, fmt.Errorf("category performance query failed: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (store.CategoryPerformance, error) {
		var c store.CategoryPerformance
		err := row.Scan(&c.Category, &c.OrderCount, &c.TotalSales, &c.AvgSaleValue, &c.TotalQuantity)
		return c, err
	})
}

// CityPerformance returns sales per city.
func (s *Store) CityPerformance(ctx context.Context) ([]store.CityPerformance, error) {
	rows, err := s.pool.Query(ctx, cityPerformanceSQL)
	if err != nil {
		return nil, fmt.Errorf("city performance query failed: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (store.CityPerformance, error) {
		var c store.CityPerformance
		err := row.Scan(&c.City, &c.OrderCount, &c.TotalSales, &c.CustomerCount, &c.SalesPerCustomer)
		return c, err
	})
}

// CustomerAggregates returns RFM inputs for every customer with orders.
func (s *Store) CustomerAggregates(ctx context.Context, ref time.Time) ([]rfm.CustomerAggregate, error) {
	rows, err := s.pool.Query(ctx, customerAggregatesSQL, ref)
	if err != nil {
		return nil, fmt.Errorf("customer aggregates query failed: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (rfm.CustomerAggregate, error) {
		var c rfm.CustomerAggregate
		err := row.Scan(&c.CustomerID, &c.Recency, &c.Frequency, &c.Monetary)
		return c, err
	})
}

var _ store.Store = (*Store)(nil)
