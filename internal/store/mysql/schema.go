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
	"fmt"
	"slices"

	"github.com/pgEdge/pgedge-shopstats/internal/logging"
	"github.com/pgEdge/pgedge-shopstats/internal/store"
)

// The driver runs one statement per Exec.
var createSchemaSQL = []string{
	`CREATE TABLE IF NOT EXISTS products (
    product_id    INT PRIMARY KEY,
    product_name  VARCHAR(100) NOT NULL,
    category      VARCHAR(50) NOT NULL,
    subcategory   VARCHAR(50) NOT NULL,
    cost_price    DECIMAL(10,2) NOT NULL,
    selling_price DECIMAL(10,2) NOT NULL,
    supplier      VARCHAR(100) NOT NULL
) DEFAULT CHARSET = utf8mb4`,
	`CREATE TABLE IF NOT EXISTS customers (
    customer_id INT PRIMARY KEY,
    name        VARCHAR(100) NOT NULL,
    city        VARCHAR(50) NOT NULL,
    age_group   VARCHAR(10) NOT NULL,
    join_date   DATE NOT NULL
) DEFAULT CHARSET = utf8mb4`,
	`CREATE TABLE IF NOT EXISTS sales (
    order_id     INT PRIMARY KEY,
    order_date   DATE NOT NULL,
    customer_id  INT NOT NULL,
    product_id   INT NOT NULL,
    quantity     INT NOT NULL,
    unit_price   DECIMAL(10,2) NOT NULL,
    city         VARCHAR(50) NOT NULL,
    total_amount DECIMAL(12,2) NOT NULL,
    INDEX idx_sales_customer (customer_id),
    INDEX idx_sales_order_date (order_date),
    FOREIGN KEY (customer_id) REFERENCES customers(customer_id),
    FOREIGN KEY (product_id) REFERENCES products(product_id)
) DEFAULT CHARSET = utf8mb4`,
}

// CreateSchema creates the dataset tables.
func (s *Store) CreateSchema(ctx context.Context) error {
	for _, stmt := range createSchemaSQL {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	logging.Info().Msg("Schema created")
	return nil
}

// DropSchema drops the dataset and metadata tables.
func (s *Store) DropSchema(ctx context.Context) error {
	tables := slices.Clone(store.Tables)
	slices.Reverse(tables)
	tables = append(tables, store.MetadataTable)

	for _, table := range tables {
		if _, err := s.db.ExecContext(ctx, "DROP TABLE IF EXISTS "+table); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", table, err)
		}
	}
	logging.Info().Msg("Schema dropped")
	return nil
}
