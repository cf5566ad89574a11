//-------------------------------------------------------------------------
//
// pgEdge Shop Stats
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package mysql implements the store on MySQL and MariaDB using
// database/sql and go-sql-driver/mysql.
package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	driver "github.com/go-sql-driver/mysql"

	"github.com/pgEdge/pgedge-shopstats/internal/logging"
	"github.com/pgEdge/pgedge-shopstats/internal/store"
)

// DriverName is the registry name of this driver.
const DriverName = "mysql"

func init() {
	store.Register(DriverName, func(ctx context.Context, connString string) (store.Store, error) {
		return Open(ctx, connString)
	})
}

// Store is a MySQL-backed store.
type Store struct {
	db *sql.DB

	// batchSize is the number of rows per multi-row INSERT.
	batchSize int
}

// DefaultBatchSize is the number of rows per INSERT statement.
const DefaultBatchSize = 500

// Open connects and returns a Store.
func Open(ctx context.Context, connString string) (*Store, error) {
	dsn, err := ToDSN(connString)
	if err != nil {
		return nil, err
	}
	cfg, err := driver.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse dsn: %w", err)
	}

	logging.Debug().
		Str("addr", cfg.Addr).
		Str("database", cfg.DBName).
		Msg("Connecting to database")

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logging.Info().
		Str("addr", cfg.Addr).
		Str("database", cfg.DBName).
		Msg("Connected to database")

	return New(db), nil
}

// New wraps an existing database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db, batchSize: DefaultBatchSize}
}

// Driver returns "mysql".
func (s *Store) Driver() string {
	return DriverName
}

// Close closes the database handle.
func (s *Store) Close() {
	_ = s.db.Close()
}
