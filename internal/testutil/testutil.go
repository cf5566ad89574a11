//-------------------------------------------------------------------------
//
// pgEdge Shop Stats
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package testutil provides databases and sample data for integration
// tests.
package testutil

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pgEdge/pgedge-shopstats/internal/datagen"
)

const (
	// DefaultTestConnString is the default connection string for tests.
	// Override with SHOPSTATS_TEST_CONN environment variable.
	DefaultTestConnString = "postgres://postgres@localhost:5432/postgres"

	// TestDBPrefix is the prefix for test databases.
	TestDBPrefix = "shopstats_test_"
)

// PostgresAvailable checks if PostgreSQL is available for testing.
// Returns the connection string if available, empty string otherwise.
func PostgresAvailable() string {
	connStr := os.Getenv("SHOPSTATS_TEST_CONN")
	if connStr == "" {
		connStr = DefaultTestConnString
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return ""
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return ""
	}

	return connStr
}

// SkipIfNoMySQL skips the test unless SHOPSTATS_TEST_MYSQL names a MySQL
// database. The tests drop and recreate the dataset tables in it.
func SkipIfNoMySQL(t *testing.T) string {
	connStr := os.Getenv("SHOPSTATS_TEST_MYSQL")
	if connStr == "" {
		t.Skip("SHOPSTATS_TEST_MYSQL not set, skipping MySQL integration test")
	}
	return connStr
}

// SkipIfNoPostgres skips the test if PostgreSQL is not available.
func SkipIfNoPostgres(t *testing.T) string {
	connStr := PostgresAvailable()
	if connStr == "" {
		t.Skip("PostgreSQL not available, skipping integration test")
	}
	return connStr
}

// CreateTestDB creates a test database and returns the connection string.
func CreateTestDB(t *testing.T, baseConnStr, name string) string {
	t.Helper()

	// Generate random suffix for database name
	randomBytes := make([]byte, 8)
	if _, err := rand.Read(randomBytes); err != nil {
		t.Fatalf("Failed to generate random database name: %v", err)
	}
	dbName := TestDBPrefix + name + "_" + hex.EncodeToString(randomBytes)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Connect to default database to create test database
	pool, err := pgxpool.New(ctx, baseConnStr)
	if err != nil {
		t.Fatalf("Failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	// Drop if exists and create fresh
	_, err = pool.Exec(ctx, fmt.Sprintf("DROP DATABASE IF EXISTS %s", dbName))
	if err != nil {
		t.Fatalf("Failed to drop existing test database: %v", err)
	}

	_, err = pool.Exec(ctx, fmt.Sprintf("CREATE DATABASE %s", dbName))
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	// Return connection string for new database
	// Parse the base connection string and build a new one with the test database
	config, err := pgxpool.ParseConfig(baseConnStr)
	if err != nil {
		t.Fatalf("Failed to parse connection string: %v", err)
	}

	// Build the connection string manually since ConnString() doesn't reflect
	// changes made to ConnConfig.Database
	host := config.ConnConfig.Host
	port := config.ConnConfig.Port
	user := config.ConnConfig.User
	password := config.ConnConfig.Password

	var testConnStr string
	if password != "" {
		testConnStr = fmt.Sprintf("postgres://%s:%s@%s:%d/%s",
			user, password, host, port, dbName)
	} else {
		testConnStr = fmt.Sprintf("postgres://%s@%s:%d/%s",
			user, host, port, dbName)
	}

	return testConnStr
}

// DropTestDB drops the test database.
func DropTestDB(t *testing.T, baseConnStr, dbName string) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, baseConnStr)
	if err != nil {
		t.Logf("Warning: Failed to connect to drop test database: %v", err)
		return
	}
	defer pool.Close()

	// Terminate connections to the database
	_, _ = pool.Exec(ctx, fmt.Sprintf(`
        SELECT pg_terminate_backend(pid)
        FROM pg_stat_activity
        WHERE datname = '%s' AND pid <> pg_backend_pid()
    `, dbName))

	_, err = pool.Exec(ctx, fmt.Sprintf("DROP DATABASE IF EXISTS %s", dbName))
	if err != nil {
		t.Logf("Warning: Failed to drop test database: %v", err)
	}
}

// GetDBNameFromConnStr extracts the database name from a connection string.
func GetDBNameFromConnStr(connStr string) string {
	config, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return ""
	}
	return config.ConnConfig.Database
}

// TestCleanup is a helper that cleans up test resources.
type TestCleanup struct {
	t           *testing.T
	baseConnStr string
	dbName      string
	closer      func()
}

// NewTestCleanup creates a new test cleanup helper.
func NewTestCleanup(t *testing.T, baseConnStr, dbName string) *TestCleanup {
	return &TestCleanup{
		t:           t,
		baseConnStr: baseConnStr,
		dbName:      dbName,
	}
}

// SetCloser sets a function run before the database is dropped, usually
// the Close method of the store under test.
func (tc *TestCleanup) SetCloser(closer func()) {
	tc.closer = closer
}

// Cleanup performs the cleanup.
// The database is only dropped if the test passed; on failure it remains
// for diagnostic purposes.
func (tc *TestCleanup) Cleanup() {
	if tc.closer != nil {
		tc.closer()
	}
	if tc.dbName != "" {
		if tc.t.Failed() {
			tc.t.Logf("Test failed - keeping database %s for diagnostics", tc.dbName)
		} else {
			DropTestDB(tc.t, tc.baseConnStr, tc.dbName)
		}
	}
}

func day(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

// SampleDataset is a small dataset with known aggregates: two products in
// Electronics and Food, customer 1000 in Wuhan with two orders totalling
// 980.00 (last on 2024-02-20), and customer 1001 in Chengdu with one order
// of 90.00 on 2024-01-15.
func SampleDataset() *datagen.Dataset {
	return &datagen.Dataset{
		StartDate: day("2024-01-01"),
		EndDate:   day("2024-02-29"),
		Products: []datagen.Product{
			{ProductID: 1, ProductName: "Laptop0", Category: "Electronics", Subcategory: "Laptop", CostPrice: 500, SellingPrice: 800, Supplier: "Supplier 1"},
			{ProductID: 2, ProductName: "Snacks0", Category: "Food", Subcategory: "Snacks", CostPrice: 60, SellingPrice: 90, Supplier: "Supplier 2"},
		},
		Customers: []datagen.Customer{
			{CustomerID: 1000, Name: "Li Wei", City: "Wuhan", AgeGroup: "18-25", JoinDate: day("2024-01-01")},
			{CustomerID: 1001, Name: "Zhang Min", City: "Chengdu", AgeGroup: "26-35", JoinDate: day("2024-01-05")},
		},
		Sales: []datagen.Sale{
			{OrderID: 10000, OrderDate: day("2024-01-10"), CustomerID: 1000, ProductID: 1, Quantity: 1, UnitPrice: 800, City: "Wuhan", TotalAmount: 800},
			{OrderID: 10001, OrderDate: day("2024-02-20"), CustomerID: 1000, ProductID: 2, Quantity: 2, UnitPrice: 90, City: "Wuhan", TotalAmount: 180},
			{OrderID: 10002, OrderDate: day("2024-01-15"), CustomerID: 1001, ProductID: 2, Quantity: 1, UnitPrice: 90, City: "Chengdu", TotalAmount: 90},
		},
	}
}
