//-------------------------------------------------------------------------
//
// pgEdge Shop Stats
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

//go:build integration
// +build integration

// Integration tests for the PostgreSQL store.
// Run with: go test -tags=integration ./internal/store/...
// Requires PostgreSQL to be available.
// Set SHOPSTATS_TEST_CONN environment variable to override connection string.

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/pgEdge/pgedge-shopstats/internal/store"
	"github.com/pgEdge/pgedge-shopstats/internal/store/postgres"
	"github.com/pgEdge/pgedge-shopstats/internal/testutil"
)

func TestPostgresStoreIntegration(t *testing.T) {
	// Check if PostgreSQL is available
	baseConnStr := testutil.SkipIfNoPostgres(t)

	connStr := testutil.CreateTestDB(t, baseConnStr, "store")
	cleanup := testutil.NewTestCleanup(t, baseConnStr, testutil.GetDBNameFromConnStr(connStr))
	defer cleanup.Cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s, err := store.Open(ctx, postgres.DriverName, connStr)
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	cleanup.SetCloser(s.Close)

	if s.Driver() != postgres.DriverName {
		t.Errorf("Expected driver %s, got %s", postgres.DriverName, s.Driver())
	}

	testutil.RunStoreChecks(t, s)
}
