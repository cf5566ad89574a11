//-------------------------------------------------------------------------
//
// pgEdge Shop Stats
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package main is the entry point for pgedge-shopstats.
package main

import (
	"fmt"
	"os"

	"github.com/pgEdge/pgedge-shopstats/internal/cli"

	// Register database drivers
	_ "github.com/pgEdge/pgedge-shopstats/internal/store/mysql"
	_ "github.com/pgEdge/pgedge-shopstats/internal/store/postgres"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
