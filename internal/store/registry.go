//-------------------------------------------------------------------------
//
// pgEdge Shop Stats
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Opener connects to a database and returns a Store.
type Opener func(ctx context.Context, connString string) (Store, error)

var (
	registry = make(map[string]Opener)
	mu       sync.RWMutex
)

// Register adds a driver to the registry.
func Register(name string, open Opener) {
	mu.Lock()
	defer mu.Unlock()
	registry[name] = open
}

// Open connects using the named driver.
func Open(ctx context.Context, driver, connString string) (Store, error) {
	mu.RLock()
	open, ok := registry[driver]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown driver: %s", driver)
	}
	return open(ctx, connString)
}

// List returns all registered driver names, sorted.
func List() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
