//-------------------------------------------------------------------------
//
// pgEdge Shop Stats
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package demand implements daily demand profiles used to weight order
// dates in the synthetic sales history.
package demand

import (
	"fmt"
	"sort"
	"time"
)

// Profile defines the interface for demand profiles.
type Profile interface {
	// Name returns the profile name.
	Name() string

	// Description returns a human-readable description.
	Description() string

	// Weight returns the relative order volume of the given day. A
	// regular weekday is 1.0.
	Weight(day time.Time) float64
}

var registry = make(map[string]func() Profile)

// Register adds a profile constructor to the registry.
func Register(name string, constructor func() Profile) {
	registry[name] = constructor
}

// Get retrieves a profile by name.
func Get(name string) (Profile, error) {
	constructor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown demand profile: %s", name)
	}
	return constructor(), nil
}

// List returns all registered profile names, sorted.
func List() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Days returns every calendar day from start to end inclusive, at
// midnight UTC.
func Days(start, end time.Time) []time.Time {
	first := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	last := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)

	var days []time.Time
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// Weights returns the weight of each day under p.
func Weights(p Profile, days []time.Time) []float64 {
	weights := make([]float64, len(days))
	for i, d := range days {
		weights[i] = p.Weight(d)
	}
	return weights
}

func init() {
	Register("calendar", NewCalendar)
	Register("flat", NewFlat)
	Register("promo", NewPromo)
}
