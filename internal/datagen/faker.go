//-------------------------------------------------------------------------
//
// pgEdge Shop Stats
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package datagen generates the synthetic e-commerce dataset.
package datagen

import (
	"math"
	"sort"
	"time"

	"github.com/brianvoe/gofakeit/v7"
)

// Faker provides fake data generation using gofakeit.
type Faker struct {
	faker *gofakeit.Faker
}

// NewFaker creates a new Faker with a random seed.
func NewFaker() *Faker {
	return NewFakerWithSeed(uint64(time.Now().UnixNano()))
}

// NewFakerWithSeed creates a new Faker with a specific seed for reproducibility.
func NewFakerWithSeed(seed uint64) *Faker {
	return &Faker{
		faker: gofakeit.New(seed),
	}
}

// Name generates a random full name.
func (f *Faker) Name() string {
	return f.faker.Name()
}

// Int generates a random integer between min and max (inclusive).
func (f *Faker) Int(min, max int) int {
	return f.faker.IntRange(min, max)
}

// Float64 generates a random float64 between min and max.
func (f *Faker) Float64(min, max float64) float64 {
	return f.faker.Float64Range(min, max)
}

// Poisson draws from a Poisson distribution with mean lambda.
func (f *Faker) Poisson(lambda float64) int {
	limit := math.Exp(-lambda)
	k := 0
	p := f.Float64(0, 1)
	for p > limit {
		k++
		p *= f.Float64(0, 1)
	}
	return k
}

// Choose returns a random element from the given slice.
func Choose[T any](f *Faker, items []T) T {
	if len(items) == 0 {
		var zero T
		return zero
	}
	return items[f.Int(0, len(items)-1)]
}

// WeightedSampler picks items with probability proportional to their
// weight.
type WeightedSampler[T any] struct {
	items      []T
	cumulative []float64
}

// NewWeightedSampler builds a sampler. Items and weights must have the
// same length; non-positive weights are never picked.
func NewWeightedSampler[T any](items []T, weights []float64) *WeightedSampler[T] {
	n := min(len(items), len(weights))
	s := &WeightedSampler[T]{
		items:      items[:n],
		cumulative: make([]float64, n),
	}
	total := 0.0
	for i := 0; i < n; i++ {
		if weights[i] > 0 {
			total += weights[i]
		}
		s.cumulative[i] = total
	}
	return s
}

// Pick returns a random item, or the zero value if the sampler is empty.
func (s *WeightedSampler[T]) Pick(f *Faker) T {
	if len(s.items) == 0 || s.cumulative[len(s.cumulative)-1] == 0 {
		var zero T
		return zero
	}
	total := s.cumulative[len(s.cumulative)-1]
	r := f.Float64(0, total)
	if r >= total {
		r = math.Nextafter(total, 0)
	}
	// First item whose cumulative weight exceeds r; zero-weight items
	// never satisfy this.
	i := sort.Search(len(s.cumulative), func(i int) bool {
		return s.cumulative[i] > r
	})
	return s.items[i]
}
