//-------------------------------------------------------------------------
//
// pgEdge Shop Stats
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package rfm

import (
	"fmt"
	"math"
	"slices"
	"sort"
)

// QuantileEdges returns the bins+1 quantile edges of values at
// 0, 1/bins, ..., 1. Quantiles are linearly interpolated between the
// closest ranks of the sorted values.
//
// It fails with ErrInsufficientDistinctValues when values has fewer than
// bins distinct entries or when two consecutive edges coincide.
func QuantileEdges(values []float64, bins int) ([]float64, error) {
	if len(values) == 0 {
		return nil, ErrEmptyInput
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	if distinct := countDistinct(sorted); distinct < bins {
		return nil, fmt.Errorf("%w: %d distinct values, need %d",
			ErrInsufficientDistinctValues, distinct, bins)
	}

	edges := make([]float64, bins+1)
	for i := 0; i <= bins; i++ {
		edges[i] = quantile(sorted, float64(i)/float64(bins))
	}

	for i := 1; i < len(edges); i++ {
		if edges[i] == edges[i-1] {
			return nil, fmt.Errorf("%w: duplicate bin edge %v",
				ErrInsufficientDistinctValues, edges[i])
		}
	}
	return edges, nil
}

// AssignBin returns the 1-based bin of v given edges from QuantileEdges.
// Bins are right-closed, (e[i-1], e[i]], and the first bin also holds the
// minimum. A value equal to an edge therefore falls in the lower bin.
func AssignBin(edges []float64, v float64) int {
	upper := edges[1:]
	bin := sort.SearchFloat64s(upper, v) + 1
	return min(bin, len(upper))
}

func quantile(sorted []float64, q float64) float64 {
	h := float64(len(sorted)-1) * q
	lo := math.Floor(h)
	i := int(lo)
	if i+1 >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	return sorted[i] + (h-lo)*(sorted[i+1]-sorted[i])
}

func countDistinct(sorted []float64) int {
	n := 0
	for i, v := range sorted {
		if i == 0 || v != sorted[i-1] {
			n++
		}
	}
	return n
}
