//-------------------------------------------------------------------------
//
// pgEdge Shop Stats
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package rfm scores customers by recency, frequency and monetary value
// and assigns each one to a segment.
//
// Each of the three columns is split into five quantile bins. Recency is
// inverted so the most recent customers score 5; frequency and monetary
// score 5 for the largest values. The segment is derived from the three
// scores by an ordered rule table (see Rules).
package rfm

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// NumBins is the number of quantile bins per column.
const NumBins = 5

var (
	// ErrEmptyInput is returned when Score is given no records.
	ErrEmptyInput = errors.New("rfm: no customer records")

	// ErrInsufficientDistinctValues is returned when a column cannot be
	// split into NumBins quantile bins.
	ErrInsufficientDistinctValues = errors.New("rfm: insufficient distinct values for quantile binning")
)

// CustomerAggregate is the per-customer input to Score.
type CustomerAggregate struct {
	CustomerID int64   `json:"customer_id"`
	Recency    int     `json:"recency"`
	Frequency  int     `json:"frequency"`
	Monetary   float64 `json:"monetary"`
}

// ScoredCustomer is a CustomerAggregate with its scores and segment.
type ScoredCustomer struct {
	CustomerAggregate

	RScore   int     `json:"r_score"`
	FScore   int     `json:"f_score"`
	MScore   int     `json:"m_score"`
	RFMScore string  `json:"rfm_score"`
	Segment  Segment `json:"segment"`
}

// Scores returns the three scores of the customer.
func (s ScoredCustomer) Scores() Scores {
	return Scores{R: s.RScore, F: s.FScore, M: s.MScore}
}

// Validate reports the first record that violates the input contract:
// recency >= 0, frequency >= 1 and a finite monetary value >= 0.
func Validate(records []CustomerAggregate) error {
	for _, r := range records {
		switch {
		case r.Recency < 0:
			return fmt.Errorf("customer %d: negative recency %d", r.CustomerID, r.Recency)
		case r.Frequency < 1:
			return fmt.Errorf("customer %d: frequency %d is below 1", r.CustomerID, r.Frequency)
		case math.IsNaN(r.Monetary) || math.IsInf(r.Monetary, 0) || r.Monetary < 0:
			return fmt.Errorf("customer %d: invalid monetary value %v", r.CustomerID, r.Monetary)
		}
	}
	return nil
}

// Score assigns R, F and M scores and a segment to every record. The
// output has one entry per input record, in input order. The input slice
// is not modified.
func Score(records []CustomerAggregate) ([]ScoredCustomer, error) {
	if len(records) == 0 {
		return nil, ErrEmptyInput
	}

	recency := make([]float64, len(records))
	frequency := make([]float64, len(records))
	monetary := make([]float64, len(records))
	for i, r := range records {
		recency[i] = float64(r.Recency)
		frequency[i] = float64(r.Frequency)
		monetary[i] = r.Monetary
	}

	rBins, err := binColumn("recency", recency)
	if err != nil {
		return nil, err
	}
	fBins, err := binColumn("frequency", frequency)
	if err != nil {
		return nil, err
	}
	mBins, err := binColumn("monetary", monetary)
	if err != nil {
		return nil, err
	}

	scored := make([]ScoredCustomer, len(records))
	for i, r := range records {
		s := Scores{
			R: NumBins + 1 - rBins[i], // smaller recency is better
			F: fBins[i],
			M: mBins[i],
		}
		scored[i] = ScoredCustomer{
			CustomerAggregate: r,
			RScore:            s.R,
			FScore:            s.F,
			MScore:            s.M,
			RFMScore:          s.Code(),
			Segment:           Classify(s),
		}
	}
	return scored, nil
}

func binColumn(name string, values []float64) ([]int, error) {
	edges, err := QuantileEdges(values, NumBins)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	bins := make([]int, len(values))
	for i, v := range values {
		bins[i] = AssignBin(edges, v)
	}
	return bins, nil
}

// Scores holds the three quantile scores of a customer.
type Scores struct {
	R, F, M int
}

// Code returns the scores concatenated in R, F, M order, e.g. "543".
func (s Scores) Code() string {
	return strconv.Itoa(s.R) + strconv.Itoa(s.F) + strconv.Itoa(s.M)
}
