//-------------------------------------------------------------------------
//
// pgEdge Shop Stats
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package rfm

// Segment is a customer segment label.
type Segment string

// Customer segments, from most to least specific rule.
const (
	Champion  Segment = "Champion"
	Potential Segment = "Potential"
	Loyal     Segment = "Loyal"
	AtRisk    Segment = "At-risk"
	General   Segment = "General"
)

// Rule maps a score predicate to a segment.
type Rule struct {
	Segment     Segment
	Description string
	Match       func(Scores) bool
}

// Rules is the ordered segment rule table. The first matching rule wins,
// so a customer matching several rules gets the earliest one.
var Rules = []Rule{
	{
		Segment:     Champion,
		Description: "R >= 4, F >= 4, M >= 4",
		Match:       func(s Scores) bool { return s.R >= 4 && s.F >= 4 && s.M >= 4 },
	},
	{
		Segment:     Potential,
		Description: "R >= 4, F >= 3",
		Match:       func(s Scores) bool { return s.R >= 4 && s.F >= 3 },
	},
	{
		Segment:     Loyal,
		Description: "R >= 3, F >= 3",
		Match:       func(s Scores) bool { return s.R >= 3 && s.F >= 3 },
	},
	{
		Segment:     AtRisk,
		Description: "R <= 2, F >= 3",
		Match:       func(s Scores) bool { return s.R <= 2 && s.F >= 3 },
	},
	{
		Segment:     General,
		Description: "everyone else",
		Match:       func(Scores) bool { return true },
	},
}

// Classify returns the segment of the first rule matching s.
func Classify(s Scores) Segment {
	for _, r := range Rules {
		if r.Match(s) {
			return r.Segment
		}
	}
	return General
}

// Segments returns every segment in rule order.
func Segments() []Segment {
	out := make([]Segment, len(Rules))
	for i, r := range Rules {
		out[i] = r.Segment
	}
	return out
}

// Rank returns the position of seg in the rule table, 0 being the most
// valuable segment. Unknown segments rank last.
func Rank(seg Segment) int {
	for i, r := range Rules {
		if r.Segment == seg {
			return i
		}
	}
	return len(Rules)
}

// SegmentCount is the number of customers in a segment.
type SegmentCount struct {
	Segment   Segment `json:"segment"`
	Customers int     `json:"customers"`
}

// SegmentCounts counts scored customers per segment. Every segment is
// present, in rule order, including empty ones.
func SegmentCounts(scored []ScoredCustomer) []SegmentCount {
	counts := make(map[Segment]int, len(Rules))
	for _, s := range scored {
		counts[s.Segment]++
	}
	out := make([]SegmentCount, len(Rules))
	for i, r := range Rules {
		out[i] = SegmentCount{Segment: r.Segment, Customers: counts[r.Segment]}
	}
	return out
}
