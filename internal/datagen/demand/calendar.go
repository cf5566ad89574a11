//-------------------------------------------------------------------------
//
// pgEdge Shop Stats
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package demand

import "time"

// Calendar simulates a retail calendar.
// Weekdays: 1.0
// Weekends: 1.5
// Holiday months (Jan, Feb, Oct, Dec): x1.2 on top of the above
type Calendar struct{}

// NewCalendar creates a new Calendar profile.
func NewCalendar() Profile {
	return &Calendar{}
}

func (p *Calendar) Name() string {
	return "calendar"
}

func (p *Calendar) Description() string {
	return "Retail calendar (weekend and holiday-month uplift)"
}

func (p *Calendar) Weight(day time.Time) float64 {
	weight := 1.0
	if isWeekend(day) {
		weight = 1.5
	}
	if isHolidayMonth(day.Month()) {
		weight *= 1.2
	}
	return weight
}

// Flat gives every day the same weight.
type Flat struct{}

// NewFlat creates a new Flat profile.
func NewFlat() Profile {
	return &Flat{}
}

func (p *Flat) Name() string {
	return "flat"
}

func (p *Flat) Description() string {
	return "Uniform demand across all days"
}

func (p *Flat) Weight(time.Time) float64 {
	return 1.0
}

// Promo is the retail calendar plus online shopping festivals.
// 18 June and 11 November: x3
type Promo struct {
	calendar Calendar
}

// NewPromo creates a new Promo profile.
func NewPromo() Profile {
	return &Promo{}
}

func (p *Promo) Name() string {
	return "promo"
}

func (p *Promo) Description() string {
	return "Retail calendar with 6.18 and 11.11 shopping festivals"
}

func (p *Promo) Weight(day time.Time) float64 {
	weight := p.calendar.Weight(day)
	if isFestival(day) {
		weight *= 3
	}
	return weight
}

func isWeekend(day time.Time) bool {
	wd := day.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func isHolidayMonth(m time.Month) bool {
	switch m {
	case time.January, time.February, time.October, time.December:
		return true
	}
	return false
}

func isFestival(day time.Time) bool {
	return (day.Month() == time.June && day.Day() == 18) ||
		(day.Month() == time.November && day.Day() == 11)
}
