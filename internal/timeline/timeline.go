// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

// Package timeline tracks the year the player is in and the frame clock
// that feeds every timer.
package timeline

import (
	"fmt"

	"github.com/samber/oops"
)

// Default bounds of travel.
const (
	DefaultMinYear   int64 = -10000
	DefaultMaxYear   int64 = 5000
	DefaultStartYear int64 = 2025
)

// Eras in index order.
var eraNames = [...]string{"Ancient", "Medieval", "Industrial", "Present", "Near Future", "Far Future"}

// EraCount is the number of terrain eras.
const EraCount = len(eraNames)

// EraIndex buckets a year into a terrain era.
func EraIndex(year int64) int {
	switch {
	case year < -3000:
		return 0
	case year < 500:
		return 1
	case year < 1800:
		return 2
	case year < 2100:
		return 3
	case year < 3000:
		return 4
	default:
		return 5
	}
}

// EraName returns the display name of era index i.
func EraName(i int) string {
	if i < 0 || i >= EraCount {
		return "Unknown"
	}
	return eraNames[i]
}

var eraYears = [...]int64{-5000, -1000, 1200, 2025, 2500, 3500}

// EraYear returns a year that lies in era i. It is where travel to an era
// without a specific year lands.
func EraYear(i int) int64 {
	i = min(max(i, 0), EraCount-1)
	return eraYears[i]
}

// OutOfRangeError reports a travel target outside the timeline.
type OutOfRangeError struct {
	Year int64
	Min  int64
	Max  int64
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("year %d is outside the timeline [%d, %d]", e.Year, e.Min, e.Max)
}

// Timeline is the traversable span of years and the year currently shown.
type Timeline struct {
	active int64
	min    int64
	max    int64
}

// New returns a timeline spanning [minYear, maxYear] positioned at start.
func New(minYear, maxYear, start int64) (*Timeline, error) {
	if minYear > maxYear {
		return nil, oops.Code("TIMELINE_INVALID").
			With("min_year", minYear).
			With("max_year", maxYear).
			Errorf("min year after max year")
	}
	t := &Timeline{min: minYear, max: maxYear, active: minYear}
	if err := t.TravelToYear(start); err != nil {
		return nil, err
	}
	return t, nil
}

// Default returns the stock timeline starting in the present.
func Default() *Timeline {
	return &Timeline{active: DefaultStartYear, min: DefaultMinYear, max: DefaultMaxYear}
}

// ActiveYear returns the current year.
func (t *Timeline) ActiveYear() int64 { return t.active }

// Bounds returns the travel limits.
func (t *Timeline) Bounds() (minYear, maxYear int64) { return t.min, t.max }

// EraIndex returns the terrain era of the current year.
func (t *Timeline) EraIndex() int { return EraIndex(t.active) }

// EraName returns the display name of the current era.
func (t *Timeline) EraName() string { return EraName(t.EraIndex()) }

// TravelToYear moves to year. A year outside the bounds returns an error
// carrying *OutOfRangeError and leaves the timeline unchanged.
func (t *Timeline) TravelToYear(year int64) error {
	if year < t.min || year > t.max {
		return oops.Code("YEAR_OUT_OF_RANGE").
			With("year", year).
			With("min_year", t.min).
			With("max_year", t.max).
			Wrap(&OutOfRangeError{Year: year, Min: t.min, Max: t.max})
	}
	t.active = year
	return nil
}
