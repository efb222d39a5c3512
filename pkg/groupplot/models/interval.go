package models

import (
	"math"
	"strconv"
)

// Interval is a half-open range [Low, High).
type Interval struct {
	// Low is the inclusive lower bound.
	Low float64 `json:"low"`
	// High is the exclusive upper bound. +Inf only for the trailing interval.
	High float64 `json:"high"`
}

// Contains reports whether v lies in [Low, High). An unbounded interval
// also holds +Inf.
func (i Interval) Contains(v float64) bool {
	return i.Low <= v && (v < i.High || i.Unbounded())
}

// Unbounded reports whether the interval is open-ended.
func (i Interval) Unbounded() bool {
	return math.IsInf(i.High, 1)
}

// Label renders the interval as "[low,high)".
func (i Interval) Label() string {
	return "[" + formatBound(i.Low) + "," + formatBound(i.High) + ")"
}

func (i Interval) String() string {
	return i.Label()
}

func formatBound(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "∞"
	case math.IsInf(v, -1):
		return "-∞"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
