// Package models defines data structures for value grouping.
package models

import "math"

// Series is an ordered sequence of numeric values.
// NaN marks a missing value.
type Series struct {
	// Name is the series display name (column header, chart series name).
	Name string `json:"name,omitempty"`
	// Values holds the raw values in source order.
	Values []float64 `json:"values"`
}

// NewSeries creates a Series from values.
func NewSeries(name string, values ...float64) Series {
	return Series{Name: name, Values: values}
}

// Len returns the raw number of values, missing ones included.
func (s Series) Len() int {
	return len(s.Values)
}

// Clean returns a copy of the non-missing values and the number of missing ones.
func (s Series) Clean() ([]float64, int) {
	values := make([]float64, 0, len(s.Values))
	missing := 0
	for _, v := range s.Values {
		if math.IsNaN(v) {
			missing++
			continue
		}
		values = append(values, v)
	}
	return values, missing
}
