package models

import "encoding/json"

// Grouping is the ordered result of bucketing a series.
type Grouping struct {
	// Buckets follow interval order; the trailing open bucket, if any, is last.
	Buckets []Bucket
	// Dropped counts values assigned to no bucket, missing values included.
	Dropped int
	// Missing counts NaN values in the input.
	Missing int
	// Total is the raw series length.
	Total int
	// HigherVals reports whether a trailing open bucket was added.
	HigherVals bool
}

// Labels returns the bucket labels in order.
func (g *Grouping) Labels() []string {
	labels := make([]string, len(g.Buckets))
	for i, b := range g.Buckets {
		labels[i] = b.Label
	}
	return labels
}

// Counts returns the bucket counts in order.
func (g *Grouping) Counts() []int {
	counts := make([]int, len(g.Buckets))
	for i, b := range g.Buckets {
		counts[i] = b.Count
	}
	return counts
}

// Intervals returns the bucket intervals in order.
func (g *Grouping) Intervals() []Interval {
	intervals := make([]Interval, len(g.Buckets))
	for i, b := range g.Buckets {
		intervals[i] = b.Interval
	}
	return intervals
}

// Map returns label to count. Use Labels for ordering.
func (g *Grouping) Map() map[string]int {
	m := make(map[string]int, len(g.Buckets))
	for _, b := range g.Buckets {
		m[b.Label] = b.Count
	}
	return m
}

// Assigned returns the number of values placed in a bucket.
func (g *Grouping) Assigned() int {
	n := 0
	for _, b := range g.Buckets {
		n += b.Count
	}
	return n
}

// Empty reports whether the grouping has no buckets.
func (g *Grouping) Empty() bool {
	return len(g.Buckets) == 0
}

type bucketJSON struct {
	Label string   `json:"label"`
	Low   float64  `json:"low"`
	High  *float64 `json:"high"`
	Count int      `json:"count"`
}

type groupingJSON struct {
	Buckets []bucketJSON `json:"buckets"`
	Dropped int          `json:"dropped"`
	Missing int          `json:"missing"`
	Total   int          `json:"total"`
}

// MarshalJSON encodes buckets as an ordered array. The high bound of the
// open trailing bucket is null since JSON has no infinity.
func (g *Grouping) MarshalJSON() ([]byte, error) {
	out := groupingJSON{
		Buckets: make([]bucketJSON, 0, len(g.Buckets)),
		Dropped: g.Dropped,
		Missing: g.Missing,
		Total:   g.Total,
	}
	for _, b := range g.Buckets {
		bj := bucketJSON{Label: b.Label, Low: b.Low, Count: b.Count}
		if !b.Unbounded() {
			high := b.High
			bj.High = &high
		}
		out.Buckets = append(out.Buckets, bj)
	}
	return json.Marshal(out)
}
