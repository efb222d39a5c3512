package models

// Bucket is an interval plus the values assigned to it.
type Bucket struct {
	Interval
	// Label is the display label of the interval.
	Label string `json:"label"`
	// Count is the number of values assigned to the bucket.
	Count int `json:"count"`
	// Values holds the assigned values in series order.
	Values []float64 `json:"-"`
}

// NewBucket creates an empty bucket for the interval.
func NewBucket(i Interval) Bucket {
	return Bucket{Interval: i, Label: i.Label()}
}

// Add assigns v to the bucket.
func (b *Bucket) Add(v float64) {
	b.Values = append(b.Values, v)
	b.Count++
}
