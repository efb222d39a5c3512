package binning

import (
	"math"
	"sort"

	"github.com/ukaji3/groupplot-go/pkg/groupplot/models"
)

// Group assigns each series value to the interval with low <= v < high.
// With higherVals, values at or above the last high go to a trailing
// [lastHigh, +Inf) bucket, which takes +Inf too. Values falling in no
// bucket, -Inf included, are dropped.
// Intervals must already be valid (see ValidateIntervals).
func Group(series models.Series, intervals []models.Interval, higherVals bool) *models.Grouping {
	g := &models.Grouping{
		Total:      series.Len(),
		HigherVals: higherVals && len(intervals) > 0,
	}

	g.Buckets = make([]models.Bucket, 0, len(intervals)+1)
	for _, itv := range intervals {
		g.Buckets = append(g.Buckets, models.NewBucket(itv))
	}
	if g.HigherVals {
		last := intervals[len(intervals)-1]
		g.Buckets = append(g.Buckets, models.NewBucket(models.Interval{Low: last.High, High: math.Inf(1)}))
	}

	for _, v := range series.Values {
		if math.IsNaN(v) {
			g.Missing++
			g.Dropped++
			continue
		}
		idx := locate(g.Buckets, v)
		if idx < 0 {
			g.Dropped++
			continue
		}
		g.Buckets[idx].Add(v)
	}

	return g
}

// locate returns the index of the bucket containing v, or -1.
func locate(buckets []models.Bucket, v float64) int {
	// First bucket whose low is greater than v; the candidate precedes it.
	i := sort.Search(len(buckets), func(i int) bool {
		return buckets[i].Low > v
	}) - 1
	if i < 0 || !buckets[i].Contains(v) {
		return -1
	}
	return i
}
