// Package binning resolves intervals and assigns series values to them.
package binning

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ukaji3/groupplot-go/pkg/groupplot/models"
)

// ValidateIntervals checks that intervals have finite bounds, low < high,
// and are sorted without overlap. Adjacent intervals may share a bound.
func ValidateIntervals(intervals []models.Interval) error {
	for idx, itv := range intervals {
		if !isFinite(itv.Low) || !isFinite(itv.High) {
			return NewIntervalError(idx, itv, ErrNonFiniteBound)
		}
		if !(itv.Low < itv.High) {
			return NewIntervalError(idx, itv, ErrEmptyInterval)
		}
		if idx == 0 {
			continue
		}
		prev := intervals[idx-1]
		if itv.Low < prev.Low {
			return NewIntervalError(idx, itv, ErrUnsorted)
		}
		if itv.Low < prev.High {
			return NewIntervalError(idx, itv, ErrOverlap)
		}
	}
	return nil
}

// FromPairs converts [[low, high], ...] into intervals and validates them.
func FromPairs(pairs [][]float64) ([]models.Interval, error) {
	intervals := make([]models.Interval, 0, len(pairs))
	for idx, p := range pairs {
		if len(p) != 2 {
			return nil, &IntervalError{Index: idx, Err: fmt.Errorf("%w, %d given", ErrMalformedPair, len(p))}
		}
		intervals = append(intervals, models.Interval{Low: p[0], High: p[1]})
	}
	if err := ValidateIntervals(intervals); err != nil {
		return nil, err
	}
	return intervals, nil
}

// ParseIntervals parses "low:high,low:high" into validated intervals.
// Whitespace around bounds is ignored; an empty string yields nil.
func ParseIntervals(s string) ([]models.Interval, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	var pairs [][]float64
	for idx, part := range strings.Split(s, ",") {
		bounds := strings.Split(strings.TrimSpace(part), ":")
		if len(bounds) != 2 {
			return nil, &IntervalError{Index: idx, Err: fmt.Errorf("%w: %q", ErrMalformedPair, part)}
		}
		low, err := strconv.ParseFloat(strings.TrimSpace(bounds[0]), 64)
		if err != nil {
			return nil, &IntervalError{Index: idx, Err: fmt.Errorf("%w: %v", ErrNonFiniteBound, err)}
		}
		high, err := strconv.ParseFloat(strings.TrimSpace(bounds[1]), 64)
		if err != nil {
			return nil, &IntervalError{Index: idx, Err: fmt.Errorf("%w: %v", ErrNonFiniteBound, err)}
		}
		pairs = append(pairs, []float64{low, high})
	}
	return FromPairs(pairs)
}

// FormatIntervals is the inverse of ParseIntervals.
func FormatIntervals(intervals []models.Interval) string {
	parts := make([]string, len(intervals))
	for i, itv := range intervals {
		parts[i] = strconv.FormatFloat(itv.Low, 'g', -1, 64) + ":" + strconv.FormatFloat(itv.High, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
