package binning

import (
	"fmt"
	"math"
	"sort"

	moremath "github.com/aclements/go-moremath/stats"
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"github.com/ukaji3/groupplot-go/pkg/groupplot/models"
)

// Policy derives intervals for a series when none are given.
// The returned bool asks for a trailing bucket for higher values.
// An empty input yields no intervals and no error.
type Policy interface {
	Name() string
	Intervals(values []float64) ([]models.Interval, bool, error)
}

// PercentilePolicy splits [base, percentile) into equal buckets, base being
// min(0, floor(min)), and always asks for the trailing bucket so the values
// above the percentile get a bucket of their own.
type PercentilePolicy struct {
	// Buckets is the number of bounded intervals.
	Buckets int
	// Percentile is in (0, 100].
	Percentile float64
}

// DefaultPolicy returns the policy used when Options.Policy is nil.
func DefaultPolicy() Policy {
	return PercentilePolicy{Buckets: 5, Percentile: 80}
}

func (p PercentilePolicy) Name() string { return "percentile" }

func (p PercentilePolicy) Intervals(values []float64) ([]models.Interval, bool, error) {
	values = finite(values)
	if len(values) == 0 {
		return nil, false, nil
	}
	if p.Buckets <= 0 {
		return nil, false, fmt.Errorf("percentile policy: bucket count must be positive, %d given", p.Buckets)
	}
	if !(p.Percentile > 0 && p.Percentile <= 100) {
		return nil, false, fmt.Errorf("percentile policy: percentile must be in (0, 100], %v given", p.Percentile)
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	pct := stat.Quantile(p.Percentile/100, stat.LinInterp, sorted, nil)
	base := math.Min(0, math.Floor(sorted[0]))
	span := pct - base
	n := float64(p.Buckets)

	var unit float64
	rounded := false
	switch {
	case span <= 0:
		unit = 1
	case span > n:
		unit = roundUpHundred(span / n)
	default:
		unit = span / n
		if r := roundDecimals(unit, 3); r > 0 {
			unit = r
			rounded = true
		}
	}
	// Far from zero a small unit vanishes into the bounds' precision.
	if least := minStep(base, pct); unit < least {
		unit = niceStep(least)
		rounded = false
	}

	intervals := make([]models.Interval, 0, p.Buckets)
	for i := 0; i < p.Buckets; i++ {
		low := base + float64(i)*unit
		high := base + float64(i+1)*unit
		if rounded {
			low, high = roundDecimals(low, 3), roundDecimals(high, 3)
		}
		intervals = append(intervals, models.Interval{Low: low, High: high})
	}
	return intervals, true, nil
}

// SturgesPolicy uses ceil(log2 n)+1 equal-width bins over [min, max],
// widened to a 1/2/5 step.
type SturgesPolicy struct{}

func (SturgesPolicy) Name() string { return "sturges" }

func (SturgesPolicy) Intervals(values []float64) ([]models.Interval, bool, error) {
	values = finite(values)
	if len(values) == 0 {
		return nil, false, nil
	}
	min, max, err := bounds(values)
	if err != nil {
		return nil, false, err
	}
	k := math.Ceil(math.Log2(float64(len(values)))) + 1
	return evenIntervals(min, max, (max-min)/k), false, nil
}

// FreedmanDiaconisPolicy uses a bin width of 2*IQR/cbrt(n), falling back to
// SturgesPolicy when the IQR is zero.
type FreedmanDiaconisPolicy struct{}

func (FreedmanDiaconisPolicy) Name() string { return "fd" }

func (FreedmanDiaconisPolicy) Intervals(values []float64) ([]models.Interval, bool, error) {
	values = finite(values)
	if len(values) == 0 {
		return nil, false, nil
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	iqr := moremath.Sample{Xs: sorted, Sorted: true}.IQR()
	if iqr <= 0 {
		return SturgesPolicy{}.Intervals(values)
	}
	width := 2 * iqr / math.Cbrt(float64(len(sorted)))
	return evenIntervals(sorted[0], sorted[len(sorted)-1], width), false, nil
}

// PolicyByName returns the policy registered under name.
func PolicyByName(name string) (Policy, error) {
	switch name {
	case "", "percentile":
		return DefaultPolicy(), nil
	case "sturges":
		return SturgesPolicy{}, nil
	case "fd", "freedman-diaconis":
		return FreedmanDiaconisPolicy{}, nil
	}
	return nil, fmt.Errorf("unknown interval policy: %q (must be percentile, sturges, or fd)", name)
}

func bounds(values []float64) (float64, float64, error) {
	min, err := stats.Min(values)
	if err != nil {
		return 0, 0, err
	}
	max, err := stats.Max(values)
	if err != nil {
		return 0, 0, err
	}
	return min, max, nil
}

// maxBins bounds the number of intervals evenIntervals produces, give or
// take the two partial bins at the ends.
const maxBins = 200

// evenIntervals covers [min, max] with contiguous intervals of a nice step
// so that max < last high. The step is widened when width would yield more
// than maxBins intervals or bounds too close to tell apart.
func evenIntervals(min, max, width float64) []models.Interval {
	least := math.Max(max/maxBins-min/maxBins, minStep(min, max))
	step := niceStep(math.Max(width, least))
	digits := stepDigits(step)
	start := math.Floor(min/step) * step
	n := int(math.Floor(max/step-start/step)) + 1

	intervals := make([]models.Interval, 0, n)
	for i := 0; i < n; i++ {
		intervals = append(intervals, models.Interval{
			Low:  roundDecimals(start+float64(i)*step, digits),
			High: roundDecimals(start+float64(i+1)*step, digits),
		})
	}
	return intervals
}

// minStep is the smallest step keeping neighbouring bounds distinct at the
// magnitude of a and b.
func minStep(a, b float64) float64 {
	x := math.Max(math.Abs(a), math.Abs(b))
	return 4 * (math.Nextafter(x, math.Inf(1)) - x)
}

// finite drops infinite values; NaN is removed by Series.Clean.
func finite(values []float64) []float64 {
	for _, v := range values {
		if math.IsInf(v, 0) {
			out := make([]float64, 0, len(values))
			for _, v := range values {
				if !math.IsInf(v, 0) && !math.IsNaN(v) {
					out = append(out, v)
				}
			}
			return out
		}
	}
	return values
}

// niceStep returns the smallest 1, 2 or 5 times a power of ten >= width.
func niceStep(width float64) float64 {
	if !(width > 0) || math.IsInf(width, 0) {
		return 1
	}
	mag := math.Pow(10, math.Floor(math.Log10(width)))
	for _, m := range []float64{1, 2, 5, 10} {
		if m*mag >= width {
			return m * mag
		}
	}
	return 10 * mag
}

func stepDigits(step float64) int {
	d := -int(math.Floor(math.Log10(step)))
	if d < 0 {
		return 0
	}
	return d
}

func roundUpHundred(x float64) float64 {
	return math.Ceil(x/100) * 100
}

// roundDecimals leaves x alone once x*10^digits is past the exact integer
// range, where there is nothing left to round.
func roundDecimals(x float64, digits int) float64 {
	p := math.Pow(10, float64(digits))
	if math.Abs(x*p) >= 1<<53 {
		return x
	}
	return math.Round(x*p) / p
}
