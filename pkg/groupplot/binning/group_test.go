package binning

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/groupplot-go/pkg/groupplot/models"
)

func TestGroup(t *testing.T) {
	intervals := []models.Interval{{Low: 0, High: 5}, {Low: 5, High: 10}}
	series := models.NewSeries("s", 1, 2, 3, 11, 12)

	tests := []struct {
		name       string
		higherVals bool
		labels     []string
		counts     []int
		dropped    int
	}{
		{"without higher values", false, []string{"[0,5)", "[5,10)"}, []int{3, 0}, 2},
		{"with higher values", true, []string{"[0,5)", "[5,10)", "[10,∞)"}, []int{3, 0, 2}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Group(series, intervals, tt.higherVals)
			assert.Equal(t, tt.labels, g.Labels())
			assert.Equal(t, tt.counts, g.Counts())
			assert.Equal(t, tt.dropped, g.Dropped)
			assert.Equal(t, 5, g.Total)
		})
	}
}

func TestGroupBoundaries(t *testing.T) {
	intervals := []models.Interval{{Low: 0, High: 5}, {Low: 5, High: 10}}
	g := Group(models.NewSeries("", 0, 5, 10, -1), intervals, false)

	assert.Equal(t, []int{1, 1}, g.Counts(), "shared boundary belongs to the interval it opens")
	assert.Equal(t, 2, g.Dropped)

	g = Group(models.NewSeries("", 10), intervals, true)
	assert.Equal(t, []int{0, 0, 1}, g.Counts())
}

func TestGroupGapsAndMissing(t *testing.T) {
	intervals := []models.Interval{{Low: 0, High: 1}, {Low: 2, High: 3}}
	g := Group(models.NewSeries("", 0.5, 1.5, math.NaN(), 2.5, 100), intervals, true)

	assert.Equal(t, []int{1, 1, 1}, g.Counts())
	assert.Equal(t, 2, g.Dropped)
	assert.Equal(t, 1, g.Missing)
	assert.Equal(t, []float64{100}, g.Buckets[2].Values)
}

func TestGroupInfinities(t *testing.T) {
	intervals := []models.Interval{{Low: 0, High: 5}}
	series := models.NewSeries("", 1, math.Inf(1), math.Inf(-1))

	g := Group(series, intervals, true)
	assert.Equal(t, []int{1, 1}, g.Counts(), "+Inf goes to the trailing bucket")
	assert.Equal(t, 1, g.Dropped)

	g = Group(series, intervals, false)
	assert.Equal(t, []int{1}, g.Counts())
	assert.Equal(t, 2, g.Dropped)
}

func TestGroupEmpty(t *testing.T) {
	g := Group(models.NewSeries(""), []models.Interval{{Low: 0, High: 1}}, false)
	assert.Equal(t, []int{0}, g.Counts())
	assert.Equal(t, 0, g.Total)

	g = Group(models.NewSeries("", 1, 2), nil, true)
	assert.True(t, g.Empty())
	assert.False(t, g.HigherVals)
	assert.Equal(t, 2, g.Dropped)
}

func TestGroupInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	intervals := []models.Interval{{Low: -10, High: -2}, {Low: -2, High: 0}, {Low: 3, High: 7.5}, {Low: 7.5, High: 20}}

	for round := 0; round < 50; round++ {
		values := make([]float64, rng.Intn(200))
		for i := range values {
			values[i] = rng.Float64()*40 - 15
		}
		for _, higher := range []bool{false, true} {
			g := Group(models.NewSeries("", values...), intervals, higher)

			require.Equal(t, len(values), g.Assigned()+g.Dropped)
			for _, b := range g.Buckets {
				require.Len(t, b.Values, b.Count)
				for _, v := range b.Values {
					require.Truef(t, b.Low <= v && v < b.High, "%v outside %s", v, b.Label)
				}
			}
		}
	}
}
