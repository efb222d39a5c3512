package groupplot

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/groupplot-go/pkg/groupplot/binning"
	"github.com/ukaji3/groupplot-go/pkg/groupplot/models"
	"github.com/ukaji3/groupplot-go/pkg/groupplot/render"
)

var sampleSeries = models.NewSeries("sample", 1, 2, 3, 11, 12)

func sampleOptions(higher bool) Options {
	opts := DefaultOptions()
	opts.Intervals = []models.Interval{{Low: 0, High: 5}, {Low: 5, High: 10}}
	opts.HigherVals = higher
	opts.Output = OutputMapping
	return opts
}

func TestGroupAndPlotMapping(t *testing.T) {
	res, err := GroupAndPlot(sampleSeries, sampleOptions(false))
	require.NoError(t, err)
	assert.Nil(t, res.Figure)
	assert.Equal(t, map[string]int{"[0,5)": 3, "[5,10)": 0}, res.Grouping.Map())
	assert.Equal(t, []string{"[0,5)", "[5,10)"}, res.Grouping.Labels())
	assert.Equal(t, 2, res.Grouping.Dropped)

	res, err = GroupAndPlot(sampleSeries, sampleOptions(true))
	require.NoError(t, err)
	assert.Equal(t, []string{"[0,5)", "[5,10)", "[10,∞)"}, res.Grouping.Labels())
	assert.Equal(t, []int{3, 0, 2}, res.Grouping.Counts())
	assert.Equal(t, 0, res.Grouping.Dropped)
}

func TestGroupDefaultIntervals(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.Logger = log.NewLogfmtLogger(&buf)

	g, err := Group(models.NewSeries("", 10, 120, 250, 900, 5000, math.NaN()), opts)
	require.NoError(t, err)
	assert.True(t, g.HigherVals, "the default policy adds a bucket for higher values")
	assert.Len(t, g.Buckets, 6)
	assert.Equal(t, 0.0, g.Buckets[0].Low)
	assert.Equal(t, 1, g.Dropped)
	assert.Equal(t, 1, g.Missing)
	assert.Equal(t, g.Total, g.Assigned()+g.Dropped)
	assert.Contains(t, buf.String(), "derived intervals")
}

func TestGroupPolicy(t *testing.T) {
	opts := DefaultOptions()
	opts.Policy = binning.SturgesPolicy{}

	g, err := Group(models.NewSeries("", 0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15), opts)
	require.NoError(t, err)
	assert.False(t, g.HigherVals)
	assert.Equal(t, []string{"[0,5)", "[5,10)", "[10,15)", "[15,20)"}, g.Labels())
}

func TestGroupDerivedIntervalsFarFromZero(t *testing.T) {
	for _, p := range []binning.Policy{binning.DefaultPolicy(), binning.SturgesPolicy{}, binning.FreedmanDiaconisPolicy{}} {
		opts := DefaultOptions()
		opts.Output = OutputMapping
		opts.Policy = p

		res, err := GroupAndPlot(models.NewSeries("", -1e17, -1e17), opts)
		require.NoError(t, err, p.Name())
		assert.Equal(t, 2, res.Grouping.Assigned(), p.Name())
	}
}

func TestGroupEmptySeries(t *testing.T) {
	res, err := GroupAndPlot(models.NewSeries("empty"), DefaultOptions())
	require.NoError(t, err)
	assert.True(t, res.Grouping.Empty())
	assert.NotNil(t, res.Figure)

	opts := sampleOptions(false)
	g, err := Group(models.NewSeries("empty"), opts)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0}, g.Counts())
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Options)
		err    error
		option string
	}{
		{"kind", func(o *Options) { o.Kind = "scatter" }, ErrUnsupportedKind, "kind"},
		{"output", func(o *Options) { o.Output = "fig_obj" }, ErrUnsupportedOutput, "output"},
		{"engine", func(o *Options) { o.Engine = "plotly" }, ErrUnsupportedEngine, "engine"},
		{"image engine", func(o *Options) { o.Output, o.Engine = OutputBytes, EngineECharts }, render.ErrUnsupportedFormat, "engine"},
		{"color", func(o *Options) { o.BarColor = "rgb(1,2,300)" }, render.ErrInvalidColor, "bar_color"},
		{"size", func(o *Options) { o.Width = -1 }, ErrInvalidSize, "size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.modify(&opts)

			_, err := GroupAndPlot(sampleSeries, opts)
			require.ErrorIs(t, err, tt.err)
			var ce *ConfigError
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, tt.option, ce.Option)
		})
	}
}

func TestOptionsValidateIntervals(t *testing.T) {
	opts := DefaultOptions()
	opts.Intervals = []models.Interval{{Low: 0, High: 5}, {Low: 4, High: 10}}

	_, err := GroupAndPlot(sampleSeries, opts)
	require.ErrorIs(t, err, ErrInvalidInterval)
	var ie *binning.IntervalError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, 1, ie.Index)
}

func TestZeroOptions(t *testing.T) {
	res, err := GroupAndPlot(sampleSeries, Options{})
	require.NoError(t, err)
	assert.Equal(t, OutputFigure, res.Output)
	assert.IsType(t, &render.PlotFigure{}, res.Figure)
}

func TestGroupAndPlotOutputs(t *testing.T) {
	t.Run("bytes", func(t *testing.T) {
		opts := sampleOptions(true)
		opts.Output = OutputBytes
		res, err := GroupAndPlot(sampleSeries, opts)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(res.Bytes, []byte("\x89PNG")))
	})

	t.Run("image", func(t *testing.T) {
		opts := sampleOptions(true)
		opts.Output = OutputImage
		opts.Kind = KindPie
		opts.Width, opts.Height = 300, 300
		res, err := GroupAndPlot(sampleSeries, opts)
		require.NoError(t, err)
		require.NotNil(t, res.Image)
		assert.Equal(t, 400, res.Image.Bounds().Dx(), "300pt at 96 DPI")
	})

	t.Run("gochart bytes", func(t *testing.T) {
		opts := sampleOptions(true)
		opts.Output = OutputBytes
		opts.Engine = EngineGoChart
		res, err := GroupAndPlot(sampleSeries, opts)
		require.NoError(t, err)
		assert.IsType(t, &render.GoChartFigure{}, res.Figure)
		assert.True(t, bytes.HasPrefix(res.Bytes, []byte("\x89PNG")))
	})

	t.Run("interactive", func(t *testing.T) {
		opts := sampleOptions(true)
		opts.Output = OutputInteractive
		opts.Title = "Example"
		res, err := GroupAndPlot(sampleSeries, opts)
		require.NoError(t, err)
		assert.IsType(t, &render.EChartsFigure{}, res.Figure)
		assert.Contains(t, string(res.Bytes), "Example")
	})

	t.Run("workbook", func(t *testing.T) {
		opts := sampleOptions(true)
		opts.Output = OutputWorkbook
		res, err := GroupAndPlot(sampleSeries, opts)
		require.NoError(t, err)
		assert.IsType(t, &render.WorkbookFigure{}, res.Figure)
		assert.True(t, bytes.HasPrefix(res.Bytes, []byte("PK")))
	})

	t.Run("figure", func(t *testing.T) {
		opts := sampleOptions(false)
		opts.Output = OutputFigure
		opts.Kind = KindBarH
		opts.Grid = true
		res, err := GroupAndPlot(sampleSeries, opts)
		require.NoError(t, err)
		pf, ok := res.Figure.(*render.PlotFigure)
		require.True(t, ok)
		assert.NotNil(t, pf.Plot)
		assert.Nil(t, res.Bytes)
	})
}
