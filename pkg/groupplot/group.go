package groupplot

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/go-kit/log/level"

	"github.com/ukaji3/groupplot-go/pkg/groupplot/binning"
	"github.com/ukaji3/groupplot-go/pkg/groupplot/models"
	"github.com/ukaji3/groupplot-go/pkg/groupplot/render"
)

// Result holds the grouping and the requested output form.
type Result struct {
	// Output is the form that was produced.
	Output Output
	// Grouping is always set.
	Grouping *models.Grouping
	// Figure is set for every output but mapping.
	Figure render.Figure
	// Image is set for OutputImage.
	Image image.Image
	// Bytes holds PNG data for OutputBytes and OutputImage, HTML for
	// OutputInteractive and xlsx data for OutputWorkbook.
	Bytes []byte
}

// Group resolves intervals and buckets series without rendering.
func Group(series models.Series, opts Options) (*models.Grouping, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return group(series, opts)
}

// GroupAndPlot buckets series and renders the counts as opts describes.
func GroupAndPlot(series models.Series, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	g, err := group(series, opts)
	if err != nil {
		return nil, err
	}

	res := &Result{Output: opts.output(), Grouping: g}
	if res.Output == OutputMapping {
		return res, nil
	}

	chart, err := newChart(g, opts)
	if err != nil {
		return nil, err
	}
	r, err := render.NewRenderer(opts.engine())
	if err != nil {
		return nil, err
	}
	res.Figure, err = r.Render(chart)
	if err != nil {
		return nil, fmt.Errorf("rendering failed: %w", err)
	}

	switch res.Output {
	case OutputInteractive:
		res.Bytes, err = encodeFigure(res.Figure, render.FormatHTML)
	case OutputWorkbook:
		res.Bytes, err = encodeFigure(res.Figure, render.FormatXLSX)
	case OutputBytes, OutputImage:
		res.Bytes, err = encodeFigure(res.Figure, render.FormatPNG)
		if err == nil && res.Output == OutputImage {
			res.Image, err = png.Decode(bytes.NewReader(res.Bytes))
		}
	}
	if err != nil {
		return nil, err
	}

	level.Debug(opts.logger()).Log("msg", "rendered figure", "output", res.Output, "engine", opts.engine(), "kind", chart.Kind, "bytes", len(res.Bytes))
	return res, nil
}

func group(series models.Series, opts Options) (*models.Grouping, error) {
	logger := opts.logger()
	intervals, higher := opts.Intervals, opts.HigherVals

	if len(intervals) == 0 {
		policy := opts.policy()
		values, _ := series.Clean()
		derived, forceHigher, err := policy.Intervals(values)
		if err != nil {
			return nil, fmt.Errorf("failed to derive intervals: %w", err)
		}
		if err := binning.ValidateIntervals(derived); err != nil {
			return nil, fmt.Errorf("policy %s: %w", policy.Name(), err)
		}
		intervals = derived
		higher = higher || forceHigher
		level.Debug(logger).Log("msg", "derived intervals", "policy", policy.Name(), "intervals", binning.FormatIntervals(intervals), "higher_vals", higher)
	}

	g := binning.Group(series, intervals, higher)
	level.Debug(logger).Log("msg", "grouped series", "series", series.Name, "total", g.Total, "buckets", len(g.Buckets), "dropped", g.Dropped, "missing", g.Missing)
	return g, nil
}

func newChart(g *models.Grouping, opts Options) (render.Chart, error) {
	col, err := opts.color()
	if err != nil {
		return render.Chart{}, NewConfigError("bar_color", opts.BarColor, err)
	}
	return render.Chart{
		Title:  opts.Title,
		XLabel: opts.XLabel,
		YLabel: opts.YLabel,
		Kind:   opts.kind(),
		Grid:   opts.Grid,
		Color:  col,
		Labels: g.Labels(),
		Counts: g.Counts(),
		Width:  opts.Width,
		Height: opts.Height,
	}, nil
}

func encodeFigure(fig render.Figure, format render.Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := fig.Encode(&buf, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
