// Package groupplot groups series values into intervals and charts the counts.
package groupplot

import (
	"fmt"
	"image/color"

	"github.com/go-kit/log"

	"github.com/ukaji3/groupplot-go/pkg/groupplot/binning"
	"github.com/ukaji3/groupplot-go/pkg/groupplot/models"
	"github.com/ukaji3/groupplot-go/pkg/groupplot/render"
)

// Kind represents the chart kind.
type Kind = render.Kind

const (
	// KindBar draws vertical bars ordered by interval.
	KindBar = render.KindBar
	// KindBarH draws horizontal bars ordered by interval.
	KindBarH = render.KindBarH
	// KindPie draws a donut chart.
	KindPie = render.KindPie
	// KindFullPie draws a solid pie chart.
	KindFullPie = render.KindFullPie
)

// Engine names the backend drawing static figures.
type Engine = render.Engine

const (
	EngineGonum    = render.EngineGonum
	EngineGoChart  = render.EngineGoChart
	EngineECharts  = render.EngineECharts
	EngineWorkbook = render.EngineWorkbook
)

// Output represents the form of the result.
type Output string

const (
	// OutputFigure returns the backend figure object in Result.Figure.
	OutputFigure Output = "figure"
	// OutputInteractive returns an interactive HTML page in Result.Bytes.
	OutputInteractive Output = "interactive"
	// OutputImage returns a decoded PNG in Result.Image.
	OutputImage Output = "image"
	// OutputBytes returns PNG bytes in Result.Bytes.
	OutputBytes Output = "bytes"
	// OutputMapping returns the grouping only.
	OutputMapping Output = "mapping"
	// OutputWorkbook returns an xlsx workbook with a native chart in Result.Bytes.
	OutputWorkbook Output = "workbook"
)

// Valid reports whether o is a known output.
func (o Output) Valid() bool {
	switch o {
	case OutputFigure, OutputInteractive, OutputImage, OutputBytes, OutputMapping, OutputWorkbook:
		return true
	}
	return false
}

// Options configures grouping and plotting.
type Options struct {
	// Title is the chart title.
	Title string
	// XLabel and YLabel are the axis labels (bar charts).
	XLabel string
	YLabel string
	// Intervals are the explicit buckets. If empty, Policy derives them.
	Intervals []models.Interval
	// HigherVals adds a trailing bucket for values at or above the last high.
	HigherVals bool
	// Kind is the chart kind (bar, barh, pie, fullpie).
	Kind Kind
	// Grid shows grid lines on bar charts.
	Grid bool
	// BarColor is a hex value, "rgb(r,g,b)", "r,g,b" or a CSS color name.
	// If empty, defaults to #1776f2.
	BarColor string
	// Output selects the result form.
	Output Output
	// Engine selects the backend for figure, image and bytes outputs.
	// Interactive and workbook outputs use their own backend.
	Engine Engine
	// Policy derives intervals when Intervals is empty.
	// If nil, defaults to binning.DefaultPolicy().
	Policy binning.Policy
	// Width and Height are the figure size in points; zero means default.
	Width, Height float64
	// Logger receives debug output. If nil, nothing is logged.
	Logger log.Logger
}

// DefaultOptions returns default options: a bar chart figure drawn by gonum.
func DefaultOptions() Options {
	return Options{
		Kind:     KindBar,
		BarColor: render.DefaultColor,
		Output:   OutputFigure,
		Engine:   EngineGonum,
	}
}

// Validate checks the kind, output, engine, color and explicit intervals.
func (o Options) Validate() error {
	if !o.kind().Valid() {
		return NewConfigError("kind", string(o.Kind), ErrUnsupportedKind)
	}
	if !o.output().Valid() {
		return NewConfigError("output", string(o.Output), ErrUnsupportedOutput)
	}
	if _, err := render.NewRenderer(o.Engine); err != nil {
		return NewConfigError("engine", string(o.Engine), ErrUnsupportedEngine)
	}
	if out := o.output(); (out == OutputImage || out == OutputBytes) && (o.Engine == EngineECharts || o.Engine == EngineWorkbook) {
		return NewConfigError("engine", string(o.Engine), fmt.Errorf("%w: %s output needs a static image engine", render.ErrUnsupportedFormat, out))
	}
	if _, err := o.color(); err != nil {
		return NewConfigError("bar_color", o.BarColor, err)
	}
	if o.Width < 0 || o.Height < 0 {
		return NewConfigError("size", fmt.Sprintf("%vx%v", o.Width, o.Height), ErrInvalidSize)
	}
	return binning.ValidateIntervals(o.Intervals)
}

func (o Options) kind() Kind {
	if o.Kind == "" {
		return KindBar
	}
	return o.Kind
}

func (o Options) output() Output {
	if o.Output == "" {
		return OutputFigure
	}
	return o.Output
}

// engine returns the backend for the output form.
func (o Options) engine() Engine {
	switch o.output() {
	case OutputInteractive:
		return EngineECharts
	case OutputWorkbook:
		return EngineWorkbook
	}
	if o.Engine == "" {
		return EngineGonum
	}
	return o.Engine
}

func (o Options) policy() binning.Policy {
	if o.Policy == nil {
		return binning.DefaultPolicy()
	}
	return o.Policy
}

func (o Options) logger() log.Logger {
	if o.Logger == nil {
		return log.NewNopLogger()
	}
	return o.Logger
}

func (o Options) color() (color.RGBA, error) {
	if o.BarColor == "" {
		return render.ParseColor(render.DefaultColor)
	}
	return render.ParseColor(o.BarColor)
}
