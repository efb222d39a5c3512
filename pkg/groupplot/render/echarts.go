package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// EChartsRenderer builds interactive HTML pages with go-echarts.
type EChartsRenderer struct{}

type htmlRenderable interface {
	Render(w io.Writer) error
}

// EChartsFigure is an interactive go-echarts chart.
type EChartsFigure struct {
	Chart htmlRenderable
}

// Formats implements Figure.
func (f *EChartsFigure) Formats() []Format {
	return []Format{FormatHTML}
}

// Encode implements Figure.
func (f *EChartsFigure) Encode(w io.Writer, format Format) error {
	if err := checkFormat(f, format); err != nil {
		return err
	}
	if err := f.Chart.Render(w); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	return nil
}

// Render implements Renderer.
func (EChartsRenderer) Render(c Chart) (Figure, error) {
	if err := checkKind(c.Kind); err != nil {
		return nil, err
	}

	w, h := c.size()
	initOpts := opts.Initialization{
		PageTitle: c.Title,
		Width:     strconv.Itoa(pixels(w)) + "px",
		Height:    strconv.Itoa(pixels(h)) + "px",
	}
	title := opts.Title{Title: c.Title}

	if c.Kind.IsPie() {
		data := make([]opts.PieData, len(c.Counts))
		for i, n := range c.Counts {
			data[i] = opts.PieData{Name: c.Labels[i], Value: n}
		}
		radius := "75%"
		if c.Kind == KindPie {
			pct := strconv.FormatFloat(donutHole*75, 'g', -1, 64)
			return &EChartsFigure{Chart: newPie(initOpts, title, data, []string{pct + "%", radius})}, nil
		}
		return &EChartsFigure{Chart: newPie(initOpts, title, data, radius)}, nil
	}

	data := make([]opts.BarData, len(c.Counts))
	for i, n := range c.Counts {
		data[i] = opts.BarData{Value: n}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(initOpts),
		charts.WithTitleOpts(title),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: c.XLabel}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:      c.YLabel,
			SplitLine: &opts.SplitLine{Show: opts.Bool(c.Grid)},
		}),
	)
	bar.SetXAxis(c.Labels).AddSeries("count", data,
		charts.WithItemStyleOpts(opts.ItemStyle{Color: Hex(c.color())}),
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
	)
	if c.Kind == KindBarH {
		bar.XYReversal()
	}
	return &EChartsFigure{Chart: bar}, nil
}

func newPie(initOpts opts.Initialization, title opts.Title, data []opts.PieData, radius interface{}) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithInitializationOpts(initOpts),
		charts.WithTitleOpts(title),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	pie.AddSeries("count", data,
		charts.WithPieChartOpts(opts.PieChart{Radius: radius}),
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{b}: {d}%"}),
	)
	return pie
}
