package render

import (
	"fmt"
	"image/color"
	"io"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// GoChartRenderer draws charts with go-chart. Horizontal bars are not
// supported by go-chart and are drawn vertically, and its bar charts have
// no x axis title so XLabel is not drawn. Charts without any positive
// count are drawn by GonumRenderer since go-chart refuses them.
type GoChartRenderer struct{}

type goChartRenderable interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}

// GoChartFigure is a go-chart bar or pie chart.
type GoChartFigure struct {
	Chart goChartRenderable
}

// Formats implements Figure.
func (f *GoChartFigure) Formats() []Format {
	return []Format{FormatPNG, FormatSVG}
}

// Encode implements Figure.
func (f *GoChartFigure) Encode(w io.Writer, format Format) error {
	if err := checkFormat(f, format); err != nil {
		return err
	}
	rp := chart.PNG
	if format == FormatSVG {
		rp = chart.SVG
	}
	if err := f.Chart.Render(rp, w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

// Render implements Renderer.
func (GoChartRenderer) Render(c Chart) (Figure, error) {
	if err := checkKind(c.Kind); err != nil {
		return nil, err
	}
	if c.Total() == 0 {
		return GonumRenderer{}.Render(c)
	}

	w, h := c.size()
	width, height := pixels(w), pixels(h)

	if c.Kind.IsPie() {
		values := make([]chart.Value, 0, len(c.Counts))
		for i, n := range c.Counts {
			if n == 0 {
				continue
			}
			values = append(values, chart.Value{Label: c.Labels[i], Value: float64(n)})
		}
		if c.Kind == KindPie {
			return &GoChartFigure{Chart: &chart.DonutChart{
				Title:  c.Title,
				Width:  width,
				Height: height,
				Values: values,
			}}, nil
		}
		return &GoChartFigure{Chart: &chart.PieChart{
			Title:  c.Title,
			Width:  width,
			Height: height,
			Values: values,
		}}, nil
	}

	fill := drawingColor(c.color())
	bars := make([]chart.Value, len(c.Counts))
	for i, n := range c.Counts {
		bars[i] = chart.Value{
			Label: c.Labels[i],
			Value: float64(n),
			Style: chart.Style{FillColor: fill, StrokeColor: fill},
		}
	}
	return &GoChartFigure{Chart: &chart.BarChart{
		Title:  c.Title,
		Width:  width,
		Height: height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		YAxis:    goChartYAxis(c),
		BarWidth: int(float64(barWidth(float64(width), len(bars)))),
		Bars:     bars,
	}}, nil
}

// goChartYAxis names the count axis and draws major grid lines when the
// chart asks for a grid.
func goChartYAxis(c Chart) chart.YAxis {
	axis := chart.YAxis{
		Name:           c.YLabel,
		GridMajorStyle: chart.Style{Hidden: true},
		GridMinorStyle: chart.Style{Hidden: true},
	}
	if c.Grid {
		axis.GridMajorStyle = chart.Style{
			StrokeColor: drawing.ColorBlack,
			StrokeWidth: 0.5,
		}
	}
	return axis
}

func drawingColor(c color.Color) drawing.Color {
	r, g, b, a := c.RGBA()
	return drawing.Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}
