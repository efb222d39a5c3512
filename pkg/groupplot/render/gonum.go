package render

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// GonumRenderer draws charts with gonum/plot.
type GonumRenderer struct{}

// PlotFigure is a gonum/plot figure with its canvas size.
type PlotFigure struct {
	Plot          *plot.Plot
	Width, Height vg.Length
}

// Formats implements Figure.
func (f *PlotFigure) Formats() []Format {
	return []Format{FormatPNG, FormatSVG, FormatPDF, FormatJPG, FormatTIF, FormatEPS}
}

// Encode implements Figure.
func (f *PlotFigure) Encode(w io.Writer, format Format) error {
	if err := checkFormat(f, format); err != nil {
		return err
	}
	wt, err := f.Plot.WriterTo(f.Width, f.Height, string(format))
	if err != nil {
		return fmt.Errorf("failed to create plot writer: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write plot: %w", err)
	}
	return nil
}

// Render implements Renderer.
func (GonumRenderer) Render(c Chart) (Figure, error) {
	if err := checkKind(c.Kind); err != nil {
		return nil, err
	}

	p := plot.New()
	p.Title.Text = c.Title

	var err error
	if c.Kind.IsPie() {
		err = gonumPie(p, c)
	} else {
		err = gonumBar(p, c)
	}
	if err != nil {
		return nil, err
	}

	w, h := c.size()
	return &PlotFigure{Plot: p, Width: vg.Points(w), Height: vg.Points(h)}, nil
}

func gonumBar(p *plot.Plot, c Chart) error {
	horizontal := c.Kind == KindBarH
	p.X.Label.Text = c.XLabel
	p.Y.Label.Text = c.YLabel

	if horizontal {
		p.X.Min = 0
	} else {
		p.Y.Min = 0
	}

	if c.Grid {
		g := plotter.NewGrid()
		if horizontal {
			g.Horizontal.Color = nil
			g.Vertical.Color = color.Black
			g.Vertical.Width = vg.Points(0.5)
		} else {
			g.Vertical.Color = nil
			g.Horizontal.Color = color.Black
			g.Horizontal.Width = vg.Points(0.5)
		}
		p.Add(g)
	}

	if len(c.Counts) == 0 {
		return nil
	}

	values := make(plotter.Values, len(c.Counts))
	for i, n := range c.Counts {
		values[i] = float64(n)
	}

	w, h := c.size()
	span := w
	if horizontal {
		span = h
	}
	bars, err := plotter.NewBarChart(values, barWidth(span, len(values)))
	if err != nil {
		return fmt.Errorf("failed to create bar chart: %w", err)
	}
	bars.Color = c.color()
	bars.LineStyle.Width = 0
	bars.Horizontal = horizontal
	p.Add(bars)

	// Count labels at the end of each bar.
	xys := make(plotter.XYs, len(values))
	texts := make([]string, len(values))
	for i, v := range values {
		if horizontal {
			xys[i] = plotter.XY{X: v, Y: float64(i)}
		} else {
			xys[i] = plotter.XY{X: float64(i), Y: v}
		}
		texts[i] = strconv.Itoa(c.Counts[i])
	}
	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
	if err != nil {
		return fmt.Errorf("failed to create bar labels: %w", err)
	}
	if horizontal {
		labels.Offset = vg.Point{X: vg.Points(3)}
	} else {
		labels.Offset = vg.Point{X: -vg.Points(3), Y: vg.Points(3)}
	}
	p.Add(labels)

	if horizontal {
		p.NominalY(c.Labels...)
	} else {
		p.NominalX(c.Labels...)
	}
	return nil
}

// barWidth spreads n bars over 60% of the span, capped at 40pt.
func barWidth(span float64, n int) vg.Length {
	return vg.Points(math.Min(40, span*0.6/float64(n)))
}
