package render

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// donutHole is the inner radius of KindPie relative to the outer one.
const donutHole = 0.5

// PieChart is a gonum plotter drawing one slice per value, starting at
// twelve o'clock and going counter-clockwise.
type PieChart struct {
	Values []float64
	Labels []string
	Colors []color.Color
	// Hole is the inner radius as a fraction of the outer radius.
	Hole float64
	// TextStyle styles the percentage labels.
	TextStyle text.Style
}

// NewPieChart returns a pie of values using the default palette.
func NewPieChart(values []float64, labels []string, hole float64) (*PieChart, error) {
	if len(values) != len(labels) {
		return nil, fmt.Errorf("pie chart: %d values for %d labels", len(values), len(labels))
	}
	for i, v := range values {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("pie chart: invalid value %v for %q", v, labels[i])
		}
	}
	colors := make([]color.Color, len(values))
	for i := range colors {
		colors[i] = plotutil.Color(i)
	}
	fnt := plot.DefaultFont
	fnt.Size = vg.Points(9)
	return &PieChart{
		Values: values,
		Labels: labels,
		Colors: colors,
		Hole:   hole,
		TextStyle: text.Style{
			Color:   color.White,
			Font:    fnt,
			XAlign:  text.XCenter,
			YAlign:  text.YCenter,
			Handler: plot.DefaultTextHandler,
		},
	}, nil
}

func (pc *PieChart) total() float64 {
	total := 0.0
	for _, v := range pc.Values {
		total += v
	}
	return total
}

// Plot implements plot.Plotter.
func (pc *PieChart) Plot(c draw.Canvas, _ *plot.Plot) {
	total := pc.total()
	if total == 0 {
		return
	}

	center := c.Center()
	radius := 0.45 * min(c.Max.X-c.Min.X, c.Max.Y-c.Min.Y)
	labelRadius := radius * vg.Length(1+pc.Hole) / 2
	if pc.Hole == 0 {
		labelRadius = radius * 0.65
	}

	start := math.Pi / 2
	for i, v := range pc.Values {
		if v == 0 {
			continue
		}
		sweep := 2 * math.Pi * v / total

		var wedge vg.Path
		wedge.Move(center)
		wedge.Arc(center, radius, start, sweep)
		wedge.Close()
		c.SetColor(pc.Colors[i])
		c.Fill(wedge)

		mid := start + sweep/2
		c.FillText(pc.TextStyle, polar(center, labelRadius, mid), fmt.Sprintf("%.1f%%", 100*v/total))
		start += sweep
	}

	if pc.Hole > 0 {
		inner := radius * vg.Length(pc.Hole)
		var hole vg.Path
		hole.Move(polar(center, inner, 0))
		hole.Arc(center, inner, 0, 2*math.Pi)
		hole.Close()
		c.SetColor(color.White)
		c.Fill(hole)
	}
}

// Thumbnailers returns one legend swatch per slice.
func (pc *PieChart) Thumbnailers() []plot.Thumbnailer {
	thumbs := make([]plot.Thumbnailer, len(pc.Colors))
	for i, col := range pc.Colors {
		thumbs[i] = swatch{col}
	}
	return thumbs
}

type swatch struct {
	color.Color
}

// Thumbnail implements plot.Thumbnailer.
func (s swatch) Thumbnail(c *draw.Canvas) {
	pts := []vg.Point{
		{X: c.Min.X, Y: c.Min.Y},
		{X: c.Min.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Min.Y},
	}
	c.FillPolygon(s.Color, c.ClipPolygonY(pts))
}

func polar(center vg.Point, r vg.Length, angle float64) vg.Point {
	return vg.Point{
		X: center.X + r*vg.Length(math.Cos(angle)),
		Y: center.Y + r*vg.Length(math.Sin(angle)),
	}
}

func gonumPie(p *plot.Plot, c Chart) error {
	p.HideAxes()
	if len(c.Counts) == 0 {
		return nil
	}

	values := make([]float64, len(c.Counts))
	for i, n := range c.Counts {
		values[i] = float64(n)
	}
	hole := 0.0
	if c.Kind == KindPie {
		hole = donutHole
	}
	pie, err := NewPieChart(values, c.Labels, hole)
	if err != nil {
		return err
	}
	p.Add(pie)

	p.Legend.Top = true
	for i, thumb := range pie.Thumbnailers() {
		p.Legend.Add(c.Labels[i], thumb)
	}
	return nil
}
