// Package render draws bucket counts as bar or pie charts.
package render

import (
	"errors"
	"fmt"
	"image/color"
	"io"
)

var (
	// ErrUnsupportedKind indicates an unknown chart kind.
	ErrUnsupportedKind = errors.New("unsupported chart kind")
	// ErrUnsupportedEngine indicates an unknown rendering engine.
	ErrUnsupportedEngine = errors.New("unsupported rendering engine")
	// ErrUnsupportedFormat indicates a format the figure cannot be encoded to.
	ErrUnsupportedFormat = errors.New("unsupported output format")
	// ErrInvalidColor indicates a color string that could not be parsed.
	ErrInvalidColor = errors.New("invalid color")
)

// Kind is the chart kind.
type Kind string

const (
	// KindBar draws vertical bars ordered by interval.
	KindBar Kind = "bar"
	// KindBarH draws horizontal bars ordered by interval.
	KindBarH Kind = "barh"
	// KindPie draws a donut with one slice per bucket.
	KindPie Kind = "pie"
	// KindFullPie draws a solid pie with one slice per bucket.
	KindFullPie Kind = "fullpie"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	switch k {
	case KindBar, KindBarH, KindPie, KindFullPie:
		return true
	}
	return false
}

// IsPie reports whether k is a pie variant.
func (k Kind) IsPie() bool {
	return k == KindPie || k == KindFullPie
}

// Engine names a rendering backend.
type Engine string

const (
	// EngineGonum renders static images with gonum/plot.
	EngineGonum Engine = "gonum"
	// EngineGoChart renders static images with go-chart.
	EngineGoChart Engine = "gochart"
	// EngineECharts renders interactive HTML pages with go-echarts.
	EngineECharts Engine = "echarts"
	// EngineWorkbook renders an xlsx workbook with a native chart.
	EngineWorkbook Engine = "xlsx"
)

// Format is an encoding a Figure can be written in.
type Format string

const (
	FormatPNG  Format = "png"
	FormatSVG  Format = "svg"
	FormatPDF  Format = "pdf"
	FormatJPG  Format = "jpg"
	FormatTIF  Format = "tif"
	FormatEPS  Format = "eps"
	FormatHTML Format = "html"
	FormatXLSX Format = "xlsx"
)

// DefaultColor is the bar color used when none is given.
const DefaultColor = "#1776f2"

// Default figure size in points.
const (
	DefaultWidth  = 432
	DefaultHeight = 288
)

// Chart is everything a renderer needs to draw bucket counts.
type Chart struct {
	Title  string
	XLabel string
	YLabel string
	Kind   Kind
	// Grid shows horizontal grid lines on bar charts.
	Grid bool
	// Color fills bars. Pie slices use the engine palette.
	Color color.Color
	// Labels and Counts are parallel, in interval order.
	Labels []string
	Counts []int
	// Width and Height are in points; zero means the default.
	Width, Height float64
}

// Total returns the sum of counts.
func (c Chart) Total() int {
	total := 0
	for _, n := range c.Counts {
		total += n
	}
	return total
}

func (c Chart) size() (float64, float64) {
	w, h := c.Width, c.Height
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	return w, h
}

// pixels converts points to pixels at 96 DPI.
func pixels(pt float64) int {
	return int(pt * 96 / 72)
}

func (c Chart) color() color.Color {
	if c.Color == nil {
		col, _ := ParseColor(DefaultColor)
		return col
	}
	return c.Color
}

// Figure is a rendered chart.
type Figure interface {
	// Formats lists the encodings Encode accepts; the first is the default.
	Formats() []Format
	// Encode writes the figure to w in the given format.
	Encode(w io.Writer, format Format) error
}

// Renderer turns a Chart into a Figure.
type Renderer interface {
	Render(c Chart) (Figure, error)
}

// NewRenderer returns the renderer for engine.
func NewRenderer(engine Engine) (Renderer, error) {
	switch engine {
	case "", EngineGonum:
		return GonumRenderer{}, nil
	case EngineGoChart:
		return GoChartRenderer{}, nil
	case EngineECharts:
		return EChartsRenderer{}, nil
	case EngineWorkbook:
		return WorkbookRenderer{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedEngine, engine)
}

// Engines lists the known engines.
func Engines() []Engine {
	return []Engine{EngineGonum, EngineGoChart, EngineECharts, EngineWorkbook}
}

func checkFormat(f Figure, format Format) error {
	for _, known := range f.Formats() {
		if known == format {
			return nil
		}
	}
	return fmt.Errorf("%w: %q (must be one of %v)", ErrUnsupportedFormat, format, f.Formats())
}

func checkKind(k Kind) error {
	if !k.Valid() {
		return fmt.Errorf("%w: %q", ErrUnsupportedKind, k)
	}
	return nil
}
