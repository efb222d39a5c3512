package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// WorkbookSheet is the sheet holding the counts table and the chart.
const WorkbookSheet = "Groups"

// WorkbookRenderer writes the counts to an xlsx workbook with a native chart.
type WorkbookRenderer struct{}

// WorkbookFigure is an in-memory workbook.
type WorkbookFigure struct {
	File *excelize.File
}

// Formats implements Figure.
func (f *WorkbookFigure) Formats() []Format {
	return []Format{FormatXLSX}
}

// Encode implements Figure.
func (f *WorkbookFigure) Encode(w io.Writer, format Format) error {
	if err := checkFormat(f, format); err != nil {
		return err
	}
	return f.File.Write(w)
}

// Render implements Renderer.
func (WorkbookRenderer) Render(c Chart) (Figure, error) {
	if err := checkKind(c.Kind); err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), WorkbookSheet); err != nil {
		f.Close()
		return nil, err
	}

	header := []interface{}{"Interval", "Count"}
	if c.XLabel != "" {
		header[0] = c.XLabel
	}
	if c.YLabel != "" {
		header[1] = c.YLabel
	}
	if err := f.SetSheetRow(WorkbookSheet, "A1", &header); err != nil {
		f.Close()
		return nil, err
	}
	for i, n := range c.Counts {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{c.Labels[i], n}
		if err := f.SetSheetRow(WorkbookSheet, cell, &row); err != nil {
			f.Close()
			return nil, err
		}
	}

	if len(c.Counts) > 0 {
		if err := f.AddChart(WorkbookSheet, "D2", workbookChart(c)); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to add chart: %w", err)
		}
	}

	return &WorkbookFigure{File: f}, nil
}

func workbookChart(c Chart) *excelize.Chart {
	last := len(c.Counts) + 1
	ref := func(col string) string {
		return fmt.Sprintf("'%s'!$%s$2:$%s$%d", WorkbookSheet, col, col, last)
	}
	series := excelize.ChartSeries{
		Name:       fmt.Sprintf("'%s'!$B$1", WorkbookSheet),
		Categories: ref("A"),
		Values:     ref("B"),
	}

	w, h := c.size()
	ch := &excelize.Chart{
		Series:    []excelize.ChartSeries{series},
		Dimension: excelize.ChartDimension{Width: uint(pixels(w)), Height: uint(pixels(h))},
		PlotArea:  excelize.ChartPlotArea{ShowVal: true},
	}
	if c.Title != "" {
		ch.Title = []excelize.RichTextRun{{Text: c.Title}}
	}

	switch c.Kind {
	case KindPie:
		ch.Type = excelize.Doughnut
		ch.HoleSize = int(donutHole * 100)
		ch.PlotArea.ShowPercent = true
		ch.PlotArea.ShowVal = false
	case KindFullPie:
		ch.Type = excelize.Pie
		ch.PlotArea.ShowPercent = true
		ch.PlotArea.ShowVal = false
	default:
		ch.Type = excelize.Col
		if c.Kind == KindBarH {
			ch.Type = excelize.Bar
		}
		ch.Legend = excelize.ChartLegend{Position: "none"}
		ch.Series[0].Fill = excelize.Fill{
			Type:    "pattern",
			Pattern: 1,
			Color:   []string{strings.TrimPrefix(Hex(c.color()), "#")},
		}
		ch.YAxis.MajorGridLines = c.Grid
		if c.XLabel != "" {
			ch.XAxis.Title = []excelize.RichTextRun{{Text: c.XLabel}}
		}
		if c.YLabel != "" {
			ch.YAxis.Title = []excelize.RichTextRun{{Text: c.YLabel}}
		}
	}
	return ch
}
