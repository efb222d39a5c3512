package source

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/groupplot-go/pkg/groupplot/render"
)

// writeChartWorkbook renders a counts workbook, which embeds one chart.
func writeChartWorkbook(t *testing.T) string {
	t.Helper()
	fig, err := render.WorkbookRenderer{}.Render(render.Chart{
		Title:  "Latency",
		YLabel: "requests",
		Kind:   render.KindBar,
		Labels: []string{"[0,5)", "[5,10)"},
		Counts: []int{4, 9},
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, fig.Encode(&buf, render.FormatXLSX))
	path := filepath.Join(t.TempDir(), "chart.xlsx")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
	return path
}

func TestListChartSeries(t *testing.T) {
	series, err := ListChartSeries(writeChartWorkbook(t))
	require.NoError(t, err)
	require.Len(t, series, 1)

	s := series[0]
	assert.Equal(t, render.WorkbookSheet, s.Sheet)
	assert.Equal(t, "bar", s.Type)
	assert.Equal(t, "Latency", s.Title)
	assert.Equal(t, 0, s.Index)
	assert.NotEmpty(t, s.Chart)

	area, err := ParseReference(s.Values)
	require.NoError(t, err)
	assert.Equal(t, Area{Sheet: render.WorkbookSheet, R1: 2, C1: 2, R2: 3, C2: 2}, area)
}

func TestReadChartSeries(t *testing.T) {
	path := writeChartWorkbook(t)

	series, err := ReadChartSeries(path, "Latency", 0)
	require.NoError(t, err)
	assert.Equal(t, "requests", series.Name)
	assert.Equal(t, []float64{4, 9}, series.Values)

	_, err = ReadChartSeries(path, "Latency", 1)
	assert.ErrorIs(t, err, ErrChartNotFound)
	_, err = ReadChartSeries(path, "Throughput", 0)
	assert.ErrorIs(t, err, ErrChartNotFound)
}

func TestListChartSeriesWithoutCharts(t *testing.T) {
	series, err := ListChartSeries(writeWorkbook(t))
	require.NoError(t, err)
	assert.Empty(t, series)
}

func TestRelIDs(t *testing.T) {
	rels := map[string]string{
		"rId10": "xl/drawings/drawing3.xml",
		"rId2":  "xl/drawings/drawing2.xml",
		"rId1":  "xl/drawings/drawing1.xml",
		"rId3":  "xl/printerSettings/printerSettings1.bin",
	}
	for i := 0; i < 5; i++ {
		assert.Equal(t, []string{"rId1", "rId2", "rId3", "rId10"}, relIDs(rels))
	}
	assert.Empty(t, relIDs(map[string]string{}))
}

func TestResolvePartPath(t *testing.T) {
	assert.Equal(t, "xl/drawings/drawing1.xml", resolvePartPath("xl/worksheets", "../drawings/drawing1.xml"))
	assert.Equal(t, "xl/worksheets/sheet1.xml", resolvePartPath("xl", "worksheets/sheet1.xml"))
	assert.Equal(t, "xl/worksheets/sheet1.xml", resolvePartPath("xl", "/xl/worksheets/sheet1.xml"))
}
