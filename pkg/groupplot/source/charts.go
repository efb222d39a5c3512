package source

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/groupplot-go/pkg/groupplot/models"
)

// ChartSeries describes one series of a chart embedded in a workbook.
type ChartSeries struct {
	// Sheet is the worksheet the chart is drawn on.
	Sheet string `json:"sheet"`
	// Chart is the drawing object name (e.g. "Chart 1").
	Chart string `json:"chart"`
	// Type is the OOXML plot element without the "Chart" suffix (bar, pie, ...).
	Type string `json:"type"`
	// Title is the chart title text, if any.
	Title string `json:"title,omitempty"`
	// Index is the series position within the chart.
	Index int `json:"index"`
	// Name is the series name literal or reference.
	Name string `json:"name,omitempty"`
	// Values is the range reference holding the series values.
	Values string `json:"values"`
}

// ListChartSeries returns the series of every chart in an xlsx file, in
// sheet order.
func ListChartSeries(xlsxPath string) ([]ChartSeries, error) {
	r, err := zip.OpenReader(xlsxPath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var wb xmlWorkbook
	if err := readZipXML(&r.Reader, "xl/workbook.xml", &wb); err != nil {
		return nil, err
	}
	wbRels, err := readRels(&r.Reader, "xl/workbook.xml")
	if err != nil {
		return nil, err
	}

	var result []ChartSeries
	for _, sheet := range wb.Sheets {
		sheetPath, ok := wbRels[sheet.RID]
		if !ok {
			continue
		}
		charts, err := sheetCharts(&r.Reader, sheet.Name, sheetPath)
		if err != nil {
			return nil, fmt.Errorf("sheet %q: %w", sheet.Name, err)
		}
		result = append(result, charts...)
	}
	return result, nil
}

// ReadChartSeries reads the values of series index of the chart whose name
// or title is chart.
func ReadChartSeries(xlsxPath, chart string, index int) (models.Series, error) {
	all, err := ListChartSeries(xlsxPath)
	if err != nil {
		return models.Series{}, err
	}

	var found *ChartSeries
	for i := range all {
		s := &all[i]
		if (s.Chart == chart || s.Title == chart) && s.Index == index {
			found = s
			break
		}
	}
	if found == nil {
		return models.Series{}, fmt.Errorf("%w: %q series %d", ErrChartNotFound, chart, index)
	}
	if found.Values == "" {
		return models.Series{}, fmt.Errorf("%w: %q series %d has literal values only", ErrChartNotFound, chart, index)
	}

	f, err := excelize.OpenFile(xlsxPath)
	if err != nil {
		return models.Series{}, err
	}
	defer f.Close()

	series, err := ReadRange(f, found.Values)
	if err != nil {
		return models.Series{}, err
	}
	if found.Name != "" {
		series.Name = found.Name
		if area, err := ParseReference(found.Name); err == nil {
			cell, _ := excelize.CoordinatesToCellName(area.C1, area.R1)
			if v, err := f.GetCellValue(area.Sheet, cell); err == nil && v != "" {
				series.Name = v
			}
		}
	}
	return series, nil
}

func sheetCharts(r *zip.Reader, sheetName, sheetPath string) ([]ChartSeries, error) {
	sheetRels, err := readRels(r, sheetPath)
	if err != nil {
		return nil, err
	}

	var result []ChartSeries
	for _, id := range relIDs(sheetRels) {
		drawingPath := sheetRels[id]
		if !strings.Contains(drawingPath, "drawings/") {
			continue
		}
		var drawing xmlDrawing
		if err := readZipXML(r, drawingPath, &drawing); err != nil {
			return nil, err
		}
		drawingRels, err := readRels(r, drawingPath)
		if err != nil {
			return nil, err
		}

		for _, frame := range drawing.frames() {
			chartPath, ok := drawingRels[frame.Chart.ID]
			if !ok || frame.Chart.ID == "" {
				continue
			}
			var space xmlChartSpace
			if err := readZipXML(r, chartPath, &space); err != nil {
				return nil, err
			}
			result = append(result, space.series(sheetName, frame.NvPr.CNvPr.Name)...)
		}
	}
	return result, nil
}

type xmlWorkbook struct {
	Sheets []struct {
		Name string `xml:"name,attr"`
		RID  string `xml:"id,attr"`
	} `xml:"sheets>sheet"`
}

type xmlRelationships struct {
	Rels []struct {
		ID     string `xml:"Id,attr"`
		Target string `xml:"Target,attr"`
	} `xml:"Relationship"`
}

type xmlGraphicFrame struct {
	NvPr struct {
		CNvPr struct {
			Name string `xml:"name,attr"`
		} `xml:"cNvPr"`
	} `xml:"nvGraphicFramePr"`
	Chart struct {
		ID string `xml:"id,attr"`
	} `xml:"graphic>graphicData>chart"`
}

type xmlAnchor struct {
	Frames []xmlGraphicFrame `xml:"graphicFrame"`
}

type xmlDrawing struct {
	TwoCell  []xmlAnchor `xml:"twoCellAnchor"`
	OneCell  []xmlAnchor `xml:"oneCellAnchor"`
	Absolute []xmlAnchor `xml:"absoluteAnchor"`
}

func (d xmlDrawing) frames() []xmlGraphicFrame {
	var frames []xmlGraphicFrame
	for _, anchors := range [][]xmlAnchor{d.TwoCell, d.OneCell, d.Absolute} {
		for _, a := range anchors {
			frames = append(frames, a.Frames...)
		}
	}
	return frames
}

type xmlChartSpace struct {
	Chart struct {
		Title struct {
			Runs []string `xml:"tx>rich>p>r>t"`
		} `xml:"title"`
		PlotArea struct {
			Groups []xmlPlotGroup `xml:",any"`
		} `xml:"plotArea"`
	} `xml:"chart"`
}

type xmlPlotGroup struct {
	XMLName xml.Name
	Series  []struct {
		Tx struct {
			Ref string `xml:"strRef>f"`
			V   string `xml:"v"`
		} `xml:"tx"`
		Val struct {
			Ref string `xml:"numRef>f"`
		} `xml:"val"`
	} `xml:"ser"`
}

func (cs xmlChartSpace) series(sheet, name string) []ChartSeries {
	title := strings.TrimSpace(strings.Join(cs.Chart.Title.Runs, ""))

	var result []ChartSeries
	index := 0
	for _, g := range cs.Chart.PlotArea.Groups {
		if !strings.HasSuffix(g.XMLName.Local, "Chart") {
			continue
		}
		for _, ser := range g.Series {
			s := ChartSeries{
				Sheet:  sheet,
				Chart:  name,
				Type:   strings.TrimSuffix(g.XMLName.Local, "Chart"),
				Title:  title,
				Index:  index,
				Name:   strings.TrimSpace(ser.Tx.V),
				Values: strings.TrimSpace(ser.Val.Ref),
			}
			if ref := strings.TrimSpace(ser.Tx.Ref); ref != "" {
				s.Name = ref
			}
			result = append(result, s)
			index++
		}
	}
	return result
}

// readRels returns relationship id to part path for the part at partPath.
func readRels(r *zip.Reader, partPath string) (map[string]string, error) {
	relsPath := path.Join(path.Dir(partPath), "_rels", path.Base(partPath)+".rels")

	var rels xmlRelationships
	if err := readZipXML(r, relsPath, &rels); err != nil {
		if err == errPartMissing {
			return map[string]string{}, nil
		}
		return nil, err
	}

	result := make(map[string]string, len(rels.Rels))
	for _, rel := range rels.Rels {
		result[rel.ID] = resolvePartPath(path.Dir(partPath), rel.Target)
	}
	return result, nil
}

// relIDs returns the relationship IDs in document order: shorter IDs
// first, so rId2 precedes rId10.
func relIDs(rels map[string]string) []string {
	ids := make([]string, 0, len(rels))
	for id := range rels {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if len(ids[i]) != len(ids[j]) {
			return len(ids[i]) < len(ids[j])
		}
		return ids[i] < ids[j]
	})
	return ids
}

// resolvePartPath resolves a relationship target against the source part
// directory. Absolute targets are rooted at the package.
func resolvePartPath(dir, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Join(dir, target)
}

var errPartMissing = fmt.Errorf("%w: missing package part", excelize.ErrWorkbookFileFormat)

func readZipXML(r *zip.Reader, name string, v interface{}) error {
	for _, f := range r.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return err
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			return err
		}
		return xml.Unmarshal(data, v)
	}
	return errPartMissing
}
