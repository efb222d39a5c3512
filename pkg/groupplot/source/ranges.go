package source

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/groupplot-go/pkg/groupplot/models"
)

// Area is a rectangular cell range with 1-based inclusive bounds.
type Area struct {
	Sheet  string
	R1, C1 int
	R2, C2 int
}

// ReadRange reads the cells of ref row by row. ref has the form
// Sheet!$B$2:$B$20 or 'My Sheet'!B2:B20; a single cell is allowed.
func ReadRange(f *excelize.File, ref string) (models.Series, error) {
	area, err := ParseReference(ref)
	if err != nil {
		return models.Series{}, err
	}

	series := models.Series{Name: ref}
	for r := area.R1; r <= area.R2; r++ {
		for c := area.C1; c <= area.C2; c++ {
			cell, _ := excelize.CoordinatesToCellName(c, r)
			raw, err := f.GetCellValue(area.Sheet, cell, excelize.Options{RawCellValue: true})
			if err != nil {
				return models.Series{}, err
			}
			v, err := cellValue(raw)
			if err != nil {
				return models.Series{}, NewCellError(area.Sheet, cell, raw, err)
			}
			series.Values = append(series.Values, v)
		}
	}

	return series, nil
}

// ParseReference parses a sheet-qualified range reference.
func ParseReference(ref string) (Area, error) {
	idx := strings.LastIndex(ref, "!")
	if idx <= 0 {
		return Area{}, fmt.Errorf("%w: %q has no sheet name", ErrInvalidReference, ref)
	}

	sheet := strings.TrimSpace(ref[:idx])
	if strings.HasPrefix(sheet, "'") && strings.HasSuffix(sheet, "'") && len(sheet) >= 2 {
		sheet = strings.ReplaceAll(sheet[1:len(sheet)-1], "''", "'")
	}

	area, ok := parseRangeToArea(ref[idx+1:])
	if !ok {
		return Area{}, fmt.Errorf("%w: %q", ErrInvalidReference, ref)
	}
	area.Sheet = sheet
	return area, nil
}

// parseRangeToArea parses a range string like $A$1:$D$10.
func parseRangeToArea(rangeStr string) (Area, bool) {
	rangeStr = strings.ReplaceAll(strings.TrimSpace(rangeStr), "$", "")

	parts := strings.Split(rangeStr, ":")
	if len(parts) == 1 {
		parts = append(parts, parts[0])
	}
	if len(parts) != 2 {
		return Area{}, false
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return Area{}, false
	}
	endCol, endRow, err := excelize.CellNameToCoordinates(parts[1])
	if err != nil {
		return Area{}, false
	}
	if endRow < startRow {
		startRow, endRow = endRow, startRow
	}
	if endCol < startCol {
		startCol, endCol = endCol, startCol
	}

	return Area{R1: startRow, C1: startCol, R2: endRow, C2: endCol}, true
}
