package source

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/groupplot-go/pkg/groupplot/models"
)

// ReadColumn reads one column of a sheet as a series.
//
// The data region is the bounding box of non-empty cells. column is first
// matched against the header row (the first row of the region), then
// parsed as a column letter. When the first cell of a letter-selected
// column is not a number it is taken as the header. Blank cells become
// missing values.
func ReadColumn(f *excelize.File, sheet, column string) (models.Series, error) {
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return models.Series{}, err
	}

	minRow, maxRow, minCol, maxCol := findDataBounds(rows)
	if minRow < 0 {
		return models.Series{Name: column}, nil
	}

	col, hasHeader, err := resolveColumn(rows[minRow], minCol, maxCol, column)
	if err != nil {
		return models.Series{}, fmt.Errorf("sheet %q: %w", sheet, err)
	}
	first := cellAt(rows, minRow, col)
	if !hasHeader {
		if _, ok := parseNumber(first); !ok && first != "" {
			hasHeader = true
		}
	}

	series := models.Series{Name: column}
	start := minRow
	if hasHeader {
		series.Name = first
		start++
	}

	for rowIdx := start; rowIdx <= maxRow; rowIdx++ {
		raw := cellAt(rows, rowIdx, col)
		v, err := cellValue(raw)
		if err != nil {
			cell, _ := excelize.CoordinatesToCellName(col+1, rowIdx+1)
			return models.Series{}, NewCellError(sheet, cell, raw, err)
		}
		series.Values = append(series.Values, v)
	}

	return series, nil
}

// resolveColumn returns the 0-based column index for a selector.
func resolveColumn(header []string, minCol, maxCol int, column string) (int, bool, error) {
	column = strings.TrimSpace(column)
	if column == "" {
		return minCol, false, nil
	}
	for colIdx := minCol; colIdx <= maxCol && colIdx < len(header); colIdx++ {
		if strings.TrimSpace(header[colIdx]) == column {
			return colIdx, true, nil
		}
	}
	if n, err := excelize.ColumnNameToNumber(column); err == nil {
		return n - 1, false, nil
	}
	return 0, false, fmt.Errorf("%w: %q", ErrColumnNotFound, column)
}

func cellAt(rows [][]string, rowIdx, colIdx int) string {
	if rowIdx >= len(rows) || colIdx >= len(rows[rowIdx]) {
		return ""
	}
	return rows[rowIdx][colIdx]
}

// cellValue converts a raw cell to a series value. Blank is missing.
func cellValue(raw string) (float64, error) {
	if strings.TrimSpace(raw) == "" {
		return math.NaN(), nil
	}
	if v, ok := parseNumber(raw); ok {
		return v, nil
	}
	return 0, ErrNonNumeric
}

// parseNumber parses integers and decimals. NaN and infinities are
// rejected since they are not cell values a sheet can hold.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return float64(i), true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// findDataBounds finds the bounding box of non-empty cells.
func findDataBounds(rows [][]string) (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow = -1, -1
	minCol, maxCol = -1, -1

	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if cell == "" {
				continue
			}
			if minRow < 0 || rowIdx < minRow {
				minRow = rowIdx
			}
			if maxRow < 0 || rowIdx > maxRow {
				maxRow = rowIdx
			}
			if minCol < 0 || colIdx < minCol {
				minCol = colIdx
			}
			if maxCol < 0 || colIdx > maxCol {
				maxCol = colIdx
			}
		}
	}

	return
}
