// Package source loads series from workbook and CSV files.
package source

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/groupplot-go/pkg/groupplot/models"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrUnsupportedFile indicates an input file type with no loader.
var ErrUnsupportedFile = errors.New("unsupported file type")

// ErrNonNumeric indicates a cell that is neither blank nor a number.
var ErrNonNumeric = errors.New("series values must only contain numbers")

// ErrColumnNotFound indicates a column selector matching no column.
var ErrColumnNotFound = errors.New("column not found")

// ErrChartNotFound indicates a chart or chart series that does not exist.
var ErrChartNotFound = errors.New("chart not found")

// ErrInvalidReference indicates a malformed "Sheet!A1:B2" reference.
var ErrInvalidReference = errors.New("invalid range reference")

// CellError reports the cell a series value could not be read from.
type CellError struct {
	Sheet string
	Cell  string
	Value string
	Err   error
}

func (e *CellError) Error() string {
	if e.Sheet == "" {
		return fmt.Sprintf("cell %s (%q): %v", e.Cell, e.Value, e.Err)
	}
	return fmt.Sprintf("cell %s!%s (%q): %v", e.Sheet, e.Cell, e.Value, e.Err)
}

func (e *CellError) Unwrap() error {
	return e.Err
}

// NewCellError creates a new CellError.
func NewCellError(sheet, cell, value string, err error) *CellError {
	return &CellError{
		Sheet: sheet,
		Cell:  cell,
		Value: value,
		Err:   err,
	}
}

// Selector picks the series to read from a file.
type Selector struct {
	// Sheet is the worksheet name. Empty means the first sheet.
	Sheet string
	// Column is a header name, a column letter, or (CSV) a 1-based index.
	// Empty means the first column holding data.
	Column string
	// Range is a "Sheet!B2:B20" reference, used instead of Sheet/Column.
	Range string
	// Chart is the name or title of an embedded chart whose series is read.
	Chart string
	// SeriesIndex selects the chart series (0-based).
	SeriesIndex int
}

// Open reads a series from path according to sel. The loader is chosen by
// file extension.
func Open(path string, sel Selector) (models.Series, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return models.Series{}, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		if sel.Chart != "" {
			return ReadChartSeries(path, sel.Chart, sel.SeriesIndex)
		}
		f, err := excelize.OpenFile(path)
		if err != nil {
			return models.Series{}, err
		}
		defer f.Close()
		if sel.Range != "" {
			return ReadRange(f, sel.Range)
		}
		return ReadColumn(f, sel.Sheet, sel.Column)

	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return models.Series{}, err
		}
		defer f.Close()
		return ReadCSV(f, sel.Column)
	}

	return models.Series{}, fmt.Errorf("%w: %s", ErrUnsupportedFile, filepath.Ext(path))
}
