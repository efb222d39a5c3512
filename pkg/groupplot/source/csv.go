package source

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ukaji3/groupplot-go/pkg/groupplot/models"
)

// ReadCSV reads one column of CSV data with a header row. column is a
// header name or a 1-based column index; empty selects the first column.
// Blank cells become missing values.
func ReadCSV(r io.Reader, column string) (models.Series, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return models.Series{Name: column}, nil
	}
	if err != nil {
		return models.Series{}, err
	}

	col, err := csvColumn(header, column)
	if err != nil {
		return models.Series{}, err
	}

	series := models.Series{Name: strings.TrimSpace(header[col])}
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return models.Series{}, err
		}
		raw := ""
		if col < len(record) {
			raw = record[col]
		}
		v, err := cellValue(raw)
		if err != nil {
			return models.Series{}, NewCellError("", fmt.Sprintf("%d:%d", line, col+1), raw, err)
		}
		series.Values = append(series.Values, v)
	}
	return series, nil
}

func csvColumn(header []string, column string) (int, error) {
	column = strings.TrimSpace(column)
	if column == "" {
		return 0, nil
	}
	for i, h := range header {
		if strings.TrimSpace(h) == column {
			return i, nil
		}
	}
	if n, err := strconv.Atoi(column); err == nil && n >= 1 && n <= len(header) {
		return n - 1, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrColumnNotFound, column)
}
