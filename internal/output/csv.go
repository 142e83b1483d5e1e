package output

import (
	"encoding/csv"
	"fmt"
	"io"

	"jflat/internal/flatten"
)

// CSVFormatter outputs a table as CSV with a header row.
type CSVFormatter struct {
	writer io.Writer
}

// NewCSVFormatter creates a new CSV formatter
func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{writer: w}
}

// SetOutput sets the output writer
func (c *CSVFormatter) SetOutput(w io.Writer) {
	c.writer = w
}

// Format writes the table as CSV: header row first, then one record per
// row. Cells for columns a row does not have are left empty.
func (c *CSVFormatter) Format(t *flatten.Table) error {
	if len(t.Rows) == 0 {
		return nil
	}

	csvWriter := csv.NewWriter(c.writer)

	if err := csvWriter.Write(t.Columns); err != nil {
		return err
	}

	for _, row := range t.Rows {
		record := make([]string, len(t.Columns))
		for i, col := range t.Columns {
			if v, ok := row[col]; ok {
				record[i] = formatValue(v)
			}
		}
		if err := csvWriter.Write(record); err != nil {
			return err
		}
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

// formatValue converts a cell value to its output string
func formatValue(v interface{}) string {
	if v == nil {
		return ""
	}

	switch val := v.(type) {
	case string:
		return val
	case int, int8, int16, int32, int64:
		return fmt.Sprintf("%d", val)
	case uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", val)
	case float32, float64:
		return fmt.Sprintf("%g", val)
	case bool:
		return fmt.Sprintf("%t", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
