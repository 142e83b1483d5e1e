package output

import (
	"io"

	"github.com/olekukonko/tablewriter"

	"jflat/internal/flatten"
)

// TableFormatter renders a table for terminal display.
type TableFormatter struct {
	writer io.Writer
}

// NewTableFormatter creates a new terminal table formatter
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{writer: w}
}

// SetOutput sets the output writer
func (f *TableFormatter) SetOutput(w io.Writer) {
	f.writer = w
}

// Format renders the table with a header row. Column names keep their
// original case and cells are not wrapped, so wide values stay on one line.
func (f *TableFormatter) Format(t *flatten.Table) error {
	if len(t.Rows) == 0 {
		return nil
	}

	tw := tablewriter.NewWriter(f.writer)
	tw.SetHeader(t.Columns)
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)
	tw.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	tw.SetAlignment(tablewriter.ALIGN_LEFT)

	for _, row := range t.Rows {
		record := make([]string, len(t.Columns))
		for i, col := range t.Columns {
			if v, ok := row[col]; ok {
				record[i] = formatValue(v)
			}
		}
		tw.Append(record)
	}

	tw.Render()
	return nil
}
