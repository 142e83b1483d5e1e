// Package output renders flattened tables to their destinations.
//
// Currently supported sinks:
//   - CSV: comma-separated values with a header row
//   - Table: bordered terminal table for display mode
//
// Example usage:
//
//	formatter := output.NewCSVFormatter(os.Stdout)
//	if err := formatter.Format(table); err != nil {
//	    log.Fatal(err)
//	}
package output

import (
	"io"

	"jflat/internal/flatten"
)

// Formatter defines the interface for table renderers.
//
// Implementers must provide Format to write the table in the target format
// and SetOutput to change the output destination.
type Formatter interface {
	// Format writes the table in the formatter's specific format
	Format(t *flatten.Table) error

	// SetOutput changes the output writer
	SetOutput(w io.Writer)
}
