package flatten

import "sort"

// Row is a single flattened record: flattened key path -> cell value.
type Row map[string]interface{}

// Table is an ordered sequence of flattened rows. Columns is the union of
// all keys seen across rows, sorted for deterministic output; a row that
// lacks a column renders as an empty cell.
type Table struct {
	Columns []string
	Rows    []Row
}

// New builds a Table from rows, computing the column union.
func New(rows []Row) *Table {
	seen := make(map[string]bool)
	columns := make([]string, 0)
	for _, row := range rows {
		for col := range row {
			if !seen[col] {
				seen[col] = true
				columns = append(columns, col)
			}
		}
	}
	sort.Strings(columns)

	return &Table{Columns: columns, Rows: rows}
}

// Head returns a table holding the first n rows with the same column set.
// n <= 0 or n >= len(rows) returns the table unchanged.
func (t *Table) Head(n int) *Table {
	if n <= 0 || n >= len(t.Rows) {
		return t
	}
	return &Table{Columns: t.Columns, Rows: t.Rows[:n]}
}

// addColumn registers a column that was set on rows after construction.
func (t *Table) addColumn(name string) {
	i := sort.SearchStrings(t.Columns, name)
	if i < len(t.Columns) && t.Columns[i] == name {
		return
	}
	t.Columns = append(t.Columns, "")
	copy(t.Columns[i+1:], t.Columns[i:])
	t.Columns[i] = name
}
