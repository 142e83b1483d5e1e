package flatten

import (
	"reflect"
	"strings"
	"testing"

	"github.com/segmentio/encoding/json"
)

func mustParse(t *testing.T, src string) interface{} {
	t.Helper()
	var v interface{}
	if err := json.Unmarshal([]byte(src), &v); err != nil {
		t.Fatalf("failed to parse fixture: %v", err)
	}
	return v
}

func TestNormalize_Columns(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		sep      string
		wantCols []string
		wantRows int
	}{
		{
			name:     "flat objects",
			src:      `[{"a":1,"b":2},{"a":3,"b":4}]`,
			sep:      "__",
			wantCols: []string{"a", "b"},
			wantRows: 2,
		},
		{
			name:     "nested object",
			src:      `[{"a":{"b":1,"c":{"d":2}}}]`,
			sep:      "__",
			wantCols: []string{"a__b", "a__c__d"},
			wantRows: 1,
		},
		{
			name:     "union across rows",
			src:      `[{"a":{"b":1}},{"a":{"c":2}}]`,
			sep:      "__",
			wantCols: []string{"a__b", "a__c"},
			wantRows: 2,
		},
		{
			name:     "dot separator",
			src:      `[{"a":{"b":1}},{"a":{"c":2}}]`,
			sep:      ".",
			wantCols: []string{"a.b", "a.c"},
			wantRows: 2,
		},
		{
			name:     "array kept as single column",
			src:      `[{"name":"x","tags":[1,2,3]}]`,
			sep:      "__",
			wantCols: []string{"name", "tags"},
			wantRows: 1,
		},
		{
			name:     "single object root",
			src:      `{"a":{"b":1},"c":2}`,
			sep:      "__",
			wantCols: []string{"a__b", "c"},
			wantRows: 1,
		},
		{
			name:     "primitive root",
			src:      `"hello"`,
			sep:      "__",
			wantCols: []string{"value"},
			wantRows: 1,
		},
		{
			name:     "empty list",
			src:      `[]`,
			sep:      "__",
			wantCols: []string{},
			wantRows: 0,
		},
		{
			name:     "empty nested object adds no columns",
			src:      `[{"a":{},"b":1}]`,
			sep:      "__",
			wantCols: []string{"b"},
			wantRows: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := Normalize(mustParse(t, tt.src), tt.sep)
			if len(table.Rows) != tt.wantRows {
				t.Errorf("Normalize() rows = %d, want %d", len(table.Rows), tt.wantRows)
			}
			if !reflect.DeepEqual(table.Columns, tt.wantCols) {
				t.Errorf("Normalize() columns = %v, want %v", table.Columns, tt.wantCols)
			}
		})
	}
}

func TestNormalize_MissingKeysAreAbsent(t *testing.T) {
	table := Normalize(mustParse(t, `[{"a":{"b":1}},{"a":{"c":2}}]`), "__")

	if got, ok := table.Rows[0]["a__b"]; !ok || got != float64(1) {
		t.Errorf("row 0 a__b = %v (ok=%t), want 1", got, ok)
	}
	if _, ok := table.Rows[0]["a__c"]; ok {
		t.Error("row 0 should not have a__c")
	}
	if got, ok := table.Rows[1]["a__c"]; !ok || got != float64(2) {
		t.Errorf("row 1 a__c = %v (ok=%t), want 2", got, ok)
	}
	if _, ok := table.Rows[1]["a__b"]; ok {
		t.Error("row 1 should not have a__b")
	}
}

func TestNormalize_SeparatorOnlyChangesKeys(t *testing.T) {
	src := `[{"a":{"b":1,"c":{"d":"x"}},"e":true}]`

	underscore := Normalize(mustParse(t, src), "__")
	dot := Normalize(mustParse(t, src), ".")

	collect := func(tbl *Table) []interface{} {
		var vals []interface{}
		for _, col := range tbl.Columns {
			vals = append(vals, tbl.Rows[0][col])
		}
		return vals
	}

	if !reflect.DeepEqual(collect(underscore), collect(dot)) {
		t.Errorf("values differ across separators: %v vs %v", collect(underscore), collect(dot))
	}
	for i, col := range underscore.Columns {
		want := strings.ReplaceAll(col, "__", ".")
		if dot.Columns[i] != want {
			t.Errorf("column %d = %q, want %q", i, dot.Columns[i], want)
		}
	}
}

func TestNormalize_Envelope(t *testing.T) {
	// A root object with exactly one list-valued key: the list holds the
	// records, other fields become meta columns on every row.
	src := `{"count":2,"info":{"source":"api"},"items":[{"a":1},{"a":2}]}`
	table := Normalize(mustParse(t, src), "__")

	wantCols := []string{"a", "meta__count", "meta__info"}
	if !reflect.DeepEqual(table.Columns, wantCols) {
		t.Fatalf("columns = %v, want %v", table.Columns, wantCols)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(table.Rows))
	}
	for i, row := range table.Rows {
		if row["meta__count"] != float64(2) {
			t.Errorf("row %d meta__count = %v, want 2", i, row["meta__count"])
		}
		if row["meta__info"] != `{"source":"api"}` {
			t.Errorf("row %d meta__info = %v, want JSON text", i, row["meta__info"])
		}
	}
}

func TestNormalize_EnvelopeEmptyList(t *testing.T) {
	table := Normalize(mustParse(t, `{"count":0,"items":[]}`), "__")
	if len(table.Rows) != 0 {
		t.Errorf("rows = %d, want 0", len(table.Rows))
	}
}

func TestNormalize_TwoListKeysIsNotEnvelope(t *testing.T) {
	// More than one list-valued key: the root is a plain record.
	table := Normalize(mustParse(t, `{"a":[1],"b":[2]}`), "__")
	if len(table.Rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(table.Rows))
	}
	if !reflect.DeepEqual(table.Columns, []string{"a", "b"}) {
		t.Errorf("columns = %v, want [a b]", table.Columns)
	}
}

func TestNormalize_NonObjectRecords(t *testing.T) {
	table := Normalize(mustParse(t, `[1,2]`), "__")
	if len(table.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(table.Rows))
	}
	if !reflect.DeepEqual(table.Columns, []string{"value"}) {
		t.Errorf("columns = %v, want [value]", table.Columns)
	}
}

// unflatten rebuilds the nested structure from a flattened row.
func unflatten(row Row, sep string) map[string]interface{} {
	nested := make(map[string]interface{})
	for key, v := range row {
		parts := strings.Split(key, sep)
		m := nested
		for _, p := range parts[:len(parts)-1] {
			child, ok := m[p].(map[string]interface{})
			if !ok {
				child = make(map[string]interface{})
				m[p] = child
			}
			m = child
		}
		m[parts[len(parts)-1]] = v
	}
	return nested
}

func TestFlattenUnflattenRoundTrip(t *testing.T) {
	// For array-free objects, flattening then re-nesting with the same
	// separator recovers the original structure.
	srcs := []string{
		`{"a":{"b":1,"c":{"d":"x","e":null}},"f":true}`,
		`{"name":"alice","address":{"city":"Oslo","geo":{"lat":59.9,"lon":10.7}}}`,
	}

	for _, src := range srcs {
		original := mustParse(t, src).(map[string]interface{})
		table := Normalize(original, "__")
		if len(table.Rows) != 1 {
			t.Fatalf("rows = %d, want 1", len(table.Rows))
		}
		if got := unflatten(table.Rows[0], "__"); !reflect.DeepEqual(got, original) {
			t.Errorf("roundtrip = %#v, want %#v", got, original)
		}
	}
}

func TestTable_Head(t *testing.T) {
	table := Normalize(mustParse(t, `[{"a":1},{"a":2},{"a":3}]`), "__")

	tests := []struct {
		name string
		n    int
		want int
	}{
		{"limit below count", 2, 2},
		{"limit above count", 10, 3},
		{"zero means all", 0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			head := table.Head(tt.n)
			if len(head.Rows) != tt.want {
				t.Errorf("Head(%d) rows = %d, want %d", tt.n, len(head.Rows), tt.want)
			}
			if !reflect.DeepEqual(head.Columns, table.Columns) {
				t.Errorf("Head(%d) columns = %v, want %v", tt.n, head.Columns, table.Columns)
			}
		})
	}
}
