package flatten

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/segmentio/encoding/json"
)

// illegal matches control characters that break CSV and spreadsheet
// parsers. Tab (0x09) and newline (0x0A) are deliberately kept.
var illegal = regexp.MustCompile(`[\x00-\x08\x0B-\x1F\x7F]`)

// CleanValue makes a single cell safe to print and serialize.
//
// Residual non-scalars (maps, slices that survived flattening) become JSON
// text so they occupy one cell. Strings get their newlines normalized to
// "\n" and illegal control characters removed. Everything else passes
// through unchanged.
func CleanValue(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}, []interface{}:
		return marshalString(val)
	case string:
		s := strings.ReplaceAll(val, "\r\n", "\n")
		s = strings.ReplaceAll(s, "\r", "\n")
		return illegal.ReplaceAllString(s, "")
	}
	return v
}

// Clean sanitizes every cell in the table in place.
func (t *Table) Clean() {
	for _, row := range t.Rows {
		for k, v := range row {
			row[k] = CleanValue(v)
		}
	}
}

func marshalString(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
