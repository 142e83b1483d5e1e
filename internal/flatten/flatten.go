// Package flatten converts nested JSON values into flat tables.
//
// Nested objects are walked recursively and each child key is joined to its
// parent's path with a separator, so {"address": {"city": "Oslo"}} becomes
// the column "address__city". Arrays are never exploded into indexed
// columns; an array stays a single cell value. The resulting Table holds
// one row per input record with the column set being the union of all
// flattened keys.
package flatten

// DefaultSep joins nested keys when no separator is given.
const DefaultSep = "__"

// Normalize flattens a parsed JSON value into a Table.
//
// A list root yields one row per element. A map root whose keys include
// exactly one list-valued key treats that list as the records and carries
// the remaining top-level fields onto every row as "meta<sep>key" columns.
// Any other map root becomes a single row, and a primitive root becomes a
// single row with a "value" column.
func Normalize(data interface{}, sep string) *Table {
	if sep == "" {
		sep = DefaultSep
	}

	switch v := data.(type) {
	case []interface{}:
		return fromRecords(v, sep)
	case map[string]interface{}:
		// Common API envelope: {"meta": ..., "records": [...]}. A single
		// list-valued key marks the records; everything else is metadata.
		var listKey string
		listKeys := 0
		for k, val := range v {
			if _, ok := val.([]interface{}); ok {
				listKey = k
				listKeys++
			}
		}
		if listKeys == 1 {
			return fromEnvelope(v, listKey, sep)
		}
		return fromRecords([]interface{}{v}, sep)
	default:
		return fromRecords([]interface{}{data}, sep)
	}
}

// fromRecords flattens each record into a row.
func fromRecords(records []interface{}, sep string) *Table {
	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		row := make(Row)
		if m, ok := rec.(map[string]interface{}); ok {
			flattenInto(m, "", sep, row)
		} else {
			// Non-object record: single "value" column.
			row["value"] = rec
		}
		rows = append(rows, row)
	}
	return New(rows)
}

// fromEnvelope flattens the list under listKey and stamps the remaining
// top-level fields onto every row as meta columns.
func fromEnvelope(m map[string]interface{}, listKey, sep string) *Table {
	t := fromRecords(m[listKey].([]interface{}), sep)
	if len(t.Rows) == 0 {
		return t
	}

	for k, v := range m {
		if k == listKey {
			continue
		}
		col := "meta" + sep + k
		var cell interface{} = v
		switch v.(type) {
		case map[string]interface{}, []interface{}:
			// Complex metadata occupies a single cell as JSON text.
			cell = marshalString(v)
		}
		for _, row := range t.Rows {
			row[col] = cell
		}
		t.addColumn(col)
	}
	return t
}

// flattenInto walks m, joining nested keys to prefix with sep. Recursion
// stops at anything that is not an object: scalars, nulls and arrays all
// land in the row as-is.
func flattenInto(m map[string]interface{}, prefix, sep string, row Row) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + sep + k
		}
		if child, ok := v.(map[string]interface{}); ok {
			flattenInto(child, key, sep, row)
			continue
		}
		row[key] = v
	}
}
