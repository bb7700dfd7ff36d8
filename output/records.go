package output

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/opencamara/camara-go/camara"
)

// Table is a list of records with an explicit column order.
type Table struct {
	Columns []string
	Rows    []camara.Record
}

// Records normalises any JSON-serialisable value (struct, slice, map) into records.
func Records(v any) ([]camara.Record, error) {
	t, err := Normalize(v)
	if err != nil {
		return nil, err
	}
	return t.Rows, nil
}

// Normalize converts v into a Table. Columns follow the order in which keys
// first appear, which for structs is field order. A list of scalars, or a
// scalar, becomes a single "value" column.
func Normalize(v any) (*Table, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode output: %w", err)
	}

	t := &Table{Rows: []camara.Record{}}
	seen := map[string]bool{}
	add := func(item gjson.Result) error {
		if !item.IsObject() {
			t.Rows = append(t.Rows, camara.Record{"value": item.Value()})
			if !seen["value"] {
				seen["value"] = true
				t.Columns = append(t.Columns, "value")
			}
			return nil
		}
		item.ForEach(func(key, _ gjson.Result) bool {
			if !seen[key.String()] {
				seen[key.String()] = true
				t.Columns = append(t.Columns, key.String())
			}
			return true
		})
		var rec camara.Record
		if err := json.Unmarshal([]byte(item.Raw), &rec); err != nil {
			return fmt.Errorf("failed to decode output row: %w", err)
		}
		t.Rows = append(t.Rows, rec)
		return nil
	}

	root := gjson.ParseBytes(raw)
	switch {
	case root.Type == gjson.Null:
		return t, nil
	case root.IsArray():
		for _, item := range root.Array() {
			if err := add(item); err != nil {
				return nil, err
			}
		}
	default:
		if err := add(root); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Select keeps only the given columns, in the given order. Unknown columns
// are kept and print as empty.
func (t *Table) Select(fields []string) {
	if len(fields) == 0 {
		return
	}
	t.Columns = append([]string(nil), fields...)
	for i, row := range t.Rows {
		picked := make(camara.Record, len(fields))
		for _, f := range fields {
			picked[f] = row[f]
		}
		t.Rows[i] = picked
	}
}
