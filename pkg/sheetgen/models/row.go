package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Row is one table row: field name to raw cell JSON, in column order.
type Row = *orderedmap.OrderedMap[string, json.RawMessage]

// Record is a cleaned data row: field name to coerced value, in type-row order.
// Absent keys mean the cell had no value.
type Record = *orderedmap.OrderedMap[string, any]

// NewRecord returns an empty record.
func NewRecord() Record {
	return orderedmap.New[string, any]()
}

// NewRow returns an empty row.
func NewRow() Row {
	return orderedmap.New[string, json.RawMessage]()
}

// DecodeRows decodes a raw table into its rows. Elements that are not JSON
// objects decode to nil rows so callers can tell them apart from empty ones.
// It fails when raw is not a JSON array.
func DecodeRows(raw json.RawMessage) ([]Row, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, fmt.Errorf("decode table rows: %w", err)
	}
	if elems == nil {
		return nil, fmt.Errorf("decode table rows: table is null")
	}

	rows := make([]Row, len(elems))
	for i, elem := range elems {
		if t := bytes.TrimSpace(elem); len(t) == 0 || t[0] != '{' {
			continue
		}
		row := NewRow()
		if err := json.Unmarshal(elem, row); err != nil {
			return nil, fmt.Errorf("decode table row %d: %w", i, err)
		}
		rows[i] = row
	}
	return rows, nil
}

// Scalar decodes a raw cell into string, json.Number, bool or nil.
// Cells holding arrays or objects decode to their generic JSON form.
func Scalar(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return string(raw)
	}
	return v
}

// Text returns the cell as text when it holds a JSON string.
func Text(raw json.RawMessage) (string, bool) {
	s, ok := Scalar(raw).(string)
	return s, ok
}
