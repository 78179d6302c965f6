// Package models defines data structures for workbook splitting and code generation.
package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ErrNotObject indicates the workbook input is not a JSON object.
var ErrNotObject = errors.New("workbook is not a JSON object")

// Table is one named entry of a workbook with its raw, undecoded rows.
type Table struct {
	// Name is the table key as it appears in the workbook.
	Name string
	// Raw is the table value exactly as read from the input.
	Raw json.RawMessage
}

// Workbook represents the workbook-level container with tables in input order.
type Workbook struct {
	// Namespace is the workbook file stem; generated code lives in it.
	Namespace string
	// Tables lists the workbook tables in their original key order.
	Tables []Table
}

// ParseWorkbook decodes a workbook JSON object, preserving key order.
// It fails when data is not a JSON object.
func ParseWorkbook(namespace string, data []byte) (*Workbook, error) {
	if trimmed := bytes.TrimSpace(data); len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, ErrNotObject
	}

	om := orderedmap.New[string, json.RawMessage]()
	if err := json.Unmarshal(data, om); err != nil {
		return nil, fmt.Errorf("decode workbook: %w", err)
	}

	wb := &Workbook{Namespace: namespace}
	for pair := om.Oldest(); pair != nil; pair = pair.Next() {
		wb.Tables = append(wb.Tables, Table{Name: pair.Key, Raw: pair.Value})
	}
	return wb, nil
}

// Names returns the table names in workbook order.
func (w *Workbook) Names() []string {
	names := make([]string, 0, len(w.Tables))
	for _, t := range w.Tables {
		names = append(names, t.Name)
	}
	return names
}

// MarshalJSON encodes the workbook as a JSON object keyed by table name.
func (w *Workbook) MarshalJSON() ([]byte, error) {
	om := orderedmap.New[string, json.RawMessage](len(w.Tables))
	for _, t := range w.Tables {
		raw := t.Raw
		if len(raw) == 0 {
			raw = json.RawMessage("null")
		}
		om.Set(t.Name, raw)
	}
	return json.Marshal(om)
}

// NamespaceFromPath returns the file name of path without its extension.
func NamespaceFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
