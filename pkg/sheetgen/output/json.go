// Package output serializes tables and workbooks to JSON.
package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/ukaji3/sheetgen-go/pkg/sheetgen/models"
)

// Indent is the indentation used for pretty output.
const Indent = "  "

// ErrMissingKey indicates a record lacks the key field required by nested output.
var ErrMissingKey = errors.New("record has no key field")

// htmlEscapes are the sequences encoding/json emits for <, > and &.
var htmlEscapes = map[string]byte{
	"u003c": '<',
	"u003e": '>',
	"u0026": '&',
}

// ToJSON serializes v. Non-ASCII and HTML characters are written as is,
// including inside ordered maps, whose MarshalJSON always escapes HTML.
func ToJSON(v any, pretty bool) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", Indent)
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return unescapeHTML(buf.Bytes()), nil
}

// unescapeHTML turns \u003c, \u003e and \u0026 back into the characters they
// encode. Other escape sequences, including an escaped backslash followed by
// "u003c", are copied unchanged.
func unescapeHTML(data []byte) []byte {
	if !bytes.Contains(data, []byte(`\u00`)) {
		return data
	}
	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); i++ {
		if data[i] != '\\' || i+1 >= len(data) {
			out = append(out, data[i])
			continue
		}
		if i+6 <= len(data) {
			if c, ok := htmlEscapes[string(data[i+1:i+6])]; ok {
				out = append(out, c)
				i += 5
				continue
			}
		}
		out = append(out, data[i], data[i+1])
		i++
	}
	return out
}

// RecordsToJSON serializes cleaned records as a JSON array.
func RecordsToJSON(records []models.Record, pretty bool) ([]byte, error) {
	if records == nil {
		records = []models.Record{}
	}
	return ToJSON(records, pretty)
}

// NestedToJSON serializes records as an object keyed by the keyField value of
// each record. The key field is removed from the nested records.
func NestedToJSON(records []models.Record, keyField string, pretty bool) ([]byte, error) {
	nested := orderedmap.New[string, models.Record](len(records))
	for i, rec := range records {
		key, ok := rec.Get(keyField)
		if !ok {
			return nil, fmt.Errorf("%w %q (record %d)", ErrMissingKey, keyField, i)
		}
		rest := models.NewRecord()
		for pair := rec.Oldest(); pair != nil; pair = pair.Next() {
			if pair.Key != keyField {
				rest.Set(pair.Key, pair.Value)
			}
		}
		nested.Set(keyString(key), rest)
	}
	return ToJSON(nested, pretty)
}

// RawToJSON re-indents a table that is written without normalization.
func RawToJSON(raw json.RawMessage, pretty bool) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	if pretty {
		err = json.Indent(&buf, raw, "", Indent)
	} else {
		err = json.Compact(&buf, raw)
	}
	if err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func keyString(v any) string {
	switch k := v.(type) {
	case string:
		return k
	case int64:
		return strconv.FormatInt(k, 10)
	case float64:
		return strconv.FormatFloat(k, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(k)
	}
	return fmt.Sprint(v)
}
