// Package normalize turns one raw table (type row, description row, data rows)
// into typed fields and sparse, coerced records.
package normalize

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ukaji3/sheetgen-go/pkg/sheetgen/coerce"
	"github.com/ukaji3/sheetgen-go/pkg/sheetgen/models"
)

// HeaderRows is the number of leading metadata rows: types, then descriptions.
const HeaderRows = 2

// Options configures normalization.
type Options struct {
	// Exclude lists column names dropped like note columns.
	Exclude []string
}

// Result holds the normalized form of one table.
type Result struct {
	// Malformed is set when the table has no usable header rows.
	// Raw then carries the input unchanged and Fields/Records are empty.
	Malformed bool
	// Raw is the table as given.
	Raw json.RawMessage
	// Fields lists the non-note, non-excluded columns in type-row order.
	Fields []models.Field
	// Records holds one sparse record per data row.
	Records []models.Record
	// Skipped counts data rows that were not JSON objects.
	Skipped int
}

// Normalize cleans a raw table. It has no failure mode: a table that is not an
// array of at least two header objects comes back marked Malformed.
func Normalize(raw json.RawMessage, opts Options) Result {
	res := Result{Raw: raw}

	rows, err := models.DecodeRows(raw)
	if err != nil || len(rows) < HeaderRows || rows[0] == nil || rows[1] == nil {
		res.Malformed = true
		return res
	}

	res.Fields = Fields(rows[0], rows[1], opts.Exclude)
	res.Records = make([]models.Record, 0, len(rows)-HeaderRows)
	for _, row := range rows[HeaderRows:] {
		if row == nil {
			res.Skipped++
			continue
		}
		res.Records = append(res.Records, Clean(row, res.Fields))
	}
	return res
}

// Fields builds the field list from the type and description rows, dropping
// note columns and any name in exclude.
func Fields(types, descriptions models.Row, exclude []string) []models.Field {
	skip := make(map[string]struct{}, len(exclude))
	for _, name := range exclude {
		skip[name] = struct{}{}
	}

	var fields []models.Field
	for pair := types.Oldest(); pair != nil; pair = pair.Next() {
		if _, ok := skip[pair.Key]; ok {
			continue
		}
		tag := models.ParseTypeTag(cellText(pair.Value))
		if tag.IsNote() {
			continue
		}
		field := models.Field{Name: pair.Key, Type: tag}
		if descriptions != nil {
			if d, ok := descriptions.Get(pair.Key); ok {
				field.Description = cellText(d)
			}
		}
		fields = append(fields, field)
	}
	return fields
}

// Clean coerces one data row. Cells that are missing, null or the empty string
// are left out of the record.
func Clean(row models.Row, fields []models.Field) models.Record {
	rec := models.NewRecord()
	for _, f := range fields {
		raw, ok := row.Get(f.Name)
		if !ok {
			continue
		}
		v := models.Scalar(raw)
		if v == nil || v == "" {
			continue
		}
		rec.Set(f.Name, coerce.Coerce(f.Type, v))
	}
	return rec
}

func cellText(raw json.RawMessage) string {
	switch v := models.Scalar(raw).(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}
