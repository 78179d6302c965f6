package parser

import (
	"encoding/json"

	"github.com/ukaji3/sheetgen-go/pkg/sheetgen/models"
	"github.com/xuri/excelize/v2"
)

// ExtractRows reads a sheet laid out as: field names, types, descriptions,
// then data rows. It returns one row per sheet row after the name row, keyed
// by field name. Short rows are padded with empty strings; blank data rows are
// dropped.
func ExtractRows(f *excelize.File, sheetName string) ([]models.Row, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}

	result := []models.Row{}
	if len(rows) == 0 {
		return result, nil
	}

	cols := headerColumns(rows[0])
	if len(cols) == 0 {
		return result, nil
	}

	for rowIdx, row := range rows[1:] {
		if rowIdx >= MetaRows && isBlankRow(row, cols) {
			continue
		}

		r := models.NewRow()
		for _, col := range cols {
			value := ""
			if col.index < len(row) {
				value = row[col.index]
			}
			raw, err := json.Marshal(value)
			if err != nil {
				return nil, err
			}
			r.Set(col.name, raw)
		}
		result = append(result, r)
	}

	return result, nil
}
