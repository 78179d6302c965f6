// Package parser reads workbooks from xlsx files.
package parser

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ukaji3/sheetgen-go/pkg/sheetgen/models"
	"github.com/xuri/excelize/v2"
)

// SkipPrefix marks sheets that are not tables, such as notes or scratch sheets.
const SkipPrefix = "#"

// ReadWorkbook extracts every table sheet of an xlsx file, in sheet order.
// The namespace is the file name without extension.
func ReadWorkbook(path string) (*models.Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	wb := &models.Workbook{Namespace: models.NamespaceFromPath(path)}
	for _, sheetName := range f.GetSheetList() {
		if strings.HasPrefix(sheetName, SkipPrefix) {
			continue
		}

		rows, err := ExtractRows(f, sheetName)
		if err != nil {
			return nil, fmt.Errorf("sheet %q: %w", sheetName, err)
		}
		raw, err := json.Marshal(rows)
		if err != nil {
			return nil, fmt.Errorf("sheet %q: %w", sheetName, err)
		}

		wb.Tables = append(wb.Tables, models.Table{Name: sheetName, Raw: raw})
	}

	return wb, nil
}
