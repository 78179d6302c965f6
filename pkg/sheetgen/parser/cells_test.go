package parser

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// saveWorkbook writes sheets (name -> rows of cells) to a temporary xlsx file.
func saveWorkbook(t *testing.T, name string, sheets []string, cells map[string][][]any) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range sheets {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", sheet))
		} else {
			_, err := f.NewSheet(sheet)
			require.NoError(t, err)
		}
		for r, row := range cells[sheet] {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(sheet, cell, &row))
		}
	}

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestExtractRows(t *testing.T) {
	path := saveWorkbook(t, "items.xlsx", []string{"Item"}, map[string][][]any{
		"Item": {
			{"id", "name", "", "memo"},
			{"number", "string", "", "note"},
			{"ID", "Display name"},
			{100, "Sword", "ignored", "strong"},
			{nil, nil, nil, nil},
			{200.5},
		},
	})

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := ExtractRows(f, "Item")
	require.NoError(t, err)

	// type row, description row, two data rows; the blank row is dropped
	require.Len(t, rows, 4)

	data, err := json.Marshal(rows)
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"id":"number","name":"string","memo":"note"},
		{"id":"ID","name":"Display name","memo":""},
		{"id":"100","name":"Sword","memo":"strong"},
		{"id":"200.5","name":"","memo":""}
	]`, string(data))

	var keys []string
	for pair := rows[0].Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	assert.Equal(t, []string{"id", "name", "memo"}, keys)
}

func TestReadWorkbook(t *testing.T) {
	path := saveWorkbook(t, "Game.xlsx", []string{"Skill", "#notes", "Item", "Empty"}, map[string][][]any{
		"Skill":  {{"id"}, {"number"}, {"Skill id"}, {1}},
		"#notes": {{"scratch"}},
		"Item":   {{"id"}, {"number"}, {"Item id"}, {7}},
	})

	wb, err := ReadWorkbook(path)
	require.NoError(t, err)

	assert.Equal(t, "Game", wb.Namespace)
	assert.Equal(t, []string{"Skill", "Item", "Empty"}, wb.Names())
	assert.JSONEq(t, `[{"id":"number"},{"id":"Item id"},{"id":"7"}]`, string(wb.Tables[1].Raw))
	assert.JSONEq(t, `[]`, string(wb.Tables[2].Raw))
}

func TestReadWorkbook_Missing(t *testing.T) {
	_, err := ReadWorkbook(filepath.Join(t.TempDir(), "missing.xlsx"))
	assert.Error(t, err)
}

func TestHeaderColumns(t *testing.T) {
	cols := headerColumns([]string{"id", " ", "name", "id", " hp "})

	assert.Equal(t, []column{{0, "id"}, {2, "name"}, {4, "hp"}}, cols)
}

func TestIsBlankRow(t *testing.T) {
	cols := []column{{0, "id"}, {2, "name"}}

	tests := []struct {
		row      []string
		expected bool
	}{
		{nil, true},
		{[]string{"", "x"}, true},
		{[]string{" ", "", " "}, true},
		{[]string{"1"}, false},
		{[]string{"", "", "Sword"}, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, isBlankRow(tt.row, cols), "isBlankRow(%q)", tt.row)
	}
}
