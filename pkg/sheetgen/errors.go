package sheetgen

import (
	"errors"
	"fmt"

	"github.com/ukaji3/sheetgen-go/pkg/sheetgen/codegen"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidWorkbook indicates the input is not a workbook JSON object or a readable xlsx file.
var ErrInvalidWorkbook = errors.New("invalid workbook")

// ErrTemplateNotFound indicates a configured template file does not exist.
var ErrTemplateNotFound = codegen.ErrTemplateNotFound

// Table processing stages reported by TableError.
const (
	StageData  = "data"
	StageClass = "class"
)

// TableError represents a failure confined to one table. The run continues
// with the remaining tables.
type TableError struct {
	Table string
	Stage string
	Err   error
}

func (e *TableError) Error() string {
	return fmt.Sprintf("table %q (%s): %v", e.Table, e.Stage, e.Err)
}

func (e *TableError) Unwrap() error {
	return e.Err
}

// NewTableError creates a new TableError.
func NewTableError(table, stage string, err error) *TableError {
	return &TableError{
		Table: table,
		Stage: stage,
		Err:   err,
	}
}
