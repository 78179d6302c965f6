package models

import "strings"

// TypeTag is the semantic type declared for a column in the type row.
type TypeTag string

const (
	// TypeNumber is an integer column; decimals fall back to float.
	TypeNumber TypeTag = "number"
	// TypeFloat is a floating point column.
	TypeFloat TypeTag = "float"
	// TypeString is a text column.
	TypeString TypeTag = "string"
	// TypeBool is a boolean column.
	TypeBool TypeTag = "bool"
	// TypeArrayNumber is a comma separated list of numbers.
	TypeArrayNumber TypeTag = "arraynumber"
	// TypeArrayString is a list of strings, kept as written.
	TypeArrayString TypeTag = "arraystring"
	// TypeNote marks a commentary column excluded from all output.
	TypeNote TypeTag = "note"
)

// ParseTypeTag normalizes a type-row cell. Unknown tags are returned lower-cased.
func ParseTypeTag(s string) TypeTag {
	return TypeTag(strings.ToLower(strings.TrimSpace(s)))
}

// IsNote reports whether the column is commentary only.
func (t TypeTag) IsNote() bool {
	return t == TypeNote
}

// Known reports whether t is one of the declared tags.
func (t TypeTag) Known() bool {
	switch t {
	case TypeNumber, TypeFloat, TypeString, TypeBool, TypeArrayNumber, TypeArrayString, TypeNote:
		return true
	}
	return false
}

// Field describes one non-note column of a table.
type Field struct {
	// Name is the column name from the type row.
	Name string `json:"name"`
	// Type is the declared type tag.
	Type TypeTag `json:"type"`
	// Description is the human text from the description row, possibly multi-line.
	Description string `json:"description,omitempty"`
}
