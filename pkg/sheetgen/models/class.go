package models

import "strings"

// GeneratedClass is the input of one generated class source.
type GeneratedClass struct {
	// ClassName is the table key.
	ClassName string
	// Namespace is the workbook file stem.
	Namespace string
	// Fields are the non-note columns in type-row order.
	Fields []Field
}

// TableKey pairs a table name with the lower-cased key used for lookups.
type TableKey struct {
	Name string
	Key  string
}

// ManagerRegistry is the input of the generated manager source.
type ManagerRegistry struct {
	Namespace string
	ClassName string
	Tables    []TableKey
}

// NewManagerRegistry builds the registry for the given tables, in order.
func NewManagerRegistry(namespace string, tables []string) ManagerRegistry {
	reg := ManagerRegistry{
		Namespace: namespace,
		ClassName: namespace + "Manager",
		Tables:    make([]TableKey, 0, len(tables)),
	}
	for _, name := range tables {
		reg.Tables = append(reg.Tables, TableKey{Name: name, Key: strings.ToLower(name)})
	}
	return reg
}
