// Package codegen renders class and manager sources for normalized tables.
package codegen

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ukaji3/sheetgen-go/pkg/sheetgen/models"
)

// typeNames maps declared tags to C# types. Unknown tags become string.
var typeNames = map[models.TypeTag]string{
	models.TypeNumber:      "int",
	models.TypeFloat:       "float",
	models.TypeString:      "string",
	models.TypeBool:        "bool",
	models.TypeArrayNumber: "List<int>",
	models.TypeArrayString: "List<string>",
}

var docEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// TypeName returns the C# type for a tag.
func TypeName(tag models.TypeTag) string {
	if name, ok := typeNames[tag]; ok {
		return name
	}
	return "string"
}

// GetterName upper-cases the first code point of a field name.
func GetterName(field string) string {
	r, size := utf8.DecodeRuneInString(field)
	if r == utf8.RuneError {
		return field
	}
	return string(unicode.ToUpper(r)) + field[size:]
}

// DocLines splits a description into comment lines. Blank lines are dropped.
func DocLines(description string) []string {
	var lines []string
	for _, line := range strings.Split(description, "\n") {
		line = strings.TrimRight(line, " \t\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, docEscaper.Replace(line))
	}
	return lines
}

// ClassContext builds the template context for one class.
func ClassContext(class models.GeneratedClass) Context {
	fields := make([]Context, 0, len(class.Fields))
	for _, f := range class.Fields {
		lines := DocLines(f.Description)
		if len(lines) == 0 {
			lines = []string{docEscaper.Replace(f.Name)}
		}
		doc := make([]Context, 0, len(lines))
		summary := make([]string, 0, len(lines))
		for _, line := range lines {
			doc = append(doc, Context{Values: map[string]string{"Line": line}})
			summary = append(summary, "/// "+line)
		}

		fields = append(fields, Context{
			Values: map[string]string{
				"Name":    GetterName(f.Name),
				"Field":   f.Name,
				"Type":    TypeName(f.Type),
				"TypeTag": string(f.Type),
				"Summary": strings.Join(summary, "\n"),
			},
			Blocks: map[string][]Context{"doc": doc},
		})
	}

	return Context{
		Values: map[string]string{
			"ClassName": class.ClassName,
			"Namespace": class.Namespace,
		},
		Blocks: map[string][]Context{"fields": fields},
	}
}

// GenerateClass renders one class source from tmpl.
func GenerateClass(tmpl string, class models.GeneratedClass) (string, error) {
	return Render(tmpl, ClassContext(class))
}
