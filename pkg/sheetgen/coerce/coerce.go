// Package coerce converts raw spreadsheet cells to the type declared for their column.
//
// Coercion is tolerant: a cell that does not fit its declared type is returned
// unchanged instead of failing the table.
package coerce

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/ukaji3/sheetgen-go/pkg/sheetgen/models"
)

// Func coerces one raw cell value.
type Func func(value any) any

var funcs = map[models.TypeTag]Func{
	models.TypeString:      toString,
	models.TypeNumber:      toNumber,
	models.TypeFloat:       toFloat,
	models.TypeBool:        toBool,
	models.TypeArrayNumber: toArrayNumber,
}

// For returns the coercion function for a type tag.
// Tags without a conversion, including unknown ones, pass values through.
func For(tag models.TypeTag) Func {
	if f, ok := funcs[tag]; ok {
		return f
	}
	return passThrough
}

// Coerce converts value to the type named by tag. It never fails; values that
// cannot be converted are returned as given.
func Coerce(tag models.TypeTag, value any) any {
	return For(tag)(value)
}

func passThrough(v any) any { return v }

func toString(v any) any {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	}
	return v
}

func toNumber(v any) any {
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		if strings.Contains(s, ".") {
			if f, err := parseFloat(s); err == nil {
				return f
			}
			return v
		}
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i
		}
		return v
	case json.Number:
		return numberValue(t)
	}
	return v
}

func toFloat(v any) any {
	switch t := v.(type) {
	case string:
		if f, err := parseFloat(strings.TrimSpace(t)); err == nil {
			return f
		}
	case json.Number:
		if f, err := parseFloat(t.String()); err == nil {
			return f
		}
	case int64:
		return float64(t)
	}
	return v
}

func toBool(v any) any {
	switch t := v.(type) {
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "1":
			return true
		case "false", "0":
			return false
		}
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return f != 0
		}
	}
	return v
}

// toArrayNumber splits "1, 2.5, 3" into numbers. A single bad token keeps the
// whole cell as the original string.
func toArrayNumber(v any) any {
	s, ok := v.(string)
	if !ok || !strings.Contains(s, ",") {
		return v
	}

	parts := strings.Split(s, ",")
	out := make([]any, 0, len(parts))
	for _, part := range parts {
		token := strings.TrimSpace(part)
		if isDigits(token) {
			i, err := strconv.ParseInt(token, 10, 64)
			if err != nil {
				return v
			}
			out = append(out, i)
			continue
		}
		f, err := parseFloat(token)
		if err != nil {
			return v
		}
		out = append(out, f)
	}
	return out
}

// numberValue keeps integral JSON numbers as int64 and everything else as float64.
func numberValue(n json.Number) any {
	if i, err := n.Int64(); err == nil {
		return i
	}
	if f, err := parseFloat(n.String()); err == nil {
		return f
	}
	return n
}

// parseFloat rejects NaN and infinities, which JSON cannot carry.
func parseFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, strconv.ErrRange
	}
	return f, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
