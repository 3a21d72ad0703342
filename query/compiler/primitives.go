package compiler

import (
	"database/sql/driver"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Expression joins the non-empty parts with a single space.
// It returns "" when no part is left.
func Expression(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, " ")
}

// Word prefixes body with keyword, or returns "" if body is empty so the
// whole clause disappears from the statement.
func Word(keyword, body string) string {
	if body == "" {
		return ""
	}
	return keyword + " " + body
}

// Braced wraps a non-empty body in parentheses
func Braced(body string) string {
	if body == "" {
		return ""
	}
	return "(" + body + ")"
}

// ToPlaceholders returns "(?, ?, ...)" with one placeholder per item, "()" for none.
func ToPlaceholders[T any](items []T) string {
	return placeholders(len(items))
}

func placeholders(n int) string {
	if n == 0 {
		return "()"
	}
	return "(" + strings.Repeat("?, ", n-1) + "?)"
}

// QuoteIdentifier quotes a table or column name with backticks. Each part
// of a dotted name is quoted on its own; "*" is left as is.
func QuoteIdentifier(name string) string {
	parts := strings.Split(name, ".")
	for i, part := range parts {
		if part == "*" {
			continue
		}
		parts[i] = "`" + strings.ReplaceAll(part, "`", "``") + "`"
	}
	return strings.Join(parts, ".")
}

// Humanize replaces every ? of sql, left to right, with its parameter
// rendered as a SQL literal. Placeholders without a parameter are kept.
//
// The result is meant for logs and error messages; never execute it.
func Humanize(sql string, params []any) string {
	if len(params) == 0 {
		return sql
	}

	var sb strings.Builder
	sb.Grow(len(sql))

	next := 0
	for i := 0; i < len(sql); i++ {
		c := sql[i]
		if c == '?' && next < len(params) {
			sb.WriteString(literal(params[next]))
			next++
			continue
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

func literal(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case string:
		return quote(val)
	case []byte:
		return quote(string(val))
	case bool:
		if val {
			return "1"
		}
		return "0"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return fmt.Sprint(val)
	case time.Time:
		return quote(val.Format("2006-01-02 15:04:05"))
	case driver.Valuer:
		if isNilPointer(val) {
			return "NULL"
		}
		dv, err := val.Value()
		if err != nil {
			return quote(fmt.Sprint(val))
		}
		return literal(dv)
	}

	// Named types fall back to their underlying kind.
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return "NULL"
		}
		return literal(rv.Elem().Interface())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'g', -1, rv.Type().Bits())
	case reflect.Bool:
		return literal(rv.Bool())
	case reflect.String:
		return quote(rv.String())
	}
	return quote(fmt.Sprint(v))
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

// isNull reports whether v is bound as SQL NULL
func isNull(v any) bool {
	return v == nil || isNilPointer(v)
}

func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
