package client

import (
	"database/sql"
	"fmt"
	"reflect"
	"strings"
)

// ScanRows scans every row into a T, matching columns to fields by db tag,
// then by case-insensitive field name. Unmatched columns are discarded.
// The rows are closed.
func ScanRows[T any](rows *sql.Rows) ([]T, error) {
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var results []T
	for rows.Next() {
		var result T
		val := reflect.ValueOf(&result).Elem()
		if val.Kind() != reflect.Struct {
			return nil, fmt.Errorf("cannot scan into %s: not a struct", val.Type())
		}

		targets := make([]any, len(columns))
		for i, column := range columns {
			field, ok := findFieldByColumn(val.Type(), column)
			if !ok {
				targets[i] = new(any)
				continue
			}
			targets[i] = val.FieldByIndex(field.Index).Addr().Interface()
		}

		if err := rows.Scan(targets...); err != nil {
			return nil, err
		}
		results = append(results, result)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// ScanMaps scans every row into a column => value map. Byte slices are
// converted to strings. The rows are closed.
func ScanMaps(rows *sql.Rows) ([]string, []map[string]any, error) {
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	var results []map[string]any
	for rows.Next() {
		values := make([]any, len(columns))
		targets := make([]any, len(columns))
		for i := range values {
			targets[i] = &values[i]
		}

		if err := rows.Scan(targets...); err != nil {
			return nil, nil, err
		}

		row := make(map[string]any, len(columns))
		for i, column := range columns {
			if b, ok := values[i].([]byte); ok {
				row[column] = string(b)
				continue
			}
			row[column] = values[i]
		}
		results = append(results, row)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, err
	}
	return columns, results, nil
}

// findFieldByColumn finds the exported struct field for a column by db tag
// or field name
func findFieldByColumn(typ reflect.Type, column string) (reflect.StructField, bool) {
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		tag, _, _ := strings.Cut(field.Tag.Get("db"), ",")
		if tag == "-" {
			continue
		}
		if tag == column || strings.EqualFold(field.Name, column) {
			return field, true
		}
	}
	return reflect.StructField{}, false
}
