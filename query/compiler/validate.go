package compiler

import (
	"fmt"
	"strings"

	"github.com/satishbabariya/atlas/query/ast"
)

// Validate checks the caller contracts rendering itself does not enforce
func Validate(stmt *ast.Statement) error {
	for _, list := range [][]ast.Aliased{stmt.Table, stmt.From, stmt.Columns} {
		for _, a := range list {
			if a.Name == "" {
				return fmt.Errorf("%w: empty name", ErrInvalidQuery)
			}
		}
	}
	if stmt.Limit != nil && *stmt.Limit < 0 {
		return fmt.Errorf("%w: negative limit %d", ErrInvalidQuery, *stmt.Limit)
	}
	if stmt.Offset != nil && *stmt.Offset < 0 {
		return fmt.Errorf("%w: negative offset %d", ErrInvalidQuery, *stmt.Offset)
	}

	for _, j := range stmt.Join {
		if j.Table.Name == "" {
			return fmt.Errorf("%w: empty join table", ErrInvalidQuery)
		}
		if err := validateCondition(j.On); err != nil {
			return err
		}
	}
	for _, s := range stmt.Set {
		if err := validateValue(s.Value); err != nil {
			return err
		}
	}
	for _, row := range stmt.Values {
		for _, v := range row {
			if err := validateValue(v); err != nil {
				return err
			}
		}
	}
	for _, c := range stmt.Where {
		if err := validateCondition(c); err != nil {
			return err
		}
	}
	for _, c := range stmt.Having {
		if err := validateCondition(c); err != nil {
			return err
		}
	}
	if stmt.Select != nil {
		if stmt.Select.Kind != ast.KindSelect {
			return fmt.Errorf("%w: sub-query of kind %d", ErrUnsupportedQuery, stmt.Select.Kind)
		}
		return Validate(stmt.Select)
	}
	return nil
}

func validateCondition(c ast.Condition) error {
	switch cond := c.(type) {
	case ast.Raw:
		if err := checkPlaceholders(cond.SQL, cond.Args); err != nil {
			return err
		}
		for _, arg := range cond.Args {
			items, ok := listItems(arg)
			if !ok {
				items = []any{arg}
			}
			if err := validateValues(items); err != nil {
				return err
			}
		}
	case ast.In:
		return validateValues(cond.Values)
	case ast.Compare:
		return validateValue(cond.Value)
	case ast.Group:
		for _, child := range cond.Conditions {
			if err := validateCondition(child); err != nil {
				return err
			}
		}
	case ast.Match:
		for _, child := range cond.Conditions {
			if err := validateValue(child.Value); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateValues(values []any) error {
	for _, v := range values {
		if err := validateValue(v); err != nil {
			return err
		}
	}
	return nil
}

func validateValue(v any) error {
	if expr, ok := v.(ast.Expr); ok {
		return checkPlaceholders(expr.SQL, expr.Args)
	}
	return nil
}

func checkPlaceholders(sql string, args []any) error {
	if n := strings.Count(sql, "?"); n != len(args) {
		return fmt.Errorf("%w: %q has %d placeholders and %d values", ErrPlaceholderMismatch, sql, n, len(args))
	}
	return nil
}
