// Package compiler compiles the statement AST into SQL.
//
// Every node renders to a Fragment: the SQL text and the values bound to
// its ? placeholders, collected by the same recursive walk. Fragments are
// joined with empty ones pruned, so clauses whose slot is empty disappear
// from the statement together with their keyword.
//
// Rendering never mutates the AST and keeps no state; it is safe to call
// concurrently on statements that are no longer being modified.
package compiler

import (
	"fmt"
	"strconv"

	"github.com/satishbabariya/atlas/query/ast"
)

// Render renders a statement. A statement with no clause set renders empty.
func Render(stmt *ast.Statement) Fragment {
	if stmt == nil || stmt.Kind.String() == "" || stmt.IsEmpty() {
		return Fragment{}
	}

	fragments := []Fragment{text(stmt.Kind.String())}
	for _, slot := range ast.Layout(stmt.Kind) {
		fragments = append(fragments, renderSlot(stmt, slot))
	}
	return expression(fragments...)
}

// SQL renders the statement text
func SQL(stmt *ast.Statement) string {
	return Render(stmt).SQL
}

// Parameters returns the bound values of the statement, in placeholder order
func Parameters(stmt *ast.Statement) []any {
	return Render(stmt).Args
}

// Compile validates the statement and renders it.
//
// Unlike Render, it rejects raw fragments whose ? count differs from the
// number of bound values, negative limits and empty names.
func Compile(stmt *ast.Statement) (string, []any, error) {
	if stmt == nil {
		return "", nil, fmt.Errorf("%w: nil statement", ErrInvalidQuery)
	}
	if stmt.Kind.String() == "" {
		return "", nil, fmt.Errorf("%w: kind %d", ErrUnsupportedQuery, stmt.Kind)
	}
	if err := Validate(stmt); err != nil {
		return "", nil, err
	}
	f := Render(stmt)
	return f.SQL, f.Args, nil
}

func renderSlot(stmt *ast.Statement, slot ast.Slot) Fragment {
	switch slot {
	case ast.SlotType:
		return text(stmt.Type)
	case ast.SlotTable:
		if stmt.Kind == ast.KindInsert {
			return word("INTO", CombineAliased(stmt.Table))
		}
		return CombineAliased(stmt.Table)
	case ast.SlotFrom:
		return word("FROM", CombineAliased(stmt.From))
	case ast.SlotColumns:
		return renderColumns(stmt)
	case ast.SlotJoin:
		return CombineJoins(stmt.Join)
	case ast.SlotSet:
		return word("SET", CombineSets(stmt.Set))
	case ast.SlotValues:
		// A sub-query replaces the VALUES rows.
		if stmt.Select != nil {
			return Fragment{}
		}
		return word("VALUES", CombineRows(stmt.Values))
	case ast.SlotSelect:
		return Render(stmt.Select)
	case ast.SlotWhere:
		return word("WHERE", CombineConditions(stmt.Where))
	case ast.SlotGroupBy:
		return word("GROUP BY", CombineDirections(stmt.GroupBy))
	case ast.SlotHaving:
		return word("HAVING", CombineConditions(stmt.Having))
	case ast.SlotOrderBy:
		return word("ORDER BY", CombineDirections(stmt.OrderBy))
	case ast.SlotLimit:
		return word("LIMIT", intLiteral(stmt.Limit))
	case ast.SlotOffset:
		return word("OFFSET", intLiteral(stmt.Offset))
	default:
		return Fragment{}
	}
}

func renderColumns(stmt *ast.Statement) Fragment {
	if stmt.Kind == ast.KindInsert {
		return renderColumnList(stmt.Columns)
	}
	if len(stmt.Columns) == 0 {
		return text("*")
	}
	return CombineAliased(stmt.Columns)
}

func intLiteral(n *int) Fragment {
	if n == nil {
		return Fragment{}
	}
	return text(strconv.Itoa(*n))
}
