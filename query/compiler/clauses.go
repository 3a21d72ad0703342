package compiler

import (
	"strings"

	"github.com/satishbabariya/atlas/query/ast"
)

// RenderAliased renders `name` or `name` AS `alias`
func RenderAliased(a ast.Aliased) string {
	name := a.Name
	if !a.Raw {
		name = QuoteIdentifier(name)
	}
	if a.Alias == "" {
		return name
	}
	return name + " AS " + QuoteIdentifier(a.Alias)
}

// CombineAliased renders references separated by ", "
func CombineAliased(nodes []ast.Aliased) Fragment {
	parts := make([]string, len(nodes))
	for i, node := range nodes {
		parts[i] = RenderAliased(node)
	}
	return text(strings.Join(parts, ", "))
}

// RenderJoin renders [KIND] JOIN table ON condition
func RenderJoin(j ast.Join) Fragment {
	keyword := "JOIN"
	switch j.Kind {
	case ast.JoinDefault:
	case ast.JoinStraight:
		keyword = "STRAIGHT_JOIN"
	default:
		keyword = string(j.Kind) + " JOIN"
	}

	var on Fragment
	if j.On != nil {
		on = word("ON", RenderCondition(j.On))
	}
	return expression(text(keyword), text(RenderAliased(j.Table)), on)
}

// CombineJoins renders joins separated by a single space
func CombineJoins(nodes []ast.Join) Fragment {
	fragments := make([]Fragment, len(nodes))
	for i, node := range nodes {
		fragments[i] = RenderJoin(node)
	}
	return join(" ", fragments)
}

// RenderSet renders `column` = ?
func RenderSet(s ast.Set) Fragment {
	v := renderValue(s.Value)
	return Fragment{SQL: QuoteIdentifier(s.Column) + " = " + v.SQL, Args: v.Args}
}

// CombineSets renders assignments separated by ", "
func CombineSets(nodes []ast.Set) Fragment {
	fragments := make([]Fragment, len(nodes))
	for i, node := range nodes {
		fragments[i] = RenderSet(node)
	}
	return join(", ", fragments)
}

// RenderDirection renders `column` [ASC|DESC]
func RenderDirection(d ast.Direction) string {
	if d.Dir == ast.DirNone {
		return QuoteIdentifier(d.Column)
	}
	return QuoteIdentifier(d.Column) + " " + string(d.Dir)
}

// CombineDirections renders ordering items separated by ", "
func CombineDirections(nodes []ast.Direction) Fragment {
	parts := make([]string, len(nodes))
	for i, node := range nodes {
		parts[i] = RenderDirection(node)
	}
	return text(strings.Join(parts, ", "))
}

// CombineRows renders VALUES rows, each expanded on its own, separated by ", "
func CombineRows(rows [][]any) Fragment {
	fragments := make([]Fragment, len(rows))
	for i, row := range rows {
		values := make([]Fragment, len(row))
		for j, v := range row {
			values[j] = renderValue(v)
		}
		fragments[i] = Fragment{SQL: "()"}
		if len(row) > 0 {
			fragments[i] = braced(join(", ", values))
		}
	}
	return join(", ", fragments)
}

// renderValue binds v to a placeholder, or inlines it when it is an ast.Expr
func renderValue(v any) Fragment {
	if expr, ok := v.(ast.Expr); ok {
		return Fragment{SQL: expr.SQL, Args: expr.Args}
	}
	return Fragment{SQL: "?", Args: []any{v}}
}

// renderColumnList renders the parenthesised column list of an INSERT;
// names are emitted as given.
func renderColumnList(columns []ast.Aliased) Fragment {
	names := make([]string, len(columns))
	for i, column := range columns {
		names[i] = column.Name
	}
	return text(Braced(strings.Join(names, ", ")))
}
