package compiler

import (
	"reflect"
	"strings"

	"github.com/satishbabariya/atlas/query/ast"
)

// RenderCondition renders one condition and collects its bound values in
// the order of its placeholders. Text and values come out of the same walk.
func RenderCondition(c ast.Condition) Fragment {
	switch cond := c.(type) {
	case ast.Compare:
		return renderCompare(cond)
	case ast.In:
		return renderIn(cond)
	case ast.Raw:
		return renderRaw(cond)
	case ast.Group:
		return renderGroup(cond)
	case ast.Match:
		return renderMatch(cond)
	case ast.On:
		return renderOn(cond)
	default:
		return Fragment{}
	}
}

// CombineConditions renders top-level conditions, each in its own
// parentheses, joined by AND.
func CombineConditions(conditions []ast.Condition) Fragment {
	fragments := make([]Fragment, len(conditions))
	for i, c := range conditions {
		fragments[i] = braced(RenderCondition(c))
	}
	return join(" AND ", fragments)
}

func renderCompare(c ast.Compare) Fragment {
	operator := c.Operator
	if operator == "" {
		operator = "="
	}
	if isNull(c.Value) {
		switch operator {
		case "=":
			operator = "IS"
		case "!=", "<>":
			operator = "IS NOT"
		}
	}

	v := renderValue(c.Value)
	return Fragment{
		SQL:  QuoteIdentifier(c.Column) + " " + operator + " " + v.SQL,
		Args: v.Args,
	}
}

func renderIn(c ast.In) Fragment {
	operator := " IN "
	if c.Not {
		operator = " NOT IN "
	}
	list := renderValueList(c.Values)
	return Fragment{
		SQL:  QuoteIdentifier(c.Column) + operator + list.SQL,
		Args: list.Args,
	}
}

// renderValueList renders (v1, v2, ...) with each value bound or inlined
// as renderValue does. An empty list renders ().
func renderValueList(values []any) Fragment {
	parts := make([]string, len(values))
	var args []any
	for i, v := range values {
		f := renderValue(v)
		parts[i] = f.SQL
		args = append(args, f.Args...)
	}
	return Fragment{SQL: "(" + strings.Join(parts, ", ") + ")", Args: args}
}

// renderRaw emits the template as is, except that a ? bound to a slice
// becomes (?, ?, ...) with one placeholder per element, and a ? bound to an
// ast.Expr is replaced by the expression.
func renderRaw(r ast.Raw) Fragment {
	if !needsExpansion(r.Args) {
		return Fragment{SQL: r.SQL, Args: append([]any(nil), r.Args...)}
	}

	var (
		sb   strings.Builder
		args []any
		next int
	)
	for i := 0; i < len(r.SQL); i++ {
		c := r.SQL[i]
		if c != '?' || next >= len(r.Args) {
			sb.WriteByte(c)
			continue
		}
		arg := r.Args[next]
		next++
		var f Fragment
		if items, ok := listItems(arg); ok {
			f = renderValueList(items)
		} else {
			f = renderValue(arg)
		}
		sb.WriteString(f.SQL)
		args = append(args, f.Args...)
	}
	// Surplus values are still passed on so the mismatch surfaces at execution.
	args = append(args, r.Args[next:]...)
	return Fragment{SQL: sb.String(), Args: args}
}

func renderGroup(g ast.Group) Fragment {
	combinator := g.Combinator
	if combinator == "" {
		combinator = ast.OpAND
	}

	fragments := make([]Fragment, len(g.Conditions))
	for i, c := range g.Conditions {
		fragments[i] = RenderCondition(c)
		// A raw template may contain operators of lower precedence.
		if _, ok := c.(ast.Raw); ok {
			fragments[i] = braced(fragments[i])
		}
	}
	return braced(join(" "+string(combinator)+" ", fragments))
}

func renderMatch(m ast.Match) Fragment {
	fragments := make([]Fragment, len(m.Conditions))
	for i, c := range m.Conditions {
		fragments[i] = renderCompare(c)
	}
	return join(" AND ", fragments)
}

func renderOn(o ast.On) Fragment {
	operator := o.Operator
	if operator == "" {
		operator = "="
	}
	return text(QuoteIdentifier(o.Left) + " " + operator + " " + QuoteIdentifier(o.Right))
}

// needsExpansion reports whether any argument is a list or an ast.Expr
func needsExpansion(args []any) bool {
	for _, arg := range args {
		if _, ok := arg.(ast.Expr); ok {
			return true
		}
		if _, ok := listItems(arg); ok {
			return true
		}
	}
	return false
}

// listItems returns the elements of a slice or array argument. Byte slices
// are scalar values for database drivers and are not expanded.
func listItems(arg any) ([]any, bool) {
	if arg == nil {
		return nil, false
	}
	if _, ok := arg.([]byte); ok {
		return nil, false
	}
	rv := reflect.ValueOf(arg)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return items, true
}
