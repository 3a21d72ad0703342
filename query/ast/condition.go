package ast

import (
	"slices"
	"strings"
)

// Condition is a node of a WHERE, HAVING or JOIN ... ON tree.
//
// The set of conditions is closed: Compare, In, Raw, Group, Match and On.
type Condition interface {
	condition()
}

// LogicalOperator joins sibling conditions of a Group
type LogicalOperator string

const (
	OpAND LogicalOperator = "AND"
	OpOR  LogicalOperator = "OR"
)

// Compare represents `column operator ?`. An empty Operator means "=".
type Compare struct {
	Column   string
	Operator string
	Value    any
}

// In represents `column IN (?, ...)`, or NOT IN when Not is set.
type In struct {
	Column string
	Values []any
	Not    bool
}

// Raw is a SQL template with literal ? placeholders and the values bound to
// them, in order. The template is emitted verbatim.
type Raw struct {
	SQL  string
	Args []any
}

// Group is a parenthesised list of conditions joined by Combinator.
type Group struct {
	Combinator LogicalOperator
	Conditions []Condition
}

// Match is a list of comparisons joined by AND without parentheses, the
// form a column => value mapping expands into.
type Match struct {
	Conditions []Compare
}

// On compares two columns, as in JOIN ... ON `a` = `b`. It binds nothing.
type On struct {
	Left     string
	Operator string
	Right    string
}

func (Compare) condition() {}
func (In) condition()      {}
func (Raw) condition()     {}
func (Group) condition()   {}
func (Match) condition()   {}
func (On) condition()      {}

// Eq creates an equality comparison
func Eq(column string, value any) Compare {
	return Compare{Column: column, Operator: "=", Value: value}
}

// Op creates a comparison with an explicit operator
func Op(column, operator string, value any) Compare {
	return Compare{Column: column, Operator: operator, Value: value}
}

// InList creates an IN condition
func InList(column string, values ...any) In {
	return In{Column: column, Values: values}
}

// NotInList creates a NOT IN condition
func NotInList(column string, values ...any) In {
	return In{Column: column, Values: values, Not: true}
}

// NewRaw creates a raw condition
func NewRaw(sql string, args ...any) Raw {
	return Raw{SQL: sql, Args: args}
}

// Placeholders counts the ? markers in the template
func (r Raw) Placeholders() int {
	return strings.Count(r.SQL, "?")
}

// And creates a group joined by AND
func And(conditions ...Condition) Group {
	return Group{Combinator: OpAND, Conditions: conditions}
}

// Or creates a group joined by OR
func Or(conditions ...Condition) Group {
	return Group{Combinator: OpOR, Conditions: conditions}
}

// MatchMap expands a column => value mapping into equality comparisons.
// Columns are taken in sorted order since map iteration order is random.
func MatchMap(values map[string]any) Match {
	columns := make([]string, 0, len(values))
	for column := range values {
		columns = append(columns, column)
	}
	slices.Sort(columns)

	m := Match{Conditions: make([]Compare, 0, len(columns))}
	for _, column := range columns {
		m.Conditions = append(m.Conditions, Eq(column, values[column]))
	}
	return m
}

// OnMap expands a column => column mapping into an AND group of On
// comparisons, in sorted order of the left columns.
func OnMap(columns map[string]string) Condition {
	left := make([]string, 0, len(columns))
	for column := range columns {
		left = append(left, column)
	}
	slices.Sort(left)

	if len(left) == 1 {
		return On{Left: left[0], Operator: "=", Right: columns[left[0]]}
	}
	group := Group{Combinator: OpAND}
	for _, column := range left {
		group.Conditions = append(group.Conditions, On{Left: column, Operator: "=", Right: columns[column]})
	}
	return group
}
