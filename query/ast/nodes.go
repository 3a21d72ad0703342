package ast

// Aliased is a table or column reference with an optional alias.
type Aliased struct {
	Name  string
	Alias string
	// Raw emits Name verbatim instead of quoting it, e.g. COUNT(*).
	Raw bool
}

// Name creates an Aliased reference
func Name(name string, alias ...string) Aliased {
	a := Aliased{Name: name}
	if len(alias) > 0 {
		a.Alias = alias[0]
	}
	return a
}

// Names creates one Aliased reference per name
func Names(names ...string) []Aliased {
	out := make([]Aliased, len(names))
	for i, name := range names {
		out[i] = Aliased{Name: name}
	}
	return out
}

// JoinKind is the join type keyword. Unknown values are emitted as given.
type JoinKind string

const (
	JoinDefault JoinKind = ""
	JoinInner   JoinKind = "INNER"
	JoinLeft    JoinKind = "LEFT"
	JoinRight   JoinKind = "RIGHT"
	JoinCross   JoinKind = "CROSS"
	JoinOuter   JoinKind = "OUTER"
	// JoinStraight renders MySQL's STRAIGHT_JOIN.
	JoinStraight JoinKind = "STRAIGHT"
)

// Join represents a JOIN clause
type Join struct {
	Kind  JoinKind
	Table Aliased
	On    Condition
}

// Set represents a single column assignment
type Set struct {
	Column string
	Value  any
}

// Expr is a raw SQL value with its own bound arguments. Used as a value it
// is inlined instead of being bound to a single placeholder.
type Expr struct {
	SQL  string
	Args []any
}

// NewExpr creates a raw SQL expression
func NewExpr(sql string, args ...any) Expr {
	return Expr{SQL: sql, Args: args}
}

// Dir represents sort direction
type Dir string

const (
	DirNone Dir = ""
	Asc     Dir = "ASC"
	Desc    Dir = "DESC"
)

// Direction represents an ORDER BY or GROUP BY item
type Direction struct {
	Column string
	Dir    Dir
}
