package builder

import "github.com/satishbabariya/atlas/query/ast"

// WhereBuilder builds a group of conditions
type WhereBuilder struct {
	conditions []ast.Condition
	operator   ast.LogicalOperator
}

// NewWhereBuilder creates a new WHERE builder joining its conditions with AND
func NewWhereBuilder() *WhereBuilder {
	return &WhereBuilder{
		conditions: []ast.Condition{},
		operator:   ast.OpAND,
	}
}

// Equals adds an equality condition
func (w *WhereBuilder) Equals(field string, value any) *WhereBuilder {
	w.conditions = append(w.conditions, ast.Eq(field, value))
	return w
}

// NotEquals adds a not-equals condition
func (w *WhereBuilder) NotEquals(field string, value any) *WhereBuilder {
	w.conditions = append(w.conditions, ast.Op(field, "!=", value))
	return w
}

// GreaterThan adds a greater-than condition
func (w *WhereBuilder) GreaterThan(field string, value any) *WhereBuilder {
	w.conditions = append(w.conditions, ast.Op(field, ">", value))
	return w
}

// LessThan adds a less-than condition
func (w *WhereBuilder) LessThan(field string, value any) *WhereBuilder {
	w.conditions = append(w.conditions, ast.Op(field, "<", value))
	return w
}

// GreaterOrEqual adds a greater-or-equal condition
func (w *WhereBuilder) GreaterOrEqual(field string, value any) *WhereBuilder {
	w.conditions = append(w.conditions, ast.Op(field, ">=", value))
	return w
}

// LessOrEqual adds a less-or-equal condition
func (w *WhereBuilder) LessOrEqual(field string, value any) *WhereBuilder {
	w.conditions = append(w.conditions, ast.Op(field, "<=", value))
	return w
}

// In adds an IN condition
func (w *WhereBuilder) In(field string, values ...any) *WhereBuilder {
	w.conditions = append(w.conditions, ast.InList(field, values...))
	return w
}

// NotIn adds a NOT IN condition
func (w *WhereBuilder) NotIn(field string, values ...any) *WhereBuilder {
	w.conditions = append(w.conditions, ast.NotInList(field, values...))
	return w
}

// Like adds a LIKE condition
func (w *WhereBuilder) Like(field string, pattern string) *WhereBuilder {
	w.conditions = append(w.conditions, ast.Op(field, "LIKE", pattern))
	return w
}

// IsNull adds an IS NULL condition
func (w *WhereBuilder) IsNull(field string) *WhereBuilder {
	w.conditions = append(w.conditions, ast.Eq(field, nil))
	return w
}

// IsNotNull adds an IS NOT NULL condition
func (w *WhereBuilder) IsNotNull(field string) *WhereBuilder {
	w.conditions = append(w.conditions, ast.Op(field, "!=", nil))
	return w
}

// Raw adds a raw SQL condition
func (w *WhereBuilder) Raw(sql string, args ...any) *WhereBuilder {
	w.conditions = append(w.conditions, ast.NewRaw(sql, args...))
	return w
}

// Group adds a nested group
func (w *WhereBuilder) Group(nested *WhereBuilder) *WhereBuilder {
	w.conditions = append(w.conditions, nested.Build())
	return w
}

// SetOperator sets the logical operator (AND or OR)
func (w *WhereBuilder) SetOperator(op ast.LogicalOperator) *WhereBuilder {
	w.operator = op
	return w
}

// Build returns the group of conditions
func (w *WhereBuilder) Build() ast.Group {
	return ast.Group{
		Combinator: w.operator,
		Conditions: append([]ast.Condition(nil), w.conditions...),
	}
}

// OrderByBuilder builds ORDER BY clauses
type OrderByBuilder struct {
	orderBy []ast.Direction
}

// NewOrderByBuilder creates a new ORDER BY builder
func NewOrderByBuilder() *OrderByBuilder {
	return &OrderByBuilder{
		orderBy: []ast.Direction{},
	}
}

// Asc adds an ascending ORDER BY clause
func (o *OrderByBuilder) Asc(field string) *OrderByBuilder {
	o.orderBy = append(o.orderBy, ast.Direction{Column: field, Dir: ast.Asc})
	return o
}

// Desc adds a descending ORDER BY clause
func (o *OrderByBuilder) Desc(field string) *OrderByBuilder {
	o.orderBy = append(o.orderBy, ast.Direction{Column: field, Dir: ast.Desc})
	return o
}

// Build returns the ORDER BY clauses
func (o *OrderByBuilder) Build() []ast.Direction {
	return append([]ast.Direction(nil), o.orderBy...)
}
