package builder

import (
	"context"
	"database/sql"

	"github.com/satishbabariya/atlas/query/ast"
)

// Update builds UPDATE statements.
//
// An UPDATE without assignments renders an incomplete statement; the
// builder does not prevent it.
type Update struct {
	statement
}

// NewUpdate creates an UPDATE statement
func NewUpdate(db Database) *Update {
	return &Update{statement: newStatement(ast.KindUpdate, db)}
}

// Type sets the modifier written after UPDATE, e.g. LOW_PRIORITY
func (q *Update) Type(modifier string) *Update {
	q.stmt.Type = modifier
	return q
}

// Table adds a table to update
func (q *Update) Table(table string, alias ...string) *Update {
	q.stmt.Table = append(q.stmt.Table, aliased(table, alias))
	return q
}

// SetTable replaces the tables
func (q *Update) SetTable(tables []ast.Aliased) *Update {
	q.stmt.Table = tables
	return q
}

// ClearTable removes all tables
func (q *Update) ClearTable() *Update {
	q.stmt.Table = nil
	return q
}

// Join adds a JOIN clause
func (q *Update) Join(table ast.Aliased, on ast.Condition, kind ...ast.JoinKind) *Update {
	q.stmt.Join = append(q.stmt.Join, ast.Join{Kind: joinKind(kind), Table: table, On: on})
	return q
}

// JoinOn adds a JOIN whose condition compares columns, left => right
func (q *Update) JoinOn(table string, columns map[string]string, kind ...ast.JoinKind) *Update {
	return q.Join(ast.Name(table), ast.OnMap(columns), kind...)
}

// SetJoin replaces the JOIN clauses
func (q *Update) SetJoin(joins []ast.Join) *Update {
	q.stmt.Join = joins
	return q
}

// ClearJoin removes all JOIN clauses
func (q *Update) ClearJoin() *Update {
	q.stmt.Join = nil
	return q
}

// Set adds `column` = ? assignments for every entry of the map
func (q *Update) Set(values map[string]any) *Update {
	for _, c := range ast.MatchMap(values).Conditions {
		q.stmt.Set = append(q.stmt.Set, ast.Set{Column: c.Column, Value: c.Value})
	}
	return q
}

// Assign adds a single assignment. value may be an ast.Expr.
func (q *Update) Assign(column string, value any) *Update {
	q.stmt.Set = append(q.stmt.Set, ast.Set{Column: column, Value: value})
	return q
}

// SetAssignments replaces all assignments
func (q *Update) SetAssignments(sets []ast.Set) *Update {
	q.stmt.Set = sets
	return q
}

// ClearSet removes all assignments
func (q *Update) ClearSet() *Update {
	q.stmt.Set = nil
	return q
}

// Where adds `column` = ? conditions for every entry of the map
func (q *Update) Where(conditions map[string]any) *Update {
	q.stmt.Where = append(q.stmt.Where, ast.MatchMap(conditions))
	return q
}

// WhereRaw adds a raw condition; args are bound to its ? placeholders in order
func (q *Update) WhereRaw(sql string, args ...any) *Update {
	q.stmt.Where = append(q.stmt.Where, ast.NewRaw(sql, args...))
	return q
}

// WhereOp adds `column` operator ?
func (q *Update) WhereOp(column, operator string, value any) *Update {
	q.stmt.Where = append(q.stmt.Where, ast.Op(column, operator, value))
	return q
}

// WhereIn adds `column` IN (...)
func (q *Update) WhereIn(column string, values ...any) *Update {
	q.stmt.Where = append(q.stmt.Where, ast.InList(column, values...))
	return q
}

// WhereNotIn adds `column` NOT IN (...)
func (q *Update) WhereNotIn(column string, values ...any) *Update {
	q.stmt.Where = append(q.stmt.Where, ast.NotInList(column, values...))
	return q
}

// WhereCondition adds an arbitrary condition
func (q *Update) WhereCondition(c ast.Condition) *Update {
	q.stmt.Where = append(q.stmt.Where, c)
	return q
}

// SetWhere replaces the WHERE conditions
func (q *Update) SetWhere(conditions []ast.Condition) *Update {
	q.stmt.Where = conditions
	return q
}

// ClearWhere removes all WHERE conditions
func (q *Update) ClearWhere() *Update {
	q.stmt.Where = nil
	return q
}

// Order adds an ORDER BY column
func (q *Update) Order(column string, dir ...ast.Dir) *Update {
	q.stmt.OrderBy = append(q.stmt.OrderBy, ast.Direction{Column: column, Dir: direction(dir)})
	return q
}

// SetOrder replaces the ORDER BY columns
func (q *Update) SetOrder(order []ast.Direction) *Update {
	q.stmt.OrderBy = order
	return q
}

// ClearOrder removes all ORDER BY columns
func (q *Update) ClearOrder() *Update {
	q.stmt.OrderBy = nil
	return q
}

// Limit sets the LIMIT
func (q *Update) Limit(limit int) *Update {
	q.stmt.Limit = intPtr(limit)
	return q
}

// ClearLimit removes the LIMIT
func (q *Update) ClearLimit() *Update {
	q.stmt.Limit = nil
	return q
}

// Exec executes the statement
func (q *Update) Exec(ctx context.Context) (sql.Result, error) {
	return q.exec(ctx)
}
