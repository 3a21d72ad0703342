package builder

import (
	"context"
	"database/sql"

	"github.com/satishbabariya/atlas/query/ast"
)

// Delete builds DELETE statements. Table lists the tables rows are deleted
// from in a multi-table delete; From lists the tables that are read.
type Delete struct {
	statement
}

// NewDelete creates a DELETE statement
func NewDelete(db Database) *Delete {
	return &Delete{statement: newStatement(ast.KindDelete, db)}
}

// Type sets the modifier written after DELETE, e.g. QUICK
func (q *Delete) Type(modifier string) *Delete {
	q.stmt.Type = modifier
	return q
}

// Table adds a table to delete rows from
func (q *Delete) Table(table string, alias ...string) *Delete {
	q.stmt.Table = append(q.stmt.Table, aliased(table, alias))
	return q
}

// SetTable replaces the target tables
func (q *Delete) SetTable(tables []ast.Aliased) *Delete {
	q.stmt.Table = tables
	return q
}

// ClearTable removes all target tables
func (q *Delete) ClearTable() *Delete {
	q.stmt.Table = nil
	return q
}

// From adds a FROM table
func (q *Delete) From(table string, alias ...string) *Delete {
	q.stmt.From = append(q.stmt.From, aliased(table, alias))
	return q
}

// SetFrom replaces the FROM tables
func (q *Delete) SetFrom(tables []ast.Aliased) *Delete {
	q.stmt.From = tables
	return q
}

// ClearFrom removes all FROM tables
func (q *Delete) ClearFrom() *Delete {
	q.stmt.From = nil
	return q
}

// Join adds a JOIN clause
func (q *Delete) Join(table ast.Aliased, on ast.Condition, kind ...ast.JoinKind) *Delete {
	q.stmt.Join = append(q.stmt.Join, ast.Join{Kind: joinKind(kind), Table: table, On: on})
	return q
}

// JoinOn adds a JOIN whose condition compares columns, left => right
func (q *Delete) JoinOn(table string, columns map[string]string, kind ...ast.JoinKind) *Delete {
	return q.Join(ast.Name(table), ast.OnMap(columns), kind...)
}

// SetJoin replaces the JOIN clauses
func (q *Delete) SetJoin(joins []ast.Join) *Delete {
	q.stmt.Join = joins
	return q
}

// ClearJoin removes all JOIN clauses
func (q *Delete) ClearJoin() *Delete {
	q.stmt.Join = nil
	return q
}

// Where adds `column` = ? conditions for every entry of the map
func (q *Delete) Where(conditions map[string]any) *Delete {
	q.stmt.Where = append(q.stmt.Where, ast.MatchMap(conditions))
	return q
}

// WhereRaw adds a raw condition; args are bound to its ? placeholders in order
func (q *Delete) WhereRaw(sql string, args ...any) *Delete {
	q.stmt.Where = append(q.stmt.Where, ast.NewRaw(sql, args...))
	return q
}

// WhereOp adds `column` operator ?
func (q *Delete) WhereOp(column, operator string, value any) *Delete {
	q.stmt.Where = append(q.stmt.Where, ast.Op(column, operator, value))
	return q
}

// WhereIn adds `column` IN (...)
func (q *Delete) WhereIn(column string, values ...any) *Delete {
	q.stmt.Where = append(q.stmt.Where, ast.InList(column, values...))
	return q
}

// WhereNotIn adds `column` NOT IN (...)
func (q *Delete) WhereNotIn(column string, values ...any) *Delete {
	q.stmt.Where = append(q.stmt.Where, ast.NotInList(column, values...))
	return q
}

// WhereCondition adds an arbitrary condition
func (q *Delete) WhereCondition(c ast.Condition) *Delete {
	q.stmt.Where = append(q.stmt.Where, c)
	return q
}

// SetWhere replaces the WHERE conditions
func (q *Delete) SetWhere(conditions []ast.Condition) *Delete {
	q.stmt.Where = conditions
	return q
}

// ClearWhere removes all WHERE conditions
func (q *Delete) ClearWhere() *Delete {
	q.stmt.Where = nil
	return q
}

// Order adds an ORDER BY column
func (q *Delete) Order(column string, dir ...ast.Dir) *Delete {
	q.stmt.OrderBy = append(q.stmt.OrderBy, ast.Direction{Column: column, Dir: direction(dir)})
	return q
}

// SetOrder replaces the ORDER BY columns
func (q *Delete) SetOrder(order []ast.Direction) *Delete {
	q.stmt.OrderBy = order
	return q
}

// ClearOrder removes all ORDER BY columns
func (q *Delete) ClearOrder() *Delete {
	q.stmt.OrderBy = nil
	return q
}

// Limit sets the LIMIT
func (q *Delete) Limit(limit int) *Delete {
	q.stmt.Limit = intPtr(limit)
	return q
}

// ClearLimit removes the LIMIT
func (q *Delete) ClearLimit() *Delete {
	q.stmt.Limit = nil
	return q
}

// Exec executes the statement
func (q *Delete) Exec(ctx context.Context) (sql.Result, error) {
	return q.exec(ctx)
}
