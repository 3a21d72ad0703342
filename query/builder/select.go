package builder

import (
	"context"
	"database/sql"

	"github.com/satishbabariya/atlas/query/ast"
)

// Select builds SELECT statements
type Select struct {
	statement
}

// NewSelect creates a SELECT statement. db may be nil when the statement
// is only rendered.
func NewSelect(db Database) *Select {
	return &Select{statement: newStatement(ast.KindSelect, db)}
}

// Type sets the modifier written after SELECT, e.g. DISTINCT
func (q *Select) Type(modifier string) *Select {
	q.stmt.Type = modifier
	return q
}

// Distinct is Type("DISTINCT")
func (q *Select) Distinct() *Select {
	return q.Type("DISTINCT")
}

// Columns adds columns to select
func (q *Select) Columns(names ...string) *Select {
	q.stmt.Columns = append(q.stmt.Columns, ast.Names(names...)...)
	return q
}

// Column adds a column with an optional alias
func (q *Select) Column(name string, alias ...string) *Select {
	q.stmt.Columns = append(q.stmt.Columns, aliased(name, alias))
	return q
}

// ColumnExpr adds an unquoted expression such as COUNT(*)
func (q *Select) ColumnExpr(expr string, alias ...string) *Select {
	column := aliased(expr, alias)
	column.Raw = true
	q.stmt.Columns = append(q.stmt.Columns, column)
	return q
}

// SetColumns replaces the selected columns
func (q *Select) SetColumns(columns []ast.Aliased) *Select {
	q.stmt.Columns = columns
	return q
}

// ClearColumns selects * again
func (q *Select) ClearColumns() *Select {
	q.stmt.Columns = nil
	return q
}

// From adds a table to select from
func (q *Select) From(table string, alias ...string) *Select {
	q.stmt.From = append(q.stmt.From, aliased(table, alias))
	return q
}

// SetFrom replaces the FROM tables
func (q *Select) SetFrom(tables []ast.Aliased) *Select {
	q.stmt.From = tables
	return q
}

// ClearFrom removes all FROM tables
func (q *Select) ClearFrom() *Select {
	q.stmt.From = nil
	return q
}

// Join adds a JOIN clause
func (q *Select) Join(table ast.Aliased, on ast.Condition, kind ...ast.JoinKind) *Select {
	q.stmt.Join = append(q.stmt.Join, ast.Join{Kind: joinKind(kind), Table: table, On: on})
	return q
}

// JoinOn adds a JOIN whose condition compares columns, left => right
func (q *Select) JoinOn(table string, columns map[string]string, kind ...ast.JoinKind) *Select {
	return q.Join(ast.Name(table), ast.OnMap(columns), kind...)
}

// SetJoin replaces the JOIN clauses
func (q *Select) SetJoin(joins []ast.Join) *Select {
	q.stmt.Join = joins
	return q
}

// ClearJoin removes all JOIN clauses
func (q *Select) ClearJoin() *Select {
	q.stmt.Join = nil
	return q
}

// Where adds `column` = ? conditions for every entry of the map
func (q *Select) Where(conditions map[string]any) *Select {
	q.stmt.Where = append(q.stmt.Where, ast.MatchMap(conditions))
	return q
}

// WhereRaw adds a raw condition; args are bound to its ? placeholders in order
func (q *Select) WhereRaw(sql string, args ...any) *Select {
	q.stmt.Where = append(q.stmt.Where, ast.NewRaw(sql, args...))
	return q
}

// WhereOp adds `column` operator ?
func (q *Select) WhereOp(column, operator string, value any) *Select {
	q.stmt.Where = append(q.stmt.Where, ast.Op(column, operator, value))
	return q
}

// WhereIn adds `column` IN (...)
func (q *Select) WhereIn(column string, values ...any) *Select {
	q.stmt.Where = append(q.stmt.Where, ast.InList(column, values...))
	return q
}

// WhereNotIn adds `column` NOT IN (...)
func (q *Select) WhereNotIn(column string, values ...any) *Select {
	q.stmt.Where = append(q.stmt.Where, ast.NotInList(column, values...))
	return q
}

// WhereCondition adds an arbitrary condition
func (q *Select) WhereCondition(c ast.Condition) *Select {
	q.stmt.Where = append(q.stmt.Where, c)
	return q
}

// SetWhere replaces the WHERE conditions
func (q *Select) SetWhere(conditions []ast.Condition) *Select {
	q.stmt.Where = conditions
	return q
}

// ClearWhere removes all WHERE conditions
func (q *Select) ClearWhere() *Select {
	q.stmt.Where = nil
	return q
}

// GroupBy adds a GROUP BY column
func (q *Select) GroupBy(column string, dir ...ast.Dir) *Select {
	q.stmt.GroupBy = append(q.stmt.GroupBy, ast.Direction{Column: column, Dir: direction(dir)})
	return q
}

// ClearGroupBy removes all GROUP BY columns
func (q *Select) ClearGroupBy() *Select {
	q.stmt.GroupBy = nil
	return q
}

// Having adds `column` = ? HAVING conditions for every entry of the map
func (q *Select) Having(conditions map[string]any) *Select {
	q.stmt.Having = append(q.stmt.Having, ast.MatchMap(conditions))
	return q
}

// HavingRaw adds a raw HAVING condition
func (q *Select) HavingRaw(sql string, args ...any) *Select {
	q.stmt.Having = append(q.stmt.Having, ast.NewRaw(sql, args...))
	return q
}

// HavingCondition adds an arbitrary HAVING condition
func (q *Select) HavingCondition(c ast.Condition) *Select {
	q.stmt.Having = append(q.stmt.Having, c)
	return q
}

// ClearHaving removes all HAVING conditions
func (q *Select) ClearHaving() *Select {
	q.stmt.Having = nil
	return q
}

// Order adds an ORDER BY column
func (q *Select) Order(column string, dir ...ast.Dir) *Select {
	q.stmt.OrderBy = append(q.stmt.OrderBy, ast.Direction{Column: column, Dir: direction(dir)})
	return q
}

// SetOrder replaces the ORDER BY columns
func (q *Select) SetOrder(order []ast.Direction) *Select {
	q.stmt.OrderBy = order
	return q
}

// ClearOrder removes all ORDER BY columns
func (q *Select) ClearOrder() *Select {
	q.stmt.OrderBy = nil
	return q
}

// Limit sets the LIMIT
func (q *Select) Limit(limit int) *Select {
	q.stmt.Limit = intPtr(limit)
	return q
}

// ClearLimit removes the LIMIT
func (q *Select) ClearLimit() *Select {
	q.stmt.Limit = nil
	return q
}

// Offset sets the OFFSET
func (q *Select) Offset(offset int) *Select {
	q.stmt.Offset = intPtr(offset)
	return q
}

// ClearOffset removes the OFFSET
func (q *Select) ClearOffset() *Select {
	q.stmt.Offset = nil
	return q
}

// Rows executes the statement. The caller closes the rows.
func (q *Select) Rows(ctx context.Context) (*sql.Rows, error) {
	return q.query(ctx)
}
