package builder

import (
	"context"
	"database/sql"

	"github.com/satishbabariya/atlas/query/ast"
)

// Insert builds INSERT statements in one of three forms: column list with
// VALUES rows, SET assignments, or a SELECT sub-query.
type Insert struct {
	statement
}

// NewInsert creates an INSERT statement
func NewInsert(db Database) *Insert {
	return &Insert{statement: newStatement(ast.KindInsert, db)}
}

// Type sets the modifier written after INSERT, e.g. IGNORE
func (q *Insert) Type(modifier string) *Insert {
	q.stmt.Type = modifier
	return q
}

// Into sets the target table
func (q *Insert) Into(table string, alias ...string) *Insert {
	q.stmt.Table = []ast.Aliased{aliased(table, alias)}
	return q
}

// Columns adds names to the column list
func (q *Insert) Columns(names ...string) *Insert {
	q.stmt.Columns = append(q.stmt.Columns, ast.Names(names...)...)
	return q
}

// ClearColumns empties the column list
func (q *Insert) ClearColumns() *Insert {
	q.stmt.Columns = nil
	return q
}

// Values adds one row of values
func (q *Insert) Values(row ...any) *Insert {
	q.stmt.Values = append(q.stmt.Values, row)
	return q
}

// SetValues replaces all rows
func (q *Insert) SetValues(rows [][]any) *Insert {
	q.stmt.Values = rows
	return q
}

// ClearValues removes all rows
func (q *Insert) ClearValues() *Insert {
	q.stmt.Values = nil
	return q
}

// Set adds `column` = ? assignments for every entry of the map
func (q *Insert) Set(values map[string]any) *Insert {
	for _, c := range ast.MatchMap(values).Conditions {
		q.stmt.Set = append(q.stmt.Set, ast.Set{Column: c.Column, Value: c.Value})
	}
	return q
}

// Assign adds a single assignment
func (q *Insert) Assign(column string, value any) *Insert {
	q.stmt.Set = append(q.stmt.Set, ast.Set{Column: column, Value: value})
	return q
}

// ClearSet removes all assignments
func (q *Insert) ClearSet() *Insert {
	q.stmt.Set = nil
	return q
}

// Select inserts the rows of a sub-query. It takes precedence over Values.
// The sub-query is copied; later changes to it are not seen. A nil
// sub-query removes the current one.
func (q *Insert) Select(sub *Select) *Insert {
	if sub == nil {
		return q.ClearSelect()
	}
	q.stmt.Select = sub.Statement().Clone()
	return q
}

// ClearSelect removes the sub-query
func (q *Insert) ClearSelect() *Insert {
	q.stmt.Select = nil
	return q
}

// Exec executes the statement
func (q *Insert) Exec(ctx context.Context) (sql.Result, error) {
	return q.exec(ctx)
}
