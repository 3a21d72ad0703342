package builder_test

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"

	"github.com/satishbabariya/atlas/query/ast"
	"github.com/satishbabariya/atlas/query/builder"
	"github.com/satishbabariya/atlas/query/compiler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	query string
	args  []any
}

type result int64

func (r result) LastInsertId() (int64, error) { return int64(r), nil }
func (r result) RowsAffected() (int64, error) { return int64(r), nil }

// recorder is a builder.Database that records what it is asked to run
type recorder struct {
	calls []call
	err   error
}

func (r *recorder) ExecContext(_ context.Context, query string, args ...any) (sql.Result, error) {
	r.calls = append(r.calls, call{query: query, args: args})
	if r.err != nil {
		return nil, r.err
	}
	return result(1), nil
}

func (r *recorder) QueryContext(_ context.Context, query string, args ...any) (*sql.Rows, error) {
	r.calls = append(r.calls, call{query: query, args: args})
	return nil, r.err
}

func TestUpdate_Scenario(t *testing.T) {
	q := builder.NewUpdate(nil).
		Table("users").
		Set(map[string]any{"name": "Bob"}).
		Where(map[string]any{"id": 5})

	assert.Equal(t, "UPDATE `users` SET `name` = ? WHERE (`id` = ?)", q.SQL())
	assert.Equal(t, []any{"Bob", 5}, q.Parameters())
}

func TestDelete_Scenario(t *testing.T) {
	q := builder.NewDelete(nil).
		From("t1").
		WhereRaw("status = ?", "active").
		Limit(10)

	assert.Equal(t, "DELETE FROM `t1` WHERE (status = ?) LIMIT 10", q.SQL())
	assert.Equal(t, []any{"active"}, q.Parameters())
}

func TestInsert_Scenario(t *testing.T) {
	q := builder.NewInsert(nil).
		Into("t").
		Columns("id", "name").
		Values(1, "a").
		Values(2, "b")

	assert.Equal(t, "INSERT INTO `t` (id, name) VALUES (?, ?), (?, ?)", q.SQL())
	assert.Equal(t, []any{1, "a", 2, "b"}, q.Parameters())
}

func TestSelect_NestedGroupScenario(t *testing.T) {
	q := builder.NewSelect(nil).
		From("t").
		WhereCondition(ast.And(ast.Op("x", ">", 1), ast.InList("y", 2, 3, 4)))

	assert.Equal(t, "SELECT * FROM `t` WHERE ((`x` > ? AND `y` IN (?, ?, ?)))", q.SQL())
	assert.Equal(t, []any{1, 2, 3, 4}, q.Parameters())
}

func TestSelect_RenderOrderIgnoresCallOrder(t *testing.T) {
	a := builder.NewSelect(nil).
		Limit(5).
		Order("name", ast.Asc).
		WhereOp("age", ">", 18).
		From("users").
		Columns("id", "name")

	b := builder.NewSelect(nil).
		Columns("id", "name").
		From("users").
		WhereOp("age", ">", 18).
		Order("name", ast.Asc).
		Limit(5)

	assert.Equal(t, "SELECT `id`, `name` FROM `users` WHERE (`age` > ?) ORDER BY `name` ASC LIMIT 5", a.SQL())
	assert.Equal(t, b.SQL(), a.SQL())
	assert.Equal(t, b.Parameters(), a.Parameters())
}

func TestSelect_FullStatement(t *testing.T) {
	q := builder.NewSelect(nil).
		Distinct().
		Column("u.id").
		ColumnExpr("COUNT(p.id)", "posts").
		From("users", "u").
		JoinOn("posts", map[string]string{"p.user_id": "u.id"}, ast.JoinLeft).
		WhereIn("u.role", "admin", "editor").
		WhereNotIn("u.id", 1).
		Where(map[string]any{"u.deleted_at": nil}).
		GroupBy("u.id").
		HavingRaw("COUNT(p.id) > ?", 3).
		Order("posts", ast.Desc).
		Limit(20).
		Offset(40)

	want := "SELECT DISTINCT `u`.`id`, COUNT(p.id) AS `posts` FROM `users` AS `u` " +
		"LEFT JOIN `posts` ON `p`.`user_id` = `u`.`id` " +
		"WHERE (`u`.`role` IN (?, ?)) AND (`u`.`id` NOT IN (?)) AND (`u`.`deleted_at` IS ?) " +
		"GROUP BY `u`.`id` HAVING (COUNT(p.id) > ?) ORDER BY `posts` DESC LIMIT 20 OFFSET 40"

	assert.Equal(t, want, q.SQL())
	assert.Equal(t, []any{"admin", "editor", 1, nil, 3}, q.Parameters())
}

func TestSelect_WhereBuilder(t *testing.T) {
	inner := builder.NewWhereBuilder().
		SetOperator(ast.OpOR).
		Equals("status", "draft").
		IsNull("published_at")

	where := builder.NewWhereBuilder().
		GreaterOrEqual("score", 10).
		Like("title", "%go%").
		Group(inner)

	q := builder.NewSelect(nil).
		From("posts").
		WhereCondition(where.Build()).
		SetOrder(builder.NewOrderByBuilder().Desc("score").Asc("id").Build())

	want := "SELECT * FROM `posts` WHERE ((`score` >= ? AND `title` LIKE ? AND (`status` = ? OR `published_at` IS ?))) ORDER BY `score` DESC, `id` ASC"
	assert.Equal(t, want, q.SQL())
	assert.Equal(t, []any{10, "%go%", "draft", nil}, q.Parameters())
}

func TestSetAndClear(t *testing.T) {
	q := builder.NewDelete(nil).
		Table("table1").
		Table("table2")

	assert.Equal(t, []ast.Aliased{ast.Name("table1"), ast.Name("table2")}, q.Statement().Table)

	q.ClearTable()
	assert.Empty(t, q.Statement().Table)

	q.SetTable([]ast.Aliased{ast.Name("a", "b")})
	assert.Equal(t, []ast.Aliased{ast.Name("a", "b")}, q.Statement().Table)

	q.From("table1").From("table2", "alias2")
	assert.Equal(t, []ast.Aliased{ast.Name("table1"), ast.Name("table2", "alias2")}, q.Statement().From)

	q.ClearFrom().ClearTable().From("t").Limit(10)
	assert.Equal(t, "DELETE FROM `t` LIMIT 10", q.SQL())

	q.ClearLimit().WhereOp("id", "=", 1).ClearWhere()
	assert.Equal(t, "DELETE FROM `t`", q.SQL())
}

func TestDelete_Parameters(t *testing.T) {
	q := builder.NewDelete(nil).
		Table("table1").
		Where(map[string]any{"name": 10}).
		WhereIn("value", 2, 3)

	assert.Equal(t, []any{10, 2, 3}, q.Parameters())
}

func TestUpdate_JoinAndAssignments(t *testing.T) {
	q := builder.NewUpdate(nil).
		Type("IGNORE").
		Table("orders", "o").
		Join(ast.Name("customers", "c"), ast.On{Left: "c.id", Operator: "=", Right: "o.customer_id"}, ast.JoinInner).
		Assign("o.total", ast.NewExpr("o.total * ?", 1.1)).
		Set(map[string]any{"o.status": "repriced"}).
		WhereOp("c.tier", "=", "gold").
		Order("o.id").
		Limit(100)

	want := "UPDATE IGNORE `orders` AS `o` INNER JOIN `customers` AS `c` ON `c`.`id` = `o`.`customer_id` " +
		"SET `o`.`total` = o.total * ?, `o`.`status` = ? WHERE (`c`.`tier` = ?) ORDER BY `o`.`id` LIMIT 100"
	assert.Equal(t, want, q.SQL())
	assert.Equal(t, []any{1.1, "repriced", "gold"}, q.Parameters())

	q.ClearSet().ClearJoin().SetAssignments([]ast.Set{{Column: "a", Value: 1}})
	assert.Equal(t, "UPDATE IGNORE `orders` AS `o` SET `a` = ? WHERE (`c`.`tier` = ?) ORDER BY `o`.`id` LIMIT 100", q.SQL())
}

func TestInsert_Forms(t *testing.T) {
	set := builder.NewInsert(nil).
		Type("IGNORE").
		Into("table1").
		Set(map[string]any{"name": 10, "email": "email@example.com"})

	assert.Equal(t, "INSERT IGNORE INTO `table1` SET `email` = ?, `name` = ?", set.SQL())
	assert.Equal(t, []any{"email@example.com", 10}, set.Parameters())

	sub := builder.NewSelect(nil).From("table2").Where(map[string]any{"name": "10"})
	fromSelect := builder.NewInsert(nil).
		Into("table1").
		Columns("id", "name").
		Select(sub)

	// later changes to the sub-query are not seen
	sub.Limit(1)

	assert.Equal(t, "INSERT INTO `table1` (id, name) SELECT * FROM `table2` WHERE (`name` = ?)", fromSelect.SQL())
	assert.Equal(t, []any{"10"}, fromSelect.Parameters())

	fromSelect.ClearSelect().Values(1, "x")
	assert.Equal(t, "INSERT INTO `table1` (id, name) VALUES (?, ?)", fromSelect.SQL())

	// a nil sub-query removes the current one
	withNil := builder.NewInsert(nil).Into("table1").Columns("id").Select(sub)
	assert.NotPanics(t, func() { withNil.Select(nil) })
	assert.Equal(t, "INSERT INTO `table1` (id)", withNil.SQL())
	assert.Empty(t, withNil.Parameters())
}

func TestWhereIn_Expressions(t *testing.T) {
	q := builder.NewSelect(nil).From("t").WhereIn("a", ast.NewExpr("NOW()"))
	assert.Equal(t, "SELECT * FROM `t` WHERE (`a` IN (NOW()))", q.SQL())
	assert.Empty(t, q.Parameters())
	assert.Equal(t, "SELECT * FROM `t` WHERE (`a` IN (NOW()))", q.Humanize())

	mixed := builder.NewDelete(nil).From("t").WhereIn("id", 1, ast.NewExpr("? + 1", 2))
	query, args, err := mixed.Build()
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM `t` WHERE (`id` IN (?, ? + 1))", query)
	assert.Equal(t, []any{1, 2}, args)

	_, _, err = builder.NewSelect(nil).From("t").WhereIn("a", ast.NewExpr("?")).Build()
	assert.ErrorIs(t, err, compiler.ErrPlaceholderMismatch)
}

func TestConcurrentRender(t *testing.T) {
	q := builder.NewSelect(nil).
		From("users").
		WhereIn("id", 1, 2, ast.NewExpr("? * 10", 3)).
		WhereRaw("tag IN ?", []string{"a", "b"}).
		WhereCondition(ast.Or(ast.Eq("a", 1), ast.NewRaw("c = ?", 2)))

	wantSQL, wantArgs := q.SQL(), q.Parameters()

	const workers = 16
	var (
		wg   sync.WaitGroup
		sqls = make([]string, workers)
		args = make([][]any, workers)
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sqls[i] = q.SQL()
			args[i] = q.Parameters()
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		assert.Equal(t, wantSQL, sqls[i])
		assert.Equal(t, wantArgs, args[i])
	}
}

func TestEmptyStatement(t *testing.T) {
	assert.Equal(t, "", builder.NewSelect(nil).SQL())
	assert.Empty(t, builder.NewUpdate(nil).Parameters())

	db := &recorder{}
	_, err := builder.NewDelete(db).Exec(context.Background())
	require.ErrorIs(t, err, builder.ErrEmptyStatement)
	assert.Empty(t, db.calls)
}

func TestIdempotence(t *testing.T) {
	q := builder.NewSelect(nil).
		From("t").
		WhereRaw("a IN ?", []int{1, 2, 3}).
		WhereCondition(ast.Or(ast.Eq("b", 1), ast.NewRaw("c = ?", 2)))

	assert.Equal(t, q.SQL(), q.SQL())
	assert.Equal(t, q.Parameters(), q.Parameters())
}

func TestBuild(t *testing.T) {
	query, args, err := builder.NewUpdate(nil).Table("t").Assign("a", 1).Build()
	require.NoError(t, err)
	assert.Equal(t, "UPDATE `t` SET `a` = ?", query)
	assert.Equal(t, []any{1}, args)

	q := builder.NewSelect(nil).From("t").WhereRaw("a = ? AND b = ?", 1)

	// rendering does not check the raw template
	assert.Equal(t, "SELECT * FROM `t` WHERE (a = ? AND b = ?)", q.SQL())

	_, _, err = q.Build()
	assert.ErrorIs(t, err, compiler.ErrPlaceholderMismatch)

	_, _, err = builder.NewSelect(nil).From("t").Limit(-1).Build()
	assert.ErrorIs(t, err, compiler.ErrInvalidQuery)
}

func TestHumanize(t *testing.T) {
	q := builder.NewUpdate(nil).
		Table("users").
		Set(map[string]any{"name": "Bob"}).
		WhereOp("deleted_at", "=", nil)

	assert.Equal(t, "UPDATE `users` SET `name` = \"Bob\" WHERE (`deleted_at` IS NULL)", q.Humanize())
}

func TestExec(t *testing.T) {
	ctx := context.Background()
	db := &recorder{}

	res, err := builder.NewInsert(db).Into("t").Columns("a").Values(1).Exec(ctx)
	require.NoError(t, err)
	n, err := res.RowsAffected()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = builder.NewUpdate(db).Table("t").Assign("a", 2).Exec(ctx)
	require.NoError(t, err)

	_, err = builder.NewDelete(db).From("t").Where(map[string]any{"a": 2}).Exec(ctx)
	require.NoError(t, err)

	require.Len(t, db.calls, 3)
	assert.Equal(t, call{query: "INSERT INTO `t` (a) VALUES (?)", args: []any{1}}, db.calls[0])
	assert.Equal(t, call{query: "UPDATE `t` SET `a` = ?", args: []any{2}}, db.calls[1])
	assert.Equal(t, call{query: "DELETE FROM `t` WHERE (`a` = ?)", args: []any{2}}, db.calls[2])
}

func TestExec_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := builder.NewDelete(nil).From("t").Exec(ctx)
	assert.ErrorIs(t, err, builder.ErrNoDatabase)

	_, err = builder.NewSelect(nil).From("t").Rows(ctx)
	assert.ErrorIs(t, err, builder.ErrNoDatabase)

	boom := errors.New("boom")
	db := &recorder{err: boom}

	_, err = builder.NewDelete(db).From("t").Exec(ctx)
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "failed to execute DELETE")

	_, err = builder.NewSelect(db).From("t").Rows(ctx)
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "failed to execute SELECT")

	_, err = builder.NewSelect(db).From("t").WhereRaw("a = ?").Rows(ctx)
	assert.ErrorIs(t, err, compiler.ErrPlaceholderMismatch)
	assert.Len(t, db.calls, 2)
}

func TestStatementDB(t *testing.T) {
	db := &recorder{}
	assert.Same(t, db, builder.NewSelect(db).DB())
	assert.Nil(t, builder.NewSelect(nil).DB())
}
