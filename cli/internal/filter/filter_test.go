package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satishbabariya/atlas/query/ast"
	"github.com/satishbabariya/atlas/query/compiler"
)

func TestParse(t *testing.T) {
	tests := []struct {
		expr string
		want ast.Condition
	}{
		{"id = 1", ast.Eq("id", int64(1))},
		{"price >= 9.5", ast.Op("price", ">=", 9.5)},
		{"name != 'bob'", ast.Op("name", "!=", "bob")},
		{"name <> 'o''brien'", ast.Op("name", "<>", "o'brien")},
		{"users.age < -3", ast.Op("users.age", "<", int64(-3))},
		{"name like 'a%'", ast.Op("name", "LIKE", "a%")},
		{"status = active", ast.Eq("status", "active")},
		{"enabled = TRUE", ast.Eq("enabled", true)},
		{"deleted_at IS NULL", ast.Eq("deleted_at", nil)},
		{"deleted_at is not null", ast.Op("deleted_at", "!=", nil)},
		{"deleted_at = NULL", ast.Eq("deleted_at", nil)},
		{"id IN (1, 2, 3)", ast.InList("id", int64(1), int64(2), int64(3))},
		{"role not in ('admin', 'root')", ast.NotInList("role", "admin", "root")},
		{"id IN ()", ast.InList("id")},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := Parse(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, expr := range []string{
		"",
		"id",
		"id =",
		"= 1",
		"id IS 1",
		"id IN (1,",
		"id == 1",
		"id = 'unterminated",
	} {
		t.Run(expr, func(t *testing.T) {
			_, err := Parse(expr)
			assert.Error(t, err)
		})
	}
}

func TestParseAll(t *testing.T) {
	conditions, err := ParseAll([]string{"age > 18", "deleted_at IS NULL"})
	require.NoError(t, err)

	f := compiler.CombineConditions(conditions)
	assert.Equal(t, "(`age` > ?) AND (`deleted_at` IS ?)", f.SQL)
	assert.Equal(t, []any{int64(18), nil}, f.Args)

	_, err = ParseAll([]string{"age > 18", "oops"})
	assert.Error(t, err)
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"'bob'", "bob"},
		{"''", ""},
		{"42", int64(42)},
		{"-1.25", -1.25},
		{"false", false},
		{"NULL", nil},
		{"pending", "pending"},
	}
	for _, tt := range tests {
		got, err := ParseValue(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseValue("1 2")
	assert.Error(t, err)
}

func TestParseAssignment(t *testing.T) {
	column, v, err := ParseAssignment("name='a=b'")
	require.NoError(t, err)
	assert.Equal(t, "name", column)
	assert.Equal(t, "a=b", v)

	column, v, err = ParseAssignment(" age = 7")
	require.NoError(t, err)
	assert.Equal(t, "age", column)
	assert.Equal(t, int64(7), v)

	for _, bad := range []string{"name", "=1", "name="} {
		_, _, err := ParseAssignment(bad)
		assert.Error(t, err, bad)
	}
}
