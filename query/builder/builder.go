// Package builder provides a fluent query builder API.
//
// Select, Insert, Update and Delete fill the clause slots of an
// ast.Statement and hand it to the compiler for rendering:
//
//	q := builder.NewUpdate(nil).
//		Table("users").
//		Set(map[string]any{"name": "Bob"}).
//		Where(map[string]any{"id": 5})
//
//	q.SQL()        // UPDATE `users` SET `name` = ? WHERE (`id` = ?)
//	q.Parameters() // [Bob 5]
//
// Setters append to their slot, SetX replaces it and ClearX empties it.
// Nothing is validated while building; Build reports the problems the
// compiler can detect.
package builder

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/satishbabariya/atlas/query/ast"
	"github.com/satishbabariya/atlas/query/compiler"
)

var (
	ErrNoDatabase     = errors.New("no database attached to statement")
	ErrEmptyStatement = errors.New("statement renders to empty SQL")
)

// Database executes rendered statements. *sql.DB and *sql.Tx satisfy it.
type Database interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// statement holds what every statement kind shares
type statement struct {
	stmt *ast.Statement
	db   Database
}

func newStatement(kind ast.Kind, db Database) statement {
	return statement{stmt: ast.NewStatement(kind), db: db}
}

// Statement returns the AST being built. Callers must not modify it.
func (s *statement) Statement() *ast.Statement {
	return s.stmt
}

// DB returns the database the statement was created for, if any
func (s *statement) DB() Database {
	return s.db
}

// SQL renders the statement
func (s *statement) SQL() string {
	return compiler.SQL(s.stmt)
}

// Parameters returns the values bound to the placeholders of SQL()
func (s *statement) Parameters() []any {
	return compiler.Parameters(s.stmt)
}

// Build validates and renders the statement
func (s *statement) Build() (string, []any, error) {
	return compiler.Compile(s.stmt)
}

// Humanize renders the statement with its parameters inlined, for logs
func (s *statement) Humanize() string {
	f := compiler.Render(s.stmt)
	return compiler.Humanize(f.SQL, f.Args)
}

func (s *statement) prepare() (string, []any, error) {
	if s.db == nil {
		return "", nil, ErrNoDatabase
	}
	query, args, err := s.Build()
	if err != nil {
		return "", nil, err
	}
	if query == "" {
		return "", nil, ErrEmptyStatement
	}
	return query, args, nil
}

func (s *statement) exec(ctx context.Context) (sql.Result, error) {
	query, args, err := s.prepare()
	if err != nil {
		return nil, err
	}
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute %s: %w", s.stmt.Kind, err)
	}
	return res, nil
}

func (s *statement) query(ctx context.Context) (*sql.Rows, error) {
	query, args, err := s.prepare()
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute %s: %w", s.stmt.Kind, err)
	}
	return rows, nil
}

func intPtr(n int) *int {
	return &n
}

func direction(dir []ast.Dir) ast.Dir {
	if len(dir) == 0 {
		return ast.DirNone
	}
	return dir[0]
}

func joinKind(kind []ast.JoinKind) ast.JoinKind {
	if len(kind) == 0 {
		return ast.JoinDefault
	}
	return kind[0]
}

func aliased(name string, alias []string) ast.Aliased {
	return ast.Name(name, alias...)
}
