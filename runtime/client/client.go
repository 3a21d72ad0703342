// Package client connects built statements to a database.
//
// DB and Tx satisfy builder.Database, so statements created through them
// can be executed directly:
//
//	db, err := client.Open(cfg)
//	...
//	res, err := db.Update().Table("users").Assign("name", "Bob").Where(map[string]any{"id": 5}).Exec(ctx)
package client

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	_ "github.com/mattn/go-sqlite3"    // SQLite driver
	"github.com/satishbabariya/atlas/internal/debug"
	"github.com/satishbabariya/atlas/query/builder"
)

// DB is a connection pool with a middleware chain and an optional
// prepared statement cache. It is safe for concurrent use.
type DB struct {
	db     *sql.DB
	driver string
	cache  *stmtCache

	mu          sync.RWMutex
	middlewares []Middleware
}

// Open opens a connection pool for cfg. It does not connect; use Ping.
func Open(cfg Config) (*DB, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	driver := driverName(cfg.Driver)
	db, err := sql.Open(driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	c := newDB(db, driver, cfg.CacheStatements)
	if cfg.Debug {
		c.Use(LoggingMiddleware(debug.With("driver", driver)))
	}
	return c, nil
}

// NewFromDB wraps an existing connection pool
func NewFromDB(db *sql.DB, driver string) (*DB, error) {
	name := driverName(driver)
	if name == "" {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}
	return newDB(db, name, false), nil
}

func newDB(db *sql.DB, driver string, cacheStatements bool) *DB {
	c := &DB{db: db, driver: driver}
	if cacheStatements {
		c.cache = newStmtCache()
	}
	return c
}

// Ping verifies the connection
func (c *DB) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

// Close closes cached statements and the connection pool
func (c *DB) Close() error {
	if c.cache != nil {
		c.cache.clear()
	}
	return c.db.Close()
}

// SQLDB returns the underlying connection pool
func (c *DB) SQLDB() *sql.DB {
	return c.db
}

// Driver returns the database/sql driver name
func (c *DB) Driver() string {
	return c.driver
}

// ClearStmtCache closes all cached prepared statements. Statements running
// concurrently finish; a call that picked a statement just before it was
// closed prepares it again.
func (c *DB) ClearStmtCache() {
	if c.cache != nil {
		c.cache.clear()
	}
}

// ExecContext executes a statement that returns no rows
func (c *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	var res sql.Result
	err := c.executeWithMiddleware(ctx, query, args, func() error {
		return c.withStmt(ctx, query, func(stmt *sql.Stmt) error {
			var err error
			if stmt != nil {
				res, err = stmt.ExecContext(ctx, args...)
			} else {
				res, err = c.db.ExecContext(ctx, query, args...)
			}
			return err
		})
	})
	return res, err
}

// QueryContext executes a statement that returns rows. The caller closes them.
func (c *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	var rows *sql.Rows
	err := c.executeWithMiddleware(ctx, query, args, func() error {
		return c.withStmt(ctx, query, func(stmt *sql.Stmt) error {
			var err error
			if stmt != nil {
				rows, err = stmt.QueryContext(ctx, args...)
			} else {
				rows, err = c.db.QueryContext(ctx, query, args...)
			}
			return err
		})
	})
	return rows, err
}

// withStmt runs fn with the cached statement for query, or with nil without
// a cache. When ClearStmtCache closed the statement before fn could use it,
// fn runs again with a newly prepared one. A closed statement fails before
// anything reaches the database.
func (c *DB) withStmt(ctx context.Context, query string, fn func(*sql.Stmt) error) error {
	if c.cache == nil {
		return fn(nil)
	}
	for {
		stmt, err := c.cache.get(ctx, c.db, query)
		if err != nil {
			return err
		}
		err = fn(stmt)
		if !isStmtClosed(err) || c.cache.holds(query, stmt) {
			return err
		}
	}
}

// Select creates a SELECT statement bound to the connection
func (c *DB) Select() *builder.Select { return builder.NewSelect(c) }

// Insert creates an INSERT statement bound to the connection
func (c *DB) Insert() *builder.Insert { return builder.NewInsert(c) }

// Update creates an UPDATE statement bound to the connection
func (c *DB) Update() *builder.Update { return builder.NewUpdate(c) }

// Delete creates a DELETE statement bound to the connection
func (c *DB) Delete() *builder.Delete { return builder.NewDelete(c) }
