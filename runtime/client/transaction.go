package client

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/satishbabariya/atlas/query/builder"
)

// Tx is a transaction of a DB. Statements run through the middleware
// chain and prepared statement cache of the DB it was started on.
type Tx struct {
	tx    *sql.Tx
	db    *DB
	depth int // nesting depth for savepoints
}

// TransactionFunc is a function that runs within a transaction
type TransactionFunc func(tx *Tx) error

// Transaction runs fn within a transaction. The transaction is rolled back
// if fn returns an error or panics, and committed otherwise.
func (c *DB) Transaction(ctx context.Context, fn TransactionFunc) error {
	return c.TransactionWithOptions(ctx, nil, fn)
}

// TransactionWithIsolation runs fn within a transaction of the given isolation level
func (c *DB) TransactionWithIsolation(ctx context.Context, isolation sql.IsolationLevel, fn TransactionFunc) error {
	return c.TransactionWithOptions(ctx, &sql.TxOptions{Isolation: isolation}, fn)
}

// TransactionWithOptions runs fn within a transaction with custom options
func (c *DB) TransactionWithOptions(ctx context.Context, opts *sql.TxOptions, fn TransactionFunc) error {
	sqlTx, err := c.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	tx := &Tx{tx: sqlTx, db: c}

	defer func() {
		if p := recover(); p != nil {
			_ = sqlTx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := sqlTx.Rollback(); rbErr != nil {
			return fmt.Errorf("transaction error: %v, rollback error: %w", err, rbErr)
		}
		return err
	}

	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ExecContext executes a statement that returns no rows
func (tx *Tx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	var res sql.Result
	err := tx.db.executeWithMiddleware(ctx, query, args, func() error {
		var err error
		if stmt := tx.prepared(ctx, query); stmt != nil {
			defer stmt.Close()
			res, err = stmt.ExecContext(ctx, args...)
		} else {
			res, err = tx.tx.ExecContext(ctx, query, args...)
		}
		return err
	})
	return res, err
}

// QueryContext executes a statement that returns rows. The caller closes them.
func (tx *Tx) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	var rows *sql.Rows
	err := tx.db.executeWithMiddleware(ctx, query, args, func() error {
		var err error
		if stmt := tx.prepared(ctx, query); stmt != nil {
			// Rows keep the transaction-specific statement alive; it is
			// closed with the transaction.
			rows, err = stmt.QueryContext(ctx, args...)
		} else {
			rows, err = tx.tx.QueryContext(ctx, query, args...)
		}
		return err
	})
	return rows, err
}

// prepared rebinds an already cached statement for query to the
// transaction, or returns nil. A transaction never prepares on the pool:
// with a single connection that would block on the one it holds.
func (tx *Tx) prepared(ctx context.Context, query string) *sql.Stmt {
	if tx.db.cache == nil {
		return nil
	}
	stmt, ok := tx.db.cache.lookup(query)
	if !ok {
		return nil
	}
	return tx.tx.StmtContext(ctx, stmt)
}

// NestedTransaction runs fn within a savepoint of the transaction. An error
// returned by fn rolls back to the savepoint only.
func (tx *Tx) NestedTransaction(ctx context.Context, fn TransactionFunc) error {
	tx.depth++
	defer func() { tx.depth-- }()

	savepoint := fmt.Sprintf("sp_%d", tx.depth)

	if _, err := tx.tx.ExecContext(ctx, "SAVEPOINT "+savepoint); err != nil {
		return fmt.Errorf("failed to create savepoint: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_, _ = tx.tx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT "+savepoint)
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if _, rbErr := tx.tx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT "+savepoint); rbErr != nil {
			return fmt.Errorf("nested transaction error: %v, rollback error: %w", err, rbErr)
		}
		return err
	}

	if _, err := tx.tx.ExecContext(ctx, "RELEASE SAVEPOINT "+savepoint); err != nil {
		return fmt.Errorf("failed to release savepoint: %w", err)
	}
	return nil
}

// SQLTx returns the underlying transaction
func (tx *Tx) SQLTx() *sql.Tx {
	return tx.tx
}

// Select creates a SELECT statement bound to the transaction
func (tx *Tx) Select() *builder.Select { return builder.NewSelect(tx) }

// Insert creates an INSERT statement bound to the transaction
func (tx *Tx) Insert() *builder.Insert { return builder.NewInsert(tx) }

// Update creates an UPDATE statement bound to the transaction
func (tx *Tx) Update() *builder.Update { return builder.NewUpdate(tx) }

// Delete creates a DELETE statement bound to the transaction
func (tx *Tx) Delete() *builder.Delete { return builder.NewDelete(tx) }
