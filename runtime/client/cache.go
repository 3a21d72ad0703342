package client

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
)

// database/sql reports the use of a closed statement with an unexported
// error value; only its text identifies it.
const stmtClosedMessage = "sql: statement is closed"

func isStmtClosed(err error) bool {
	return err != nil && err.Error() == stmtClosedMessage
}

// stmtCache keeps prepared statements keyed by their SQL text. The builder
// renders equal statements to equal text, so repeated shapes share a
// statement regardless of their bound values.
type stmtCache struct {
	mu    sync.RWMutex
	stmts map[string]*sql.Stmt
}

func newStmtCache() *stmtCache {
	return &stmtCache{stmts: make(map[string]*sql.Stmt)}
}

// get returns a cached prepared statement or prepares a new one
func (c *stmtCache) get(ctx context.Context, db *sql.DB, query string) (*sql.Stmt, error) {
	if stmt, ok := c.lookup(query); ok {
		return stmt, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Another goroutine may have prepared it meanwhile.
	if stmt, ok := c.stmts[query]; ok {
		return stmt, nil
	}

	stmt, err := db.PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare statement: %w", err)
	}
	c.stmts[query] = stmt
	return stmt, nil
}

// lookup returns the statement for query only if it was prepared before
func (c *stmtCache) lookup(query string) (*sql.Stmt, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	stmt, ok := c.stmts[query]
	return stmt, ok
}

// holds reports whether stmt is still the cached statement for query
func (c *stmtCache) holds(query string, stmt *sql.Stmt) bool {
	cached, ok := c.lookup(query)
	return ok && cached == stmt
}

func (c *stmtCache) size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.stmts)
}

// clear closes and forgets every statement. A statement still executing
// is released by database/sql once that execution ends.
func (c *stmtCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, stmt := range c.stmts {
		stmt.Close()
	}
	c.stmts = make(map[string]*sql.Stmt)
}
