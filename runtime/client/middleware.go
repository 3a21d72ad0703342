package client

import (
	"context"
	"log/slog"
	"time"

	"github.com/satishbabariya/atlas/query/compiler"
)

// QueryEvent describes one statement execution
type QueryEvent struct {
	Query    string
	Args     []any
	Duration time.Duration
	Error    error
	Start    time.Time
	End      time.Time
}

// Humanized returns the statement with its arguments inlined
func (e *QueryEvent) Humanized() string {
	return compiler.Humanize(e.Query, e.Args)
}

// Middleware intercepts statement execution. It must call next to run the
// statement and return its error, or return early to skip it.
type Middleware func(ctx context.Context, event *QueryEvent, next func() error) error

// Use appends a middleware to the chain. Middlewares run in the order they
// were added.
func (c *DB) Use(middleware Middleware) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.middlewares = append(c.middlewares, middleware)
}

func (c *DB) chain() []Middleware {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.middlewares
}

// executeWithMiddleware runs exec through the middleware chain
func (c *DB) executeWithMiddleware(ctx context.Context, query string, args []any, exec func() error) error {
	middlewares := c.chain()
	if len(middlewares) == 0 {
		return exec()
	}

	event := &QueryEvent{
		Query: query,
		Args:  args,
		Start: time.Now(),
	}

	var next func() error
	index := 0

	next = func() error {
		if index >= len(middlewares) {
			err := exec()
			event.End = time.Now()
			event.Duration = event.End.Sub(event.Start)
			event.Error = err
			return err
		}

		middleware := middlewares[index]
		index++
		return middleware(ctx, event, next)
	}

	return next()
}

// LoggingMiddleware logs every statement at debug level with its arguments
// inlined, and its duration or error once it ran.
func LoggingMiddleware(logger *slog.Logger) Middleware {
	return func(ctx context.Context, event *QueryEvent, next func() error) error {
		logger.DebugContext(ctx, "executing query", "sql", event.Humanized())
		err := next()
		if err != nil {
			logger.DebugContext(ctx, "query failed", "error", err)
		} else {
			logger.DebugContext(ctx, "query completed", "duration", event.Duration)
		}
		return err
	}
}

// TimingMiddleware reports the duration of every statement
func TimingMiddleware(onTiming func(query string, duration time.Duration)) Middleware {
	return func(ctx context.Context, event *QueryEvent, next func() error) error {
		err := next()
		if onTiming != nil {
			onTiming(event.Query, event.Duration)
		}
		return err
	}
}

// ErrorMiddleware reports failed statements
func ErrorMiddleware(onError func(query string, err error)) Middleware {
	return func(ctx context.Context, event *QueryEvent, next func() error) error {
		err := next()
		if err != nil && onError != nil {
			onError(event.Query, err)
		}
		return err
	}
}
