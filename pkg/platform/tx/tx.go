// Package tx carries a SQL transaction through context so Postgres stores can
// join the caller's unit of work without widening their method signatures.
package tx

import (
	"context"
	"database/sql"
	"sync"
)

type ctxKey struct{}

var txKey = ctxKey{}

// Executor is the subset of *sql.DB and *sql.Tx used by stores.
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx stores a SQL transaction in context for downstream store usage.
func WithTx(ctx context.Context, tx *sql.Tx) context.Context {
	if tx == nil {
		return ctx
	}
	return context.WithValue(ctx, txKey, tx)
}

// From extracts a SQL transaction from context if present.
func From(ctx context.Context) (*sql.Tx, bool) {
	tx, ok := ctx.Value(txKey).(*sql.Tx)
	return tx, ok
}

// Exec returns the transaction in ctx when there is one, otherwise db.
func Exec(ctx context.Context, db *sql.DB) Executor {
	if tx, ok := From(ctx); ok {
		return tx
	}
	return db
}

type hooksKey struct{}

// Hooks collects callbacks to run once the outermost unit of work commits.
type Hooks struct {
	mu  sync.Mutex
	fns []func()
}

// WithHooks returns ctx carrying a fresh hook list, or the existing one when
// ctx already belongs to an open unit of work.
func WithHooks(ctx context.Context) (context.Context, *Hooks, bool) {
	if h, ok := ctx.Value(hooksKey{}).(*Hooks); ok {
		return ctx, h, false
	}
	h := &Hooks{}
	return context.WithValue(ctx, hooksKey{}, h), h, true
}

// AfterCommit defers fn until the unit of work in ctx commits. Without one,
// fn runs immediately. Hooks are dropped when the unit of work fails.
func AfterCommit(ctx context.Context, fn func()) {
	if h, ok := ctx.Value(hooksKey{}).(*Hooks); ok {
		h.mu.Lock()
		h.fns = append(h.fns, fn)
		h.mu.Unlock()
		return
	}
	fn()
}

// Run executes the collected hooks in registration order.
func (h *Hooks) Run() {
	h.mu.Lock()
	fns := h.fns
	h.fns = nil
	h.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}
