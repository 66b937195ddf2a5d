// Package memtx gives the in-memory stores the same atomicity the Postgres
// stores get from a transaction.
//
// All in-memory stores built on one DB share a single RWMutex. Reads run
// under the read lock. Writes issued inside RunInFamilyTx are staged and
// applied together under the write lock when the callback succeeds, so a
// reader observes either none or all of a transition's writes. Writers on the
// same family are serialized by a sharded mutex.
//
// Reads inside a transaction see committed state only; callers load
// everything they need before staging writes. Callbacks registered with
// tx.AfterCommit run once the staged writes are applied.
package memtx

import (
	"context"
	"hash/fnv"
	"sync"
	"time"

	id "legatia/pkg/domain"
	dErrors "legatia/pkg/domain-errors"
	txcontext "legatia/pkg/platform/tx"
)

const numShards = 64

const defaultTxTimeout = 5 * time.Second

// DB is the shared commit barrier for a set of in-memory stores.
type DB struct {
	mu      sync.RWMutex
	shards  [numShards]sync.Mutex
	timeout time.Duration
}

// Option configures a DB.
type Option func(*DB)

// WithTimeout bounds each transaction when the caller's context has no deadline.
func WithTimeout(d time.Duration) Option {
	return func(db *DB) {
		db.timeout = d
	}
}

func New(opts ...Option) *DB {
	db := &DB{timeout: defaultTxTimeout}
	for _, opt := range opts {
		opt(db)
	}
	return db
}

type txKey struct{}

type txState struct {
	db     *DB
	staged []func()
}

// View runs fn under the read lock.
func (db *DB) View(fn func()) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	fn()
}

// Write applies fn under the write lock, or stages it when ctx carries an
// open transaction on this DB. fn must capture copies, not caller-owned pointers.
func (db *DB) Write(ctx context.Context, fn func()) {
	if tx, ok := ctx.Value(txKey{}).(*txState); ok && tx.db == db {
		tx.staged = append(tx.staged, fn)
		return
	}
	db.mu.Lock()
	defer db.mu.Unlock()
	fn()
}

// RunInFamilyTx runs fn as one atomic unit with respect to every other
// transaction on the same family. Staged writes are discarded when fn fails.
// A nested call joins the outer transaction.
func (db *DB) RunInFamilyTx(ctx context.Context, familyID id.FamilyID, fn func(ctx context.Context) error) error {
	if tx, ok := ctx.Value(txKey{}).(*txState); ok && tx.db == db {
		return fn(ctx)
	}
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline && db.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, db.timeout)
		defer cancel()
	}

	shard := &db.shards[shardFor(familyID)]
	shard.Lock()
	defer shard.Unlock()

	// Check again after acquiring the shard.
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	tx := &txState{db: db}
	ctx, hooks, owner := txcontext.WithHooks(ctx)
	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}

	db.mu.Lock()
	for _, apply := range tx.staged {
		apply()
	}
	db.mu.Unlock()
	if owner {
		hooks.Run()
	}
	return nil
}

// InTx reports whether ctx carries an open transaction on db.
func (db *DB) InTx(ctx context.Context) bool {
	tx, ok := ctx.Value(txKey{}).(*txState)
	return ok && tx.db == db
}

func shardFor(familyID id.FamilyID) uint32 {
	h := fnv.New32a()
	_, _ = h.Write(familyID[:])
	return h.Sum32() % numShards
}
