package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	id "legatia/pkg/domain"
	dErrors "legatia/pkg/domain-errors"
	"legatia/pkg/platform/sentinel"
	txcontext "legatia/pkg/platform/tx"
)

const defaultTxTimeout = 5 * time.Second

// FamilyTx runs workflow transitions in a transaction that holds the family
// row lock, so no two mutating calls on the same family interleave.
type FamilyTx struct {
	db      *sql.DB
	timeout time.Duration
}

func NewFamilyTx(db *sql.DB, timeout time.Duration) *FamilyTx {
	if timeout <= 0 {
		timeout = defaultTxTimeout
	}
	return &FamilyTx{db: db, timeout: timeout}
}

// RunInFamilyTx locks the family row with SELECT ... FOR UPDATE and runs fn
// with the transaction in ctx. A nested call joins the outer transaction and
// takes the additional row lock inside it.
func (t *FamilyTx) RunInFamilyTx(ctx context.Context, familyID id.FamilyID, fn func(ctx context.Context) error) error {
	if tx, ok := txcontext.From(ctx); ok {
		if err := lockFamily(ctx, tx, familyID); err != nil {
			return err
		}
		return fn(ctx)
	}
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	ctx, hooks, owner := txcontext.WithHooks(ctx)
	err := WithTx(ctx, t.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := lockFamily(ctx, tx, familyID); err != nil {
			return err
		}
		return fn(ctx)
	})
	if err != nil {
		return err
	}
	if owner {
		hooks.Run()
	}
	return nil
}

func lockFamily(ctx context.Context, tx *sql.Tx, familyID id.FamilyID) error {
	var locked string
	err := tx.QueryRowContext(ctx, `SELECT id FROM families WHERE id = $1 FOR UPDATE`, familyID.String()).Scan(&locked)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("lock family %s: %w", familyID, sentinel.ErrNotFound)
	}
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("lock family %s: %w", familyID, sentinel.ErrLockTimeout)
		}
		return fmt.Errorf("lock family: %w", err)
	}
	return nil
}

// WithTx runs fn inside a transaction carried in ctx, reusing the caller's
// transaction when one is already open. It commits on success and rolls back
// on error or panic.
func WithTx(ctx context.Context, db *sql.DB, fn func(ctx context.Context, tx *sql.Tx) error) (err error) {
	if tx, ok := txcontext.From(ctx); ok {
		return fn(ctx, tx)
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		if cerr := tx.Commit(); cerr != nil {
			err = fmt.Errorf("commit tx: %w", cerr)
		}
	}()
	return fn(txcontext.WithTx(ctx, tx), tx)
}
