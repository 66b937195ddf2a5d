// Package worker relays committed outbox entries to a message sink.
package worker

import (
	"context"
	"log/slog"
	"time"

	audit "legatia/pkg/platform/audit"
)

// Sink publishes a batch of entries. It returns only after the broker has
// acknowledged every entry.
type Sink interface {
	Publish(ctx context.Context, entries []audit.OutboxEntry) error
}

// TxRunner wraps one fetch-publish-mark cycle in a transaction so concurrent
// relays never publish the same row twice.
type TxRunner func(ctx context.Context, fn func(ctx context.Context) error) error

// Relay polls the outbox and publishes unpublished entries at least once.
type Relay struct {
	outbox   audit.Outbox
	sink     Sink
	logger   *slog.Logger
	interval time.Duration
	batch    int
	runInTx  TxRunner
}

type Option func(*Relay)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Relay) {
		r.logger = logger
	}
}

func WithInterval(d time.Duration) Option {
	return func(r *Relay) {
		if d > 0 {
			r.interval = d
		}
	}
}

func WithBatchSize(n int) Option {
	return func(r *Relay) {
		if n > 0 {
			r.batch = n
		}
	}
}

func WithTx(run TxRunner) Option {
	return func(r *Relay) {
		r.runInTx = run
	}
}

func NewRelay(outbox audit.Outbox, sink Sink, opts ...Option) *Relay {
	r := &Relay{
		outbox:   outbox,
		sink:     sink,
		logger:   slog.Default(),
		interval: time.Second,
		batch:    100,
		runInTx: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return fn(ctx)
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run polls until ctx is cancelled. Publish failures are logged and retried
// on the next tick.
func (r *Relay) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := r.RunOnce(ctx); err != nil && ctx.Err() == nil {
				r.logger.WarnContext(ctx, "outbox relay cycle failed", "error", err)
			}
		}
	}
}

// RunOnce publishes one batch and returns how many entries were published.
func (r *Relay) RunOnce(ctx context.Context) (int, error) {
	published := 0
	err := r.runInTx(ctx, func(ctx context.Context) error {
		entries, err := r.outbox.FetchUnpublished(ctx, r.batch)
		if err != nil || len(entries) == 0 {
			return err
		}
		if err := r.sink.Publish(ctx, entries); err != nil {
			return err
		}
		ids := make([]string, len(entries))
		for i, e := range entries {
			ids[i] = e.ID
		}
		if err := r.outbox.MarkPublished(ctx, ids); err != nil {
			return err
		}
		published = len(entries)
		return nil
	})
	return published, err
}
