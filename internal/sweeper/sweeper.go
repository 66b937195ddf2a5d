// Package sweeper persists the Expired status on claims and invitations that
// outlived their retention window. Readers already see them as expired; the
// sweep makes the store agree and notifies requesters.
package sweeper

//go:generate mockgen -source=sweeper.go -destination=mocks/mocks.go -package=mocks Expirer

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// Expirer is implemented by the claim and invitation services.
type Expirer interface {
	ExpireStale(ctx context.Context) (int, error)
}

type Sweeper struct {
	expirers map[string]Expirer
	interval time.Duration
	logger   *slog.Logger
}

type Option func(*Sweeper)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Sweeper) {
		s.logger = logger
	}
}

func WithInterval(d time.Duration) Option {
	return func(s *Sweeper) {
		if d > 0 {
			s.interval = d
		}
	}
}

// New builds a sweeper over named expirers; the name is only used in logs.
func New(expirers map[string]Expirer, opts ...Option) *Sweeper {
	s := &Sweeper{
		expirers: expirers,
		interval: time.Hour,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run sweeps once immediately, then on every tick until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		if _, err := s.RunOnce(ctx); err != nil && ctx.Err() == nil {
			s.logger.WarnContext(ctx, "expiry sweep failed", "error", err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// RunOnce runs every expirer concurrently and returns the total expired.
func (s *Sweeper) RunOnce(ctx context.Context) (int, error) {
	counts := make(map[string]int, len(s.expirers))
	results := make([]int, len(s.expirers))
	names := make([]string, 0, len(s.expirers))
	g, gctx := errgroup.WithContext(ctx)
	i := 0
	for name, e := range s.expirers {
		idx, e := i, e
		names = append(names, name)
		g.Go(func() error {
			n, err := e.ExpireStale(gctx)
			results[idx] = n
			return err
		})
		i++
	}
	err := g.Wait()

	total := 0
	for idx, name := range names {
		counts[name] = results[idx]
		total += results[idx]
	}
	if total > 0 {
		s.logger.InfoContext(ctx, "expired stale requests", "total", total, "by_kind", counts)
	}
	return total, err
}
