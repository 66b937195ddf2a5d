package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store UnreadCache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"legatia/internal/notifications/metrics"
	"legatia/internal/notifications/models"
	id "legatia/pkg/domain"
	dErrors "legatia/pkg/domain-errors"
	"legatia/pkg/platform/sentinel"
	txcontext "legatia/pkg/platform/tx"
	"legatia/pkg/requestcontext"
)

type Store interface {
	Create(ctx context.Context, n *models.Notification) error
	ListByRecipient(ctx context.Context, recipient id.UserID) ([]*models.Notification, error)
	CountUnread(ctx context.Context, recipient id.UserID) (int, error)
	MarkRead(ctx context.Context, notificationID id.NotificationID, recipient id.UserID) error
	MarkAllRead(ctx context.Context, recipient id.UserID) (int, error)
}

// UnreadCache is an optional read-through cache of unread counts. Invalidate
// advances a per-user generation; Fill is ignored unless gen, as returned by
// the missing Get, is still current.
type UnreadCache interface {
	Get(ctx context.Context, userID id.UserID) (count int, gen int64, ok bool, err error)
	Fill(ctx context.Context, userID id.UserID, count int, gen int64) error
	Invalidate(ctx context.Context, userID id.UserID) error
}

// Service writes notifications on behalf of the workflows and serves the
// recipient's inbox.
//
// Dispatch joins the caller's unit of work: the notification commits or rolls
// back together with the transition that produced it. Cache invalidation is
// deferred until that commit.
type Service struct {
	store   Store
	cache   UnreadCache
	metrics *metrics.Metrics
	logger  *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithUnreadCache(c UnreadCache) Option {
	return func(s *Service) {
		s.cache = c
	}
}

func New(store Store, opts ...Option) *Service {
	s := &Service{store: store, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dispatch writes exactly one notification for draft.RecipientID. A failure
// is returned so the surrounding transition fails with it.
func (s *Service) Dispatch(ctx context.Context, draft models.Draft) error {
	if draft.RecipientID.IsNil() {
		return dErrors.New(dErrors.CodeInvariantViolation, "notification recipient is required")
	}
	n := draft.Build(id.NewNotificationID(), requestcontext.Now(ctx))
	if err := s.store.Create(ctx, n); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to write notification")
	}
	if s.metrics != nil {
		s.metrics.IncDispatched(string(n.Type))
	}
	txcontext.AfterCommit(ctx, func() {
		s.invalidate(context.WithoutCancel(ctx), n.RecipientID)
	})
	return nil
}

// List returns the caller's notifications, newest first.
func (s *Service) List(ctx context.Context) ([]*models.Notification, error) {
	userID, err := requestcontext.RequireUserID(ctx)
	if err != nil {
		return nil, err
	}
	out, err := s.store.ListByRecipient(ctx, userID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list notifications")
	}
	return out, nil
}

// UnreadCount returns the caller's unread count, from the cache when warm.
func (s *Service) UnreadCount(ctx context.Context) (int, error) {
	userID, err := requestcontext.RequireUserID(ctx)
	if err != nil {
		return 0, err
	}
	fill := false
	var gen int64
	if s.cache != nil {
		n, g, ok, err := s.cache.Get(ctx, userID)
		switch {
		case err != nil:
			s.cacheFailed(ctx, "get", userID, err)
		case ok:
			if s.metrics != nil {
				s.metrics.IncCacheHit()
			}
			return n, nil
		default:
			fill, gen = true, g
		}
		if s.metrics != nil {
			s.metrics.IncCacheMiss()
		}
	}

	n, err := s.store.CountUnread(ctx, userID)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to count notifications")
	}
	if fill {
		if err := s.cache.Fill(ctx, userID, n, gen); err != nil {
			s.cacheFailed(ctx, "fill", userID, err)
		}
	}
	return n, nil
}

// MarkRead flags one of the caller's notifications. Someone else's
// notification is reported as not found.
func (s *Service) MarkRead(ctx context.Context, notificationID id.NotificationID) error {
	userID, err := requestcontext.RequireUserID(ctx)
	if err != nil {
		return err
	}
	if err := s.store.MarkRead(ctx, notificationID, userID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.NewWithReason(dErrors.CodeNotFound, dErrors.ReasonNotFound, "notification not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to mark notification read")
	}
	s.invalidate(ctx, userID)
	return nil
}

// MarkAllRead flags every unread notification of the caller.
func (s *Service) MarkAllRead(ctx context.Context) (string, error) {
	userID, err := requestcontext.RequireUserID(ctx)
	if err != nil {
		return "", err
	}
	n, err := s.store.MarkAllRead(ctx, userID)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to mark notifications read")
	}
	s.invalidate(ctx, userID)
	return fmt.Sprintf("Marked %d notifications as read", n), nil
}

func (s *Service) invalidate(ctx context.Context, userID id.UserID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		s.cacheFailed(ctx, "invalidate", userID, err)
	}
}

func (s *Service) cacheFailed(ctx context.Context, op string, userID id.UserID, err error) {
	if s.metrics != nil {
		s.metrics.IncCacheError()
	}
	s.logger.WarnContext(ctx, "unread cache operation failed",
		"request_id", requestcontext.RequestID(ctx),
		"op", op,
		"user_id", userID,
		"error", err,
	)
}
