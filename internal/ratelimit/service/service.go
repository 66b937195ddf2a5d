package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks BucketStore

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"time"

	"legatia/internal/ratelimit/metrics"
	"legatia/internal/ratelimit/models"
	id "legatia/pkg/domain"
	dErrors "legatia/pkg/domain-errors"
	"legatia/pkg/requestcontext"
)

// BucketStore records requests in a sliding window keyed by bucket.
type BucketStore interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration, now time.Time) (*models.RateLimitResult, error)
}

// Service applies per-user request limits by endpoint class.
type Service struct {
	buckets BucketStore
	limits  map[models.EndpointClass]models.Limit
	logger  *slog.Logger
	metrics *metrics.Metrics
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

// WithLimit overrides the allowance of one class.
func WithLimit(class models.EndpointClass, limit models.Limit) Option {
	return func(s *Service) {
		if limit.Requests > 0 && limit.Window > 0 {
			s.limits[class] = limit
		}
	}
}

func New(buckets BucketStore, opts ...Option) (*Service, error) {
	if buckets == nil {
		return nil, errors.New("buckets store is required")
	}
	s := &Service{
		buckets: buckets,
		limits:  models.DefaultLimits(),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// CheckUser records one request for userID. A class without a configured
// limit is denied.
func (s *Service) CheckUser(ctx context.Context, userID id.UserID, class models.EndpointClass) (*models.RateLimitResult, error) {
	now := requestcontext.Now(ctx)
	if s.metrics != nil {
		s.metrics.IncChecks(string(class))
	}

	limit, ok := s.limits[class]
	if !ok {
		s.logger.WarnContext(ctx, "rate limit config missing",
			"endpoint_class", class,
			"user_id", userID,
		)
		return &models.RateLimitResult{
			Allowed:    false,
			ResetAt:    now,
			RetryAfter: 60,
		}, nil
	}

	result, err := s.buckets.Allow(ctx, models.UserKey(userID.String(), class), limit.Requests, limit.Window, now)
	if err != nil {
		if s.metrics != nil {
			s.metrics.IncStoreFailure()
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check rate limit")
	}
	if !result.Allowed {
		result.RetryAfter = retryAfter(result.ResetAt, now)
		if s.metrics != nil {
			s.metrics.IncDenied(string(class))
		}
		s.logger.InfoContext(ctx, "user rate limit exceeded",
			"endpoint_class", class,
			"user_id", userID,
			"request_id", requestcontext.RequestID(ctx),
		)
	}
	return result, nil
}

func retryAfter(resetAt, now time.Time) int {
	secs := int(math.Ceil(resetAt.Sub(now).Seconds()))
	if secs < 1 {
		return 1
	}
	return secs
}
