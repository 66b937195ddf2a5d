package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"legatia/internal/ratelimit/models"
	id "legatia/pkg/domain"
	"legatia/pkg/platform/httputil"
	"legatia/pkg/requestcontext"
)

type RateLimiter interface {
	CheckUser(ctx context.Context, userID id.UserID, class models.EndpointClass) (*models.RateLimitResult, error)
}

type Middleware struct {
	limiter  RateLimiter
	logger   *slog.Logger
	disabled bool
}

type Option func(*Middleware)

// WithDisabled disables rate limiting entirely (for testing/demo mode).
func WithDisabled(disabled bool) Option {
	return func(m *Middleware) {
		m.disabled = disabled
	}
}

func New(limiter RateLimiter, logger *slog.Logger, opts ...Option) *Middleware {
	m := &Middleware{
		limiter: limiter,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.disabled {
		logger.Info("rate limiting disabled")
	}
	return m
}

// RateLimitAuthenticated limits the authenticated caller per endpoint class.
// It must run after the auth middleware. Store failures let the request
// through.
func (m *Middleware) RateLimitAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.disabled {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		userID, err := requestcontext.RequireUserID(ctx)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		class := models.Classify(r)

		result, err := m.limiter.CheckUser(ctx, userID, class)
		if err != nil {
			m.logger.ErrorContext(ctx, "failed to check user rate limit",
				"error", err,
				"user_id", userID,
				"endpoint_class", class,
			)
			next.ServeHTTP(w, r)
			return
		}

		addRateLimitHeaders(w, result)
		if !result.Allowed {
			writeUserRateLimitExceeded(w, result)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func addRateLimitHeaders(w http.ResponseWriter, result *models.RateLimitResult) {
	if result == nil {
		return
	}
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
}

func writeUserRateLimitExceeded(w http.ResponseWriter, result *models.RateLimitResult) {
	w.Header().Set("Retry-After", strconv.Itoa(result.RetryAfter))
	httputil.WriteJSON(w, http.StatusTooManyRequests, &models.UserRateLimitExceededResponse{
		Error:          "rate_limit_exceeded",
		Message:        "You have exceeded your request quota for this operation.",
		QuotaLimit:     result.Limit,
		QuotaRemaining: result.Remaining,
		QuotaReset:     result.ResetAt.Unix(),
	})
}
