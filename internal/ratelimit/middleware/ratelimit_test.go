package middleware

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"legatia/internal/ratelimit/models"
	id "legatia/pkg/domain"
	"legatia/pkg/testutil"
)

type stubLimiter struct {
	result *models.RateLimitResult
	err    error
	class  models.EndpointClass
}

func (l *stubLimiter) CheckUser(_ context.Context, _ id.UserID, class models.EndpointClass) (*models.RateLimitResult, error) {
	l.class = class
	return l.result, l.err
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func serve(m *Middleware, req *http.Request) (*httptest.ResponseRecorder, bool) {
	reached := false
	h := m.RateLimitAuthenticated(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr, reached
}

func authed(method, path string) *http.Request {
	return testutil.WithUserID(httptest.NewRequest(method, path, nil), uuid.NewString())
}

func TestRateLimitAuthenticated(t *testing.T) {
	reset := time.Unix(1_800_000_000, 0)

	t.Run("allowed requests carry quota headers", func(t *testing.T) {
		limiter := &stubLimiter{result: &models.RateLimitResult{Allowed: true, Limit: 30, Remaining: 29, ResetAt: reset}}
		rr, reached := serve(New(limiter, discard), authed(http.MethodPost, "/api/v1/claims"))

		assert.True(t, reached)
		assert.Equal(t, models.ClassWorkflow, limiter.class)
		assert.Equal(t, "30", rr.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, "29", rr.Header().Get("X-RateLimit-Remaining"))
		assert.Equal(t, "1800000000", rr.Header().Get("X-RateLimit-Reset"))
	})

	t.Run("denied requests get 429", func(t *testing.T) {
		limiter := &stubLimiter{result: &models.RateLimitResult{Allowed: false, Limit: 30, ResetAt: reset, RetryAfter: 12}}
		rr, reached := serve(New(limiter, discard), authed(http.MethodPost, "/api/v1/invitations"))

		require.False(t, reached)
		assert.Equal(t, http.StatusTooManyRequests, rr.Code)
		assert.Equal(t, "12", rr.Header().Get("Retry-After"))
		assert.Contains(t, rr.Body.String(), `"error":"rate_limit_exceeded"`)
	})

	t.Run("limiter failures let the request through", func(t *testing.T) {
		limiter := &stubLimiter{err: errors.New("redis down")}
		_, reached := serve(New(limiter, discard), authed(http.MethodGet, "/api/v1/notifications"))
		assert.True(t, reached)
	})

	t.Run("disabled middleware never checks", func(t *testing.T) {
		limiter := &stubLimiter{}
		_, reached := serve(New(limiter, discard, WithDisabled(true)), authed(http.MethodGet, "/api/v1/claims/mine"))
		assert.True(t, reached)
		assert.Empty(t, limiter.class)
	})
}
