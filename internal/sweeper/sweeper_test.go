package sweeper

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"legatia/internal/sweeper/mocks"
)

func quiet() Option {
	return WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestRunOnce(t *testing.T) {
	t.Run("sums every expirer", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		claims := mocks.NewMockExpirer(ctrl)
		invitations := mocks.NewMockExpirer(ctrl)
		claims.EXPECT().ExpireStale(gomock.Any()).Return(2, nil)
		invitations.EXPECT().ExpireStale(gomock.Any()).Return(3, nil)

		s := New(map[string]Expirer{"claims": claims, "invitations": invitations}, quiet())
		n, err := s.RunOnce(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 5, n)
	})

	t.Run("reports a failing expirer", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		claims := mocks.NewMockExpirer(ctrl)
		claims.EXPECT().ExpireStale(gomock.Any()).Return(0, errors.New("store unavailable"))

		s := New(map[string]Expirer{"claims": claims}, quiet())
		_, err := s.RunOnce(context.Background())
		require.Error(t, err)
	})
}

func TestRun_StopsOnCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	claims := mocks.NewMockExpirer(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	swept := make(chan struct{}, 1)
	claims.EXPECT().ExpireStale(gomock.Any()).DoAndReturn(func(context.Context) (int, error) {
		select {
		case swept <- struct{}{}:
		default:
		}
		return 0, nil
	}).MinTimes(1)

	s := New(map[string]Expirer{"claims": claims}, quiet(), WithInterval(time.Hour))
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	select {
	case <-swept:
	case <-time.After(5 * time.Second):
		t.Fatal("sweeper did not run on start")
	}
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("sweeper did not stop")
	}
}
