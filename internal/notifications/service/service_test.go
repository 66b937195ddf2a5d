package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"legatia/internal/notifications/models"
	"legatia/internal/notifications/service/mocks"
	notificationstore "legatia/internal/notifications/store/notification"
	"legatia/internal/platform/memtx"
	id "legatia/pkg/domain"
	dErrors "legatia/pkg/domain-errors"
	"legatia/pkg/optional"
	"legatia/pkg/platform/sentinel"
	"legatia/pkg/requestcontext"
	"legatia/pkg/testutil"
)

type ServiceSuite struct {
	suite.Suite
	store   *mocks.MockStore
	cache   *mocks.MockUnreadCache
	service *Service
	userID  id.UserID
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.store = mocks.NewMockStore(ctrl)
	s.cache = mocks.NewMockUnreadCache(ctrl)
	s.service = New(s.store, WithUnreadCache(s.cache))
	s.userID = id.UserID(uuid.New())
	s.ctx = testutil.AsUser(context.Background(), s.userID)
}

func (s *ServiceSuite) TestDispatch() {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), now)
	recipient := id.UserID(uuid.New())

	s.Run("writes the notification and invalidates the recipient count", func() {
		s.store.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, n *models.Notification) error {
				s.Equal(recipient, n.RecipientID)
				s.Equal(models.TypeFamilyInvitation, n.Type)
				s.False(n.Read)
				s.Equal(now, n.CreatedAt)
				s.False(n.ID.IsNil())
				return nil
			})
		s.cache.EXPECT().Invalidate(gomock.Any(), recipient).Return(nil)

		err := s.service.Dispatch(ctx, models.Draft{
			RecipientID: recipient,
			Title:       "Family Invitation from Does",
			Message:     "You have been invited",
			Type:        models.TypeFamilyInvitation,
			ActionURL:   optional.Some("/invitations/x"),
		})
		s.Require().NoError(err)
	})

	s.Run("fails closed when the store fails", func() {
		s.store.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

		err := s.service.Dispatch(ctx, models.Draft{RecipientID: recipient, Type: models.TypeSystemAlert})
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})

	s.Run("requires a recipient", func() {
		err := s.service.Dispatch(ctx, models.Draft{Type: models.TypeSystemAlert})
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})
}

func (s *ServiceSuite) TestDispatchInsideTransactionInvalidatesAfterCommit() {
	db := memtx.New()
	store := notificationstore.NewInMemory(db)
	svc := New(store, WithUnreadCache(s.cache))
	recipient := id.UserID(uuid.New())
	familyID := id.NewFamilyID()

	s.Run("invalidation waits for the commit", func() {
		committed := false
		s.cache.EXPECT().Invalidate(gomock.Any(), recipient).DoAndReturn(
			func(context.Context, id.UserID) error {
				s.True(committed, "invalidation ran before commit")
				return nil
			})

		err := db.RunInFamilyTx(context.Background(), familyID, func(ctx context.Context) error {
			if err := svc.Dispatch(ctx, models.Draft{RecipientID: recipient, Type: models.TypeFamilyUpdate}); err != nil {
				return err
			}
			committed = true
			return nil
		})
		s.Require().NoError(err)

		n, err := store.CountUnread(context.Background(), recipient)
		s.Require().NoError(err)
		s.Equal(1, n)
	})

	s.Run("a failed transition drops the notification and the invalidation", func() {
		err := db.RunInFamilyTx(context.Background(), familyID, func(ctx context.Context) error {
			if err := svc.Dispatch(ctx, models.Draft{RecipientID: recipient, Type: models.TypeFamilyUpdate}); err != nil {
				return err
			}
			return dErrors.New(dErrors.CodeConflict, "lost the race")
		})
		s.Require().Error(err)

		n, err := store.CountUnread(context.Background(), recipient)
		s.Require().NoError(err)
		s.Equal(1, n)
	})
}

func (s *ServiceSuite) TestUnreadCount() {
	s.Run("serves a cached count", func() {
		s.cache.EXPECT().Get(gomock.Any(), s.userID).Return(4, int64(2), true, nil)

		n, err := s.service.UnreadCount(s.ctx)
		s.Require().NoError(err)
		s.Equal(4, n)
	})

	s.Run("fills the cache on a miss with the observed generation", func() {
		s.cache.EXPECT().Get(gomock.Any(), s.userID).Return(0, int64(7), false, nil)
		s.store.EXPECT().CountUnread(gomock.Any(), s.userID).Return(2, nil)
		s.cache.EXPECT().Fill(gomock.Any(), s.userID, 2, int64(7)).Return(nil)

		n, err := s.service.UnreadCount(s.ctx)
		s.Require().NoError(err)
		s.Equal(2, n)
	})

	s.Run("skips the fill when the cache is down", func() {
		s.cache.EXPECT().Get(gomock.Any(), s.userID).Return(0, int64(0), false, errors.New("connection refused"))
		s.store.EXPECT().CountUnread(gomock.Any(), s.userID).Return(1, nil)

		n, err := s.service.UnreadCount(s.ctx)
		s.Require().NoError(err)
		s.Equal(1, n)
	})

	s.Run("a failed fill still returns the count", func() {
		s.cache.EXPECT().Get(gomock.Any(), s.userID).Return(0, int64(1), false, nil)
		s.store.EXPECT().CountUnread(gomock.Any(), s.userID).Return(3, nil)
		s.cache.EXPECT().Fill(gomock.Any(), s.userID, 3, int64(1)).Return(errors.New("connection refused"))

		n, err := s.service.UnreadCount(s.ctx)
		s.Require().NoError(err)
		s.Equal(3, n)
	})

	s.Run("requires authentication", func() {
		_, err := s.service.UnreadCount(context.Background())
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})
}

// A notification committed while a reader is counting must not be hidden by
// the reader's refill.
func (s *ServiceSuite) TestUnreadCountDispatchDuringRefill() {
	db := memtx.New()
	cache := newGenerationCache()
	store := &interleavedStore{Store: notificationstore.NewInMemory(db)}
	svc := New(store, WithUnreadCache(cache))
	ctx := testutil.AsUser(context.Background(), s.userID)

	store.afterCount = func() {
		err := db.RunInFamilyTx(context.Background(), id.NewFamilyID(), func(ctx context.Context) error {
			return svc.Dispatch(ctx, models.Draft{RecipientID: s.userID, Type: models.TypeGhostProfileClaim})
		})
		s.Require().NoError(err)
	}

	n, err := svc.UnreadCount(ctx)
	s.Require().NoError(err)
	s.Equal(0, n, "the first read counted before the dispatch")

	n, err = svc.UnreadCount(ctx)
	s.Require().NoError(err)
	s.Equal(1, n)

	n, err = svc.UnreadCount(ctx)
	s.Require().NoError(err)
	s.Equal(1, n, "served from the refilled cache")
}

type interleavedStore struct {
	Store
	afterCount func()
}

func (i *interleavedStore) CountUnread(ctx context.Context, recipient id.UserID) (int, error) {
	n, err := i.Store.CountUnread(ctx, recipient)
	if hook := i.afterCount; hook != nil {
		i.afterCount = nil
		hook()
	}
	return n, err
}

// generationCache mirrors the Redis cache's fill fencing in memory.
type generationCache struct {
	mu     sync.Mutex
	counts map[id.UserID]int
	gens   map[id.UserID]int64
}

func newGenerationCache() *generationCache {
	return &generationCache{counts: map[id.UserID]int{}, gens: map[id.UserID]int64{}}
}

func (c *generationCache) Get(_ context.Context, userID id.UserID) (int, int64, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, ok := c.counts[userID]
	return n, c.gens[userID], ok, nil
}

func (c *generationCache) Fill(_ context.Context, userID id.UserID, count int, gen int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gens[userID] == gen {
		c.counts[userID] = count
	}
	return nil
}

func (c *generationCache) Invalidate(_ context.Context, userID id.UserID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gens[userID]++
	delete(c.counts, userID)
	return nil
}

func (s *ServiceSuite) TestMarkRead() {
	notificationID := id.NewNotificationID()

	s.Run("marks and invalidates", func() {
		s.store.EXPECT().MarkRead(gomock.Any(), notificationID, s.userID).Return(nil)
		s.cache.EXPECT().Invalidate(gomock.Any(), s.userID).Return(nil)

		s.Require().NoError(s.service.MarkRead(s.ctx, notificationID))
	})

	s.Run("someone else's notification is not found", func() {
		s.store.EXPECT().MarkRead(gomock.Any(), notificationID, s.userID).Return(sentinel.ErrNotFound)

		err := s.service.MarkRead(s.ctx, notificationID)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *ServiceSuite) TestMarkAllRead() {
	s.store.EXPECT().MarkAllRead(gomock.Any(), s.userID).Return(3, nil)
	s.cache.EXPECT().Invalidate(gomock.Any(), s.userID).Return(nil)

	result, err := s.service.MarkAllRead(s.ctx)
	s.Require().NoError(err)
	s.Equal("Marked 3 notifications as read", result)
}

func (s *ServiceSuite) TestWithoutCache() {
	svc := New(s.store)
	s.store.EXPECT().CountUnread(gomock.Any(), s.userID).Return(5, nil)

	n, err := svc.UnreadCount(s.ctx)
	s.Require().NoError(err)
	s.Equal(5, n)
}
