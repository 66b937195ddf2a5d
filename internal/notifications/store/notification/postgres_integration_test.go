//go:build integration

package notification_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"legatia/internal/notifications/models"
	"legatia/internal/notifications/store/notification"
	id "legatia/pkg/domain"
	"legatia/pkg/optional"
	"legatia/pkg/platform/sentinel"
	"legatia/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *notification.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.store = notification.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "notifications"))
}

func (s *PostgresStoreSuite) add(recipient id.UserID, at time.Time) *models.Notification {
	n := models.Draft{
		RecipientID: recipient,
		Title:       "Family Invitation from Does",
		Message:     "You have been invited",
		Type:        models.TypeFamilyInvitation,
		ActionURL:   optional.Some("/invitations/1"),
	}.Build(id.NewNotificationID(), at.UTC().Truncate(time.Microsecond))
	s.Require().NoError(s.store.Create(context.Background(), n))
	return n
}

func (s *PostgresStoreSuite) TestRoundTripAndOrdering() {
	ctx := context.Background()
	userID := id.UserID(uuid.New())
	base := time.Now()
	older := s.add(userID, base)
	newer := s.add(userID, base.Add(time.Second))

	got, err := s.store.ListByRecipient(ctx, userID)
	s.Require().NoError(err)
	s.Require().Len(got, 2)
	s.Equal(newer.ID, got[0].ID)
	s.Equal(older.ID, got[1].ID)
	s.Equal(optional.Some("/invitations/1"), got[0].ActionURL)
	s.False(got[0].Metadata.IsSet())
	s.True(newer.CreatedAt.Equal(got[0].CreatedAt))
}

func (s *PostgresStoreSuite) TestReadFlags() {
	ctx := context.Background()
	userID := id.UserID(uuid.New())
	other := id.UserID(uuid.New())
	first := s.add(userID, time.Now())
	s.add(userID, time.Now())

	s.ErrorIs(s.store.MarkRead(ctx, first.ID, other), sentinel.ErrNotFound)
	s.Require().NoError(s.store.MarkRead(ctx, first.ID, userID))

	count, err := s.store.CountUnread(ctx, userID)
	s.Require().NoError(err)
	s.Equal(1, count)

	changed, err := s.store.MarkAllRead(ctx, userID)
	s.Require().NoError(err)
	s.Equal(1, changed)
}
