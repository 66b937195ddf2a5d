//go:build integration

package invitation_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"legatia/internal/invitations/models"
	"legatia/internal/invitations/store/invitation"
	id "legatia/pkg/domain"
	"legatia/pkg/optional"
	"legatia/pkg/platform/sentinel"
	"legatia/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *invitation.PostgresStore
	family   id.FamilyID
	admin    id.UserID
	now      time.Time
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.store = invitation.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "invitations"))
	s.family = id.NewFamilyID()
	s.admin = id.UserID(uuid.New())
	s.now = time.Now().UTC().Truncate(time.Microsecond)
}

func (s *PostgresStoreSuite) newInvitation(invitee id.UserID, at time.Time) *models.Invitation {
	inv, err := models.NewInvitation(id.NewInvitationID(), s.family, "The Does", s.admin, "Alice Doe",
		invitee, "cousin", optional.Some("Join us"), at)
	s.Require().NoError(err)
	return inv
}

func (s *PostgresStoreSuite) TestRoundTrip() {
	ctx := context.Background()
	inv := s.newInvitation(id.UserID(uuid.New()), s.now)
	s.Require().NoError(s.store.Create(ctx, inv))

	got, err := s.store.FindByID(ctx, inv.ID)
	s.Require().NoError(err)
	s.Equal(inv.FamilyName, got.FamilyName)
	s.Equal(optional.Some("Join us"), got.Message)
	s.False(got.RespondedAt.IsSet())

	s.Require().NoError(got.Accept(s.now.Add(time.Minute)))
	s.Require().NoError(s.store.Save(ctx, got))

	saved, err := s.store.FindByID(ctx, inv.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusAccepted, saved.Status)
	s.True(saved.RespondedAt.IsSet())

	s.ErrorIs(s.store.Save(ctx, s.newInvitation(id.UserID(uuid.New()), s.now)), sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestOnePendingInvitationPerInvitee() {
	ctx := context.Background()
	invitee := id.UserID(uuid.New())
	s.Require().NoError(s.store.Create(ctx, s.newInvitation(invitee, s.now)))
	s.ErrorIs(s.store.Create(ctx, s.newInvitation(invitee, s.now)), sentinel.ErrConflict)
}

func (s *PostgresStoreSuite) TestListing() {
	ctx := context.Background()
	bob := id.UserID(uuid.New())
	older := s.newInvitation(bob, s.now)
	newer := s.newInvitation(id.UserID(uuid.New()), s.now.Add(time.Hour))
	s.Require().NoError(s.store.Create(ctx, older))
	s.Require().NoError(s.store.Create(ctx, newer))

	sent, err := s.store.ListByInviter(ctx, s.admin)
	s.Require().NoError(err)
	s.Require().Len(sent, 2)
	s.Equal(newer.ID, sent[0].ID)

	received, err := s.store.ListByInvitee(ctx, bob)
	s.Require().NoError(err)
	s.Require().Len(received, 1)

	pending, err := s.store.ListPendingByFamily(ctx, s.family)
	s.Require().NoError(err)
	s.Len(pending, 2)

	stale, err := s.store.ListStalePending(ctx, s.now)
	s.Require().NoError(err)
	s.Require().Len(stale, 1)
	s.Equal(older.ID, stale[0].ID)
}
