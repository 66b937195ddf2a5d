//go:build integration

package claim_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"legatia/internal/claims/models"
	"legatia/internal/claims/store/claim"
	familymodels "legatia/internal/family/models"
	identitymodels "legatia/internal/identity/models"
	"legatia/internal/platform/postgres"
	id "legatia/pkg/domain"
	"legatia/pkg/optional"
	"legatia/pkg/platform/sentinel"
	"legatia/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *claim.PostgresStore
	family   id.FamilyID
	member   *familymodels.Member
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
	s.store = claim.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "claims"))
	s.family = id.NewFamilyID()
	s.member = &familymodels.Member{
		ID: id.NewMemberID(), FamilyID: s.family, FullName: "Jane Doe", SurnameAtBirth: "Doe",
		Sex: "female", Relationship: "aunt", BirthCity: optional.Some("Lyon"),
	}
	s.now = time.Now().UTC().Truncate(time.Microsecond)
}

func (s *PostgresStoreSuite) newClaim(requester id.UserID, at time.Time) *models.Claim {
	profile := &identitymodels.Profile{UserID: requester, FullName: "Jane Doe", SurnameAtBirth: "Doe", Sex: "female"}
	return models.NewClaim(id.NewClaimID(), profile, s.family, s.member, at)
}

func (s *PostgresStoreSuite) TestRoundTrip() {
	ctx := context.Background()
	c := s.newClaim(id.UserID(uuid.New()), s.now)
	s.Require().NoError(s.store.Create(ctx, c))

	got, err := s.store.FindByID(ctx, c.ID)
	s.Require().NoError(err)
	s.Equal(c.RequesterProfile, got.RequesterProfile)
	s.Equal(c.Member, got.Member)
	s.Equal(models.StatusPending, got.Status)
	s.False(got.DecidedAt.IsSet())

	s.Require().NoError(got.Approve(optional.Some("Welcome"), s.now.Add(time.Minute)))
	s.Require().NoError(s.store.Save(ctx, got))

	saved, err := s.store.FindByID(ctx, c.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusApproved, saved.Status)
	s.Equal(optional.Some("Welcome"), saved.AdminMessage)
	s.True(saved.DecidedAt.IsSet())

	_, err = s.store.FindByID(ctx, id.NewClaimID())
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestOnePendingClaimPerRequesterAndMember() {
	ctx := context.Background()
	requester := id.UserID(uuid.New())
	s.Require().NoError(s.store.Create(ctx, s.newClaim(requester, s.now)))

	err := s.store.Create(ctx, s.newClaim(requester, s.now.Add(time.Second)))
	s.ErrorIs(err, sentinel.ErrConflict)

	s.Require().NoError(s.store.Create(ctx, s.newClaim(id.UserID(uuid.New()), s.now)))
}

func (s *PostgresStoreSuite) TestListing() {
	ctx := context.Background()
	jane := id.UserID(uuid.New())
	older := s.newClaim(jane, s.now)
	s.Require().NoError(s.store.Create(ctx, older))

	s.member.ID = id.NewMemberID()
	newer := s.newClaim(jane, s.now.Add(time.Hour))
	s.Require().NoError(s.store.Create(ctx, newer))

	mine, err := s.store.ListByRequester(ctx, jane)
	s.Require().NoError(err)
	s.Require().Len(mine, 2)
	s.Equal(newer.ID, mine[0].ID)

	pending, err := s.store.ListPendingByFamilies(ctx, []id.FamilyID{s.family})
	s.Require().NoError(err)
	s.Len(pending, 2)

	byMember, err := s.store.ListPendingByMember(ctx, newer.MemberID)
	s.Require().NoError(err)
	s.Require().Len(byMember, 1)
	s.Equal(newer.ID, byMember[0].ID)

	stale, err := s.store.ListStalePending(ctx, s.now)
	s.Require().NoError(err)
	s.Require().Len(stale, 1)
	s.Equal(older.ID, stale[0].ID)
}

func (s *PostgresStoreSuite) TestWritesJoinTheTransaction() {
	c := s.newClaim(id.UserID(uuid.New()), s.now)
	db := s.postgres.DB

	err := postgres.WithTx(context.Background(), db, func(ctx context.Context, _ *sql.Tx) error {
		s.Require().NoError(s.store.Create(ctx, c))
		return sentinel.ErrInvalidState
	})
	s.ErrorIs(err, sentinel.ErrInvalidState)

	_, err = s.store.FindByID(context.Background(), c.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)
}
