package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"legatia/internal/client"
	familyhandler "legatia/internal/family/handler"
	"legatia/pkg/optional"
)

type SQLiteStoreSuite struct {
	suite.Suite
	ctx   context.Context
	store *SQLiteStore
}

func TestSQLiteStoreSuite(t *testing.T) {
	suite.Run(t, new(SQLiteStoreSuite))
}

func (s *SQLiteStoreSuite) SetupTest() {
	s.ctx = context.Background()
	st, err := Open(":memory:")
	s.Require().NoError(err)
	s.store = st
}

func (s *SQLiteStoreSuite) TearDownTest() {
	s.NoError(s.store.Close())
}

func (s *SQLiteStoreSuite) TestEmptyDatabaseLoadsEmptyCache() {
	c, err := s.store.Load(s.ctx)
	s.Require().NoError(err)
	s.Equal(client.NewCache(), c)
}

func (s *SQLiteStoreSuite) TestSaveAndLoad() {
	c := client.NewCache()
	c.Families["f1"] = client.Family{
		ID:   "f1",
		Name: "Doe",
		Members: []familyhandler.MemberResponse{
			{ID: "m1", FullName: "Jane Doe", LinkedUserID: optional.Some("u1"), Events: []familyhandler.EventResponse{}},
		},
	}
	c.MyClaims["c1"] = client.Claim{ID: "c1", Status: "pending", AdminMessage: optional.None[string]()}
	c.ReceivedInvitations["i1"] = client.Invitation{ID: "i1", Message: optional.Some("Hi")}
	c.Notifications["n1"] = client.Notification{ID: "n1", IsRead: true, ActionURL: optional.Some("/claims/pending")}
	c.Matches = []client.Match{
		{MemberID: "m2", SimilarityScore: 90},
		{MemberID: "m1", SimilarityScore: 80},
	}
	c.UnreadCount = 4

	s.Require().NoError(s.store.Save(s.ctx, c))
	got, err := s.store.Load(s.ctx)
	s.Require().NoError(err)
	s.Equal(c, got)
}

func (s *SQLiteStoreSuite) TestSaveReplacesPreviousSnapshot() {
	first := client.NewCache()
	first.PendingClaims["c1"] = client.Claim{ID: "c1"}
	s.Require().NoError(s.store.Save(s.ctx, first))

	second := client.NewCache()
	second.SentInvitations["i1"] = client.Invitation{ID: "i1"}
	s.Require().NoError(s.store.Save(s.ctx, second))

	got, err := s.store.Load(s.ctx)
	s.Require().NoError(err)
	s.Empty(got.PendingClaims)
	s.Contains(got.SentInvitations, "i1")
}
