package family

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"legatia/internal/family/models"
	"legatia/internal/platform/memtx"
	id "legatia/pkg/domain"
	"legatia/pkg/optional"
	"legatia/pkg/platform/sentinel"
)

type FamilyStoreSuite struct {
	suite.Suite
	db    *memtx.DB
	store *InMemory
	ctx   context.Context
	admin id.UserID
	now   time.Time
}

func TestFamilyStoreSuite(t *testing.T) {
	suite.Run(t, new(FamilyStoreSuite))
}

func (s *FamilyStoreSuite) SetupTest() {
	s.db = memtx.New()
	s.store = NewInMemory(s.db)
	s.ctx = context.Background()
	s.admin = id.UserID(uuid.New())
	s.now = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
}

func (s *FamilyStoreSuite) newFamily(name string, offset time.Duration, visible bool) *models.Family {
	f, err := models.NewFamily(id.NewFamilyID(), s.admin, name, "", visible, s.now.Add(offset))
	s.Require().NoError(err)
	_, err = f.AddGhost(id.NewMemberID(), models.MemberFields{
		FullName: "Jane Doe", SurnameAtBirth: "Doe", Sex: "female", Relationship: "aunt",
		Birthday: optional.Some("1950-01-01"),
	}, s.admin, s.now)
	s.Require().NoError(err)
	return f
}

func (s *FamilyStoreSuite) TestCreateAndFind() {
	s.Run("round-trips the aggregate without aliasing", func() {
		f := s.newFamily("The Does", 0, true)
		s.Require().NoError(s.store.Create(s.ctx, f))
		f.Members[0].FullName = "mutated"

		got, err := s.store.FindByID(s.ctx, f.ID)
		s.Require().NoError(err)
		s.Equal("Jane Doe", got.Members[0].FullName)

		got.Members[0].FullName = "mutated again"
		again, err := s.store.FindByID(s.ctx, f.ID)
		s.Require().NoError(err)
		s.Equal("Jane Doe", again.Members[0].FullName)
	})

	s.Run("rejects a duplicate id", func() {
		f := s.newFamily("The Roes", 0, true)
		s.Require().NoError(s.store.Create(s.ctx, f))
		s.Require().ErrorIs(s.store.Create(s.ctx, f), sentinel.ErrConflict)
	})

	s.Run("returns ErrNotFound for unknown ids", func() {
		_, err := s.store.FindByID(s.ctx, id.NewFamilyID())
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *FamilyStoreSuite) TestSave() {
	f := s.newFamily("The Does", 0, true)
	s.Require().NoError(s.store.Create(s.ctx, f))

	user := id.UserID(uuid.New())
	s.Require().NoError(f.LinkMember(f.Members[0].ID, user, s.now))
	s.Require().NoError(s.store.Save(s.ctx, f))

	got, err := s.store.FindByID(s.ctx, f.ID)
	s.Require().NoError(err)
	s.True(got.HasLinked(user))

	s.Require().ErrorIs(s.store.Save(s.ctx, s.newFamily("Unsaved", 0, true)), sentinel.ErrNotFound)
}

func (s *FamilyStoreSuite) TestSaveInsideTransactionIsStaged() {
	f := s.newFamily("The Does", 0, true)
	s.Require().NoError(s.store.Create(s.ctx, f))

	err := s.db.RunInFamilyTx(s.ctx, f.ID, func(ctx context.Context) error {
		f.SetVisibility(false, s.now)
		s.Require().NoError(s.store.Save(ctx, f))

		committed, err := s.store.FindByID(s.ctx, f.ID)
		s.Require().NoError(err)
		s.True(committed.IsVisible, "staged writes are invisible before commit")
		return nil
	})
	s.Require().NoError(err)

	got, err := s.store.FindByID(s.ctx, f.ID)
	s.Require().NoError(err)
	s.False(got.IsVisible)
}

func (s *FamilyStoreSuite) TestLists() {
	older := s.newFamily("Older", 0, true)
	newer := s.newFamily("Newer", time.Hour, true)
	hidden := s.newFamily("Hidden", 2*time.Hour, false)
	for _, f := range []*models.Family{newer, hidden, older} {
		s.Require().NoError(s.store.Create(s.ctx, f))
	}

	s.Run("ListVisible skips hidden families and orders by creation", func() {
		got, err := s.store.ListVisible(s.ctx)
		s.Require().NoError(err)
		s.Require().Len(got, 2)
		s.Equal(older.ID, got[0].ID)
		s.Equal(newer.ID, got[1].ID)
	})

	s.Run("ListAdministeredBy returns every family of the admin", func() {
		got, err := s.store.ListAdministeredBy(s.ctx, s.admin)
		s.Require().NoError(err)
		s.Len(got, 3)
	})

	s.Run("ListForUser includes families the user is linked into", func() {
		user := id.UserID(uuid.New())
		s.Require().NoError(newer.LinkMember(newer.Members[0].ID, user, s.now))
		s.Require().NoError(s.store.Save(s.ctx, newer))

		got, err := s.store.ListForUser(s.ctx, user)
		s.Require().NoError(err)
		s.Require().Len(got, 1)
		s.Equal(newer.ID, got[0].ID)
	})
}
