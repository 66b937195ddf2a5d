package profile

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"legatia/internal/identity/models"
	"legatia/internal/platform/memtx"
	id "legatia/pkg/domain"
	"legatia/pkg/platform/sentinel"
)

type ProfileStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func (s *ProfileStoreSuite) SetupTest() {
	s.store = NewInMemory(memtx.New())
	s.ctx = context.Background()
}

func TestProfileStoreSuite(t *testing.T) {
	suite.Run(t, new(ProfileStoreSuite))
}

func (s *ProfileStoreSuite) newProfile(fullName, surname string) *models.Profile {
	now := time.Now()
	return &models.Profile{
		UserID:         id.UserID(uuid.New()),
		FullName:       fullName,
		SurnameAtBirth: surname,
		Sex:            "female",
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func (s *ProfileStoreSuite) TestCreate() {
	s.Run("stores a copy of the profile", func() {
		p := s.newProfile("Jane Doe", "Smith")
		s.Require().NoError(s.store.Create(s.ctx, p))

		p.FullName = "mutated"
		got, err := s.store.FindByUserID(s.ctx, p.UserID)
		s.Require().NoError(err)
		s.Equal("Jane Doe", got.FullName)
	})

	s.Run("rejects a second profile for the same user", func() {
		p := s.newProfile("John Roe", "Roe")
		s.Require().NoError(s.store.Create(s.ctx, p))
		err := s.store.Create(s.ctx, p)
		s.Require().ErrorIs(err, sentinel.ErrConflict)
	})
}

func (s *ProfileStoreSuite) TestFindByUserID() {
	s.Run("returns ErrNotFound for unknown user", func() {
		_, err := s.store.FindByUserID(s.ctx, id.UserID(uuid.New()))
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *ProfileStoreSuite) TestUpdate() {
	s.Run("replaces the stored profile", func() {
		p := s.newProfile("Jane Doe", "Smith")
		s.Require().NoError(s.store.Create(s.ctx, p))
		p.BirthCity = "Lyon"
		s.Require().NoError(s.store.Update(s.ctx, p))

		got, err := s.store.FindByUserID(s.ctx, p.UserID)
		s.Require().NoError(err)
		s.Equal("Lyon", got.BirthCity)
	})

	s.Run("returns ErrNotFound when the profile does not exist", func() {
		err := s.store.Update(s.ctx, s.newProfile("Nobody", "Nobody"))
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *ProfileStoreSuite) TestSearch() {
	caller := s.newProfile("Jane Caller", "Doe")
	jane := s.newProfile("Jane Doe", "Smith")
	john := s.newProfile("John Doe", "Doe")
	other := s.newProfile("Alice Martin", "Martin")
	for _, p := range []*models.Profile{caller, jane, john, other} {
		s.Require().NoError(s.store.Create(s.ctx, p))
	}

	s.Run("matches name and surname case-insensitively and excludes the caller", func() {
		got, err := s.store.Search(s.ctx, "DOE", caller.UserID, 20)
		s.Require().NoError(err)
		s.Require().Len(got, 2)
		s.Equal("Jane Doe", got[0].FullName)
		s.Equal("John Doe", got[1].FullName)
	})

	s.Run("matches on user id", func() {
		got, err := s.store.Search(s.ctx, other.UserID.String()[:8], caller.UserID, 20)
		s.Require().NoError(err)
		s.Require().NotEmpty(got)
		s.Equal(other.UserID, got[0].UserID)
	})

	s.Run("applies the limit", func() {
		got, err := s.store.Search(s.ctx, "o", caller.UserID, 1)
		s.Require().NoError(err)
		s.Len(got, 1)
	})
}
