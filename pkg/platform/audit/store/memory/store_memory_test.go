package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"legatia/internal/platform/memtx"
	id "legatia/pkg/domain"
	audit "legatia/pkg/platform/audit"
)

type StoreSuite struct {
	suite.Suite
	db    *memtx.DB
	store *InMemoryStore
	ctx   context.Context
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) SetupTest() {
	s.db = memtx.New()
	s.store = NewInMemoryStore(s.db)
	s.ctx = context.Background()
}

func (s *StoreSuite) TestAppendCommitsWithTransaction() {
	familyID := id.NewFamilyID()

	s.Run("discarded when the transaction fails", func() {
		err := s.db.RunInFamilyTx(s.ctx, familyID, func(ctx context.Context) error {
			s.Require().NoError(s.store.Append(ctx, audit.Event{Action: "claim_approved", FamilyID: familyID}))
			return errors.New("boom")
		})
		s.Require().Error(err)
		events, err := s.store.ListAll(s.ctx)
		s.Require().NoError(err)
		s.Empty(events)
	})

	s.Run("visible once committed", func() {
		err := s.db.RunInFamilyTx(s.ctx, familyID, func(ctx context.Context) error {
			return s.store.Append(ctx, audit.Event{Action: "claim_approved", FamilyID: familyID})
		})
		s.Require().NoError(err)
		events, err := s.store.ListAll(s.ctx)
		s.Require().NoError(err)
		s.Len(events, 1)
	})
}

func (s *StoreSuite) TestOutbox() {
	for i := 0; i < 3; i++ {
		s.Require().NoError(s.store.Append(s.ctx, audit.Event{Action: "claim_submitted"}))
	}

	batch, err := s.store.FetchUnpublished(s.ctx, 2)
	s.Require().NoError(err)
	s.Require().Len(batch, 2)
	s.Require().NoError(s.store.MarkPublished(s.ctx, []string{batch[0].ID, batch[1].ID}))

	rest, err := s.store.FetchUnpublished(s.ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(rest, 1)
	s.NotEqual(batch[0].ID, rest[0].ID)
}
