package family

import (
	"context"
	"fmt"
	"sort"

	"legatia/internal/family/models"
	"legatia/internal/platform/memtx"
	id "legatia/pkg/domain"
	"legatia/pkg/platform/sentinel"
)

// InMemory stores family aggregates behind the shared memtx commit barrier.
// Every read and write goes through Clone so callers never alias stored slices.
type InMemory struct {
	db       *memtx.DB
	families map[id.FamilyID]*models.Family
}

func NewInMemory(db *memtx.DB) *InMemory {
	return &InMemory{db: db, families: make(map[id.FamilyID]*models.Family)}
}

func (s *InMemory) Create(ctx context.Context, f *models.Family) error {
	var exists bool
	s.db.View(func() { _, exists = s.families[f.ID] })
	if exists {
		return fmt.Errorf("family %s: %w", f.ID, sentinel.ErrConflict)
	}
	cp := f.Clone()
	s.db.Write(ctx, func() { s.families[cp.ID] = cp })
	return nil
}

func (s *InMemory) FindByID(_ context.Context, familyID id.FamilyID) (*models.Family, error) {
	var f *models.Family
	s.db.View(func() {
		if stored, ok := s.families[familyID]; ok {
			f = stored.Clone()
		}
	})
	if f == nil {
		return nil, sentinel.ErrNotFound
	}
	return f, nil
}

// Save replaces the whole aggregate.
func (s *InMemory) Save(ctx context.Context, f *models.Family) error {
	var exists bool
	s.db.View(func() { _, exists = s.families[f.ID] })
	if !exists {
		return sentinel.ErrNotFound
	}
	cp := f.Clone()
	s.db.Write(ctx, func() { s.families[cp.ID] = cp })
	return nil
}

// ListForUser returns families the user administers or is linked into.
func (s *InMemory) ListForUser(_ context.Context, userID id.UserID) ([]*models.Family, error) {
	return s.list(func(f *models.Family) bool { return f.CanView(userID) }), nil
}

func (s *InMemory) ListAdministeredBy(_ context.Context, userID id.UserID) ([]*models.Family, error) {
	return s.list(func(f *models.Family) bool { return f.IsAdmin(userID) }), nil
}

func (s *InMemory) ListVisible(_ context.Context) ([]*models.Family, error) {
	return s.list(func(f *models.Family) bool { return f.IsVisible }), nil
}

// list returns matching families ordered by creation time, then id.
func (s *InMemory) list(keep func(*models.Family) bool) []*models.Family {
	var out []*models.Family
	s.db.View(func() {
		for _, f := range s.families {
			if keep(f) {
				out = append(out, f.Clone())
			}
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out
}
