package profile

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"legatia/internal/identity/models"
	"legatia/internal/platform/memtx"
	id "legatia/pkg/domain"
	"legatia/pkg/platform/sentinel"
)

// InMemory stores profiles behind the shared memtx commit barrier.
type InMemory struct {
	db       *memtx.DB
	profiles map[id.UserID]models.Profile
}

func NewInMemory(db *memtx.DB) *InMemory {
	return &InMemory{db: db, profiles: make(map[id.UserID]models.Profile)}
}

// Create inserts a profile; ErrConflict if the user already has one.
func (s *InMemory) Create(ctx context.Context, p *models.Profile) error {
	var exists bool
	s.db.View(func() { _, exists = s.profiles[p.UserID] })
	if exists {
		return fmt.Errorf("profile for %s: %w", p.UserID, sentinel.ErrConflict)
	}
	cp := *p
	s.db.Write(ctx, func() { s.profiles[cp.UserID] = cp })
	return nil
}

func (s *InMemory) FindByUserID(_ context.Context, userID id.UserID) (*models.Profile, error) {
	var (
		p  models.Profile
		ok bool
	)
	s.db.View(func() { p, ok = s.profiles[userID] })
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &p, nil
}

func (s *InMemory) Update(ctx context.Context, p *models.Profile) error {
	var exists bool
	s.db.View(func() { _, exists = s.profiles[p.UserID] })
	if !exists {
		return sentinel.ErrNotFound
	}
	cp := *p
	s.db.Write(ctx, func() { s.profiles[cp.UserID] = cp })
	return nil
}

// Search returns up to limit profiles whose id, full name or surname contains
// query (case-insensitive), excluding the caller, ordered by name.
func (s *InMemory) Search(_ context.Context, query string, exclude id.UserID, limit int) ([]*models.Profile, error) {
	lower := strings.ToLower(query)
	var out []*models.Profile
	s.db.View(func() {
		for userID, p := range s.profiles {
			if userID == exclude || !p.Matches(lower) {
				continue
			}
			cp := p
			out = append(out, &cp)
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].FullName != out[j].FullName {
			return out[i].FullName < out[j].FullName
		}
		return out[i].UserID.String() < out[j].UserID.String()
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
