package claim

import (
	"context"
	"fmt"
	"sort"
	"time"

	"legatia/internal/claims/models"
	"legatia/internal/platform/memtx"
	id "legatia/pkg/domain"
	"legatia/pkg/platform/sentinel"
)

// InMemory keeps claims behind the shared memtx commit barrier.
type InMemory struct {
	db     *memtx.DB
	claims map[id.ClaimID]*models.Claim
}

func NewInMemory(db *memtx.DB) *InMemory {
	return &InMemory{db: db, claims: make(map[id.ClaimID]*models.Claim)}
}

// Create stores a new claim. ErrConflict when the id exists; one Pending
// claim per (requester, member) is checked by the service under the family
// lock.
func (s *InMemory) Create(ctx context.Context, c *models.Claim) error {
	var exists bool
	s.db.View(func() { _, exists = s.claims[c.ID] })
	if exists {
		return fmt.Errorf("claim %s: %w", c.ID, sentinel.ErrConflict)
	}
	cp := c.Clone()
	s.db.Write(ctx, func() { s.claims[cp.ID] = cp })
	return nil
}

func (s *InMemory) FindByID(_ context.Context, claimID id.ClaimID) (*models.Claim, error) {
	var c *models.Claim
	s.db.View(func() {
		if stored, ok := s.claims[claimID]; ok {
			c = stored.Clone()
		}
	})
	if c == nil {
		return nil, sentinel.ErrNotFound
	}
	return c, nil
}

func (s *InMemory) Save(ctx context.Context, c *models.Claim) error {
	var exists bool
	s.db.View(func() { _, exists = s.claims[c.ID] })
	if !exists {
		return sentinel.ErrNotFound
	}
	cp := c.Clone()
	s.db.Write(ctx, func() { s.claims[cp.ID] = cp })
	return nil
}

// ListByRequester returns the requester's claims, newest first.
func (s *InMemory) ListByRequester(_ context.Context, requester id.UserID) ([]*models.Claim, error) {
	return s.list(func(c *models.Claim) bool { return c.RequesterID == requester }), nil
}

// ListPendingByFamilies returns Pending claims on any of the families, newest first.
func (s *InMemory) ListPendingByFamilies(_ context.Context, familyIDs []id.FamilyID) ([]*models.Claim, error) {
	wanted := make(map[id.FamilyID]struct{}, len(familyIDs))
	for _, fid := range familyIDs {
		wanted[fid] = struct{}{}
	}
	return s.list(func(c *models.Claim) bool {
		_, ok := wanted[c.FamilyID]
		return ok && c.Status == models.StatusPending
	}), nil
}

func (s *InMemory) ListPendingByMember(_ context.Context, memberID id.MemberID) ([]*models.Claim, error) {
	return s.list(func(c *models.Claim) bool {
		return c.MemberID == memberID && c.Status == models.StatusPending
	}), nil
}

// ListStalePending returns Pending claims created at or before cutoff.
func (s *InMemory) ListStalePending(_ context.Context, cutoff time.Time) ([]*models.Claim, error) {
	return s.list(func(c *models.Claim) bool {
		return c.Status == models.StatusPending && !c.CreatedAt.After(cutoff)
	}), nil
}

func (s *InMemory) list(keep func(*models.Claim) bool) []*models.Claim {
	out := []*models.Claim{}
	s.db.View(func() {
		for _, c := range s.claims {
			if keep(c) {
				out = append(out, c.Clone())
			}
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out
}
