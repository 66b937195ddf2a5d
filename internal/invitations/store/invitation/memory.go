package invitation

import (
	"context"
	"fmt"
	"sort"
	"time"

	"legatia/internal/invitations/models"
	"legatia/internal/platform/memtx"
	id "legatia/pkg/domain"
	"legatia/pkg/platform/sentinel"
)

type InMemory struct {
	db          *memtx.DB
	invitations map[id.InvitationID]*models.Invitation
}

func NewInMemory(db *memtx.DB) *InMemory {
	return &InMemory{db: db, invitations: make(map[id.InvitationID]*models.Invitation)}
}

// Create stores a new invitation. ErrConflict when the id exists; one Pending
// invitation per (family, invitee) is checked by the service under the
// family lock.
func (s *InMemory) Create(ctx context.Context, inv *models.Invitation) error {
	var exists bool
	s.db.View(func() { _, exists = s.invitations[inv.ID] })
	if exists {
		return fmt.Errorf("invitation %s: %w", inv.ID, sentinel.ErrConflict)
	}
	cp := inv.Clone()
	s.db.Write(ctx, func() { s.invitations[cp.ID] = cp })
	return nil
}

func (s *InMemory) FindByID(_ context.Context, invitationID id.InvitationID) (*models.Invitation, error) {
	var inv *models.Invitation
	s.db.View(func() {
		if stored, ok := s.invitations[invitationID]; ok {
			inv = stored.Clone()
		}
	})
	if inv == nil {
		return nil, sentinel.ErrNotFound
	}
	return inv, nil
}

func (s *InMemory) Save(ctx context.Context, inv *models.Invitation) error {
	var exists bool
	s.db.View(func() { _, exists = s.invitations[inv.ID] })
	if !exists {
		return sentinel.ErrNotFound
	}
	cp := inv.Clone()
	s.db.Write(ctx, func() { s.invitations[cp.ID] = cp })
	return nil
}

// ListByInvitee returns invitations received by the user, newest first.
func (s *InMemory) ListByInvitee(_ context.Context, invitee id.UserID) ([]*models.Invitation, error) {
	return s.list(func(inv *models.Invitation) bool { return inv.InviteeID == invitee }), nil
}

// ListByInviter returns invitations sent by the user, newest first.
func (s *InMemory) ListByInviter(_ context.Context, inviter id.UserID) ([]*models.Invitation, error) {
	return s.list(func(inv *models.Invitation) bool { return inv.InviterID == inviter }), nil
}

func (s *InMemory) ListPendingByFamily(_ context.Context, familyID id.FamilyID) ([]*models.Invitation, error) {
	return s.list(func(inv *models.Invitation) bool {
		return inv.FamilyID == familyID && inv.Status == models.StatusPending
	}), nil
}

// ListStalePending returns Pending invitations created at or before cutoff.
func (s *InMemory) ListStalePending(_ context.Context, cutoff time.Time) ([]*models.Invitation, error) {
	return s.list(func(inv *models.Invitation) bool {
		return inv.Status == models.StatusPending && !inv.CreatedAt.After(cutoff)
	}), nil
}

func (s *InMemory) list(keep func(*models.Invitation) bool) []*models.Invitation {
	out := []*models.Invitation{}
	s.db.View(func() {
		for _, inv := range s.invitations {
			if keep(inv) {
				out = append(out, inv.Clone())
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
