package notification

import (
	"context"
	"fmt"
	"sort"

	"legatia/internal/notifications/models"
	"legatia/internal/platform/memtx"
	id "legatia/pkg/domain"
	"legatia/pkg/platform/sentinel"
)

type InMemory struct {
	db    *memtx.DB
	byID  map[id.NotificationID]models.Notification
	inbox map[id.UserID][]id.NotificationID
}

func NewInMemory(db *memtx.DB) *InMemory {
	return &InMemory{
		db:    db,
		byID:  make(map[id.NotificationID]models.Notification),
		inbox: make(map[id.UserID][]id.NotificationID),
	}
}

func (s *InMemory) Create(ctx context.Context, n *models.Notification) error {
	var exists bool
	s.db.View(func() { _, exists = s.byID[n.ID] })
	if exists {
		return fmt.Errorf("notification %s: %w", n.ID, sentinel.ErrConflict)
	}
	cp := *n
	s.db.Write(ctx, func() {
		s.byID[cp.ID] = cp
		s.inbox[cp.RecipientID] = append(s.inbox[cp.RecipientID], cp.ID)
	})
	return nil
}

// ListByRecipient returns the recipient's notifications, newest first.
func (s *InMemory) ListByRecipient(_ context.Context, recipient id.UserID) ([]*models.Notification, error) {
	var out []*models.Notification
	s.db.View(func() {
		for _, nid := range s.inbox[recipient] {
			n := s.byID[nid]
			out = append(out, &n)
		}
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *InMemory) CountUnread(_ context.Context, recipient id.UserID) (int, error) {
	count := 0
	s.db.View(func() {
		for _, nid := range s.inbox[recipient] {
			if !s.byID[nid].Read {
				count++
			}
		}
	})
	return count, nil
}

// MarkRead flags one notification. ErrNotFound when it does not exist or
// belongs to someone else.
func (s *InMemory) MarkRead(ctx context.Context, notificationID id.NotificationID, recipient id.UserID) error {
	var (
		n  models.Notification
		ok bool
	)
	s.db.View(func() { n, ok = s.byID[notificationID] })
	if !ok || n.RecipientID != recipient {
		return sentinel.ErrNotFound
	}
	s.db.Write(ctx, func() {
		stored := s.byID[notificationID]
		stored.Read = true
		s.byID[notificationID] = stored
	})
	return nil
}

// MarkAllRead flags every unread notification and returns how many changed.
func (s *InMemory) MarkAllRead(ctx context.Context, recipient id.UserID) (int, error) {
	var unread []id.NotificationID
	s.db.View(func() {
		for _, nid := range s.inbox[recipient] {
			if !s.byID[nid].Read {
				unread = append(unread, nid)
			}
		}
	})
	s.db.Write(ctx, func() {
		for _, nid := range unread {
			stored := s.byID[nid]
			stored.Read = true
			s.byID[nid] = stored
		}
	})
	return len(unread), nil
}
