package memory

import (
	"context"
	"sort"
	"time"

	"legatia/internal/platform/memtx"
	audit "legatia/pkg/platform/audit"
)

type entry struct {
	audit.OutboxEntry
	event     audit.Event
	published bool
}

// InMemoryStore is an outbox whose appends are staged with the caller's
// memtx transaction, so an event commits or rolls back with its transition.
type InMemoryStore struct {
	db      *memtx.DB
	entries []entry
}

func NewInMemoryStore(db *memtx.DB) *InMemoryStore {
	return &InMemoryStore{db: db}
}

func (s *InMemoryStore) Append(ctx context.Context, event audit.Event) error {
	e, err := audit.NewEntry(event, time.Now())
	if err != nil {
		return err
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = e.CreatedAt
	}
	s.db.Write(ctx, func() {
		s.entries = append(s.entries, entry{OutboxEntry: e, event: event})
	})
	return nil
}

// ListAll returns every committed event in append order.
func (s *InMemoryStore) ListAll(_ context.Context) ([]audit.Event, error) {
	var out []audit.Event
	s.db.View(func() {
		for _, e := range s.entries {
			out = append(out, e.event)
		}
	})
	return out, nil
}

func (s *InMemoryStore) FetchUnpublished(_ context.Context, limit int) ([]audit.OutboxEntry, error) {
	var out []audit.OutboxEntry
	s.db.View(func() {
		for _, e := range s.entries {
			if e.published {
				continue
			}
			out = append(out, e.OutboxEntry)
			if len(out) == limit {
				break
			}
		}
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *InMemoryStore) MarkPublished(ctx context.Context, ids []string) error {
	done := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		done[id] = struct{}{}
	}
	s.db.Write(ctx, func() {
		for i := range s.entries {
			if _, ok := done[s.entries[i].ID]; ok {
				s.entries[i].published = true
			}
		}
	})
	return nil
}
