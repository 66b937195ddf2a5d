package audit

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Payload is the JSON document published to Kafka for each event.
type Payload struct {
	ID        string `json:"id"`
	Category  string `json:"category"`
	Timestamp int64  `json:"timestamp"`
	UserID    string `json:"user_id,omitempty"`
	FamilyID  string `json:"family_id,omitempty"`
	Subject   string `json:"subject"`
	Action    string `json:"action"`
	Decision  string `json:"decision,omitempty"`
	Reason    string `json:"reason,omitempty"`
	RequestID string `json:"request_id,omitempty"`
	ActorID   string `json:"actor_id,omitempty"`
}

// NewEntry renders an event as an outbox entry. The aggregate is the family
// when the event has one, so a partitioned consumer sees a family's events in
// order.
func NewEntry(event Event, now time.Time) (OutboxEntry, error) {
	eventID := uuid.New().String()
	if event.Timestamp.IsZero() {
		event.Timestamp = now
	}
	payload := Payload{
		ID:        eventID,
		Category:  string(AuditEvent(event.Action).Category()),
		Timestamp: event.Timestamp.UnixNano(),
		Subject:   event.Subject,
		Action:    event.Action,
		Decision:  event.Decision,
		Reason:    event.Reason,
		RequestID: event.RequestID,
		ActorID:   event.ActorID,
	}
	if !event.UserID.IsNil() {
		payload.UserID = event.UserID.String()
	}
	if !event.FamilyID.IsNil() {
		payload.FamilyID = event.FamilyID.String()
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return OutboxEntry{}, fmt.Errorf("marshal audit payload: %w", err)
	}

	entry := OutboxEntry{
		ID:            eventID,
		AggregateType: "audit",
		AggregateID:   eventID,
		EventType:     event.Action,
		Payload:       body,
		CreatedAt:     now,
	}
	switch {
	case !event.FamilyID.IsNil():
		entry.AggregateType, entry.AggregateID = "family", payload.FamilyID
	case !event.UserID.IsNil():
		entry.AggregateType, entry.AggregateID = "user", payload.UserID
	}
	return entry, nil
}
