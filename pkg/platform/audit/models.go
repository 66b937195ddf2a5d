// Package audit records workflow transitions in a transactional outbox.
//
// Services emit events inside the same unit of work as the state change they
// describe, so an event exists if and only if the transition committed. The
// outbox relay later publishes unpublished entries to Kafka.
package audit

import (
	"context"
	"time"

	id "legatia/pkg/domain"
)

// EventCategory classifies audit events by their primary purpose.
type EventCategory string

const (
	// CategoryCompliance covers changes to who belongs to a family. These
	// are written fail-closed: the transition aborts if the event cannot be
	// persisted.
	CategoryCompliance EventCategory = "compliance"

	// CategoryOperations covers routine workflow activity.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Category  EventCategory
	Timestamp time.Time
	UserID    id.UserID
	FamilyID  id.FamilyID
	Subject   string
	Action    string
	Decision  string
	Reason    string
	RequestID string
	// ActorID is who performed the action when different from UserID, for
	// example the admin approving a claim on the requester's behalf.
	ActorID string
}

type AuditEvent string

const (
	EventProfileCreated AuditEvent = "profile_created"

	EventFamilyCreated      AuditEvent = "family_created"
	EventVisibilityChanged  AuditEvent = "family_visibility_changed"
	EventMemberAdded        AuditEvent = "member_added"
	EventMemberUpdated      AuditEvent = "member_updated"
	EventMemberRemoved      AuditEvent = "member_removed"
	EventMemberEventAdded   AuditEvent = "member_event_added"
	EventMemberEventUpdated AuditEvent = "member_event_updated"

	EventClaimSubmitted AuditEvent = "claim_submitted"
	EventClaimApproved  AuditEvent = "claim_approved"
	EventClaimRejected  AuditEvent = "claim_rejected"
	EventClaimCancelled AuditEvent = "claim_cancelled"
	EventClaimExpired   AuditEvent = "claim_expired"

	EventInvitationSent     AuditEvent = "invitation_sent"
	EventInvitationAccepted AuditEvent = "invitation_accepted"
	EventInvitationDeclined AuditEvent = "invitation_declined"
	EventInvitationExpired  AuditEvent = "invitation_expired"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventProfileCreated:     CategoryCompliance,
	EventMemberRemoved:      CategoryCompliance,
	EventClaimApproved:      CategoryCompliance,
	EventInvitationAccepted: CategoryCompliance,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}

// Store appends events to the outbox. Implementations join the caller's
// transaction when ctx carries one.
type Store interface {
	Append(ctx context.Context, event Event) error
}

// OutboxEntry is one persisted event awaiting publication.
type OutboxEntry struct {
	ID            string
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte
	CreatedAt     time.Time
}

// Outbox is the relay side of the store.
type Outbox interface {
	FetchUnpublished(ctx context.Context, limit int) ([]OutboxEntry, error)
	MarkPublished(ctx context.Context, ids []string) error
}
