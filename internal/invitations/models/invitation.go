package models

import (
	"time"

	id "legatia/pkg/domain"
	dErrors "legatia/pkg/domain-errors"
	"legatia/pkg/optional"
	"legatia/pkg/platform/validation"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusDeclined Status = "declined"
	StatusExpired  Status = "expired"
)

// Invitation asks a registered user to join a family as a new linked member.
//
// Invariants:
//   - Status moves Pending -> {Accepted, Declined, Expired} exactly once
//   - At most one Pending invitation per (FamilyID, InviteeID)
//   - RespondedAt is set exactly when Status leaves Pending
type Invitation struct {
	ID           id.InvitationID
	FamilyID     id.FamilyID
	FamilyName   string
	InviterID    id.UserID
	InviterName  string
	InviteeID    id.UserID
	Relationship string
	Message      optional.Value[string]
	Status       Status
	CreatedAt    time.Time
	RespondedAt  optional.Value[time.Time]
}

// NewInvitation validates the relationship label and the optional message.
func NewInvitation(invitationID id.InvitationID, familyID id.FamilyID, familyName string, inviterID id.UserID, inviterName string, inviteeID id.UserID, relationship string, message optional.Value[string], now time.Time) (*Invitation, error) {
	if inviterID == inviteeID {
		return nil, dErrors.NewWithReason(dErrors.CodeBadRequest, dErrors.ReasonSelfInvite, "you cannot invite yourself")
	}
	relationship, err := validation.Reason(relationship, "relationship_to_admin")
	if err != nil {
		return nil, err
	}
	if msg, ok := message.Get(); ok {
		clean, err := validation.Message(msg)
		if err != nil {
			return nil, err
		}
		message = optional.None[string]()
		if clean != "" {
			message = optional.Some(clean)
		}
	}
	return &Invitation{
		ID:           invitationID,
		FamilyID:     familyID,
		FamilyName:   familyName,
		InviterID:    inviterID,
		InviterName:  inviterName,
		InviteeID:    inviteeID,
		Relationship: relationship,
		Message:      message,
		Status:       StatusPending,
		CreatedAt:    now,
	}, nil
}

func (i *Invitation) IsStale(now time.Time, retention time.Duration) bool {
	return i.Status == StatusPending && retention > 0 && !now.Before(i.CreatedAt.Add(retention))
}

// EffectiveStatus reports stale Pending invitations as Expired.
func (i *Invitation) EffectiveStatus(now time.Time, retention time.Duration) Status {
	if i.IsStale(now, retention) {
		return StatusExpired
	}
	return i.Status
}

func (i *Invitation) CanRespond(now time.Time, retention time.Duration) error {
	if i.EffectiveStatus(now, retention) != StatusPending {
		return dErrors.NewWithReason(dErrors.CodeConflict, dErrors.ReasonNotPending, "invitation is no longer pending")
	}
	return nil
}

func (i *Invitation) Accept(now time.Time) error  { return i.respond(StatusAccepted, now) }
func (i *Invitation) Decline(now time.Time) error { return i.respond(StatusDeclined, now) }
func (i *Invitation) Expire(now time.Time) error  { return i.respond(StatusExpired, now) }

func (i *Invitation) respond(to Status, now time.Time) error {
	if i.Status != StatusPending {
		return dErrors.NewWithReason(dErrors.CodeConflict, dErrors.ReasonNotPending, "invitation is no longer pending")
	}
	i.Status = to
	i.RespondedAt = optional.Some(now)
	return nil
}

func (i *Invitation) Clone() *Invitation {
	cp := *i
	return &cp
}
