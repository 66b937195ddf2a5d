// Package domain holds the typed identifiers shared across Legatia modules.
//
// Every identifier is a distinct named type over uuid.UUID so a FamilyID can
// never be passed where a MemberID is expected. Parse* functions are the only
// trust-boundary entry points and reject empty, malformed and nil UUIDs with
// CodeInvalidInput.
package domain

import (
	"github.com/google/uuid"

	dErrors "legatia/pkg/domain-errors"
)

type (
	UserID         uuid.UUID
	FamilyID       uuid.UUID
	MemberID       uuid.UUID
	EventID        uuid.UUID
	ClaimID        uuid.UUID
	InvitationID   uuid.UUID
	NotificationID uuid.UUID
)

func parseID[T ~[16]byte](s, label string) (T, error) {
	if s == "" {
		return T{}, dErrors.New(dErrors.CodeInvalidInput, label+" is required")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return T{}, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid "+label)
	}
	if u == uuid.Nil {
		return T{}, dErrors.New(dErrors.CodeInvalidInput, label+" must not be nil")
	}
	return T(u), nil
}

func unmarshalID[T ~[16]byte](dst *T, text []byte, label string) error {
	if len(text) == 0 {
		*dst = T{}
		return nil
	}
	parsed, err := parseID[T](string(text), label)
	if err != nil {
		return err
	}
	*dst = parsed
	return nil
}

func ParseUserID(s string) (UserID, error) { return parseID[UserID](s, "user_id") }

func ParseFamilyID(s string) (FamilyID, error) { return parseID[FamilyID](s, "family_id") }

func ParseMemberID(s string) (MemberID, error) { return parseID[MemberID](s, "member_id") }

func ParseEventID(s string) (EventID, error) { return parseID[EventID](s, "event_id") }

func ParseClaimID(s string) (ClaimID, error) { return parseID[ClaimID](s, "claim_id") }

func ParseInvitationID(s string) (InvitationID, error) {
	return parseID[InvitationID](s, "invitation_id")
}

func ParseNotificationID(s string) (NotificationID, error) {
	return parseID[NotificationID](s, "notification_id")
}

func NewFamilyID() FamilyID             { return FamilyID(uuid.New()) }
func NewMemberID() MemberID             { return MemberID(uuid.New()) }
func NewEventID() EventID               { return EventID(uuid.New()) }
func NewClaimID() ClaimID               { return ClaimID(uuid.New()) }
func NewInvitationID() InvitationID     { return InvitationID(uuid.New()) }
func NewNotificationID() NotificationID { return NotificationID(uuid.New()) }

func (id UserID) String() string { return uuid.UUID(id).String() }
func (id UserID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id UserID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}
func (id *UserID) UnmarshalText(text []byte) error { return unmarshalID(id, text, "user_id") }

func (id FamilyID) String() string { return uuid.UUID(id).String() }
func (id FamilyID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id FamilyID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}
func (id *FamilyID) UnmarshalText(text []byte) error { return unmarshalID(id, text, "family_id") }

func (id MemberID) String() string { return uuid.UUID(id).String() }
func (id MemberID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id MemberID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}
func (id *MemberID) UnmarshalText(text []byte) error { return unmarshalID(id, text, "member_id") }

func (id EventID) String() string { return uuid.UUID(id).String() }
func (id EventID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id EventID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}
func (id *EventID) UnmarshalText(text []byte) error { return unmarshalID(id, text, "event_id") }

func (id ClaimID) String() string { return uuid.UUID(id).String() }
func (id ClaimID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id ClaimID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}
func (id *ClaimID) UnmarshalText(text []byte) error { return unmarshalID(id, text, "claim_id") }

func (id InvitationID) String() string { return uuid.UUID(id).String() }
func (id InvitationID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id InvitationID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}
func (id *InvitationID) UnmarshalText(text []byte) error {
	return unmarshalID(id, text, "invitation_id")
}

func (id NotificationID) String() string { return uuid.UUID(id).String() }
func (id NotificationID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id NotificationID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}
func (id *NotificationID) UnmarshalText(text []byte) error {
	return unmarshalID(id, text, "notification_id")
}
